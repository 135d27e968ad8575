package database

import (
	"context"
	"fmt"
	"log"

	config "github.com/naculis/naculis_game/configs"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

func ConnectRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Config("REDIS_HOST"), config.Config("REDIS_PORT")),
		Password: config.Config("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := Redis.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("🔥 Failed to connect to redis: %v", err)
	}

	log.Println("✅ Connected to Redis")
}
