package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/naculis/naculis_game/models"
)

const (
	accessTokenTTL         = time.Hour
	refreshTokenTTL        = 7 * 24 * time.Hour
	rememberRefreshTTL     = 30 * 24 * time.Hour
	tokenBlacklistKeyPrefix = "tokenblk:"
)

type TokenService struct {
	Secret []byte
	KV     KV
	Now    func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Issue signs an access/refresh pair for user. remember_me stretches the
// refresh lifetime from 7 to 30 days.
func (s *TokenService) Issue(user *models.User, rememberMe bool) (*TokenPair, error) {
	access, err := s.sign(user.ID.String(), user.Role, "access", accessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshTTL := refreshTokenTTL
	if rememberMe {
		refreshTTL = rememberRefreshTTL
	}
	refresh, err := s.sign(user.ID.String(), user.Role, "refresh", refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *TokenService) sign(userID, role, typ string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"type":    typ,
		"jti":     uuid.NewString(),
		"exp":     s.now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// VerifyRefresh parses the token, checks it is a refresh token and that
// its jti has not been blacklisted.
func (s *TokenService) VerifyRefresh(ctx context.Context, tokenString string) (jwt.MapClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if typ, _ := claims["type"].(string); typ != "refresh" {
		return nil, ErrInvalidToken
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, ErrInvalidToken
	}
	if _, err := s.KV.Get(ctx, tokenBlacklistKeyPrefix+jti); err == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Blacklist voids a refresh token for the remainder of its lifetime.
func (s *TokenService) Blacklist(ctx context.Context, tokenString string) error {
	claims, err := s.VerifyRefresh(ctx, tokenString)
	if err != nil {
		return err
	}

	jti, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)
	ttl := time.Unix(int64(exp), 0).Sub(s.now())
	if ttl <= 0 {
		return ErrInvalidToken
	}
	return s.KV.Set(ctx, tokenBlacklistKeyPrefix+jti, "1", ttl)
}

// RefreshAccess trades a live refresh token for a fresh access token.
func (s *TokenService) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.VerifyRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	return s.sign(userID, role, "access", accessTokenTTL)
}

func (s *TokenService) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
