package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/naculis/naculis_game/models"
)

func TestUseDiscountExactlyOnce(t *testing.T) {
	store := newFakeStore()
	_, profile := store.seedUser("a@x.com", "alice", "ALICE123")
	discount := &models.Discount{ProfileID: profile.ID, Percent: 2000, Reason: "Referral Reward"}
	_ = store.CreateDiscount(discount)

	clock := testClock()
	svc := &DiscountService{Store: store, Now: clock.Now}

	used, err := svc.Use(discount.ID, profile.ID)
	if err != nil {
		t.Fatalf("first use: %v", err)
	}
	if !used.Used || used.UsedAt == nil {
		t.Fatal("first use should set used and used_at")
	}
	firstUsedAt := *used.UsedAt

	clock.Advance(1)
	if _, err := svc.Use(discount.ID, profile.ID); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("second use: got %v, want ErrAlreadyUsed", err)
	}
	after, _ := store.DiscountByID(discount.ID)
	if !after.UsedAt.Equal(firstUsedAt) {
		t.Error("used_at changed on the rejected second use")
	}
}

func TestDiscountCrossProfileIsolation(t *testing.T) {
	store := newFakeStore()
	_, alice := store.seedUser("a@x.com", "alice", "ALICE123")
	_, bob := store.seedUser("b@x.com", "bob", "BOB12345")
	discount := &models.Discount{ProfileID: bob.ID, Percent: 5000, Reason: "Referral Sign-up"}
	_ = store.CreateDiscount(discount)

	svc := &DiscountService{Store: store}

	if _, err := svc.Get(discount.ID, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-profile get: got %v, want ErrNotFound", err)
	}
	if _, err := svc.Use(discount.ID, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-profile use: got %v, want ErrNotFound", err)
	}
	if list, _ := svc.List(alice.ID); len(list) != 0 {
		t.Errorf("alice sees %d of bob's discounts", len(list))
	}

	d, _ := store.DiscountByID(discount.ID)
	if d.Used {
		t.Error("cross-profile use must not mark the discount used")
	}
}

func TestAdminCreateDiscount(t *testing.T) {
	store := newFakeStore()
	_, profile := store.seedUser("a@x.com", "alice", "ALICE123")
	svc := &DiscountService{Store: store}

	if _, err := svc.AdminCreate(profile.ID, models.Percent(10001), "too much"); !errors.Is(err, ErrValidation) {
		t.Fatalf("percent > 100: got %v, want ErrValidation", err)
	}
	if _, err := svc.AdminCreate(profile.ID, models.Percent(-1), "negative"); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative percent: got %v, want ErrValidation", err)
	}
	if _, err := svc.AdminCreate(uuid.New(), models.Percent(1000), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown profile: got %v, want ErrNotFound", err)
	}

	created, err := svc.AdminCreate(profile.ID, models.PercentFromFloat(15), "Loyalty bonus")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Percent != 1500 {
		t.Errorf("percent = %d, want 1500", created.Percent)
	}

	if err := svc.AdminDelete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.AdminDelete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}
