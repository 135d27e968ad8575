package jobs

import (
	"log"
	"time"

	"github.com/naculis/naculis_game/database"
)

// PurgeExpiredPendingRegistrations sweeps pending signups past their OTP
// expiry. Verify also drops stale rows on read; the sweep just keeps the
// table from accumulating abandoned signups.
func PurgeExpiredPendingRegistrations() {
	removed, err := database.NewStore().DeleteExpiredPending(time.Now())
	if err != nil {
		log.Printf("🔥 Failed to purge expired pending registrations: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("🧹 Purged %d expired pending registration(s)", removed)
	}
}
