package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Percent is a percentage stored as integer hundredths (2000 = 20.00%),
// so repeated grants never accumulate float rounding error.
type Percent int

func PercentFromFloat(v float64) Percent {
	return Percent(v*100 + 0.5)
}

func (p Percent) Float() float64 {
	return float64(p) / 100
}

func (p Percent) Valid() bool {
	return p >= 0 && p <= 10000
}

func (p Percent) String() string {
	return fmt.Sprintf("%d.%02d", int(p)/100, int(p)%100)
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	var v float64
	if _, err := fmt.Sscanf(s, "%f", &v); err != nil {
		return fmt.Errorf("invalid percent %q", s)
	}
	*p = PercentFromFloat(v)
	return nil
}

type Discount struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null" json:"profile_id"`
	Percent   Percent   `gorm:"not null" json:"percent"`
	Reason    string    `gorm:"size:255;not null" json:"reason"`

	// Used never reverts to false and UsedAt is never cleared.
	Used   bool       `gorm:"default:false" json:"used"`
	UsedAt *time.Time `json:"used_at"`

	GrantedAt time.Time `gorm:"autoCreateTime" json:"granted_at"`
}
