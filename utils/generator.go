package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	config "github.com/naculis/naculis_game/configs"
)

const referralCodeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueReferralCode keeps drawing 8-character codes until exists
// reports one that is not taken.
func GenerateUniqueReferralCode(exists func(code string) (bool, error)) (string, error) {
	for {
		b := make([]byte, referralCodeLength)
		for i := range b {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letterBytes))))
			if err != nil {
				return "", err
			}
			b[i] = letterBytes[n.Int64()]
		}
		code := string(b)

		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
}

// GenerateOTP returns a 6-digit numeric code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func ReferralLink(code string) string {
	base := config.Config("REFERRAL_LINK_BASE")
	if base == "" {
		base = "https://play.naculis.com/register"
	}
	return fmt.Sprintf("%s?ref=%s", base, code)
}
