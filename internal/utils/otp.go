package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// OTPTTL is how long a password-reset code stays valid
const OTPTTL = 60 * time.Minute

// GenerateOTP returns a 6-character uppercase hex code from 3 random bytes
func GenerateOTP() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
