package demoserver

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// GenerateToken mints a registration token.
// Format: REGWIZ-XXXX-XXXX-XXXX-XXXX.
func GenerateToken() (string, error) {
	// 12 random bytes give 20 base32 chars, of which we use 16.
	bytes := make([]byte, 12)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(bytes)
	encoded = strings.ToUpper(encoded)

	return "REGWIZ-" + encoded[0:4] + "-" + encoded[4:8] + "-" + encoded[8:12] + "-" + encoded[12:16], nil
}
