package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding them as a hexadecimal string, so the final string length will be
// twice the size. It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MintOpaqueToken builds an opaque token of the form
// "<prefix>_<unixmilli>_<randhex>". The timestamp carries no trust, it only
// makes tokens readable in logs and trivially unique across restarts.
func MintOpaqueToken(prefix string, now time.Time) (string, error) {
	suffix, err := MakeRandHexString(5)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), suffix), nil
}
