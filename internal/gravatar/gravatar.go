// Package gravatar derives a deterministic avatar URL from an email address.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// URL returns the gravatar image URL for the given email: 200px, pg rated,
// with the "mystery man" default for addresses without a gravatar.
func URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
