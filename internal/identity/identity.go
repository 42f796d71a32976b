// Package identity derives a best-effort stable visitor token from the
// caller's network address. The token is not authentication; it only has to
// be stable enough that the same browser maps to the same voter flag.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Unavailable is the sentinel token returned when no address could be
// resolved. The vote path refuses to act on it rather than guessing.
const Unavailable = "unavailable"

// tokenLen keeps the path segment short; 16 hex chars of a salted SHA-256 is
// plenty for a small visitor population.
const tokenLen = 16

// Provider hashes client addresses into visitor tokens.
type Provider struct {
	salt string
}

// NewProvider creates a provider. The salt keeps raw addresses out of the
// shared store.
func NewProvider(salt string) *Provider {
	return &Provider{salt: salt}
}

// Resolve maps a client IP to a visitor token, or Unavailable when the
// address is empty.
func (p *Provider) Resolve(ip string) string {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return Unavailable
	}
	sum := sha256.Sum256([]byte(p.salt + "|" + ip))
	return hex.EncodeToString(sum[:])[:tokenLen]
}
