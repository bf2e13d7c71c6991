package utils

import (
	"sync"
	"time"
)

var (
	revokedTokens = make(map[string]time.Time)
	revokedMu     sync.RWMutex
)

// RevokeToken stores jti until expiry. Expired entries are dropped lazily.
func RevokeToken(jti string, expiry time.Time) {
	if jti == "" {
		return
	}
	revokedMu.Lock()
	defer revokedMu.Unlock()
	revokedTokens[jti] = expiry
}

func IsTokenRevoked(jti string) bool {
	revokedMu.RLock()
	expiry, exists := revokedTokens[jti]
	revokedMu.RUnlock()
	if !exists {
		return false
	}
	if time.Now().Before(expiry) {
		return true
	}

	revokedMu.Lock()
	delete(revokedTokens, jti)
	revokedMu.Unlock()
	return false
}

// PurgeRevokedTokens removes entries whose token would have expired anyway and
// returns how many were removed.
func PurgeRevokedTokens(now time.Time) int {
	revokedMu.Lock()
	defer revokedMu.Unlock()
	removed := 0
	for jti, expiry := range revokedTokens {
		if now.After(expiry) {
			delete(revokedTokens, jti)
			removed++
		}
	}
	return removed
}
