package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
)

const DefaultAdminKeyHeader = "X-Admin-Key"

// AdminKeyMiddleware protects platform operator endpoints with a single
// shared key. Only the key's sha256 is configured.
type AdminKeyMiddleware struct {
	headerName string
	keyHash    []byte
}

func NewAdminKeyMiddleware(headerName, keyHashHex string) *AdminKeyMiddleware {
	if headerName == "" {
		headerName = DefaultAdminKeyHeader
	}
	return &AdminKeyMiddleware{
		headerName: headerName,
		keyHash:    []byte(strings.ToLower(strings.TrimSpace(keyHashHex))),
	}
}

func (m *AdminKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(m.headerName)
		if key == "" || len(m.keyHash) == 0 {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing admin key")
			return
		}

		hash := HashAPIKey(key)
		if subtle.ConstantTimeCompare([]byte(hash), m.keyHash) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid admin key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func HashAPIKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}
