package queue

const (
	TypeCacheInvalidate = "cache:invalidate"
)

// CacheInvalidatePayload names a context cache entry whose synchronous
// invalidation failed.
type CacheInvalidatePayload struct {
	Mode       string `json:"mode"`
	Identifier string `json:"identifier"`
}
