package txscript

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// sigCacheEntry is the empty value stored per cache key: only signatures
// that verified are added, so a key's presence means it verified. Keys are
// only (hash, signature, pubkey), so two scripts that happen to check the
// same signature share one ECDSA verification.
type sigCacheEntry struct{}

// sigCacheKey identifies one signature/pubkey/message-hash triple. lru.Cache
// keys must be comparable, so the key is a struct of an array and strings
// rather than a byte slice.
type sigCacheKey struct {
	sigHash [32]byte
	sig     string
	pubKey  string
}

// SigCache memoizes ECDSA signature verifications across script
// evaluations, avoiding repeated work when the same signature is checked
// more than once (e.g. re-evaluating a transaction already accepted to the
// mempool). Wraps groupcache's LRU with a mutex since lru.Cache is not
// safe for concurrent use.
type SigCache struct {
	sync.Mutex
	valid *lru.Cache
}

// NewSigCache returns a SigCache holding up to maxEntries verified
// signatures.
func NewSigCache(maxEntries int) *SigCache {
	return &SigCache{
		valid: lru.New(maxEntries),
	}
}

// Exists reports whether sig/pubKey was already verified against sigHash.
func (s *SigCache) Exists(sigHash [32]byte, sig, pubKey []byte) bool {
	s.Lock()
	defer s.Unlock()

	_, ok := s.valid.Get(sigCacheKey{sigHash, string(sig), string(pubKey)})
	return ok
}

// Add records that sig/pubKey verified successfully against sigHash.
func (s *SigCache) Add(sigHash [32]byte, sig, pubKey []byte) {
	s.Lock()
	defer s.Unlock()

	s.valid.Add(sigCacheKey{sigHash, string(sig), string(pubKey)}, sigCacheEntry{})
}
