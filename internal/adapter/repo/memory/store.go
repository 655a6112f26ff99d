package memory

import "sync"

// Store holds encoded slot payloads, the same bytes the real repository
// would persist, so tests exercise the codec and the capacity fallback.
type Store struct {
	mu sync.RWMutex
	// MaxPayloadBytes simulates the storage quota; zero means unlimited.
	MaxPayloadBytes int
	payloads        map[int][]byte
}

func NewStore() *Store {
	return &Store{payloads: make(map[int][]byte)}
}
