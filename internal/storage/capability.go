package storage

// Capabilities describes what a backend can do natively, so callers can pick
// a ranking strategy without knowing the concrete backend.
type Capabilities struct {
	// NativeRanking is set when retrieval already carries a relevance rank
	// (Postgres ts_rank, Elasticsearch _score). Substring backends leave it
	// unset and the caller ranks lexically.
	NativeRanking bool
}

type CapabilityProvider interface {
	GetCapabilities() Capabilities
}
