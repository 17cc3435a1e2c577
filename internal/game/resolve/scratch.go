package resolve

// ScratchKind names a logical inter-resolver exchange.
type ScratchKind string

const (
	// ScratchResponseOutcome carries a ResponseOutcome from a response window
	// to its handler.
	ScratchResponseOutcome ScratchKind = "RESPONSE_OUTCOME"
	// ScratchDyingSeat carries the dying player's seat into a DyingResolver.
	ScratchDyingSeat ScratchKind = "DYING_SEAT"
)

// ScratchKey is a typed key. Exchange is a fresh uuid minted when the two
// cooperating resolvers are pushed, so independent exchanges of the same kind
// nested inside one resolution cannot cross-talk.
type ScratchKey struct {
	Kind     ScratchKind
	Exchange string
}

// Scratch is the shared mutable relay between cooperating resolvers in one
// resolution chain. Write on one pop, read on the next; single-threaded.
type Scratch struct {
	entries map[ScratchKey]any
}

// NewScratch creates an empty scratch store.
func NewScratch() *Scratch {
	return &Scratch{entries: make(map[ScratchKey]any)}
}

// Put stores a value under (kind, exchange).
func (s *Scratch) Put(kind ScratchKind, exchange string, value any) {
	s.entries[ScratchKey{Kind: kind, Exchange: exchange}] = value
}

// Get retrieves the value stored under (kind, exchange).
func (s *Scratch) Get(kind ScratchKind, exchange string) (any, bool) {
	v, ok := s.entries[ScratchKey{Kind: kind, Exchange: exchange}]
	return v, ok
}

// Delete removes the entry under (kind, exchange).
func (s *Scratch) Delete(kind ScratchKind, exchange string) {
	delete(s.entries, ScratchKey{Kind: kind, Exchange: exchange})
}

// ResponseOutcome is what a response window records for its handler.
type ResponseOutcome string

const (
	OutcomeNoResponse      ResponseOutcome = "NO_RESPONSE"
	OutcomeResponseSuccess ResponseOutcome = "RESPONSE_SUCCESS"
)
