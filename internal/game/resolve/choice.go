package resolve

// ChoiceKind distinguishes the shapes of questions put to a player.
type ChoiceKind string

const (
	ChoiceConfirm       ChoiceKind = "CONFIRM"
	ChoiceSelectCards   ChoiceKind = "SELECT_CARDS"
	ChoiceSelectTargets ChoiceKind = "SELECT_TARGETS"
	ChoiceSelectOption  ChoiceKind = "SELECT_OPTION"
)

// ChoiceRequest is one question for one seat. ID is stable for the lifetime
// of the question and echoed back in the matching result.
type ChoiceRequest struct {
	ID      string
	Seat    int
	Kind    ChoiceKind
	Prompt  string
	Options []string

	// Constraints for card/target selection.
	AllowedCardIDs []string
	AllowedSeats   []int
	MinCards       int
	MaxCards       int
	MinTargets     int
	MaxTargets     int
}

// ChoiceResult is the player's complete answer. The shape used depends on the
// request kind; unused fields stay zero.
type ChoiceResult struct {
	RequestID   string
	Seat        int
	Kind        ChoiceKind
	CardIDs     []string
	TargetSeats []int
	OptionIndex int
	Confirmed   bool
}

// ChoiceProvider is the sole interaction surface with whatever drives player
// decisions. Ask blocks until a complete, well-formed answer is available;
// it must always return. Timeouts belong to the implementation, not here.
type ChoiceProvider interface {
	Ask(ChoiceRequest) ChoiceResult
}

// ProviderFunc adapts a plain function to a ChoiceProvider.
type ProviderFunc func(ChoiceRequest) ChoiceResult

// Ask implements ChoiceProvider.
func (f ProviderFunc) Ask(req ChoiceRequest) ChoiceResult { return f(req) }

// ScriptedProvider replays a fixed sequence of answers in order, rewriting
// each answer's RequestID to match the live request. Used by tests and by
// replay verification. Once the script is exhausted every further question
// gets an empty (decline) answer, keeping the provider total.
type ScriptedProvider struct {
	Script []ChoiceResult
	next   int
}

// Ask implements ChoiceProvider.
func (s *ScriptedProvider) Ask(req ChoiceRequest) ChoiceResult {
	if s.next >= len(s.Script) {
		return ChoiceResult{RequestID: req.ID, Seat: req.Seat, Kind: req.Kind}
	}
	res := s.Script[s.next]
	s.next++
	res.RequestID = req.ID
	res.Seat = req.Seat
	res.Kind = req.Kind
	return res
}

// Remaining returns how many scripted answers are left unconsumed.
func (s *ScriptedProvider) Remaining() int {
	return len(s.Script) - s.next
}
