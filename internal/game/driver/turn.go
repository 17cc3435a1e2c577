package driver

import "fmt"

// Phase represents the phases of one player's turn.
type Phase int

const (
	PhasePrepare Phase = iota
	PhaseJudge
	PhaseDraw
	PhasePlay
	PhaseDiscard
	PhaseEnd
)

var phaseNames = map[Phase]string{
	PhasePrepare: "PREPARE",
	PhaseJudge:   "JUDGE",
	PhaseDraw:    "DRAW",
	PhasePlay:    "PLAY",
	PhaseDiscard: "DISCARD",
	PhaseEnd:     "END",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// turnSequence is the fixed phase rotation of a turn.
var turnSequence = []Phase{
	PhasePrepare,
	PhaseJudge,
	PhaseDraw,
	PhasePlay,
	PhaseDiscard,
	PhaseEnd,
}
