// Package capability defines the pluggable effect records attached to
// players. Each record is a tagged value implementing the rule-modifier
// interface through optional function fields; deep effect class hierarchies
// are deliberately avoided.
package capability

import (
	"sync"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
)

// Capability is one attached effect. Nil function fields mean "no opinion"
// for that rule family.
type Capability struct {
	ID      string
	Numeric func(rule rules.NumericRule, q rules.Query, current int) (int, bool)
	Bool    func(rule rules.BoolRule, q rules.Query, current bool) (bool, bool)
}

// Name returns the capability identifier.
func (c *Capability) Name() string { return c.ID }

// ModifyNumeric implements rules.Modifier.
func (c *Capability) ModifyNumeric(rule rules.NumericRule, q rules.Query, current int) (int, bool) {
	if c.Numeric == nil {
		return 0, false
	}
	return c.Numeric(rule, q, current)
}

// ModifyBool implements rules.Modifier.
func (c *Capability) ModifyBool(rule rules.BoolRule, q rules.Query, current bool) (bool, bool) {
	if c.Bool == nil {
		return false, false
	}
	return c.Bool(rule, q, current)
}

// Set holds the capabilities attached to each seat, in attachment order.
// Attachment order is the fold order, so the turn engine attaches equipment
// capabilities before hero skills when setting up a player.
type Set struct {
	mu     sync.RWMutex
	bySeat map[int][]*Capability
}

// NewSet creates an empty capability set.
func NewSet() *Set {
	return &Set{bySeat: make(map[int][]*Capability)}
}

// Attach appends a capability to the seat's ordered list.
func (s *Set) Attach(seat int, cap *Capability) {
	if cap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySeat[seat] = append(s.bySeat[seat], cap)
}

// Detach removes the capability with the given ID from the seat, preserving
// the order of the rest.
func (s *Set) Detach(seat int, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	caps := s.bySeat[seat]
	for i, c := range caps {
		if c.ID == id {
			s.bySeat[seat] = append(caps[:i], caps[i+1:]...)
			return
		}
	}
}

// ActiveModifiers implements rules.Source.
func (s *Set) ActiveModifiers(seat int) []rules.Modifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	caps := s.bySeat[seat]
	mods := make([]rules.Modifier, len(caps))
	for i, c := range caps {
		mods[i] = c
	}
	return mods
}
