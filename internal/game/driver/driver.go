// Package driver contains the phase-rotation turn engine. It is a client of
// the resolution engine: once per action it builds a context, pushes the
// entry resolver, and drains the stack, halting on the first failure.
package driver

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/capability"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/resolve"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
)

// NoWinner is returned by Run when the turn cap is reached first.
const NoWinner = -1

// Driver rotates turns over alive seats and executes play-phase actions
// through the resolution engine.
type Driver struct {
	game     *game.Game
	rules    *rules.Service
	caps     *capability.Set
	registry *resolve.Registry
	mover    *game.Mover
	bus      *events.Bus
	provider resolve.ChoiceProvider
	logger   *zap.Logger

	records  []resolve.Record
	maxTurns int
}

// New creates a driver. provider must be non-nil; logger may be nil.
func New(
	g *game.Game,
	ruleSvc *rules.Service,
	caps *capability.Set,
	registry *resolve.Registry,
	mover *game.Mover,
	bus *events.Bus,
	provider resolve.ChoiceProvider,
	logger *zap.Logger,
) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		game:     g,
		rules:    ruleSvc,
		caps:     caps,
		registry: registry,
		mover:    mover,
		bus:      bus,
		provider: provider,
		logger:   logger,
		maxTurns: 1000,
	}
}

// Records returns the accumulated resolution history of all actions run so
// far, in execution order.
func (d *Driver) Records() []resolve.Record {
	out := make([]resolve.Record, len(d.records))
	copy(out, d.records)
	return out
}

// Run rotates turns until one seat remains or the turn cap is hit. Returns
// the winning seat, or NoWinner on turn-cap exhaustion.
func (d *Driver) Run() (int, error) {
	for d.game.Turn = 1; d.game.Turn <= d.maxTurns; d.game.Turn++ {
		for _, p := range d.game.AlivePlayers() {
			if d.game.AliveCount() <= 1 {
				break
			}
			if !p.Alive {
				continue
			}
			d.game.CurrentSeat = p.Seat
			if err := d.RunTurn(p.Seat); err != nil {
				return NoWinner, err
			}
		}
		if d.game.AliveCount() <= 1 {
			alive := d.game.AlivePlayers()
			if len(alive) == 1 {
				winner := alive[0].Seat
				d.logger.Info("game over",
					zap.String("game_id", d.game.ID),
					zap.Int("winner", winner),
					zap.Int("turns", d.game.Turn),
				)
				return winner, nil
			}
			return NoWinner, nil
		}
	}
	return NoWinner, nil
}

// RunTurn executes all phases of one seat's turn.
func (d *Driver) RunTurn(seat int) error {
	p, ok := d.game.FindPlayer(seat)
	if !ok || !p.Alive {
		return fmt.Errorf("seat %d cannot take a turn", seat)
	}

	d.bus.Publish(events.New(events.EventTurnBegin, seat, -1))

	for _, phase := range turnSequence {
		evt := events.New(events.EventPhaseChanged, seat, -1)
		evt.Data["phase"] = phase.String()
		d.bus.Publish(evt)

		switch phase {
		case PhasePrepare:
			d.rules.Usage().ResetTurn()
		case PhaseJudge:
			// Delayed trick judgments would resolve here; none are in the
			// base card set.
		case PhaseDraw:
			d.mover.Draw(d.game, p, d.rules.DrawCount(seat))
		case PhasePlay:
			if err := d.playPhase(p); err != nil {
				return err
			}
		case PhaseDiscard:
			d.discardPhase(p)
		case PhaseEnd:
		}

		if d.game.AliveCount() <= 1 || !p.Alive {
			break
		}
	}
	return nil
}

// playPhase repeatedly offers the seat its usable cards until it passes.
func (d *Driver) playPhase(p *game.Player) error {
	for p.Alive && d.game.AliveCount() > 1 {
		usable := d.usableCardIDs(p)
		if len(usable) == 0 {
			return nil
		}
		pick := d.provider.Ask(resolve.ChoiceRequest{
			ID:             uuid.NewString(),
			Seat:           p.Seat,
			Kind:           resolve.ChoiceSelectCards,
			Prompt:         "Play a card, or select none to pass.",
			AllowedCardIDs: usable,
			MinCards:       0,
			MaxCards:       1,
		})
		if len(pick.CardIDs) != 1 {
			return nil
		}
		card, ok := p.HandCard(pick.CardIDs[0])
		if !ok {
			// A stale pick is treated as a pass rather than an engine error.
			return nil
		}
		asName, ok := d.playableAs(p, card)
		if !ok {
			return nil
		}

		action := resolve.Action{CardID: card.ID}
		if asName != card.Name {
			action.AsName = asName
		}
		if asName == game.CardSlash {
			targets := d.rules.LegalTargets(p.Seat, game.CardSlash)
			if len(targets) == 0 {
				return nil
			}
			choice := d.provider.Ask(resolve.ChoiceRequest{
				ID:           uuid.NewString(),
				Seat:         p.Seat,
				Kind:         resolve.ChoiceSelectTargets,
				Prompt:       "Choose a Slash target.",
				AllowedSeats: targets,
				MinTargets:   1,
				MaxTargets:   1,
			})
			if len(choice.TargetSeats) != 1 {
				return nil
			}
			action.TargetSeats = choice.TargetSeats
		}

		if err := d.ExecuteAction(p, action); err != nil {
			return err
		}
	}
	return nil
}

// usableCardIDs returns the hand cards the seat may legally play right now.
// Cards with no proactive use (no registered effect, not equipment, no
// virtual use) are never offered: answering an offered choice must not be
// able to abort the match.
func (d *Driver) usableCardIDs(p *game.Player) []string {
	var ids []string
	for _, c := range p.Hand {
		if _, ok := d.playableAs(p, c); ok {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// playableAs returns the name the seat would play the card as right now,
// preferring the card's own effect over a virtual use. Response-only cards
// like Dodge have no direct play; a skill such as Wusheng may still open a
// virtual Slash for them.
func (d *Driver) playableAs(p *game.Player, c game.Card) (string, bool) {
	direct := c.Type == game.CardTypeEquipment
	if !direct {
		_, direct = d.registry.Lookup(c.Name)
	}
	if direct && d.rules.CanUseCard(p.Seat, c.Name).Allowed {
		if c.Name != game.CardSlash || len(d.rules.LegalTargets(p.Seat, game.CardSlash)) > 0 {
			return c.Name, true
		}
	}
	if c.Name != game.CardSlash &&
		d.rules.UsableAs(p.Seat, c, game.CardSlash) &&
		d.rules.CanUseCard(p.Seat, game.CardSlash).Allowed &&
		len(d.rules.LegalTargets(p.Seat, game.CardSlash)) > 0 {
		return game.CardSlash, true
	}
	return "", false
}

// discardPhase enforces the hand limit (current health, floored at zero).
// An ill-formed answer falls back to discarding from the front of the hand
// so the engine always progresses.
func (d *Driver) discardPhase(p *game.Player) {
	limit := p.Health
	if limit < 0 {
		limit = 0
	}
	excess := len(p.Hand) - limit
	if excess <= 0 {
		return
	}
	all := make([]string, len(p.Hand))
	for i, c := range p.Hand {
		all[i] = c.ID
	}
	answer := d.provider.Ask(resolve.ChoiceRequest{
		ID:             uuid.NewString(),
		Seat:           p.Seat,
		Kind:           resolve.ChoiceSelectCards,
		Prompt:         fmt.Sprintf("Discard down to %d cards.", limit),
		AllowedCardIDs: all,
		MinCards:       excess,
		MaxCards:       excess,
	})
	chosen := answer.CardIDs
	if len(chosen) != excess || d.mover.DiscardFromHand(d.game, p, chosen) != nil {
		fallback := all[:excess]
		if err := d.mover.DiscardFromHand(d.game, p, fallback); err != nil {
			d.logger.Error("discard fallback failed", zap.Error(err))
		}
	}
}

// ExecuteAction resolves one play-phase action to completion: build a
// context and stack, push the entry resolver, and pop until empty. The first
// failed result aborts the drain and surfaces its message key; partial
// effects already applied are not rolled back.
func (d *Driver) ExecuteAction(p *game.Player, action resolve.Action) error {
	stack := resolve.NewStack(d.logger)
	ctx := &resolve.Context{
		Game:     d.game,
		Actor:    p,
		Action:   action,
		Stack:    stack,
		Mover:    d.mover,
		Rules:    d.rules,
		Caps:     d.caps,
		Registry: d.registry,
		Provider: d.provider,
		Bus:      d.bus,
		Logger:   d.logger,
	}
	stack.Push(&resolve.UseCardResolver{}, ctx)

	var failure *resolve.Result
	for !stack.IsEmpty() {
		result := stack.Pop()
		if !result.Success {
			failure = &result
			break
		}
	}
	d.records = append(d.records, stack.History()...)

	if failure != nil {
		return fmt.Errorf("action aborted: %s (%s)", failure.MessageKey, failure.Code)
	}
	return nil
}
