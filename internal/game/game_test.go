package game

import "testing"

func newGame(players, health int, seed int64) *Game {
	return New(Config{PlayerCount: players, InitialHealth: health, Seed: seed}, nil)
}

func TestSameSeedYieldsIdenticalDeck(t *testing.T) {
	a := newGame(4, 4, 99)
	b := newGame(4, 4, 99)

	if len(a.DrawPile) != len(b.DrawPile) {
		t.Fatalf("deck sizes differ: %d vs %d", len(a.DrawPile), len(b.DrawPile))
	}
	for i := range a.DrawPile {
		if a.DrawPile[i].ID != b.DrawPile[i].ID {
			t.Fatalf("deck diverges at %d: %s vs %s", i, a.DrawPile[i].ID, b.DrawPile[i].ID)
		}
	}
}

func TestDifferentSeedsShuffleDifferently(t *testing.T) {
	a := newGame(4, 4, 1)
	b := newGame(4, 4, 2)

	same := true
	for i := range a.DrawPile {
		if a.DrawPile[i].ID != b.DrawPile[i].ID {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical shuffles")
	}
}

func TestSeatStepsWrapAround(t *testing.T) {
	g := newGame(6, 4, 0)
	cases := []struct{ from, to, want int }{
		{0, 0, 0},
		{0, 1, 1},
		{0, 3, 3},
		{0, 5, 1},
		{5, 1, 2},
	}
	for _, c := range cases {
		if got := g.SeatSteps(c.from, c.to); got != c.want {
			t.Fatalf("steps %d->%d: expected %d, got %d", c.from, c.to, c.want, got)
		}
	}
}

func TestSeatStepsIgnoresDeadPlayers(t *testing.T) {
	g := newGame(6, 4, 0)
	g.Players[1].Alive = false
	g.Players[2].Alive = false

	if got := g.SeatSteps(0, 3); got != 1 {
		t.Fatalf("expected dead seats skipped, got %d", got)
	}
}

func TestDrawTopRecyclesDiscard(t *testing.T) {
	g := newGame(2, 4, 5)
	total := len(g.DrawPile)

	for i := 0; i < total; i++ {
		c, ok := g.DrawTop()
		if !ok {
			t.Fatalf("draw %d failed before the pile was empty", i)
		}
		g.DiscardPile = append(g.DiscardPile, c)
	}
	if len(g.DrawPile) != 0 {
		t.Fatalf("draw pile should be empty")
	}

	if _, ok := g.DrawTop(); !ok {
		t.Fatalf("expected the discard pile to recycle into the draw pile")
	}
	if len(g.DrawPile) != total-1 {
		t.Fatalf("expected %d cards after recycle draw, got %d", total-1, len(g.DrawPile))
	}
	if len(g.DiscardPile) != 0 {
		t.Fatalf("discard pile should be empty after recycle")
	}
}

func TestDrawTopBothPilesEmpty(t *testing.T) {
	g := newGame(2, 4, 5)
	g.DrawPile = nil
	g.DiscardPile = nil

	if _, ok := g.DrawTop(); ok {
		t.Fatalf("draw from two empty piles must fail")
	}
}

func TestJudgeMovesCardToDiscard(t *testing.T) {
	g := newGame(2, 4, 5)
	before := len(g.DrawPile)

	c, ok := g.Judge()
	if !ok {
		t.Fatalf("judge failed with a full pile")
	}
	if len(g.DrawPile) != before-1 {
		t.Fatalf("judge must consume the top card")
	}
	if len(g.DiscardPile) != 1 || g.DiscardPile[0].ID != c.ID {
		t.Fatalf("judged card must land in the discard pile")
	}
}
