package resolve

import "testing"

// orderProbe records the order it was resolved in.
type orderProbe struct {
	id    string
	seen  *[]string
	setup func(ctx *Context)
}

func (p *orderProbe) Name() string { return "probe-" + p.id }

func (p *orderProbe) Resolve(ctx *Context) Result {
	*p.seen = append(*p.seen, p.id)
	if p.setup != nil {
		p.setup(ctx)
	}
	return Ok()
}

type failingResolver struct{}

func (f *failingResolver) Name() string { return "failing" }

func (f *failingResolver) Resolve(*Context) Result {
	return Fail(CodeRuleValidation, "Boom")
}

func TestStackPopIsLIFO(t *testing.T) {
	env := newTestEnv(t, 2, 4)
	ctx := env.context(0)

	var seen []string
	for _, id := range []string{"a", "b", "c"} {
		env.stack.Push(&orderProbe{id: id, seen: &seen}, ctx)
	}

	for !env.stack.IsEmpty() {
		if res := env.stack.Pop(); !res.Success {
			t.Fatalf("unexpected failure: %+v", res)
		}
	}

	want := []string{"c", "b", "a"}
	if len(seen) != len(want) {
		t.Fatalf("expected %d pops, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected reverse push order %v, got %v", want, seen)
		}
	}
}

func TestStackPopEmptyIsNeutralSuccess(t *testing.T) {
	env := newTestEnv(t, 2, 4)
	if !env.stack.IsEmpty() {
		t.Fatalf("expected fresh stack to be empty")
	}
	res := env.stack.Pop()
	if !res.Success {
		t.Fatalf("expected neutral success from empty pop, got %+v", res)
	}
	if len(env.stack.History()) != 0 {
		t.Fatalf("empty pop must not append history")
	}
}

func TestStackPushDuringResolveDrainsLater(t *testing.T) {
	env := newTestEnv(t, 2, 4)
	ctx := env.context(0)

	var seen []string
	inner := &orderProbe{id: "inner", seen: &seen}
	outer := &orderProbe{id: "outer", seen: &seen, setup: func(c *Context) {
		c.Stack.Push(inner, c)
	}}
	env.stack.Push(outer, ctx)

	// Pushing during Resolve must not execute the pushed resolver inline.
	if res := env.stack.Pop(); !res.Success {
		t.Fatalf("outer failed: %+v", res)
	}
	if len(seen) != 1 || seen[0] != "outer" {
		t.Fatalf("inner resolver ran too early: %v", seen)
	}
	if env.stack.IsEmpty() {
		t.Fatalf("inner resolver should be pending")
	}
	if res := env.stack.Pop(); !res.Success {
		t.Fatalf("inner failed: %+v", res)
	}
	if len(seen) != 2 || seen[1] != "inner" {
		t.Fatalf("expected inner to run on the next pop: %v", seen)
	}
}

func TestStackHistoryRecordsEveryPop(t *testing.T) {
	env := newTestEnv(t, 2, 4)
	ctx := env.context(0)

	var seen []string
	env.stack.Push(&orderProbe{id: "x", seen: &seen}, ctx)
	env.stack.Push(&failingResolver{}, ctx)

	first := env.stack.Pop()
	if first.Success {
		t.Fatalf("expected failing resolver on top")
	}
	second := env.stack.Pop()
	if !second.Success {
		t.Fatalf("probe should succeed: %+v", second)
	}

	history := env.stack.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(history))
	}
	if history[0].Resolver != "failing" || history[0].Result.Success {
		t.Fatalf("first record should be the failure: %+v", history[0])
	}
	if history[1].Resolver != "probe-x" || !history[1].Result.Success {
		t.Fatalf("second record should be the probe: %+v", history[1])
	}
	if history[0].Context == nil {
		t.Fatalf("records must carry a context snapshot")
	}
}

func TestStackDoesNotAbortOnFailure(t *testing.T) {
	env := newTestEnv(t, 2, 4)
	ctx := env.context(0)

	var seen []string
	env.stack.Push(&orderProbe{id: "later", seen: &seen}, ctx)
	env.stack.Push(&failingResolver{}, ctx)

	if res := env.stack.Pop(); res.Success {
		t.Fatalf("expected failure")
	}
	// The stack itself keeps the remaining frames; halting is the driver's
	// decision.
	if env.stack.IsEmpty() {
		t.Fatalf("failure must not clear remaining frames")
	}
}
