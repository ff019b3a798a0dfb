package adt

// Fuel is a shared step-count budget threaded through β-evaluation and
// type inference (§5) to bound worst-case recursion on adversarial,
// syntactically valid but ill-typed input. A nil *Fuel means "no budget",
// used by callers (tests, tooling) that accept unbounded recursion on
// trusted input.
type Fuel struct {
	remaining int
	initial   int
}

// NewFuel returns a budget of n steps.
func NewFuel(n int) *Fuel {
	return &Fuel{remaining: n, initial: n}
}

// FuelExceeded is panicked by Consume once the budget is spent. Callers at
// an API boundary (eval.Evaluator.Evaluate, typecheck.Inferencer.TypeOf)
// recover it and turn it into dhallerr.StepBudgetExceeded.
type FuelExceeded struct {
	Expr   Expr
	Budget int
}

// Consume spends one step of f's budget, attributing it to e should the
// budget run out. It is a no-op on a nil *Fuel.
func (f *Fuel) Consume(e Expr) {
	if f == nil {
		return
	}
	f.remaining--
	if f.remaining < 0 {
		panic(FuelExceeded{Expr: e, Budget: f.initial})
	}
}
