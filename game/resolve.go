package game

import "sort"

// Outcome is the three-way result of resolving a cost or collecting a
// benefit.
type Outcome int

const (
	Paid Outcome = iota
	Residual
	Impossible
)

// Granted is the benefit-side name for Paid.
const Granted = Paid

func (o Outcome) String() string {
	switch o {
	case Paid:
		return "paid"
	case Residual:
		return "residual"
	}
	return "impossible"
}

// Resolution reports what was settled automatically and what remains.
type Resolution struct {
	Outcome Outcome
	Cost    Cost    // remaining cost when Residual
	Benefit Benefit // remaining benefit when Residual
	Paid    Payment // settled automatically, even when Residual
}

// Assignments enumerates every distinct way h can pay c, sorted. The result
// never depends on the order alternatives are listed in.
func Assignments(h Holdings, c Cost) []Payment {
	seen := make(map[Payment]struct{})
	enumerate(h, c, Payment{}, func(p Payment) {
		seen[p] = struct{}{}
	})
	out := make([]Payment, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return lessPayment(out[i], out[j]) })
	return out
}

// CanPay is total and never mutates anything. It agrees with Resolve by
// construction: Resolve only reports Impossible when no assignment exists.
func CanPay(h Holdings, c Cost) bool {
	found := false
	enumerate(h, c, Payment{}, func(Payment) { found = true })
	return found
}

// enumerate calls emit with acc plus each way of paying c out of h.
func enumerate(h Holdings, c Cost, acc Payment, emit func(Payment)) {
	switch c := c.(type) {
	case Free:
		emit(acc)
	case Closed:
	case Pay:
		var p Payment
		p.Goods[c.Kind] = c.N
		if h.covers(p) {
			emit(acc.plus(p))
		}
	case Mix:
		n := c.N
		if c.UpTo {
			held := 0
			for _, k := range c.Of.Kinds() {
				held += h.Goods[k]
			}
			n = min(n, held)
		}
		spread(c.Of.Kinds(), n, func(k Kind) int { return h.Goods[k] }, func(counts []int, kinds []Kind) {
			var p Payment
			for i, k := range kinds {
				p.Goods[k] = counts[i]
			}
			emit(acc.plus(p))
		})
	case Cards:
		types := make([]Artifact, 0, NumArtifacts)
		for a := Book; a < NumArtifacts; a++ {
			types = append(types, a)
		}
		spread(types, c.N, func(a Artifact) int { return h.Cards[a] }, func(counts []int, types []Artifact) {
			var p Payment
			for i, a := range types {
				p.Cards[a] = counts[i]
			}
			emit(acc.plus(p))
		})
	case CardOf:
		var p Payment
		p.Cards[c.Of] = 1
		if h.covers(p) {
			emit(acc.plus(p))
		}
	case Pair:
		for a := Book; a < NumArtifacts; a++ {
			if h.Cards[a] >= 2 {
				var p Payment
				p.Cards[a] = 2
				emit(acc.plus(p))
			}
			if !h.Wild.Has(a) || h.Cards[a] == 0 {
				continue
			}
			for b := Book; b < NumArtifacts; b++ {
				if b != a && h.Cards[b] > 0 {
					var p Payment
					p.Cards[a], p.Cards[b] = 1, 1
					emit(acc.plus(p))
				}
			}
		}
	case RaiseKnowledge:
		p := Payment{Knowledge: c.N}
		if h.covers(p) {
			emit(acc.plus(p))
		}
	case LowerMorale:
		p := Payment{Morale: c.N}
		if h.covers(p) {
			emit(acc.plus(p))
		}
	case Then:
		enumerate(h, c.Fixed, Payment{}, func(fixed Payment) {
			enumerate(h.minus(fixed), c.Rest, acc.plus(fixed), emit)
		})
	case Or:
		for _, alt := range c.Alts {
			enumerate(h, alt, acc, emit)
		}
	case Member:
		if h.IsMember(c.Of) {
			emit(acc)
			return
		}
		enumerate(h, c.orElse(), acc, emit)
	}
}

// spread emits every way of splitting n units over items, each bounded by
// limit.
func spread[T any](items []T, n int, limit func(T) int, emit func([]int, []T)) {
	counts := make([]int, len(items))
	var rec func(i, left int)
	rec = func(i, left int) {
		if i == len(items) {
			if left == 0 {
				emit(counts, items)
			}
			return
		}
		for take := min(left, limit(items[i])); take >= 0; take-- {
			counts[i] = take
			rec(i+1, left-take)
		}
		counts[i] = 0
	}
	rec(0, n)
}

// Resolve pays whatever part of c is forced and reports the remainder. The
// fixed part of a Then is always settled before the rest is looked at, so a
// Residual never asks for something already paid.
func (gs *GameState) Resolve(player int, c Cost, ctx Context) Resolution {
	h := gs.holdings(player, ctx)
	assignments := Assignments(h, c)
	if len(assignments) == 0 {
		return Resolution{Outcome: Impossible}
	}
	if len(assignments) == 1 && autoPayable(gs.Revision, c, h) {
		gs.settle(player, c, assignments[0], ctx)
		return Resolution{Outcome: Paid, Paid: assignments[0]}
	}

	switch c := c.(type) {
	case Then:
		fixed := gs.Resolve(player, c.Fixed, ctx)
		switch fixed.Outcome {
		case Paid:
			rest := gs.Resolve(player, c.Rest, ctx)
			if rest.Outcome == Impossible {
				gs.fatal("remainder %s unpayable after fixed part %s", c.Rest, c.Fixed)
			}
			rest.Paid = fixed.Paid.plus(rest.Paid)
			return rest
		case Residual:
			return Resolution{Outcome: Residual, Cost: Then{Fixed: fixed.Cost, Rest: c.Rest}, Paid: fixed.Paid}
		}
		gs.fatal("fixed part %s unpayable in payable cost %s", c.Fixed, c)
	case Or:
		var payable []Cost
		for _, alt := range c.Alts {
			if CanPay(h, alt) {
				payable = append(payable, alt)
			}
		}
		if len(payable) == 1 {
			return gs.Resolve(player, payable[0], ctx)
		}
		return Resolution{Outcome: Residual, Cost: Or{Alts: payable}}
	case Member:
		if !h.IsMember(c.Of) {
			return gs.Resolve(player, c.orElse(), ctx)
		}
	}
	return Resolution{Outcome: Residual, Cost: c}
}

// CanPay checks c against the player's holdings, including wildcards granted
// by their recruits.
func (gs *GameState) CanPay(player int, c Cost, ctx Context) bool {
	return CanPay(gs.holdings(player, ctx), c)
}

func (gs *GameState) holdings(player int, ctx Context) Holdings {
	return gs.Players[player].Holdings(gs.wildcards(player, ctx))
}

// settle removes p, an assignment of c, from the ledger and fires the
// after-payment hooks.
func (gs *GameState) settle(player int, c Cost, p Payment, ctx Context) {
	l := &gs.Players[player]
	ctx.Held = gs.holdings(player, ctx)
	if err := l.Pay(p); err != nil {
		gs.fatal("settling %s for player %d: %v", p, player, err)
	}
	for k, n := range p.Goods {
		l.Flags.Gained[k] -= n
	}
	for a, n := range p.Cards {
		for i := 0; i < n; i++ {
			gs.Discard = append(gs.Discard, Artifact(a))
		}
	}
	if !p.IsZero() {
		gs.Committed = true
	}
	ctx.Paid = p
	ctx.Settled = c
	gs.markRelied(player, ctx)
	gs.schedule(player, AfterPayment, ctx)
}
