package game

import (
	"fmt"
	"strings"
)

// Cost is a closed union of payment expressions. Values are immutable:
// board lookups and hook rewrites always build new values.
type Cost interface {
	fmt.Stringer
	cost()
}

// Free costs nothing.
type Free struct{}

// Closed can never be paid.
type Closed struct{}

// Pay is exactly N units of Kind.
type Pay struct {
	Kind Kind
	N    int
}

// Mix is N units drawn from any kinds in Of. With UpTo set the payer gives
// as many as they hold, at most N.
type Mix struct {
	Of   KindSet
	N    int
	UpTo bool
	Via  string // hook that widened a single kind into this mix
}

// Cards is N artifact cards of any type.
type Cards struct {
	N int
}

// CardOf is one artifact card of type Of.
type CardOf struct {
	Of Artifact
}

// Pair is two matching artifact cards.
type Pair struct{}

// RaiseKnowledge is paid by moving the knowledge track up.
type RaiseKnowledge struct {
	N int
}

// LowerMorale is paid by moving the morale track down.
type LowerMorale struct {
	N int
}

// Then pays Fixed first and only then resolves Rest.
type Then struct {
	Fixed Cost
	Rest  Cost
}

// Or is an exclusive choice between alternatives.
type Or struct {
	Alts []Cost
}

// Member is free for players with an active recruit of allegiance Of,
// otherwise it costs Else. A nil Else is closed.
type Member struct {
	Of   Allegiance
	Else Cost
}

func (Free) cost()           {}
func (Closed) cost()         {}
func (Pay) cost()            {}
func (Mix) cost()            {}
func (Cards) cost()          {}
func (CardOf) cost()         {}
func (Pair) cost()           {}
func (RaiseKnowledge) cost() {}
func (LowerMorale) cost()    {}
func (Then) cost()           {}
func (Or) cost()             {}
func (Member) cost()         {}

func (Free) String() string   { return "free" }
func (Closed) String() string { return "closed" }
func (c Pay) String() string  { return fmt.Sprintf("%d %s", c.N, c.Kind) }
func (c Mix) String() string {
	if c.UpTo {
		return fmt.Sprintf("up to %d %s", c.N, c.Of)
	}
	return fmt.Sprintf("%d %s", c.N, c.Of)
}
func (c Cards) String() string          { return fmt.Sprintf("%d cards", c.N) }
func (c CardOf) String() string         { return "1 " + c.Of.String() }
func (Pair) String() string             { return "pair" }
func (c RaiseKnowledge) String() string { return fmt.Sprintf("+%d knowledge", c.N) }
func (c LowerMorale) String() string    { return fmt.Sprintf("-%d morale", c.N) }
func (c Then) String() string           { return fmt.Sprintf("(%s then %s)", c.Fixed, c.Rest) }
func (c Or) String() string {
	names := make([]string, len(c.Alts))
	for i, alt := range c.Alts {
		names[i] = alt.String()
	}
	return "(" + strings.Join(names, " or ") + ")"
}
func (c Member) String() string {
	return fmt.Sprintf("(%s member else %s)", c.Of, c.orElse())
}

func (c Member) orElse() Cost {
	if c.Else == nil {
		return Closed{}
	}
	return c.Else
}

// MapCost rewrites c bottom-up: children first, then the node itself.
// Nested alternatives produced by a rewrite are flattened.
func MapCost(c Cost, f func(Cost) Cost) Cost {
	switch c := c.(type) {
	case Then:
		return flatten(f(Then{Fixed: MapCost(c.Fixed, f), Rest: MapCost(c.Rest, f)}))
	case Or:
		alts := make([]Cost, len(c.Alts))
		for i, alt := range c.Alts {
			alts[i] = MapCost(alt, f)
		}
		return flatten(f(flattenOr(alts)))
	case Member:
		return flatten(f(Member{Of: c.Of, Else: MapCost(c.orElse(), f)}))
	}
	return flatten(f(c))
}

func flatten(c Cost) Cost {
	if or, ok := c.(Or); ok {
		return flattenOr(or.Alts)
	}
	return c
}

func flattenOr(alts []Cost) Cost {
	flat := make([]Cost, 0, len(alts))
	for _, alt := range alts {
		if or, ok := alt.(Or); ok {
			flat = append(flat, flattenOr(or.Alts).(Or).Alts...)
			continue
		}
		flat = append(flat, alt)
	}
	return Or{Alts: flat}
}

// ContainsCost reports whether any node of c satisfies match.
func ContainsCost(c Cost, match func(Cost) bool) bool {
	if match(c) {
		return true
	}
	switch c := c.(type) {
	case Then:
		return ContainsCost(c.Fixed, match) || ContainsCost(c.Rest, match)
	case Or:
		for _, alt := range c.Alts {
			if ContainsCost(alt, match) {
				return true
			}
		}
	case Member:
		return ContainsCost(c.orElse(), match)
	}
	return false
}
