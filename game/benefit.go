package game

import (
	"fmt"
	"sort"
	"strings"
)

// Benefit is a closed union of gain expressions.
type Benefit interface {
	fmt.Stringer
	benefit()
}

// Upgradable benefits carry a derived benefit that hooks may substitute.
type Upgradable interface {
	Benefit
	Upgraded() Benefit
}

type Nothing struct{}

// Gain is exactly N units of Kind.
type Gain struct {
	Kind Kind
	N    int
}

// Draw is N artifact cards from the deck.
type Draw struct {
	N int
}

// Choose is N units split freely over the kinds in Of.
type Choose struct {
	Of KindSet
	N  int
}

// Produce is the output of a production cell for allegiance Of.
type Produce struct {
	Kind Kind
	Of   Allegiance
	N    int
}

// CardOr is one card or one unit of Kind.
type CardOr struct {
	Kind Kind
	Of   Allegiance
}

// CardAnd is one card and one unit of Kind.
type CardAnd struct {
	Kind Kind
}

// Influence advances the allegiance track Of.
type Influence struct {
	Of Allegiance
	N  int
}

// Authority places one of the player's authority tokens.
type Authority struct {
	Of Allegiance
}

// NewWorker adds a worker and shifts the tracks.
type NewWorker struct {
	Knowledge int
	Morale    int
}

// Shift moves the knowledge and morale tracks.
type Shift struct {
	Knowledge int
	Morale    int
}

// Reveal activates the player's hidden recruit.
type Reveal struct{}

// All grants every part, in order.
type All struct {
	Parts []Benefit
}

// OneOf grants exactly one alternative.
type OneOf struct {
	Alts []Benefit
}

func (Nothing) benefit()   {}
func (Gain) benefit()      {}
func (Draw) benefit()      {}
func (Choose) benefit()    {}
func (Produce) benefit()   {}
func (CardOr) benefit()    {}
func (CardAnd) benefit()   {}
func (Influence) benefit() {}
func (Authority) benefit() {}
func (NewWorker) benefit() {}
func (Shift) benefit()     {}
func (Reveal) benefit()    {}
func (All) benefit()       {}
func (OneOf) benefit()     {}

func (c CardOr) Upgraded() Benefit { return CardAnd{Kind: c.Kind} }

func (Nothing) String() string     { return "nothing" }
func (b Gain) String() string      { return fmt.Sprintf("%d %s", b.N, b.Kind) }
func (b Draw) String() string      { return fmt.Sprintf("draw %d", b.N) }
func (b Choose) String() string    { return fmt.Sprintf("choose %d %s", b.N, b.Of) }
func (b Produce) String() string   { return fmt.Sprintf("produce %d %s", b.N, b.Kind) }
func (b CardOr) String() string    { return fmt.Sprintf("card or %s", b.Kind) }
func (b CardAnd) String() string   { return fmt.Sprintf("card and %s", b.Kind) }
func (b Influence) String() string { return fmt.Sprintf("%d %s influence", b.N, b.Of) }
func (b Authority) String() string { return fmt.Sprintf("%s authority", b.Of) }
func (b NewWorker) String() string {
	return fmt.Sprintf("worker %+d knowledge %+d morale", b.Knowledge, b.Morale)
}
func (b Shift) String() string {
	return fmt.Sprintf("%+d knowledge %+d morale", b.Knowledge, b.Morale)
}
func (Reveal) String() string  { return "reveal recruit" }
func (b All) String() string   { return joinBenefits(b.Parts, " and ") }
func (b OneOf) String() string { return joinBenefits(b.Alts, " or ") }

func joinBenefits(bs []Benefit, sep string) string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.String()
	}
	return "(" + strings.Join(names, sep) + ")"
}

// MapBenefit rewrites b bottom-up.
func MapBenefit(b Benefit, f func(Benefit) Benefit) Benefit {
	switch b := b.(type) {
	case All:
		parts := make([]Benefit, len(b.Parts))
		for i, part := range b.Parts {
			parts[i] = MapBenefit(part, f)
		}
		return f(All{Parts: parts})
	case OneOf:
		alts := make([]Benefit, len(b.Alts))
		for i, alt := range b.Alts {
			alts[i] = MapBenefit(alt, f)
		}
		return f(OneOf{Alts: alts})
	}
	return f(b)
}

// ContainsBenefit reports whether any node of b satisfies match.
func ContainsBenefit(b Benefit, match func(Benefit) bool) bool {
	if match(b) {
		return true
	}
	var children []Benefit
	switch b := b.(type) {
	case All:
		children = b.Parts
	case OneOf:
		children = b.Alts
	}
	for _, child := range children {
		if ContainsBenefit(child, match) {
			return true
		}
	}
	return false
}

// GrantOptions enumerates the distinct grants b can produce, sorted.
func GrantOptions(b Benefit) []Grant {
	seen := make(map[Grant]struct{})
	for _, g := range options(b) {
		seen[g] = struct{}{}
	}
	out := make([]Grant, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return lessGrant(out[i], out[j]) })
	return out
}

func options(b Benefit) []Grant {
	var g Grant
	switch b := b.(type) {
	case Nothing:
	case Gain:
		g.Goods[b.Kind] = b.N
	case Produce:
		g.Goods[b.Kind] = b.N
	case Draw:
		g.Cards = b.N
	case Choose:
		var out []Grant
		spread(b.Of.Kinds(), b.N, func(Kind) int { return b.N }, func(counts []int, kinds []Kind) {
			var g Grant
			for i, k := range kinds {
				g.Goods[k] = counts[i]
			}
			out = append(out, g)
		})
		return out
	case CardOr:
		card := Grant{Cards: 1}
		var good Grant
		good.Goods[b.Kind] = 1
		return []Grant{card, good}
	case CardAnd:
		g.Cards = 1
		g.Goods[b.Kind] = 1
	case Influence:
		g.Influence[b.Of] = b.N
	case Authority:
		g.Authority = 1
	case NewWorker:
		g.Workers = 1
		g.Knowledge = b.Knowledge
		g.Morale = b.Morale
	case Shift:
		g.Knowledge = b.Knowledge
		g.Morale = b.Morale
	case Reveal:
		g.Recruits = 1
	case All:
		out := []Grant{{}}
		for _, part := range b.Parts {
			var next []Grant
			for _, acc := range out {
				for _, o := range options(part) {
					next = append(next, acc.plus(o))
				}
			}
			out = next
		}
		return out
	case OneOf:
		var out []Grant
		for _, alt := range b.Alts {
			out = append(out, options(alt)...)
		}
		return out
	}
	return []Grant{g}
}
