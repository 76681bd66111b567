package game

import (
	"fmt"
	"strings"
)

// Holdings is a comparable snapshot of what a player can pay with. Cost
// assignments are enumerated against it so that payability never depends on
// the order cards or goods were acquired in.
type Holdings struct {
	Goods     [NumKinds]int
	Cards     [NumArtifacts]int
	Knowledge int
	Morale    int
	Members   uint8 // bitset of allegiances with an active recruit
	Wild      ArtifactSet
}

func (h Holdings) IsMember(a Allegiance) bool {
	return h.Members&(1<<a) != 0
}

func (h Holdings) CardTotal() int {
	n := 0
	for _, c := range h.Cards {
		n += c
	}
	return n
}

// covers reports whether p can be taken out of h.
func (h Holdings) covers(p Payment) bool {
	for k, n := range p.Goods {
		if n > h.Goods[k] {
			return false
		}
	}
	for a, n := range p.Cards {
		if n > h.Cards[a] {
			return false
		}
	}
	return h.Knowledge+p.Knowledge <= MaxTrack && h.Morale-p.Morale >= MinTrack
}

func (h Holdings) minus(p Payment) Holdings {
	for k, n := range p.Goods {
		h.Goods[k] -= n
	}
	for a, n := range p.Cards {
		h.Cards[a] -= n
	}
	h.Knowledge += p.Knowledge
	h.Morale -= p.Morale
	return h
}

// Payment is one concrete way of paying a cost: units of goods and cards
// removed, knowledge raised and morale lowered.
type Payment struct {
	Goods     [NumKinds]int
	Cards     [NumArtifacts]int
	Knowledge int
	Morale    int
}

func (p Payment) plus(q Payment) Payment {
	for k := range p.Goods {
		p.Goods[k] += q.Goods[k]
	}
	for a := range p.Cards {
		p.Cards[a] += q.Cards[a]
	}
	p.Knowledge += q.Knowledge
	p.Morale += q.Morale
	return p
}

func (p Payment) minus(q Payment) Payment {
	for k := range p.Goods {
		p.Goods[k] -= q.Goods[k]
	}
	for a := range p.Cards {
		p.Cards[a] -= q.Cards[a]
	}
	p.Knowledge -= q.Knowledge
	p.Morale -= q.Morale
	return p
}

// within reports whether every component of p is at most that of q.
func (p Payment) within(q Payment) bool {
	for k := range p.Goods {
		if p.Goods[k] > q.Goods[k] {
			return false
		}
	}
	for a := range p.Cards {
		if p.Cards[a] > q.Cards[a] {
			return false
		}
	}
	return p.Knowledge <= q.Knowledge && p.Morale <= q.Morale
}

func (p Payment) IsZero() bool {
	return p == Payment{}
}

func (p Payment) CardTotal() int {
	n := 0
	for _, c := range p.Cards {
		n += c
	}
	return n
}

func (p Payment) String() string {
	var parts []string
	for k, n := range p.Goods {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, Kind(k)))
		}
	}
	for a, n := range p.Cards {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, Artifact(a)))
		}
	}
	if p.Knowledge > 0 {
		parts = append(parts, fmt.Sprintf("+%d knowledge", p.Knowledge))
	}
	if p.Morale > 0 {
		parts = append(parts, fmt.Sprintf("-%d morale", p.Morale))
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// lessPayment orders payments lexicographically so enumeration results are
// independent of the order alternatives were visited in.
func lessPayment(p, q Payment) bool {
	for k := range p.Goods {
		if p.Goods[k] != q.Goods[k] {
			return p.Goods[k] < q.Goods[k]
		}
	}
	for a := range p.Cards {
		if p.Cards[a] != q.Cards[a] {
			return p.Cards[a] < q.Cards[a]
		}
	}
	if p.Knowledge != q.Knowledge {
		return p.Knowledge < q.Knowledge
	}
	return p.Morale < q.Morale
}

// Grant is one concrete outcome of collecting a benefit.
type Grant struct {
	Goods     [NumKinds]int
	Cards     int
	Knowledge int
	Morale    int
	Influence [NumAllegiances]int
	Authority int
	Workers   int
	Recruits  int
}

func (g Grant) plus(o Grant) Grant {
	for k := range g.Goods {
		g.Goods[k] += o.Goods[k]
	}
	for a := range g.Influence {
		g.Influence[a] += o.Influence[a]
	}
	g.Cards += o.Cards
	g.Knowledge += o.Knowledge
	g.Morale += o.Morale
	g.Authority += o.Authority
	g.Workers += o.Workers
	g.Recruits += o.Recruits
	return g
}

func (g Grant) minus(o Grant) Grant {
	for k := range g.Goods {
		g.Goods[k] -= o.Goods[k]
	}
	for a := range g.Influence {
		g.Influence[a] -= o.Influence[a]
	}
	g.Cards -= o.Cards
	g.Knowledge -= o.Knowledge
	g.Morale -= o.Morale
	g.Authority -= o.Authority
	g.Workers -= o.Workers
	g.Recruits -= o.Recruits
	return g
}

// within compares only the parts a player picks: goods, cards and positive
// track steps.
func (g Grant) within(o Grant) bool {
	for k := range g.Goods {
		if g.Goods[k] > o.Goods[k] {
			return false
		}
	}
	if g.Cards > o.Cards {
		return false
	}
	if g.Knowledge > 0 && g.Knowledge > o.Knowledge {
		return false
	}
	return g.Morale <= 0 || g.Morale <= o.Morale
}

// selectable is the part of a grant a player assembles unit by unit.
func (g Grant) selectable() Grant {
	var s Grant
	s.Goods = g.Goods
	s.Cards = g.Cards
	if g.Knowledge > 0 {
		s.Knowledge = g.Knowledge
	}
	if g.Morale > 0 {
		s.Morale = g.Morale
	}
	return s
}

func (g Grant) IsZero() bool {
	return g == Grant{}
}

func (g Grant) String() string {
	var parts []string
	for k, n := range g.Goods {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, Kind(k)))
		}
	}
	if g.Cards > 0 {
		parts = append(parts, fmt.Sprintf("%d card", g.Cards))
	}
	if g.Knowledge != 0 {
		parts = append(parts, fmt.Sprintf("%+d knowledge", g.Knowledge))
	}
	if g.Morale != 0 {
		parts = append(parts, fmt.Sprintf("%+d morale", g.Morale))
	}
	for a, n := range g.Influence {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s influence", n, Allegiance(a)))
		}
	}
	if g.Authority > 0 {
		parts = append(parts, "authority")
	}
	if g.Workers > 0 {
		parts = append(parts, "worker")
	}
	if g.Recruits > 0 {
		parts = append(parts, "recruit")
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

func lessGrant(g, o Grant) bool {
	for k := range g.Goods {
		if g.Goods[k] != o.Goods[k] {
			return g.Goods[k] < o.Goods[k]
		}
	}
	if g.Cards != o.Cards {
		return g.Cards < o.Cards
	}
	if g.Knowledge != o.Knowledge {
		return g.Knowledge < o.Knowledge
	}
	if g.Morale != o.Morale {
		return g.Morale < o.Morale
	}
	for a := range g.Influence {
		if g.Influence[a] != o.Influence[a] {
			return g.Influence[a] < o.Influence[a]
		}
	}
	if g.Authority != o.Authority {
		return g.Authority < o.Authority
	}
	if g.Workers != o.Workers {
		return g.Workers < o.Workers
	}
	return g.Recruits < o.Recruits
}
