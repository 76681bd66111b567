package game

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"maps"
	"slices"
)

// Digest covers everything that influences future play, including the
// generator state and the order of the deck. Two instances that received
// the same intents from the same seed have equal digests.
func (gs *GameState) Digest() uint64 {
	h := fnv.New64a()
	gs.write(h, -1, true)
	return h.Sum64()
}

// DigestFor covers what player can see: generator state, deck order and
// other players' hidden recruits are left out. A negative player sees only
// public information.
func (gs *GameState) DigestFor(player int) uint64 {
	h := fnv.New64a()
	gs.write(h, player, false)
	return h.Sum64()
}

// Hash identifies transpositions for search.
func (gs *GameState) Hash() StateHash {
	return StateHash(gs.DigestFor(gs.Current))
}

func (gs *GameState) write(h hash.Hash64, viewer int, full bool) {
	d := digester{h}
	d.int(int(gs.Phase))
	d.int(gs.Turn)
	d.int(gs.Current)
	d.int(gs.Turns)
	d.int(gs.Revision)
	for _, n := range gs.Influence {
		d.int(n)
	}

	for i := range gs.Players {
		d.ledger(&gs.Players[i], full || i == viewer)
	}

	for cell, workers := range gs.Workers {
		sorted := slices.Clone(workers)
		slices.SortFunc(sorted, func(a, b Worker) int {
			if a.Owner != b.Owner {
				return a.Owner - b.Owner
			}
			return a.Pips - b.Pips
		})
		d.int(len(sorted))
		for _, w := range sorted {
			d.int(w.Owner)
			d.int(w.Pips)
		}
		d.int(int(gs.Stars[cell]))
		d.int(gs.MarketPenalty[cell])
	}

	d.int(len(gs.Stack))
	for i := range gs.Stack {
		d.frame(&gs.Stack[i])
	}

	d.location(gs.Picked)
	d.int(int(gs.PendingCell))
	selection := slices.Clone(gs.Selection)
	slices.SortFunc(selection, func(a, b Location) int {
		if a.Cell != b.Cell {
			return int(a.Cell - b.Cell)
		}
		return a.Pips - b.Pips
	})
	d.int(len(selection))
	for _, l := range selection {
		d.location(l)
	}
	d.payment(gs.Tender)
	d.grant(gs.Chosen)
	d.bool(gs.Acted)
	d.bool(gs.Committed)

	if full {
		d.write(gs.Rng.Seed)
		d.write(gs.Rng.Draws)
		d.int(len(gs.Deck))
		for _, a := range gs.Deck {
			d.int(int(a))
		}
		d.int(len(gs.Discard))
		for _, a := range gs.Discard {
			d.int(int(a))
		}
		d.bool(gs.Checkpoint != nil)
		if gs.Checkpoint != nil {
			d.write(gs.Checkpoint.Digest())
		}
	} else {
		d.int(len(gs.Deck))
		d.cards(gs.Discard)
	}
}

// digester writes fixed-size little-endian values so digests agree across
// platforms.
type digester struct {
	h hash.Hash64
}

func (d digester) write(v any) {
	binary.Write(d.h, binary.LittleEndian, v)
}

func (d digester) int(n int) {
	d.write(int64(n))
}

func (d digester) bool(b bool) {
	d.write(b)
}

func (d digester) string(s string) {
	d.int(len(s))
	d.h.Write([]byte(s))
}

func (d digester) cards(cards []Artifact) {
	var counts [NumArtifacts]int
	for _, a := range cards {
		counts[a]++
	}
	for _, n := range counts {
		d.int(n)
	}
}

func (d digester) recruits(rs []Recruit) {
	sorted := slices.Clone(rs)
	slices.Sort(sorted)
	d.int(len(sorted))
	for _, r := range sorted {
		d.int(int(r))
	}
}

func (d digester) ledger(l *Ledger, visible bool) {
	for _, n := range l.Goods {
		d.int(n)
	}
	d.cards(l.Cards)
	d.int(l.Knowledge)
	d.int(l.Morale)
	d.int(l.Authority)
	d.int(len(l.Hand))
	for _, pips := range l.Hand {
		d.int(pips)
	}
	d.int(l.Workers)
	d.recruits(l.Active)
	if visible {
		d.recruits(l.Hidden)
	} else {
		d.int(len(l.Hidden))
	}
	for _, name := range slices.Sorted(maps.Keys(l.Flags.Used)) {
		if l.Flags.Used[name] {
			d.string(name)
		}
	}
	for _, n := range l.Flags.Gained {
		d.int(n)
	}
	d.int(l.Flags.CardsGained)
	d.bool(l.Flags.WorkerGained)
	d.bool(l.Flags.WorkerLost)
	d.int(l.TieBreak)
	d.int(int(l.Dilemma))
	d.bool(l.DilemmaResolved)
}

func (d digester) frame(f *Frame) {
	d.int(int(f.Step))
	d.int(int(f.Cell))
	d.cost(f.Cost)
	d.cost(f.Original)
	d.benefit(f.Benefit)
	d.int(f.Actor)
	d.int(f.Responder)
	d.int(int(f.ResumePhase))
	d.int(int(f.ReturnPhase))
	d.bool(f.Suspended)
	d.int(int(f.OnPaid))
	d.int(int(f.OnDecline))
	d.int(int(f.Action))
	d.string(f.Ability)
	d.int(f.Amount)
}

// cost digests c node by node: a tag per node type, then its fields.
// Texts are not enough, different costs can print alike.
func (d digester) cost(c Cost) {
	switch c := c.(type) {
	case nil:
		d.int(0)
	case Free:
		d.int(1)
	case Closed:
		d.int(2)
	case Pay:
		d.int(3)
		d.int(int(c.Kind))
		d.int(c.N)
	case Mix:
		d.int(4)
		d.int(int(c.Of))
		d.int(c.N)
		d.bool(c.UpTo)
		d.string(c.Via)
	case Cards:
		d.int(5)
		d.int(c.N)
	case CardOf:
		d.int(6)
		d.int(int(c.Of))
	case Pair:
		d.int(7)
	case RaiseKnowledge:
		d.int(8)
		d.int(c.N)
	case LowerMorale:
		d.int(9)
		d.int(c.N)
	case Then:
		d.int(10)
		d.cost(c.Fixed)
		d.cost(c.Rest)
	case Or:
		d.int(11)
		d.int(len(c.Alts))
		for _, alt := range c.Alts {
			d.cost(alt)
		}
	case Member:
		d.int(12)
		d.int(int(c.Of))
		d.cost(c.Else)
	default:
		panic(fmt.Sprintf("digest: unexpected cost %T", c))
	}
}

func (d digester) benefit(b Benefit) {
	switch b := b.(type) {
	case nil:
		d.int(0)
	case Nothing:
		d.int(1)
	case Gain:
		d.int(2)
		d.int(int(b.Kind))
		d.int(b.N)
	case Draw:
		d.int(3)
		d.int(b.N)
	case Choose:
		d.int(4)
		d.int(int(b.Of))
		d.int(b.N)
	case Produce:
		d.int(5)
		d.int(int(b.Kind))
		d.int(int(b.Of))
		d.int(b.N)
	case CardOr:
		d.int(6)
		d.int(int(b.Kind))
		d.int(int(b.Of))
	case CardAnd:
		d.int(7)
		d.int(int(b.Kind))
	case Influence:
		d.int(8)
		d.int(int(b.Of))
		d.int(b.N)
	case Authority:
		d.int(9)
		d.int(int(b.Of))
	case NewWorker:
		d.int(10)
		d.int(b.Knowledge)
		d.int(b.Morale)
	case Shift:
		d.int(11)
		d.int(b.Knowledge)
		d.int(b.Morale)
	case Reveal:
		d.int(12)
	case All:
		d.int(13)
		d.int(len(b.Parts))
		for _, part := range b.Parts {
			d.benefit(part)
		}
	case OneOf:
		d.int(14)
		d.int(len(b.Alts))
		for _, alt := range b.Alts {
			d.benefit(alt)
		}
	default:
		panic(fmt.Sprintf("digest: unexpected benefit %T", b))
	}
}

func (d digester) location(l Location) {
	d.int(int(l.Where))
	d.int(int(l.Cell))
	d.int(l.Pips)
	d.int(int(l.Kind))
	d.int(int(l.Card))
	d.int(int(l.Track))
	d.int(int(l.Recruit))
}

func (d digester) payment(p Payment) {
	for _, n := range p.Goods {
		d.int(n)
	}
	for _, n := range p.Cards {
		d.int(n)
	}
	d.int(p.Knowledge)
	d.int(p.Morale)
}

func (d digester) grant(g Grant) {
	for _, n := range g.Goods {
		d.int(n)
	}
	d.int(g.Cards)
	d.int(g.Knowledge)
	d.int(g.Morale)
	for _, n := range g.Influence {
		d.int(n)
	}
	d.int(g.Authority)
	d.int(g.Workers)
	d.int(g.Recruits)
}
