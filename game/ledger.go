package game

import (
	"sort"

	"euphoria/utils"
)

// Track bounds shared by knowledge and morale.
const (
	MinTrack = 1
	MaxTrack = 6
)

// TurnFlags is reset at the start of every turn.
type TurnFlags struct {
	Used         map[string]bool // once-per-turn hooks already fired
	Gained       [NumKinds]int   // net units gained per kind
	CardsGained  int
	WorkerGained bool
	WorkerLost   bool
}

// GainedGoods is the net number of goods gained this turn.
func (f TurnFlags) GainedGoods() int {
	n := 0
	for _, g := range f.Gained {
		n += g
	}
	return n
}

func (f TurnFlags) copy() TurnFlags {
	used := make(map[string]bool, len(f.Used))
	for k, v := range f.Used {
		used[k] = v
	}
	f.Used = used
	return f
}

// Ledger is a player's holdings. It has no rule knowledge: callers pass in
// requests that hooks have already rewritten.
type Ledger struct {
	Goods     [NumKinds]int
	Cards     []Artifact
	Knowledge int
	Morale    int
	Authority int   // authority tokens not yet placed
	Hand      []int // worker dice available to place
	Workers   int   // workers owned, in hand or on the board
	Active    []Recruit
	Hidden    []Recruit
	Flags     TurnFlags
	TieBreak  int

	// Dilemma is the artifact type that settles the player's ethical
	// dilemma on its own; any two cards also do.
	Dilemma         Artifact
	DilemmaResolved bool
}

func NewLedger(authority int) Ledger {
	return Ledger{
		Knowledge: 3,
		Morale:    1,
		Authority: authority,
		Flags:     TurnFlags{Used: map[string]bool{}},
	}
}

func (l *Ledger) Add(kind Kind, n int) {
	l.Goods[kind] += n
}

// Remove takes all n units or none.
func (l *Ledger) Remove(kind Kind, n int) error {
	if n > l.Goods[kind] {
		return ErrInsufficientResource
	}
	l.Goods[kind] -= n
	return nil
}

func (l *Ledger) Count(kind Kind) int {
	return l.Goods[kind]
}

// CountIn totals the units held of every kind in set.
func (l *Ledger) CountIn(set KindSet) int {
	n := 0
	for _, k := range set.Kinds() {
		n += l.Goods[k]
	}
	return n
}

// CountDistinctKinds counts the kinds in set with at least one unit held.
func (l *Ledger) CountDistinctKinds(set KindSet) int {
	n := 0
	for _, k := range set.Kinds() {
		if l.Goods[k] > 0 {
			n++
		}
	}
	return n
}

func (l *Ledger) AddCard(a Artifact) {
	l.Cards = append(l.Cards, a)
}

func (l *Ledger) RemoveCard(a Artifact) error {
	for i, c := range l.Cards {
		if c == a {
			l.Cards = append(l.Cards[:i], l.Cards[i+1:]...)
			return nil
		}
	}
	return ErrInsufficientResource
}

func (l *Ledger) CardCount() int {
	return len(l.Cards)
}

func (l *Ledger) CardCounts() [NumArtifacts]int {
	var counts [NumArtifacts]int
	for _, c := range l.Cards {
		counts[c]++
	}
	return counts
}

// HasPair reports whether two held cards match, counting any card whose type
// is in wild as matching every other card.
func (l *Ledger) HasPair(wild ArtifactSet) bool {
	counts := l.CardCounts()
	wilds := 0
	for a, n := range counts {
		if n >= 2 {
			return true
		}
		if wild.Has(Artifact(a)) {
			wilds += n
		}
	}
	return wilds > 0 && len(l.Cards) >= 2
}

// MatchingIndex returns the position of a held card matching card by
// identity or wildcard. Several positions holding the same type are one
// distinct match; several types are ambiguous.
func (l *Ledger) MatchingIndex(card Artifact, wild ArtifactSet) (int, error) {
	index := -1
	var matched ArtifactSet
	distinct := 0
	for i, c := range l.Cards {
		if c != card && !wild.Has(c) && !wild.Has(card) {
			continue
		}
		if matched.Has(c) {
			continue
		}
		matched = matched.Add(c)
		distinct++
		if index < 0 {
			index = i
		}
	}
	switch {
	case distinct == 0:
		return -1, ErrNoMatch
	case distinct > 1:
		return -1, ErrAmbiguous
	}
	return index, nil
}

// RaiseKnowledge moves the knowledge track up, clamped, and returns the
// change actually applied.
func (l *Ledger) RaiseKnowledge(n int) int {
	return shiftTrack(&l.Knowledge, n)
}

func (l *Ledger) LowerKnowledge(n int) int {
	return -shiftTrack(&l.Knowledge, -n)
}

func (l *Ledger) RaiseMorale(n int) int {
	return shiftTrack(&l.Morale, n)
}

func (l *Ledger) LowerMorale(n int) int {
	return -shiftTrack(&l.Morale, -n)
}

func shiftTrack(track *int, n int) int {
	before := *track
	*track = min(MaxTrack, max(MinTrack, *track+n))
	return *track - before
}

// IsMember reports whether an active recruit belongs to a.
func (l *Ledger) IsMember(a Allegiance) bool {
	for _, r := range l.Active {
		if r.Allegiance() == a {
			return true
		}
	}
	return false
}

func (l *Ledger) HasRecruit(r Recruit) bool {
	for _, active := range l.Active {
		if active == r {
			return true
		}
	}
	return false
}

// Activate moves a hidden recruit to the active set.
func (l *Ledger) Activate(r Recruit) bool {
	for i, hidden := range l.Hidden {
		if hidden == r {
			l.Hidden = utils.Without(l.Hidden, i)
			l.Active = append(l.Active, r)
			return true
		}
	}
	return false
}

// Holdings snapshots the ledger for cost enumeration.
func (l *Ledger) Holdings(wild ArtifactSet) Holdings {
	h := Holdings{
		Goods:     l.Goods,
		Cards:     l.CardCounts(),
		Knowledge: l.Knowledge,
		Morale:    l.Morale,
		Wild:      wild,
	}
	for _, r := range l.Active {
		h.Members |= 1 << r.Allegiance()
	}
	return h
}

// Pay removes p atomically.
func (l *Ledger) Pay(p Payment) error {
	h := l.Holdings(0)
	if !h.covers(p) {
		return ErrInsufficientResource
	}
	for k, n := range p.Goods {
		l.Goods[k] -= n
	}
	for a, n := range p.Cards {
		for i := 0; i < n; i++ {
			if err := l.RemoveCard(Artifact(a)); err != nil {
				return err
			}
		}
	}
	l.RaiseKnowledge(p.Knowledge)
	l.LowerMorale(p.Morale)
	return nil
}

// AddWorker rolls a new die into the hand.
func (l *Ledger) AddWorker(pips int) {
	l.Hand = append(l.Hand, pips)
	sort.Ints(l.Hand)
	l.Workers++
}

// TakeWorker removes a die with the given pips from the hand.
func (l *Ledger) TakeWorker(pips int) bool {
	for i, p := range l.Hand {
		if p == pips {
			l.Hand = utils.Without(l.Hand, i)
			return true
		}
	}
	return false
}

func (l *Ledger) ReturnWorker(pips int) {
	l.Hand = append(l.Hand, pips)
	sort.Ints(l.Hand)
}

// StartTurn clears the turn-scoped flags.
func (l *Ledger) StartTurn() {
	l.Flags = TurnFlags{Used: map[string]bool{}}
}

func (l Ledger) Copy() Ledger {
	l.Cards = append([]Artifact(nil), l.Cards...)
	l.Hand = append([]int(nil), l.Hand...)
	l.Active = append([]Recruit(nil), l.Active...)
	l.Hidden = append([]Recruit(nil), l.Hidden...)
	l.Flags = l.Flags.copy()
	return l
}
