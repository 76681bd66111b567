package game

import "strings"

// Kind is a commodity or resource held in a player's ledger.
type Kind int

const (
	Water Kind = iota
	Energy
	Food
	Bliss
	Gold
	Stone
	Clay
	NumKinds
)

var kindNames = [NumKinds]string{"water", "energy", "food", "bliss", "gold", "stone", "clay"}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "unknown"
	}
	return kindNames[k]
}

// IsCommodity reports whether k is produced on the board rather than mined.
func (k Kind) IsCommodity() bool {
	return k >= Water && k <= Bliss
}

func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// KindSet is a bitset of kinds.
type KindSet uint8

const (
	Commodities KindSet = 1<<Water | 1<<Energy | 1<<Food | 1<<Bliss
	Resources   KindSet = 1<<Gold | 1<<Stone | 1<<Clay
	AllGoods            = Commodities | Resources
)

func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

func (s KindSet) Add(k Kind) KindSet {
	return s | 1<<k
}

func (s KindSet) Has(k Kind) bool {
	return s&(1<<k) != 0
}

// Kinds lists the members in ascending order.
func (s KindSet) Kinds() []Kind {
	var kinds []Kind
	for k := Water; k < NumKinds; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (s KindSet) Len() int {
	n := 0
	for k := Water; k < NumKinds; k++ {
		if s.Has(k) {
			n++
		}
	}
	return n
}

func (s KindSet) String() string {
	switch s {
	case Commodities:
		return "commodity"
	case Resources:
		return "resource"
	case AllGoods:
		return "good"
	}
	names := make([]string, 0, NumKinds)
	for _, k := range s.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, "|")
}

// Allegiance is one of the four factions, or none.
type Allegiance int

const (
	Factionless Allegiance = iota
	Euphorian
	Subterran
	Wastelander
	Icarite
	NumAllegiances
)

var allegianceNames = [NumAllegiances]string{"factionless", "euphorian", "subterran", "wastelander", "icarite"}

func (a Allegiance) String() string {
	if a < 0 || a >= NumAllegiances {
		return "unknown"
	}
	return allegianceNames[a]
}

func ParseAllegiance(s string) (Allegiance, bool) {
	for a, name := range allegianceNames {
		if name == s {
			return Allegiance(a), true
		}
	}
	return 0, false
}

// Influence track thresholds.
const (
	TierOne      = 2
	TierTwo      = 5
	TierThree    = 8
	MaxInfluence = 12
)
