package game

// Artifact is the type of an artifact card.
type Artifact int

const (
	Book Artifact = iota
	Balloons
	Bifocals
	Box
	Bear
	Bat
	NumArtifacts
)

// CopiesPerArtifact is the number of cards of each type in the deck.
const CopiesPerArtifact = 6

var artifactNames = [NumArtifacts]string{"book", "balloons", "bifocals", "box", "bear", "bat"}

func (a Artifact) String() string {
	if a < 0 || a >= NumArtifacts {
		return "unknown"
	}
	return artifactNames[a]
}

func ParseArtifact(s string) (Artifact, bool) {
	for a, name := range artifactNames {
		if name == s {
			return Artifact(a), true
		}
	}
	return 0, false
}

// ArtifactSet is a bitset of artifact types.
type ArtifactSet uint8

func (s ArtifactSet) Add(a Artifact) ArtifactSet {
	return s | 1<<a
}

func (s ArtifactSet) Has(a Artifact) bool {
	return s&(1<<a) != 0
}

func newDeck() []Artifact {
	deck := make([]Artifact, 0, int(NumArtifacts)*CopiesPerArtifact)
	for a := Book; a < NumArtifacts; a++ {
		for i := 0; i < CopiesPerArtifact; i++ {
			deck = append(deck, a)
		}
	}
	return deck
}

// DrawCard takes the top card of the deck, recycling the discard pile when
// the deck runs out. It reports false only when no card exists anywhere.
func (gs *GameState) DrawCard() (Artifact, bool) {
	if len(gs.Deck) == 0 {
		if len(gs.Discard) == 0 {
			return 0, false
		}
		gs.Deck = append(gs.Deck, gs.Discard...)
		gs.Discard = nil
		gs.Rng.Shuffle(len(gs.Deck), func(i, j int) {
			gs.Deck[i], gs.Deck[j] = gs.Deck[j], gs.Deck[i]
		})
	}
	card := gs.Deck[len(gs.Deck)-1]
	gs.Deck = gs.Deck[:len(gs.Deck)-1]
	return card, true
}
