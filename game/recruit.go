package game

// Recruit is an ability card. A player's active recruits enable the hooks
// bound to them.
type Recruit int

const (
	NoRecruit Recruit = iota
	MatthewTheThief
	KadanTheInfiltrator
	JoshTheNegotiator
	BrianTheViticulturist
	FlartnerTheLuddite
	JeffersonTheShockArtist
	ReitzTheArcheologist
	SoullessThePlumber
	GaryTheElectrician
	NickTheUnderstudy
	CurtisThePropagandist
	PhilTheSpy
	KyleTheScavenger
	IanTheHorticulturist
	ScarbyTheHarvester
	SarineeTheCloudMiner
	ZongTheAstronomer
	KatyTheDietician
	RayTheForeman
	JonathanTheGambler
	NumRecruits
)

var recruitInfo = [NumRecruits]struct {
	name       string
	allegiance Allegiance
}{
	{"none", Factionless},
	{"MatthewTheThief", Icarite},
	{"KadanTheInfiltrator", Icarite},
	{"JoshTheNegotiator", Icarite},
	{"BrianTheViticulturist", Wastelander},
	{"FlartnerTheLuddite", Wastelander},
	{"JeffersonTheShockArtist", Euphorian},
	{"ReitzTheArcheologist", Wastelander},
	{"SoullessThePlumber", Subterran},
	{"GaryTheElectrician", Euphorian},
	{"NickTheUnderstudy", Wastelander},
	{"CurtisThePropagandist", Subterran},
	{"PhilTheSpy", Subterran},
	{"KyleTheScavenger", Wastelander},
	{"IanTheHorticulturist", Wastelander},
	{"ScarbyTheHarvester", Wastelander},
	{"SarineeTheCloudMiner", Icarite},
	{"ZongTheAstronomer", Icarite},
	{"KatyTheDietician", Euphorian},
	{"RayTheForeman", Euphorian},
	{"JonathanTheGambler", Subterran},
}

func (r Recruit) String() string {
	if r < 0 || r >= NumRecruits {
		return "unknown"
	}
	return recruitInfo[r].name
}

func (r Recruit) Allegiance() Allegiance {
	if r < 0 || r >= NumRecruits {
		return Factionless
	}
	return recruitInfo[r].allegiance
}

func ParseRecruit(s string) (Recruit, bool) {
	for r := NoRecruit + 1; r < NumRecruits; r++ {
		if recruitInfo[r].name == s {
			return r, true
		}
	}
	return NoRecruit, false
}

func recruitPool() []Recruit {
	pool := make([]Recruit, 0, NumRecruits-1)
	for r := NoRecruit + 1; r < NumRecruits; r++ {
		pool = append(pool, r)
	}
	return pool
}
