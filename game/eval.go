package game

// EvaluateAuthority scores the race to place authority tokens: the current
// player's remaining tokens against the closest opponent's.
func EvaluateAuthority(s State) float64 {
	gs := s.(*GameState)
	mine, best := gs.progress(gs.Current)
	return normalize(best, mine)
}

// EvaluateEconomy blends authority progress with goods, cards, workers and
// morale.
func EvaluateEconomy(s State) float64 {
	gs := s.(*GameState)
	me := gs.Current
	race := EvaluateAuthority(s)

	var goods, workers, morale [2]float64
	for i := range gs.Players {
		l := &gs.Players[i]
		slot := 1
		if i == me {
			slot = 0
		}
		wealth := float64(len(l.Cards))
		for _, n := range l.Goods {
			wealth += float64(n)
		}
		goods[slot] = max(goods[slot], wealth)
		workers[slot] = max(workers[slot], float64(l.Workers))
		morale[slot] = max(morale[slot], float64(l.Morale))
	}
	economy := (normalize(goods[0], goods[1]) + normalize(workers[0], workers[1]) + normalize(morale[0], morale[1])) / 3.0
	return 0.6*race + 0.4*economy
}

// progress returns the authority tokens player still holds and the fewest
// any opponent holds. Fewer is better.
func (gs *GameState) progress(player int) (mine, best float64) {
	best = -1
	for i := range gs.Players {
		left := float64(gs.Players[i].Authority)
		if i == player {
			mine = left
		} else if best < 0 || left < best {
			best = left
		}
	}
	return mine, max(best, 0)
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}

// Evaluations names the cutoff evaluations for configuration.
var Evaluations = map[string]Evaluate{
	"authority": EvaluateAuthority,
	"economy":   EvaluateEconomy,
}
