package game

// Revisions of the resolver and hook behaviour. Recorded games carry the
// revision they were played under and replay with the behaviour of that
// revision.
const (
	// Mixed-kind costs auto-pay whenever a single assignment exists.
	RevisionMixedAuto = 101
	// Pair costs auto-pay whenever a single assignment exists.
	RevisionPairAuto = 105
	// The thief's tunnel alternative raises knowledge instead of being free.
	RevisionThiefKnowledge = 108

	FirstRevision   = 100
	CurrentRevision = RevisionThiefKnowledge
)

// autoPayable decides whether a cost with exactly one satisfying assignment
// may be paid without asking.
func autoPayable(revision int, c Cost, h Holdings) bool {
	return !ContainsCost(c, func(node Cost) bool {
		switch node := node.(type) {
		case Mix:
			if revision < RevisionMixedAuto {
				held := 0
				for _, k := range node.Of.Kinds() {
					if h.Goods[k] > 0 {
						held++
					}
				}
				return held != 1
			}
		case Pair:
			if revision < RevisionPairAuto {
				types := 0
				for _, n := range h.Cards {
					if n > 0 {
						types++
					}
				}
				return types != 1
			}
		}
		return false
	})
}

func thiefAlternative(revision int) Cost {
	if revision < RevisionThiefKnowledge {
		return Free{}
	}
	return RaiseKnowledge{N: 1}
}
