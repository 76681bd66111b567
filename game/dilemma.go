package game

// An ethical dilemma is settled once per game by paying one card of the
// player's dilemma type or any two cards. Joining the establishment spends
// an authority token; fighting the oppressor reveals the hidden recruit.
// Both are offered at the end of the turn, join first.

func dilemmaCost(a Artifact) Cost {
	return Or{Alts: []Cost{CardOf{Of: a}, Cards{N: 2}}}
}

// dilemmaOffer builds the optional payment for settling the dilemma with
// benefit b. It reports false when the player cannot use it now.
func (gs *GameState) dilemmaOffer(player int, ctx Context, b Benefit) (Frame, bool) {
	l := &gs.Players[player]
	if l.DilemmaResolved {
		return Frame{}, false
	}
	ability, decline := "JoinTheEstablishment", StepOpposeDilemma
	if _, fight := b.(Reveal); fight {
		if len(l.Hidden) == 0 {
			return Frame{}, false
		}
		ability, decline = "FightTheOppressor", StepSkip
	} else if l.Authority == 0 {
		return gs.dilemmaOffer(player, ctx, Reveal{})
	}
	cost := dilemmaCost(l.Dilemma)
	if !gs.CanPay(player, cost, ctx) {
		return Frame{}, false
	}
	return Frame{
		Step:        StepAwaitOptional,
		Cell:        NoCell,
		Cost:        cost,
		Original:    cost,
		Benefit:     b,
		Actor:       player,
		Responder:   player,
		ResumePhase: PayForOptionalEffectPhase,
		OnPaid:      StepResolveDilemma,
		OnDecline:   decline,
		Ability:     ability,
		Action:      DilemmaAction,
	}, true
}

// resolveDilemma closes the dilemma once its cost is paid and hands out the
// chosen side.
func (gs *GameState) resolveDilemma(f Frame, ctx Context) {
	l := &gs.Players[f.Actor]
	l.DilemmaResolved = true
	if r := gs.Collect(f.Actor, f.Benefit, ctx); r.Outcome == Residual {
		gs.Suspend(gs.benefitFrame(f, r.Benefit))
		return
	}
	if l.Authority == 0 {
		gs.gameOver()
	}
}

func dilemmaHook() Hook {
	return Hook{
		Name:    "EthicalDilemma",
		Source:  RuleSource,
		Group:   "dilemma",
		Trigger: TurnEnd,
		Schedule: func(gs *GameState, player int, _ Context) []Frame {
			if f, ok := gs.dilemmaOffer(player, NoContext(DilemmaAction), Authority{}); ok {
				return []Frame{f}
			}
			return nil
		},
	}
}
