package game

// Collect grants b to player. Every part is rewritten by the benefit hooks
// immediately before it is granted, so a threshold crossed by an earlier
// part of the same benefit is seen by a later one. When a part needs a
// choice the parts after it are pushed as frames and the part is returned
// as the residual.
func (gs *GameState) Collect(player int, b Benefit, ctx Context) Resolution {
	if all, ok := b.(All); ok {
		return gs.collectParts(player, all.Parts, ctx, StepCollect)
	}
	return gs.grant(player, gs.rewriteBenefit(player, b, ctx), ctx)
}

// grant hands out an already rewritten benefit.
func (gs *GameState) grant(player int, b Benefit, ctx Context) Resolution {
	if all, ok := b.(All); ok {
		return gs.collectParts(player, all.Parts, ctx, StepGrant)
	}
	opts := gs.effectiveOptions(player, b)
	if len(opts) != 1 {
		return Resolution{Outcome: Residual, Benefit: b}
	}
	gs.receive(player, opts[0], ctx)
	return Resolution{Outcome: Granted}
}

func (gs *GameState) collectParts(player int, parts []Benefit, ctx Context, step Step) Resolution {
	for i, part := range parts {
		var r Resolution
		if step == StepCollect {
			r = gs.Collect(player, part, ctx)
		} else {
			r = gs.grant(player, part, ctx)
		}
		if r.Outcome != Residual {
			continue
		}
		for j := len(parts) - 1; j > i; j-- {
			gs.push(Frame{
				Step:      step,
				Cell:      ctx.Cell,
				Benefit:   parts[j],
				Actor:     player,
				Responder: player,
				Action:    ctx.Action,
			})
		}
		return r
	}
	return Resolution{Outcome: Granted}
}

// effectiveOptions drops options that would change nothing for the player,
// unless nothing else is left.
func (gs *GameState) effectiveOptions(player int, b Benefit) []Grant {
	opts := GrantOptions(b)
	l := &gs.Players[player]
	effective := make([]Grant, 0, len(opts))
	for _, g := range opts {
		if hasEffect(l, g) {
			effective = append(effective, g)
		}
	}
	if len(effective) == 0 {
		return opts
	}
	return effective
}

func hasEffect(l *Ledger, g Grant) bool {
	moved := g
	moved.Knowledge, moved.Morale = 0, 0
	if !moved.IsZero() {
		return true
	}
	k := min(MaxTrack, max(MinTrack, l.Knowledge+g.Knowledge))
	m := min(MaxTrack, max(MinTrack, l.Morale+g.Morale))
	return k != l.Knowledge || m != l.Morale
}

// receive applies a concrete grant, updates the turn bookkeeping and fires
// the after-benefit hooks.
func (gs *GameState) receive(player int, g Grant, ctx Context) {
	l := &gs.Players[player]
	for k, n := range g.Goods {
		l.Goods[k] += n
		l.Flags.Gained[k] += n
	}
	for i := 0; i < g.Cards; i++ {
		card, ok := gs.DrawCard()
		if !ok {
			break
		}
		l.AddCard(card)
		l.Flags.CardsGained++
	}
	if g.Knowledge > 0 {
		l.RaiseKnowledge(g.Knowledge)
	} else if g.Knowledge < 0 {
		l.LowerKnowledge(-g.Knowledge)
	}
	if g.Morale > 0 {
		l.RaiseMorale(g.Morale)
	} else if g.Morale < 0 {
		l.LowerMorale(-g.Morale)
	}
	for a, n := range g.Influence {
		gs.Influence[a] = min(MaxInfluence, gs.Influence[a]+n)
	}
	if g.Workers > 0 && l.Workers < MaxWorkers {
		l.AddWorker(gs.Rng.Roll())
		l.Flags.WorkerGained = true
		gs.knowledgeCheck(player)
	}
	if g.Recruits > 0 && len(l.Hidden) > 0 {
		l.Activate(l.Hidden[0])
	}
	if g.Authority > 0 && l.Authority > 0 {
		l.Authority--
		gs.placeAuthority(player, ctx.Cell)
	}
	if !g.IsZero() {
		gs.Committed = true
	}
	ctx.Granted = g
	gs.schedule(player, AfterBenefit, ctx)
}

// placeAuthority marks the player's token on a market. Placing the first
// token opens the market: every other player pays a good.
func (gs *GameState) placeAuthority(player int, cell CellID) {
	if cell == NoCell || !gs.Board.Cell(cell).Kind.IsMarket() {
		return
	}
	opening := gs.Stars[cell] == 0
	gs.Stars[cell] |= 1 << player
	if !opening {
		return
	}
	for offset := len(gs.Players) - 1; offset >= 1; offset-- {
		other := (player + offset) % len(gs.Players)
		gs.push(Frame{
			Step:      StepPenalty,
			Cell:      cell,
			Cost:      Mix{Of: AllGoods, N: 1, UpTo: true},
			Actor:     player,
			Responder: other,
			Action:    PenaltyAction,
		})
	}
}
