package game

import (
	"sort"

	"euphoria/utils"

	"github.com/rs/zerolog/log"
)

// exec runs one non-interactive frame.
func (gs *GameState) exec(f Frame) {
	ctx := gs.frameContext(&f)
	switch f.Step {
	case StepNone, StepSkip:
	case StepBeforePlacement:
		gs.schedule(f.Actor, BeforePlacement, ctx)
	case StepPay:
		gs.execPay(f, ctx)
	case StepPlace:
		gs.execPlace(f)
	case StepCollect:
		b := f.Benefit
		if b == nil {
			b = gs.productionBenefit(f.Cell)
		}
		if r := gs.Collect(f.Responder, b, ctx); r.Outcome == Residual {
			gs.Suspend(gs.benefitFrame(f, r.Benefit))
		}
	case StepGrant:
		if r := gs.grant(f.Responder, f.Benefit, ctx); r.Outcome == Residual {
			gs.Suspend(gs.benefitFrame(f, r.Benefit))
		}
	case StepAfterPlacement:
		gs.schedule(f.Actor, AfterPlacement, ctx)
	case StepRetrievePay:
		gs.execRetrievePay(f, ctx)
	case StepMoraleLoss:
		gs.Players[f.Actor].LowerMorale(gs.moraleLoss(f.Actor))
		gs.Committed = true
	case StepReroll:
		gs.execReroll(f)
	case StepKnowledgeCheck:
		gs.knowledgeCheck(f.Responder)
	case StepMoraleCheck:
		gs.moraleCheck(f)
	case StepPenalty:
		gs.execPenalty(f, ctx)
	case StepEndAction:
		gs.endAction()
	case StepNextTurn:
		gs.nextTurn()
	case StepResolveDilemma:
		gs.resolveDilemma(f, ctx)
	case StepOpposeDilemma:
		if frame, ok := gs.dilemmaOffer(f.Actor, ctx, Reveal{}); ok {
			gs.Suspend(frame)
		}
	default:
		gs.fatal("cannot run %s frame", f.Step)
	}
}

func (gs *GameState) benefitFrame(f Frame, b Benefit) Frame {
	return Frame{
		Step:        StepAwaitBenefit,
		Cell:        f.Cell,
		Benefit:     b,
		Actor:       f.Actor,
		Responder:   f.Responder,
		ResumePhase: CollectBenefitPhase,
		Action:      f.Action,
		Ability:     f.Ability,
	}
}

// startPlacement turns a confirmed placement into the frames of the action.
func (gs *GameState) startPlacement() {
	player, cell, pips := gs.Turn, gs.PendingCell, gs.Picked.Pips
	gs.Checkpoint = gs.Copy()
	c := gs.Board.Cell(cell)
	base := Frame{Cell: cell, Actor: player, Responder: player, Action: PlaceAction}
	steps := []Frame{
		base.with(StepEndAction),
		base.with(StepMoraleCheck),
		base.with(StepAfterPlacement),
		base.withBenefit(StepCollect, c.Benefit),
		base.withAmount(StepPlace, pips),
		base.withCost(StepPay, c.Cost),
		base.with(StepBeforePlacement),
	}
	for _, f := range steps {
		gs.push(f)
	}
	gs.advance()
}

// startRetrieval turns the confirmed selection into the frames of the
// action.
func (gs *GameState) startRetrieval() {
	player := gs.Turn
	gs.Checkpoint = gs.Copy()
	base := Frame{Cell: NoCell, Actor: player, Responder: player, Action: RetrieveAction}
	gs.push(base.with(StepEndAction))
	gs.push(base.with(StepMoraleCheck))
	gs.push(base.with(StepKnowledgeCheck))
	for i := len(gs.Selection) - 1; i >= 0; i-- {
		w := gs.Selection[i]
		f := base.withAmount(StepReroll, w.Pips)
		f.Cell = w.Cell
		gs.push(f)
	}
	gs.push(base.withCost(StepRetrievePay, retrievalCost))
	gs.Selection = nil
	gs.advance()
}

func (f Frame) with(step Step) Frame {
	f.Step = step
	return f
}

func (f Frame) withCost(step Step, c Cost) Frame {
	f.Step, f.Cost, f.Original = step, c, c
	return f
}

func (f Frame) withBenefit(step Step, b Benefit) Frame {
	f.Step, f.Benefit = step, b
	return f
}

func (f Frame) withAmount(step Step, n int) Frame {
	f.Step, f.Amount = step, n
	return f
}

// execPay rewrites the cell cost as it stands now, pays what is forced and
// suspends for the rest. Declining the remainder aborts the placement if
// nothing has committed yet.
func (gs *GameState) execPay(f Frame, ctx Context) {
	cost, fired := gs.RewriteCost(f.Actor, f.Cost, ctx)
	gs.markFired(f.Actor, fired)
	r := gs.Resolve(f.Actor, cost, ctx)
	switch r.Outcome {
	case Impossible:
		gs.fatal("player %d cannot pay %s for %s", f.Actor, cost, gs.Board.Cell(f.Cell).Name)
	case Residual:
		decline := StepNone
		if !gs.Committed {
			decline = StepAbort
		}
		gs.Suspend(Frame{
			Step:        StepAwaitPayment,
			Cell:        f.Cell,
			Cost:        r.Cost,
			Original:    f.Original,
			Actor:       f.Actor,
			Responder:   f.Actor,
			ResumePhase: PayCostPhase,
			OnDecline:   decline,
			Action:      f.Action,
		})
	}
}

// execPlace puts the die on the cell, bumping the occupant of an exclusive
// cell back to its owner rerolled.
func (gs *GameState) execPlace(f Frame) {
	l := &gs.Players[f.Actor]
	if !l.TakeWorker(f.Amount) {
		gs.fatal("player %d has no %d in hand", f.Actor, f.Amount)
	}
	if gs.Board.Cell(f.Cell).Exclusive && len(gs.Workers[f.Cell]) > 0 {
		for _, w := range gs.Workers[f.Cell] {
			gs.Players[w.Owner].ReturnWorker(gs.Rng.Roll())
			gs.push(Frame{Step: StepKnowledgeCheck, Cell: f.Cell, Actor: f.Actor, Responder: w.Owner, Action: f.Action})
			log.Debug().Int("player", w.Owner).Str("cell", gs.Board.Cell(f.Cell).Name).Msg("bumped")
		}
		gs.Workers[f.Cell] = nil
	}
	gs.Workers[f.Cell] = append(gs.Workers[f.Cell], Worker{Owner: f.Actor, Pips: f.Amount})
}

// execRetrievePay charges for retrieval. A player who cannot or will not pay
// loses morale instead.
func (gs *GameState) execRetrievePay(f Frame, ctx Context) {
	cost, fired := gs.RewriteCost(f.Actor, f.Cost, ctx)
	if !gs.CanPay(f.Actor, cost, ctx) {
		gs.push(f.with(StepMoraleLoss))
		return
	}
	gs.markFired(f.Actor, fired)
	if r := gs.Resolve(f.Actor, cost, ctx); r.Outcome == Residual {
		gs.Suspend(Frame{
			Step:        StepAwaitPayment,
			Cell:        NoCell,
			Cost:        r.Cost,
			Original:    f.Original,
			Actor:       f.Actor,
			Responder:   f.Actor,
			ResumePhase: PayCostPhase,
			OnDecline:   StepMoraleLoss,
			Action:      f.Action,
		})
	}
}

func (gs *GameState) execReroll(f Frame) {
	workers := gs.Workers[f.Cell]
	for i, w := range workers {
		if w.Owner == f.Actor && w.Pips == f.Amount {
			gs.Workers[f.Cell] = utils.Without(workers, i)
			gs.Players[f.Actor].ReturnWorker(gs.Rng.Roll())
			gs.Committed = true
			return
		}
	}
	gs.fatal("no %d of player %d on %s", f.Amount, f.Actor, gs.Board.Cell(f.Cell).Name)
}

// knowledgeCheck loses the highest die in hand when hand pips plus knowledge
// reach the limit. It fires at most once per turn and never takes the last
// worker.
func (gs *GameState) knowledgeCheck(player int) {
	l := &gs.Players[player]
	if l.Flags.WorkerLost || len(l.Hand) == 0 || l.Workers <= 1 {
		return
	}
	total := l.Knowledge
	for _, pips := range l.Hand {
		total += pips
	}
	if total < gs.KnowledgeLimit {
		return
	}
	highest := l.Hand[len(l.Hand)-1]
	l.TakeWorker(highest)
	l.Workers--
	l.Flags.WorkerLost = true
	log.Debug().Int("player", player).Int("pips", highest).Int("total", total).Msg("worker lost")
}

// moraleCheck makes the player discard down to their morale.
func (gs *GameState) moraleCheck(f Frame) {
	l := &gs.Players[f.Responder]
	excess := len(l.Cards) - l.Morale
	if excess <= 0 {
		return
	}
	cost := Cards{N: excess}
	ctx := NoContext(DiscardAction)
	ctx.Original = cost
	switch r := gs.Resolve(f.Responder, cost, ctx); r.Outcome {
	case Impossible:
		gs.fatal("player %d cannot discard %d cards", f.Responder, excess)
	case Residual:
		gs.Suspend(Frame{
			Step:        StepAwaitDiscard,
			Cell:        NoCell,
			Cost:        r.Cost,
			Original:    cost,
			Actor:       f.Actor,
			Responder:   f.Responder,
			ResumePhase: DiscardCardsPhase,
			Action:      DiscardAction,
		})
	}
}

// execPenalty charges the market-opening penalty to the responder.
func (gs *GameState) execPenalty(f Frame, ctx Context) {
	switch r := gs.Resolve(f.Responder, f.Cost, ctx); r.Outcome {
	case Impossible:
		gs.fatal("player %d cannot pay penalty %s", f.Responder, f.Cost)
	case Residual:
		gs.Suspend(Frame{
			Step:        StepAwaitPenalty,
			Cell:        f.Cell,
			Cost:        r.Cost,
			Original:    f.Cost,
			Actor:       f.Actor,
			Responder:   f.Responder,
			ResumePhase: PayPenaltyPhase,
			Action:      PenaltyAction,
		})
	}
}

// endAction closes the action: nothing in it can be undone from here on.
func (gs *GameState) endAction() {
	gs.Acted = true
	gs.Committed = false
	gs.Checkpoint = nil
	gs.Picked = noLocation
	gs.PendingCell = NoCell
	gs.Selection = nil
	if gs.Debug {
		for i := range gs.Players {
			if l := &gs.Players[i]; len(l.Cards) > l.Morale {
				gs.fatal("player %d holds %d cards with morale %d", i, len(l.Cards), l.Morale)
			}
		}
	}
	for i := range gs.Players {
		if gs.Players[i].Authority == 0 {
			gs.gameOver()
			return
		}
	}
}

func (gs *GameState) startTurn() {
	gs.Players[gs.Turn].StartTurn()
	gs.Acted = false
	gs.Current = gs.Turn
	gs.Phase = PlaceOrRetrievePhase
	gs.schedule(gs.Turn, TurnStart, NoContext(TurnAction))
	gs.advance()
}

// endTurn runs the turn-end hooks and then passes the turn on.
func (gs *GameState) endTurn() {
	gs.push(Frame{Step: StepNextTurn, Cell: NoCell, Actor: gs.Turn, Responder: gs.Turn, Action: TurnAction})
	gs.schedule(gs.Turn, TurnEnd, NoContext(TurnAction))
	gs.advance()
}

func (gs *GameState) nextTurn() {
	gs.Turns++
	if gs.MaxTurns > 0 && gs.Turns >= gs.MaxTurns {
		gs.gameOver()
		return
	}
	gs.Turn = (gs.Turn + 1) % len(gs.Players)
	log.Debug().Int("turn", gs.Turns).Int("player", gs.Turn).Msg("turn start")
	gs.Players[gs.Turn].StartTurn()
	gs.Acted = false
	gs.Current = gs.Turn
	gs.schedule(gs.Turn, TurnStart, NoContext(TurnAction))
}

func (gs *GameState) gameOver() {
	gs.Stack = nil
	gs.Phase = GameoverPhase
	gs.Ranking = gs.rank()
	log.Info().Str("winner", gs.Names[gs.Ranking[0]]).Int("turns", gs.Turns).Msg("game over")
}

// rank orders players best first: fewest authority tokens left, then
// highest morale, lowest knowledge, most goods and cards, and finally the
// tie-break value dealt at setup.
func (gs *GameState) rank() []int {
	order := make([]int, len(gs.Players))
	for i := range order {
		order[i] = i
	}
	holdings := func(l *Ledger) int {
		n := len(l.Cards)
		for _, g := range l.Goods {
			n += g
		}
		return n
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := &gs.Players[order[i]], &gs.Players[order[j]]
		switch {
		case a.Authority != b.Authority:
			return a.Authority < b.Authority
		case a.Morale != b.Morale:
			return a.Morale > b.Morale
		case a.Knowledge != b.Knowledge:
			return a.Knowledge < b.Knowledge
		case holdings(a) != holdings(b):
			return holdings(a) > holdings(b)
		}
		return a.TieBreak > b.TieBreak
	})
	return order
}
