package game

import "fmt"

// Prompt describes what the engine is waiting for.
type Prompt struct {
	Player  int
	Phase   Phase
	Text    string
	Ability string
	Cost    Cost
	Benefit Benefit
}

func (p Prompt) String() string {
	s := fmt.Sprintf("player %d: %s", p.Player, p.Text)
	if p.Ability != "" {
		s += " (" + p.Ability + ")"
	}
	if p.Cost != nil {
		s += ", pay " + p.Cost.String()
	}
	if p.Benefit != nil {
		s += ", gain " + p.Benefit.String()
	}
	return s
}

func (gs *GameState) Prompt() Prompt {
	p := Prompt{Player: gs.Current, Phase: gs.Phase, Text: gs.Phase.Description()}
	if f := gs.top(); f != nil && f.Step.Interactive() {
		p.Ability = f.Ability
	}
	p.Cost = gs.PendingCost()
	p.Benefit = gs.PendingBenefit()
	return p
}

// PendingCost is the cost being paid, or the cost of the placement awaiting
// confirmation.
func (gs *GameState) PendingCost() Cost {
	if f := gs.top(); f != nil && f.Step.Interactive() && f.Cost != nil && gs.Phase.IsPayment() {
		return f.Cost
	}
	if gs.Phase == ConfirmPlacePhase {
		ctx := gs.cellContext(gs.PendingCell, PlaceAction)
		c, _ := gs.RewriteCost(gs.Turn, gs.Board.Cell(gs.PendingCell).Cost, ctx)
		return c
	}
	return nil
}

// PendingBenefit is the benefit being chosen from, or the benefit of the
// placement awaiting confirmation.
func (gs *GameState) PendingBenefit() Benefit {
	if f := gs.top(); f != nil && f.Step.Interactive() && f.Benefit != nil {
		return f.Benefit
	}
	if gs.Phase == ConfirmPlacePhase {
		if b := gs.Board.Cell(gs.PendingCell).Benefit; b != nil {
			return b
		}
		return gs.previewProduction(gs.PendingCell)
	}
	return nil
}

// previewProduction is the production yield with the picked die added.
func (gs *GameState) previewProduction(cell CellID) Benefit {
	c := gs.Copy()
	c.Workers[cell] = append(c.Workers[cell], Worker{Owner: gs.Turn, Pips: gs.Picked.Pips})
	return c.productionBenefit(cell)
}

// LegalSources lists what can be picked in the current phase. In payment
// and benefit phases these are the units that can still be dropped into
// the selection.
func (gs *GameState) LegalSources() []Location {
	var out []Location
	l := &gs.Players[gs.Current]
	switch gs.Phase {
	case ChooseRecruitPhase:
		for _, r := range l.Hidden {
			out = append(out, RecruitCard(r))
		}
	case PlaceOrRetrievePhase, PlacePhase:
		for _, pips := range distinct(l.Hand) {
			if gs.hasDestination(gs.Current, pips) {
				out = append(out, HandDie(pips))
			}
		}
		if gs.Phase == PlaceOrRetrievePhase {
			out = append(out, gs.retrievable()...)
		}
	case RetrievePhase:
		out = gs.retrievable()
	default:
		if gs.Phase.IsPayment() {
			out = gs.payableUnits()
		} else if gs.Phase.IsBenefit() {
			out = gs.grantableUnits()
		}
	}
	return out
}

// LegalDestinations lists where the picked item can be dropped.
func (gs *GameState) LegalDestinations() []Location {
	switch gs.Phase {
	case ChooseRecruitPhase:
		if gs.Picked.Where == RecruitSlot {
			return []Location{TableauSlot()}
		}
	case PlacePhase:
		var out []Location
		for _, c := range gs.Board.Cells {
			if gs.canPlace(gs.Current, c.ID, gs.Picked.Pips) {
				out = append(out, BoardCell(c.ID))
			}
		}
		return out
	case RetrievePhase:
		if len(gs.Selection) > 0 {
			return []Location{HandDie(0)}
		}
	}
	return nil
}

// LegalMoves enumerates the intents an agent may choose from. Cancels and
// aborts are left out: they only return to an earlier decision.
func (gs *GameState) LegalMoves() []Move {
	var moves []Move
	add := func(in Intent) { moves = append(moves, in) }
	switch {
	case gs.Phase == GameoverPhase:
	case gs.Phase == ChooseRecruitPhase:
		if gs.Picked.Where == RecruitSlot {
			add(Drop(TableauSlot()))
			break
		}
		for _, src := range gs.LegalSources() {
			add(Pick(src))
		}
	case gs.Phase == PlaceOrRetrievePhase:
		for _, src := range gs.LegalSources() {
			add(Pick(src))
		}
	case gs.Phase == PlacePhase:
		for _, dst := range gs.LegalDestinations() {
			add(Drop(dst))
		}
	case gs.Phase == RetrievePhase:
		for _, src := range gs.retrievable() {
			add(Pick(src))
		}
		if len(gs.Selection) > 0 {
			add(Drop(HandDie(0)))
		}
	case gs.Phase == ConfirmPlacePhase, gs.Phase == ConfirmRetrievePhase:
		add(Intent{Kind: ConfirmIntent, Loc: noLocation, Chance: true})
	case gs.Phase.IsPayment():
		for _, src := range gs.LegalSources() {
			add(Drop(src))
		}
		if gs.Phase.IsConfirm() {
			add(Confirm())
		}
		if f := gs.top(); f.OnDecline != StepNone && f.OnDecline != StepAbort {
			add(Decline())
		}
	case gs.Phase.IsBenefit():
		for _, src := range gs.LegalSources() {
			in := Drop(src)
			in.Chance = src.Where == Deck
			add(in)
		}
		if gs.Phase.IsConfirm() {
			g, _ := gs.choiceComplete(gs.top())
			add(Intent{Kind: ConfirmIntent, Loc: noLocation, Chance: g.Cards > 0 || g.Workers > 0})
		}
		if f := gs.top(); f.OnDecline != StepNone {
			add(Decline())
		}
	default:
		add(Confirm())
	}
	return moves
}

// canPlace reports whether a die showing pips may go on cell: no penalty
// forbids it and the cost can be paid.
func (gs *GameState) canPlace(player int, cell CellID, pips int) bool {
	if cell < 0 || int(cell) >= len(gs.Board.Cells) || gs.forbidden(player, cell, pips) {
		return false
	}
	ctx := gs.cellContext(cell, PlaceAction)
	cost, _ := gs.RewriteCost(player, gs.Board.Cell(cell).Cost, ctx)
	return gs.CanPay(player, cost, ctx)
}

// hasDestination reports whether a die showing pips can go anywhere.
func (gs *GameState) hasDestination(player, pips int) bool {
	for _, cell := range gs.Board.Cells {
		if gs.canPlace(player, cell.ID, pips) {
			return true
		}
	}
	return false
}

// retrievable lists the current player's board workers not yet selected.
func (gs *GameState) retrievable() []Location {
	var out []Location
	for _, c := range gs.Board.Cells {
		seen := map[int]bool{}
		for _, w := range gs.Workers[c.ID] {
			loc := BoardWorker(c.ID, w.Pips)
			if w.Owner != gs.Current || seen[w.Pips] {
				continue
			}
			seen[w.Pips] = true
			if gs.selectedCount(loc) < gs.workerCount(gs.Current, loc) {
				out = append(out, loc)
			}
		}
	}
	return out
}

func (gs *GameState) selectedCount(loc Location) int {
	n := 0
	for _, s := range gs.Selection {
		if s == loc {
			n++
		}
	}
	return n
}

func (gs *GameState) workerCount(player int, loc Location) int {
	if loc.Cell < 0 || int(loc.Cell) >= len(gs.Workers) {
		return 0
	}
	n := 0
	for _, w := range gs.Workers[loc.Cell] {
		if w.Owner == player && w.Pips == loc.Pips {
			n++
		}
	}
	return n
}

func (gs *GameState) payableUnits() []Location {
	f := gs.top()
	var out []Location
	candidates := make([]Location, 0, int(NumKinds)+int(NumArtifacts)+2)
	for k := Kind(0); k < NumKinds; k++ {
		candidates = append(candidates, GoodsUnit(k))
	}
	for a := Book; a < NumArtifacts; a++ {
		candidates = append(candidates, CardUnit(a))
	}
	candidates = append(candidates, TrackUnit(Knowledge), TrackUnit(Morale))
	for _, loc := range candidates {
		unit, _ := paymentUnit(loc)
		if gs.tenderFits(f, gs.Tender.plus(unit)) {
			out = append(out, loc)
		}
	}
	return out
}

func (gs *GameState) grantableUnits() []Location {
	f := gs.top()
	var out []Location
	candidates := make([]Location, 0, int(NumKinds)+3)
	for k := Kind(0); k < NumKinds; k++ {
		candidates = append(candidates, SupplyUnit(k))
	}
	candidates = append(candidates, DeckCard(), TrackUnit(Knowledge), TrackUnit(Morale))
	for _, loc := range candidates {
		unit, _ := grantUnit(loc)
		if gs.choiceFits(f, gs.Chosen.plus(unit)) {
			out = append(out, loc)
		}
	}
	return out
}

func distinct(xs []int) []int {
	var out []int
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}
	return out
}
