package game

import "fmt"

// IntentKind is one of the four raw intents a player or agent can send.
type IntentKind int

const (
	PickIntent IntentKind = iota
	DropIntent
	ConfirmIntent
	DeclineIntent
)

var intentNames = [...]string{"pick", "drop", "confirm", "decline"}

func (k IntentKind) String() string {
	if k < 0 || int(k) >= len(intentNames) {
		return "unknown"
	}
	return intentNames[k]
}

func ParseIntentKind(s string) (IntentKind, bool) {
	for k, name := range intentNames {
		if name == s {
			return IntentKind(k), true
		}
	}
	return 0, false
}

// Where names the area of the table a location refers to.
type Where int

const (
	NoWhere     Where = iota
	Hand              // a worker die in the acting player's hand
	OnBoard           // a cell, or a worker on it when Pips is set
	Goods             // a unit of the acting player's goods
	CardSlot          // one of the acting player's artifact cards
	TrackSlot         // a step on the knowledge or morale track
	Supply            // a unit of goods from the general supply
	Deck              // a card from the artifact deck
	Tableau           // the acting player's active recruits
	RecruitSlot       // one of the acting player's hidden recruits
)

var whereNames = [...]string{"none", "hand", "board", "goods", "card", "track", "supply", "deck", "tableau", "recruit"}

func (w Where) String() string {
	if w < 0 || int(w) >= len(whereNames) {
		return "unknown"
	}
	return whereNames[w]
}

func ParseWhere(s string) (Where, bool) {
	for w, name := range whereNames {
		if name == s {
			return Where(w), true
		}
	}
	return NoWhere, false
}

type Track int

const (
	Knowledge Track = iota
	Morale
)

func (t Track) String() string {
	if t == Morale {
		return "morale"
	}
	return "knowledge"
}

// Location is a comparable reference to something on the table. Only the
// fields meaningful for Where are set.
type Location struct {
	Where   Where
	Cell    CellID
	Pips    int
	Kind    Kind
	Card    Artifact
	Track   Track
	Recruit Recruit
}

func HandDie(pips int) Location      { return Location{Where: Hand, Cell: NoCell, Pips: pips} }
func BoardCell(cell CellID) Location { return Location{Where: OnBoard, Cell: cell} }
func BoardWorker(cell CellID, pips int) Location {
	return Location{Where: OnBoard, Cell: cell, Pips: pips}
}
func GoodsUnit(k Kind) Location      { return Location{Where: Goods, Cell: NoCell, Kind: k} }
func CardUnit(a Artifact) Location   { return Location{Where: CardSlot, Cell: NoCell, Card: a} }
func TrackUnit(t Track) Location     { return Location{Where: TrackSlot, Cell: NoCell, Track: t} }
func SupplyUnit(k Kind) Location     { return Location{Where: Supply, Cell: NoCell, Kind: k} }
func DeckCard() Location             { return Location{Where: Deck, Cell: NoCell} }
func TableauSlot() Location          { return Location{Where: Tableau, Cell: NoCell} }
func RecruitCard(r Recruit) Location { return Location{Where: RecruitSlot, Cell: NoCell, Recruit: r} }

func (l Location) String() string {
	switch l.Where {
	case Hand:
		return fmt.Sprintf("hand:%d", l.Pips)
	case OnBoard:
		if l.Pips > 0 {
			return fmt.Sprintf("board:%d:%d", l.Cell, l.Pips)
		}
		return fmt.Sprintf("board:%d", l.Cell)
	case Goods, Supply:
		return fmt.Sprintf("%s:%s", l.Where, l.Kind)
	case CardSlot:
		return fmt.Sprintf("card:%s", l.Card)
	case TrackSlot:
		return fmt.Sprintf("track:%s", l.Track)
	case RecruitSlot:
		return fmt.Sprintf("recruit:%s", l.Recruit)
	}
	return l.Where.String()
}

// Intent is a raw player input. Chance marks intents whose outcome depends
// on dice or card draws.
type Intent struct {
	Kind   IntentKind
	Loc    Location
	Chance bool
}

func Pick(l Location) Intent { return Intent{Kind: PickIntent, Loc: l} }
func Drop(l Location) Intent { return Intent{Kind: DropIntent, Loc: l} }
func Confirm() Intent        { return Intent{Kind: ConfirmIntent, Loc: Location{Cell: NoCell}} }
func Decline() Intent        { return Intent{Kind: DeclineIntent, Loc: Location{Cell: NoCell}} }

func (in Intent) IsStochastic() bool {
	return in.Chance
}

func (in Intent) String() string {
	switch in.Kind {
	case PickIntent, DropIntent:
		return fmt.Sprintf("%s %s", in.Kind, in.Loc)
	}
	return in.Kind.String()
}

// Normalized clears the fields that have no meaning for the intent, so an
// intent decoded from the wire compares equal to one built here.
func (in Intent) Normalized() Intent {
	switch in.Kind {
	case ConfirmIntent, DeclineIntent:
		in.Loc = noLocation
		return in
	}
	l := Location{Where: in.Loc.Where, Cell: NoCell}
	switch l.Where {
	case Hand:
		l.Pips = in.Loc.Pips
	case OnBoard:
		l.Cell, l.Pips = in.Loc.Cell, in.Loc.Pips
	case Goods, Supply:
		l.Kind = in.Loc.Kind
	case CardSlot:
		l.Card = in.Loc.Card
	case TrackSlot:
		l.Track = in.Loc.Track
	case RecruitSlot:
		l.Recruit = in.Loc.Recruit
	}
	in.Loc = l
	return in
}

// Check reports whether in would be accepted, without applying it.
func (gs *GameState) Check(in Intent) error {
	return gs.Copy().Apply(in)
}

// Apply validates in against the current phase and selection and applies
// it. A rejected intent leaves the state untouched.
func (gs *GameState) Apply(in Intent) error {
	if gs.Phase == GameoverPhase {
		return gs.reject(GameOver, in, "")
	}
	if _, ok := Transition(gs.Phase, in); !ok {
		return gs.reject(WrongPhase, in, "")
	}
	switch {
	case gs.Phase == ChooseRecruitPhase || gs.Phase == ConfirmRecruitPhase:
		return gs.applyRecruit(in)
	case gs.Phase == PlaceOrRetrievePhase || gs.Phase == PlacePhase || gs.Phase == ConfirmPlacePhase:
		return gs.applyPlace(in)
	case gs.Phase == RetrievePhase || gs.Phase == ConfirmRetrievePhase:
		return gs.applyRetrieve(in)
	case gs.Phase.IsPayment():
		return gs.applyPayment(in)
	case gs.Phase.IsBenefit():
		return gs.applyBenefit(in)
	case gs.Phase == EndTurnPhase:
		gs.endTurn()
		return nil
	}
	gs.fatal("no handler for phase %s", gs.Phase)
	return nil
}

func (gs *GameState) applyRecruit(in Intent) error {
	l := &gs.Players[gs.Current]
	switch in.Kind {
	case PickIntent:
		if in.Loc.Where != RecruitSlot || !hasRecruit(l.Hidden, in.Loc.Recruit) {
			return gs.reject(IllegalSource, in, "not a hidden recruit")
		}
		gs.Picked = in.Loc
	case DropIntent:
		if gs.Picked.Where != RecruitSlot {
			return gs.reject(IllegalSource, in, "nothing picked")
		}
		if in.Loc.Where != Tableau {
			return gs.reject(IllegalDestination, in, "")
		}
		gs.Phase = ConfirmRecruitPhase
	case DeclineIntent:
		gs.Phase = ChooseRecruitPhase
	case ConfirmIntent:
		l.Activate(gs.Picked.Recruit)
		gs.Picked = noLocation
		gs.Current++
		if gs.Current < len(gs.Players) {
			gs.Phase = ChooseRecruitPhase
			return nil
		}
		gs.Turn = 0
		gs.startTurn()
	}
	return nil
}

func (gs *GameState) applyPlace(in Intent) error {
	l := &gs.Players[gs.Current]
	switch in.Kind {
	case PickIntent:
		if in.Loc.Where == OnBoard && gs.Phase == PlaceOrRetrievePhase {
			return gs.applyRetrieve(in)
		}
		if in.Loc.Where != Hand || !containsInt(l.Hand, in.Loc.Pips) {
			return gs.reject(IllegalSource, in, "no such worker in hand")
		}
		if !gs.hasDestination(gs.Current, in.Loc.Pips) {
			return gs.reject(IllegalSource, in, "the worker has nowhere to go")
		}
		gs.Picked = in.Loc
		gs.Phase = PlacePhase
	case DropIntent:
		if in.Loc.Where != OnBoard || in.Loc.Pips != 0 || !gs.canPlace(gs.Current, in.Loc.Cell, gs.Picked.Pips) {
			return gs.reject(IllegalDestination, in, "")
		}
		gs.PendingCell = in.Loc.Cell
		gs.Phase = ConfirmPlacePhase
	case DeclineIntent:
		if gs.Phase == ConfirmPlacePhase {
			gs.PendingCell = NoCell
			gs.Phase = PlacePhase
			return nil
		}
		gs.Picked = noLocation
		gs.Phase = PlaceOrRetrievePhase
	case ConfirmIntent:
		gs.startPlacement()
	}
	return nil
}

func (gs *GameState) applyRetrieve(in Intent) error {
	switch in.Kind {
	case PickIntent:
		if in.Loc.Where != OnBoard || gs.selectedCount(in.Loc) >= gs.workerCount(gs.Current, in.Loc) {
			return gs.reject(IllegalSource, in, "no such worker on the board")
		}
		gs.Selection = append(gs.Selection, in.Loc)
		gs.Phase = RetrievePhase
	case DropIntent:
		if in.Loc.Where != Hand || len(gs.Selection) == 0 {
			return gs.reject(IllegalDestination, in, "")
		}
		gs.Phase = ConfirmRetrievePhase
	case DeclineIntent:
		if gs.Phase == ConfirmRetrievePhase {
			gs.Phase = RetrievePhase
			return nil
		}
		gs.Selection = nil
		gs.Phase = PlaceOrRetrievePhase
	case ConfirmIntent:
		gs.startRetrieval()
	}
	return nil
}

func (gs *GameState) applyPayment(in Intent) error {
	f := gs.top()
	switch in.Kind {
	case DropIntent:
		unit, ok := paymentUnit(in.Loc)
		if !ok || !gs.tenderFits(f, gs.Tender.plus(unit)) {
			return gs.reject(IllegalSource, in, "does not pay %s", f.Cost)
		}
		gs.Tender = gs.Tender.plus(unit)
	case PickIntent:
		unit, ok := paymentUnit(in.Loc)
		if !ok || !unit.within(gs.Tender) {
			return gs.reject(IllegalSource, in, "not in the payment")
		}
		gs.Tender = gs.Tender.minus(unit)
	case ConfirmIntent:
		if _, ok := gs.tenderComplete(f); !ok {
			return gs.reject(IncompletePayment, in, "%s still owed", f.Cost)
		}
		return gs.ResumeOnConfirm()
	case DeclineIntent:
		return gs.ResumeOnDecline()
	}
	gs.syncSelection()
	return nil
}

func (gs *GameState) applyBenefit(in Intent) error {
	f := gs.top()
	switch in.Kind {
	case DropIntent:
		unit, ok := grantUnit(in.Loc)
		if !ok || !gs.choiceFits(f, gs.Chosen.plus(unit)) {
			return gs.reject(IllegalSource, in, "not part of %s", f.Benefit)
		}
		gs.Chosen = gs.Chosen.plus(unit)
	case PickIntent:
		unit, ok := grantUnit(in.Loc)
		if !ok || !unit.within(gs.Chosen) {
			return gs.reject(IllegalSource, in, "not chosen")
		}
		gs.Chosen = gs.Chosen.minus(unit)
	case ConfirmIntent:
		if _, ok := gs.choiceComplete(f); !ok {
			return gs.reject(IncompletePayment, in, "choose from %s", f.Benefit)
		}
		return gs.ResumeOnConfirm()
	case DeclineIntent:
		return gs.ResumeOnDecline()
	}
	gs.syncSelection()
	return nil
}

// paymentUnit is the single unit of payment a location stands for.
func paymentUnit(l Location) (Payment, bool) {
	var p Payment
	switch l.Where {
	case Goods:
		if l.Kind < 0 || l.Kind >= NumKinds {
			return p, false
		}
		p.Goods[l.Kind] = 1
	case CardSlot:
		if l.Card < 0 || l.Card >= NumArtifacts {
			return p, false
		}
		p.Cards[l.Card] = 1
	case TrackSlot:
		if l.Track == Knowledge {
			p.Knowledge = 1
		} else {
			p.Morale = 1
		}
	default:
		return p, false
	}
	return p, true
}

// grantUnit is the single unit of a grant a location stands for.
func grantUnit(l Location) (Grant, bool) {
	var g Grant
	switch l.Where {
	case Supply:
		if l.Kind < 0 || l.Kind >= NumKinds {
			return g, false
		}
		g.Goods[l.Kind] = 1
	case Deck:
		g.Cards = 1
	case TrackSlot:
		if l.Track == Knowledge {
			g.Knowledge = 1
		} else {
			g.Morale = 1
		}
	default:
		return g, false
	}
	return g, true
}

var noLocation = Location{Cell: NoCell}

func hasRecruit(rs []Recruit, r Recruit) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
