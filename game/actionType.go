package game

// ActionKind tells hooks what the player is doing when a cost or benefit is
// being handled.
type ActionKind int

const (
	NoAction ActionKind = iota
	PlaceAction
	RetrieveAction
	PenaltyAction
	DiscardAction
	AbilityAction
	TurnAction
	DilemmaAction
)

var actionNames = [...]string{"none", "place", "retrieve", "penalty", "discard", "ability", "turn", "dilemma"}

func (a ActionKind) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Context is what the resolver, the collector and the hooks know about the
// step being resolved.
type Context struct {
	Cell     CellID
	Faction  Allegiance // allegiance of the destination cell
	Action   ActionKind
	Original Cost     // cost before hook rewrites
	Paid     Payment  // set for after-payment hooks
	Settled  Cost     // the cost node Paid settled
	Held     Holdings // holdings just before Paid was taken
	Granted  Grant    // set for after-benefit hooks
}

// NoContext is used for costs and benefits not tied to a board cell.
func NoContext(action ActionKind) Context {
	return Context{Cell: NoCell, Action: action}
}

func (gs *GameState) cellContext(cell CellID, action ActionKind) Context {
	if cell == NoCell {
		return NoContext(action)
	}
	c := gs.Board.Cell(cell)
	return Context{Cell: cell, Faction: c.Faction, Action: action, Original: c.Cost}
}
