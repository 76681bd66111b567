package game

// Step is the resume point of a frame: what runs when the frame reaches the
// top of the stack, or what a suspended frame waits for.
type Step int

const (
	StepNone Step = iota // as a decline target: decline is illegal
	StepSkip
	StepAbort

	StepBeforePlacement
	StepPay
	StepPlace
	StepCollect
	StepGrant
	StepAfterPlacement

	StepRetrievePay
	StepMoraleLoss
	StepReroll

	StepKnowledgeCheck
	StepMoraleCheck
	StepPenalty
	StepEndAction
	StepNextTurn
	StepResolveDilemma
	StepOpposeDilemma

	StepAwaitPayment
	StepAwaitOptional
	StepAwaitBenefit
	StepAwaitOptionalBenefit
	StepAwaitDiscard
	StepAwaitPenalty
	NumSteps
)

var stepNames = [NumSteps]string{
	"none", "skip", "abort",
	"before-placement", "pay", "place", "collect", "grant", "after-placement",
	"retrieve-pay", "morale-loss", "reroll",
	"knowledge-check", "morale-check", "penalty", "end-action", "next-turn",
	"resolve-dilemma", "oppose-dilemma",
	"await-payment", "await-optional", "await-benefit", "await-optional-benefit", "await-discard", "await-penalty",
}

func (s Step) String() string {
	if s < 0 || s >= NumSteps {
		return "unknown"
	}
	return stepNames[s]
}

// Interactive steps hold the stack until an intent resumes them.
func (s Step) Interactive() bool {
	return s >= StepAwaitPayment && s < NumSteps
}

// Frame is one entry of the continuation stack. It holds plain data only,
// so a copied state resumes an in-flight action exactly.
type Frame struct {
	Step        Step
	Cell        CellID
	Cost        Cost // pending cost
	Original    Cost // cost before hook rewrites
	Benefit     Benefit
	Actor       int // player whose action this is
	Responder   int // player who supplies the next intent
	ResumePhase Phase
	ReturnPhase Phase // phase active when the frame was suspended
	Suspended   bool
	OnPaid      Step
	OnDecline   Step
	Action      ActionKind
	Ability     string
	Amount      int
}

func (gs *GameState) push(f Frame) {
	gs.Stack = append(gs.Stack, f)
}

func (gs *GameState) pop() Frame {
	if len(gs.Stack) == 0 {
		gs.fatal("pop from an empty continuation stack")
	}
	f := gs.Stack[len(gs.Stack)-1]
	gs.Stack = gs.Stack[:len(gs.Stack)-1]
	return f
}

func (gs *GameState) top() *Frame {
	if len(gs.Stack) == 0 {
		return nil
	}
	return &gs.Stack[len(gs.Stack)-1]
}

// Suspend pushes an interactive frame and hands control to its responder.
func (gs *GameState) Suspend(f Frame) {
	if !f.Step.Interactive() {
		gs.fatal("suspending non-interactive step %s", f.Step)
	}
	f.Suspended = false
	gs.push(f)
	gs.enter()
}

// enter switches to the phase of the interactive frame on top, recording
// the phase to return to the first time the frame is entered.
func (gs *GameState) enter() {
	f := gs.top()
	if !f.Suspended {
		f.ReturnPhase = gs.Phase
		f.Suspended = true
	}
	gs.Phase = f.ResumePhase
	gs.Current = f.Responder
	gs.Tender = Payment{}
	gs.Chosen = Grant{}
	gs.syncSelection()
}

// ResumeOnConfirm settles the top frame with the current selection and
// continues at its paid resume point.
func (gs *GameState) ResumeOnConfirm() error {
	f := gs.top()
	if f == nil || !f.Step.Interactive() {
		return gs.reject(WrongPhase, Confirm(), "nothing to confirm")
	}
	ctx := gs.frameContext(f)
	var payment Payment
	var grant Grant
	var ok bool
	benefit := gs.Phase.IsBenefit()
	if benefit {
		grant, ok = gs.choiceComplete(f)
	} else {
		payment, ok = gs.tenderComplete(f)
	}
	if !ok {
		return gs.reject(IncompletePayment, Confirm(), "selection incomplete")
	}

	frame := gs.leave()
	if frame.OnPaid != StepNone {
		gs.push(frame.resume(frame.OnPaid))
	}
	if benefit {
		gs.receive(frame.Responder, grant, ctx)
	} else {
		gs.settle(frame.Responder, frame.Cost, payment, ctx)
	}
	gs.advance()
	return nil
}

// ResumeOnDecline drops the top frame and continues at its declined resume
// point. Aborting restores the state from before the action and is only
// allowed while nothing in the action has committed.
func (gs *GameState) ResumeOnDecline() error {
	f := gs.top()
	if f == nil || !f.Step.Interactive() {
		return gs.reject(WrongPhase, Decline(), "nothing to decline")
	}
	switch {
	case f.OnDecline == StepNone:
		return gs.reject(DeclineNotAllowed, Decline(), "%s is mandatory", f.Step)
	case f.OnDecline == StepAbort && (gs.Committed || gs.Checkpoint == nil):
		return gs.reject(DeclineNotAllowed, Decline(), "action already committed")
	case f.OnDecline == StepAbort:
		gs.abortAction()
		return nil
	}
	frame := gs.leave()
	gs.push(frame.resume(frame.OnDecline))
	gs.advance()
	return nil
}

// leave pops the top frame and restores the phase and player that were
// active when it was suspended.
func (gs *GameState) leave() Frame {
	f := gs.pop()
	gs.Phase = f.ReturnPhase
	gs.Current = f.Actor
	gs.Tender = Payment{}
	gs.Chosen = Grant{}
	return f
}

// resume builds the frame that continues f at step.
func (f Frame) resume(step Step) Frame {
	return Frame{
		Step:      step,
		Cell:      f.Cell,
		Benefit:   f.Benefit,
		Actor:     f.Actor,
		Responder: f.Actor,
		Action:    f.Action,
		Ability:   f.Ability,
		Amount:    f.Amount,
	}
}

// abortAction discards the whole action, stack included.
func (gs *GameState) abortAction() {
	*gs = *gs.Checkpoint.Copy()
}

// advance runs frames until an interactive one is on top or the stack is
// empty, then hands control back to the player whose turn it is.
func (gs *GameState) advance() {
	for len(gs.Stack) > 0 {
		if gs.Phase == GameoverPhase {
			return
		}
		if gs.top().Step.Interactive() {
			gs.enter()
			return
		}
		gs.exec(gs.pop())
	}
	if gs.Phase == GameoverPhase {
		return
	}
	gs.Current = gs.Turn
	if gs.Acted {
		gs.Phase = EndTurnPhase
	} else {
		gs.Phase = PlaceOrRetrievePhase
	}
}

func (gs *GameState) frameContext(f *Frame) Context {
	ctx := gs.cellContext(f.Cell, f.Action)
	if f.Original != nil {
		ctx.Original = f.Original
	}
	return ctx
}

// syncSelection moves between a selection phase and its confirm variant as
// the selection becomes complete or incomplete.
func (gs *GameState) syncSelection() {
	f := gs.top()
	if f == nil || !f.Step.Interactive() {
		return
	}
	var complete bool
	if gs.Phase.IsBenefit() {
		_, complete = gs.choiceComplete(f)
	} else if gs.Phase.IsPayment() {
		_, complete = gs.tenderComplete(f)
	}
	gs.Phase = gs.Phase.confirmed(complete)
}

func (gs *GameState) assignments(f *Frame) []Payment {
	return Assignments(gs.holdings(f.Responder, gs.frameContext(f)), f.Cost)
}

// tenderFits reports whether t can still grow into a full assignment.
func (gs *GameState) tenderFits(f *Frame, t Payment) bool {
	for _, a := range gs.assignments(f) {
		if t.within(a) {
			return true
		}
	}
	return false
}

// tenderComplete returns the payment the tender settles. An empty tender
// settles a frame with a single assignment.
func (gs *GameState) tenderComplete(f *Frame) (Payment, bool) {
	as := gs.assignments(f)
	if gs.Tender.IsZero() && len(as) == 1 {
		return as[0], true
	}
	for _, a := range as {
		if a == gs.Tender {
			return a, true
		}
	}
	return Payment{}, false
}

func (gs *GameState) choiceFits(f *Frame, c Grant) bool {
	for _, o := range gs.effectiveOptions(f.Responder, f.Benefit) {
		if c.within(o.selectable()) {
			return true
		}
	}
	return false
}

// choiceComplete returns the option the current choice picks out.
func (gs *GameState) choiceComplete(f *Frame) (Grant, bool) {
	opts := gs.effectiveOptions(f.Responder, f.Benefit)
	if gs.Chosen.IsZero() && len(opts) == 1 {
		return opts[0], true
	}
	for _, o := range opts {
		if o.selectable() == gs.Chosen {
			return o, true
		}
	}
	return Grant{}, false
}
