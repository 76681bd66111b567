package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Ledger errors.
var (
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrAmbiguous            = errors.New("ambiguous match")
	ErrNoMatch              = errors.New("no match")
)

// RejectCode classifies an illegal intent.
type RejectCode int

const (
	WrongPhase RejectCode = iota + 1
	IllegalSource
	IllegalDestination
	IncompletePayment
	DeclineNotAllowed
	GameOver
	NotYourTurn
)

var rejectNames = map[RejectCode]string{
	WrongPhase:         "wrong phase",
	IllegalSource:      "illegal source",
	IllegalDestination: "illegal destination",
	IncompletePayment:  "incomplete payment",
	DeclineNotAllowed:  "decline not allowed",
	GameOver:           "game over",
	NotYourTurn:        "not your turn",
}

func (c RejectCode) String() string {
	if name, ok := rejectNames[c]; ok {
		return name
	}
	return "unknown"
}

// Rejection is returned for intents that are illegal in the current phase or
// selection. The state is left untouched.
type Rejection struct {
	Code   RejectCode
	Phase  Phase
	Intent Intent
	Reason string
}

func (r *Rejection) Error() string {
	if r.Reason == "" {
		return fmt.Sprintf("%s: %s in %s", r.Code, r.Intent, r.Phase)
	}
	return fmt.Sprintf("%s: %s in %s: %s", r.Code, r.Intent, r.Phase, r.Reason)
}

// Is matches any rejection with the same code, so the sentinels below work
// with errors.Is.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Code == r.Code
}

var (
	ErrWrongPhase         = &Rejection{Code: WrongPhase}
	ErrIllegalSource      = &Rejection{Code: IllegalSource}
	ErrIllegalDestination = &Rejection{Code: IllegalDestination}
	ErrIncompletePayment  = &Rejection{Code: IncompletePayment}
	ErrDeclineNotAllowed  = &Rejection{Code: DeclineNotAllowed}
	ErrGameOver           = &Rejection{Code: GameOver}
	ErrNotYourTurn        = &Rejection{Code: NotYourTurn}
)

func (gs *GameState) reject(code RejectCode, in Intent, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Phase: gs.Phase, Intent: in, Reason: fmt.Sprintf(format, args...)}
}

// InvariantError is raised when the engine reaches a state its own rules
// should have made impossible. It is never recovered inside the engine.
type InvariantError struct {
	Phase    Phase
	Revision int
	Message  string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s (revision %d): %s", e.Phase, e.Revision, e.Message)
}

func (gs *GameState) fatal(format string, args ...any) {
	err := InvariantError{Phase: gs.Phase, Revision: gs.Revision, Message: fmt.Sprintf(format, args...)}
	log.Error().Int("stack", len(gs.Stack)).Str("phase", gs.Phase.String()).Msg(err.Message)
	panic(err)
}
