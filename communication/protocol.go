package communication

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"euphoria/game"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Message types.
const (
	TypeHello   = "hello"
	TypeIntent  = "intent"
	TypeQuery   = "query"
	TypeWelcome = "welcome"
	TypeResult  = "result"
	TypeState   = "state"
	TypeError   = "error"
)

// ClientMsg is anything a client sends. Only the fields of Type are set.
type ClientMsg struct {
	Type   string       `json:"type"`
	Player string       `json:"player,omitempty"`
	Intent *game.Intent `json:"intent,omitempty"`
}

// ServerMsg is anything the server sends.
type ServerMsg struct {
	Type   string `json:"type"`
	Player string `json:"player,omitempty"`
	Seat   int    `json:"seat,omitempty"`
	OK     bool   `json:"ok,omitempty"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
	State  *View  `json:"state,omitempty"`
}

//go:embed intent.schema.json
var clientSchemaSource string

var clientSchema = jsonschema.MustCompileString("intent.schema.json", clientSchemaSource)

// DecodeClientMsg validates raw against the client message schema before
// decoding it.
func DecodeClientMsg(raw []byte) (ClientMsg, error) {
	var msg ClientMsg
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return msg, fmt.Errorf("malformed message: %w", err)
	}
	if err := clientSchema.Validate(doc); err != nil {
		return msg, fmt.Errorf("invalid message: %w", err)
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, fmt.Errorf("invalid message: %w", err)
	}
	return msg, nil
}

// ResultMsg reports the outcome of an intent. Rejections carry their code.
func ResultMsg(err error) ServerMsg {
	if err == nil {
		return ServerMsg{Type: TypeResult, OK: true}
	}
	msg := ServerMsg{Type: TypeResult, Reason: err.Error()}
	var r *game.Rejection
	if errors.As(err, &r) {
		msg.Code = r.Code.String()
		msg.Reason = r.Reason
	}
	return msg
}
