// Package client plays a seat of a remote game over a websocket.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"euphoria/communication"
	"euphoria/game"

	"github.com/gorilla/websocket"
)

// RemoteError is a refusal reported by the server.
type RemoteError struct {
	Code   string
	Reason string
}

func (e *RemoteError) Error() string {
	if e.Code == "" {
		return e.Reason
	}
	return e.Code + ": " + e.Reason
}

type Client struct {
	Player string
	Seat   int

	ws    *websocket.Conn
	state *communication.View
}

// Dial connects to url and joins as player.
func Dial(ctx context.Context, url, player string) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Client{Player: player, ws: ws}
	if err := c.write(ctx, communication.ClientMsg{Type: communication.TypeHello, Player: player}); err != nil {
		ws.Close()
		return nil, err
	}
	msg, err := c.Next(ctx)
	if err != nil {
		ws.Close()
		return nil, err
	}
	if msg.Type != communication.TypeWelcome {
		ws.Close()
		return nil, &RemoteError{Code: msg.Code, Reason: msg.Reason}
	}
	c.Seat = msg.Seat
	return c, nil
}

func (c *Client) Close() error {
	_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return c.ws.Close()
}

// State is the last view received, or nil.
func (c *Client) State() *communication.View {
	return c.state
}

// Next reads one message from the server. State messages also update State.
func (c *Client) Next(ctx context.Context) (communication.ServerMsg, error) {
	var msg communication.ServerMsg
	deadline, _ := ctx.Deadline()
	_ = c.ws.SetReadDeadline(deadline)
	_, raw, err := c.ws.ReadMessage()
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, fmt.Errorf("decode %s: %w", raw, err)
	}
	if msg.Type == communication.TypeState && msg.State != nil {
		c.state = msg.State
	}
	return msg, nil
}

// SendIntent plays in and waits for the server's verdict. Views that arrive
// meanwhile are kept.
func (c *Client) SendIntent(ctx context.Context, in game.Intent) error {
	if err := c.write(ctx, communication.ClientMsg{Type: communication.TypeIntent, Intent: &in}); err != nil {
		return err
	}
	for {
		msg, err := c.Next(ctx)
		if err != nil {
			return err
		}
		switch msg.Type {
		case communication.TypeResult:
			if msg.OK {
				return nil
			}
			return &RemoteError{Code: msg.Code, Reason: msg.Reason}
		case communication.TypeError:
			return &RemoteError{Reason: msg.Reason}
		}
	}
}

// Query asks for a fresh view.
func (c *Client) Query(ctx context.Context) (*communication.View, error) {
	if err := c.write(ctx, communication.ClientMsg{Type: communication.TypeQuery}); err != nil {
		return nil, err
	}
	for {
		msg, err := c.Next(ctx)
		if err != nil {
			return nil, err
		}
		switch msg.Type {
		case communication.TypeState:
			return msg.State, nil
		case communication.TypeError:
			return nil, &RemoteError{Reason: msg.Reason}
		}
	}
}

func (c *Client) write(ctx context.Context, msg communication.ClientMsg) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(5 * time.Second)
	}
	_ = c.ws.SetWriteDeadline(deadline)
	return c.ws.WriteMessage(websocket.TextMessage, b)
}
