// Package server exposes a game to remote players over websockets.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"euphoria/communication"
	"euphoria/game"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeTimeout     = 5 * time.Second
	handshakeTimeout = 5 * time.Second
	idleTimeout      = 5 * time.Minute
	outQueue         = 64
)

// Server is a Communicator whose players are websocket clients. Each seat
// may have at most one connection.
type Server struct {
	players  []string
	upgrader websocket.Upgrader
	actions  chan communication.Action

	mutex     sync.RWMutex
	gameState *game.GameState
	clients   map[string]*conn
}

type conn struct {
	player string
	seat   int
	out    chan []byte
}

func NewServer(players []string) *Server {
	return &Server{
		players: players,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		actions: make(chan communication.Action, 100),
		clients: map[string]*conn{},
	}
}

func (s *Server) GetGameState() *game.GameState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.gameState == nil {
		return nil
	}
	return s.gameState.Copy()
}

// UpdateGameState stores gs and sends every connected seat its view.
func (s *Server) UpdateGameState(gs *game.GameState) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.gameState = gs
	for _, c := range s.clients {
		s.push(c, communication.ServerMsg{Type: communication.TypeState, State: communication.NewView(gs, c.seat)})
	}
}

func (s *Server) SendAction(action communication.Action) {
	s.actions <- action
}

func (s *Server) ReceiveAction(ctx context.Context) (communication.Action, error) {
	select {
	case action := <-s.actions:
		return action, nil
	case <-ctx.Done():
		return communication.Action{}, ctx.Err()
	}
}

// Handler upgrades requests and serves one player per connection.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ws, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			log.Debug().Err(err).Msg("upgrade failed")
			return
		}
		defer ws.Close()

		c, err := s.handshake(ws)
		if err != nil {
			log.Info().Err(err).Str("remote", r.RemoteAddr).Msg("handshake refused")
			_ = writeJSON(ws, communication.ServerMsg{Type: communication.TypeError, Reason: err.Error()})
			_ = ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()), time.Now().Add(time.Second))
			return
		}
		defer s.leave(c)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b := <-c.out:
					_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		for {
			_ = ws.SetReadDeadline(time.Now().Add(idleTimeout))
			_, raw, err := ws.ReadMessage()
			if err != nil {
				return
			}
			msg, err := communication.DecodeClientMsg(raw)
			if err != nil {
				s.send(c, communication.ServerMsg{Type: communication.TypeError, Reason: err.Error()})
				continue
			}
			switch msg.Type {
			case communication.TypeIntent:
				action := communication.NewAction(c.player, *msg.Intent)
				select {
				case s.actions <- action:
				case <-ctx.Done():
					return
				}
				select {
				case err := <-action.Result:
					s.send(c, communication.ResultMsg(err))
				case <-ctx.Done():
					return
				}
			case communication.TypeQuery:
				s.send(c, s.view(c))
			case communication.TypeHello:
				s.send(c, communication.ServerMsg{Type: communication.TypeError, Reason: "already joined as " + c.player})
			}
		}
	}
}

func (s *Server) handshake(ws *websocket.Conn) (*conn, error) {
	_ = ws.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, raw, err := ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	msg, err := communication.DecodeClientMsg(raw)
	if err != nil {
		return nil, err
	}
	if msg.Type != communication.TypeHello {
		return nil, fmt.Errorf("expected %s, got %s", communication.TypeHello, msg.Type)
	}
	seat := slices.Index(s.players, msg.Player)
	if seat < 0 {
		return nil, fmt.Errorf("unknown player %q", msg.Player)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, taken := s.clients[msg.Player]; taken {
		return nil, fmt.Errorf("player %q is already connected", msg.Player)
	}
	c := &conn{player: msg.Player, seat: seat, out: make(chan []byte, outQueue)}
	s.clients[msg.Player] = c
	s.push(c, communication.ServerMsg{Type: communication.TypeWelcome, Player: c.player, Seat: seat})
	if s.gameState != nil {
		s.push(c, communication.ServerMsg{Type: communication.TypeState, State: communication.NewView(s.gameState, seat)})
	}
	log.Info().Str("player", c.player).Int("seat", seat).Msg("player joined")
	return c, nil
}

func (s *Server) leave(c *conn) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.clients, c.player)
	log.Info().Str("player", c.player).Msg("player left")
}

func (s *Server) view(c *conn) communication.ServerMsg {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	msg := communication.ServerMsg{Type: communication.TypeState}
	if s.gameState != nil {
		msg.State = communication.NewView(s.gameState, c.seat)
	}
	return msg
}

func (s *Server) send(c *conn, msg communication.ServerMsg) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	s.push(c, msg)
}

// push queues msg for c without blocking. Callers hold the mutex. A client
// too slow to drain its queue loses messages and can query again.
func (s *Server) push(c *conn, msg communication.ServerMsg) {
	b, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("type", msg.Type).Msg("encode message")
		return
	}
	select {
	case c.out <- b:
	default:
		log.Warn().Str("player", c.player).Str("type", msg.Type).Msg("dropping message for slow client")
	}
}

func writeJSON(ws *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return ws.WriteMessage(websocket.TextMessage, b)
}
