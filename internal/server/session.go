// Package server exposes games over WebSocket: each connected client owns a
// seat, receives engine events, and answers choice requests. The session is
// the remote implementation of the engine's choice callback.
package server

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/resolve"
)

// Frame types exchanged with clients.
const (
	frameChoiceRequest = "choice_request"
	frameChoiceResult  = "choice_result"
	frameEvent         = "event"
	frameGameOver      = "game_over"
)

type frame struct {
	Type    string                `json:"type"`
	Request *resolve.ChoiceRequest `json:"request,omitempty"`
	Result  *resolve.ChoiceResult  `json:"result,omitempty"`
	Event   *events.Event          `json:"event,omitempty"`
	Winner  *int                   `json:"winner,omitempty"`
}

// Session is one seated client connection. Ask blocks on the socket until
// the client answers the outstanding request; any transport failure yields a
// decline answer, keeping the provider contract total.
type Session struct {
	seat   int
	conn   *websocket.Conn
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSession wraps an upgraded connection.
func NewSession(seat int, conn *websocket.Conn, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{seat: seat, conn: conn, logger: logger}
}

// Seat returns the seat this session controls.
func (s *Session) Seat() int { return s.seat }

// Ask implements resolve.ChoiceProvider for this seat.
func (s *Session) Ask(req resolve.ChoiceRequest) resolve.ChoiceResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	decline := resolve.ChoiceResult{RequestID: req.ID, Seat: req.Seat, Kind: req.Kind}

	if err := s.conn.WriteJSON(frame{Type: frameChoiceRequest, Request: &req}); err != nil {
		s.logger.Warn("failed to send choice request",
			zap.Int("seat", s.seat),
			zap.Error(err),
		)
		return decline
	}
	for {
		var f frame
		if err := s.conn.ReadJSON(&f); err != nil {
			s.logger.Warn("failed to read choice result",
				zap.Int("seat", s.seat),
				zap.Error(err),
			)
			return decline
		}
		if f.Type != frameChoiceResult || f.Result == nil {
			continue
		}
		if f.Result.RequestID != req.ID {
			s.logger.Debug("dropping stale choice result",
				zap.String("expected", req.ID),
				zap.String("got", f.Result.RequestID),
			)
			continue
		}
		res := *f.Result
		res.Seat = req.Seat
		res.Kind = req.Kind
		return res
	}
}

// SendEvent forwards an engine event to the client. Best effort.
func (s *Session) SendEvent(evt events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteJSON(frame{Type: frameEvent, Event: &evt}); err != nil {
		s.logger.Debug("failed to forward event", zap.Error(err))
	}
}

// SendGameOver tells the client the game ended.
func (s *Session) SendGameOver(winner int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteJSON(frame{Type: frameGameOver, Winner: &winner}); err != nil {
		s.logger.Debug("failed to send game over", zap.Error(err))
	}
}

// Close closes the underlying connection.
func (s *Session) Close() {
	_ = s.conn.Close()
}

// seatRouter fans choice requests out to the session owning the asked seat.
type seatRouter struct {
	sessions map[int]*Session
}

// Ask implements resolve.ChoiceProvider.
func (r *seatRouter) Ask(req resolve.ChoiceRequest) resolve.ChoiceResult {
	if sess, ok := r.sessions[req.Seat]; ok {
		return sess.Ask(req)
	}
	return resolve.ChoiceResult{RequestID: req.ID, Seat: req.Seat, Kind: req.Kind}
}
