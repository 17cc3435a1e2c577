package server

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/gob"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/config"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/capability"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/driver"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/replay"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/resolve"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/repository"
)

// Server pairs connecting clients into matches and runs each match on its
// own goroutine. The resolution engine inside a match stays single-threaded;
// concurrency exists only between matches.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	repo   *repository.GameRepository

	upgrader websocket.Upgrader

	mu      sync.Mutex
	waiting []*Session
}

// New creates a server. repo may be nil to disable persistence.
func New(cfg *config.Config, repo *repository.GameRepository, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		repo:   repo,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ListenAndServe blocks serving the /ws endpoint.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.logger.Info("websocket server listening",
		zap.String("address", s.cfg.Server.Address),
	)
	return http.ListenAndServe(s.cfg.Server.Address, mux)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	seat := len(s.waiting)
	sess := NewSession(seat, conn, s.logger)
	s.waiting = append(s.waiting, sess)
	ready := len(s.waiting) >= s.cfg.Game.PlayerCount
	var table []*Session
	if ready {
		table = s.waiting
		s.waiting = nil
	}
	s.mu.Unlock()

	s.logger.Info("client seated", zap.Int("seat", seat), zap.Bool("table_ready", ready))
	if ready {
		go s.runMatch(table)
	}
}

func (s *Server) runMatch(sessions []*Session) {
	gameCfg := game.Config{
		PlayerCount:   s.cfg.Game.PlayerCount,
		InitialHealth: s.cfg.Game.InitialHealth,
		Seed:          s.cfg.Game.Seed,
	}
	if gameCfg.Seed == 0 {
		gameCfg.Seed = time.Now().UnixNano()
	}

	g := game.New(gameCfg, s.logger)
	caps := capability.NewSet()
	registry := resolve.DefaultRegistry()
	ruleSvc := rules.NewService(g, caps, rules.NewUsageCounter(), s.logger)
	bus := events.NewBus()
	mover := game.NewMover(s.logger)

	// Deal opening hands before the first turn.
	for _, p := range g.Players {
		mover.Draw(g, p, 4)
	}

	bySeat := make(map[int]*Session, len(sessions))
	for _, sess := range sessions {
		bySeat[sess.Seat()] = sess
	}
	bus.Subscribe(func(evt events.Event) {
		for _, sess := range sessions {
			sess.SendEvent(evt)
		}
	})

	recorder := replay.NewRecorder(g.ID, gameCfg, &seatRouter{sessions: bySeat})
	d := driver.New(g, ruleSvc, caps, registry, mover, bus, recorder, s.logger)

	winner, err := d.Run()
	failureCode := ""
	if err != nil {
		failureCode = err.Error()
		s.logger.Error("match aborted", zap.String("game_id", g.ID), zap.Error(err))
	}

	for _, sess := range sessions {
		sess.SendGameOver(winner)
		sess.Close()
	}

	s.persist(g, recorder.Log(), winner, failureCode)
}

func (s *Server) persist(g *game.Game, log *replay.Log, winner int, failureCode string) {
	if dir := s.cfg.Game.ReplayDir; dir != "" {
		if err := log.SaveToFile(dir); err != nil {
			s.logger.Warn("failed to save replay file", zap.Error(err))
		}
	}
	if s.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.repo.SaveResult(ctx, repository.GameResult{
		GameID:      g.ID,
		WinnerSeat:  winner,
		Turns:       g.Turn,
		FailureCode: failureCode,
		FinishedAt:  time.Now(),
	}); err != nil {
		s.logger.Warn("failed to save game result", zap.Error(err))
		return
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(zw).Encode(log); err != nil {
		s.logger.Warn("failed to encode replay blob", zap.Error(err))
		return
	}
	if err := zw.Close(); err != nil {
		s.logger.Warn("failed to compress replay blob", zap.Error(err))
		return
	}
	if err := s.repo.SaveReplay(ctx, g.ID, buf.Bytes()); err != nil {
		s.logger.Warn("failed to save replay blob", zap.Error(err))
	}
}
