// Package replay records the inputs that make a game reproducible — the
// seed, the setup config, and every choice answer in order — and re-runs
// them through a fresh engine to verify the determinism contract.
package replay

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/capability"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/driver"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/resolve"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
)

// Log is the complete replayable record of one game: feed the same seed,
// config and ordered answers through a fresh engine and every state
// transition reproduces bit-identically.
type Log struct {
	GameID   string
	Config   game.Config
	Choices  []resolve.ChoiceResult
	Recorded time.Time
	Version  int
}

// Recorder wraps a live ChoiceProvider and appends every answer to the log.
type Recorder struct {
	inner resolve.ChoiceProvider
	log   *Log
}

// NewRecorder starts recording answers flowing through the provider.
func NewRecorder(gameID string, cfg game.Config, inner resolve.ChoiceProvider) *Recorder {
	return &Recorder{
		inner: inner,
		log: &Log{
			GameID:   gameID,
			Config:   cfg,
			Recorded: time.Now(),
			Version:  1,
		},
	}
}

// Ask implements resolve.ChoiceProvider.
func (r *Recorder) Ask(req resolve.ChoiceRequest) resolve.ChoiceResult {
	res := r.inner.Ask(req)
	r.log.Choices = append(r.log.Choices, res)
	return res
}

// Log returns the log recorded so far.
func (r *Recorder) Log() *Log { return r.log }

// SaveToFile writes the log to <dir>/<gameID>.replay, gob-encoded and
// gzipped.
func (l *Log) SaveToFile(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	filename := filepath.Join(dir, fmt.Sprintf("%s.replay", l.GameID))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	defer zw.Close()

	if err := gob.NewEncoder(zw).Encode(l); err != nil {
		return fmt.Errorf("failed to encode replay log: %w", err)
	}
	return nil
}

// LoadFromFile reads a log written by SaveToFile.
func LoadFromFile(dir, gameID string) (*Log, error) {
	filename := filepath.Join(dir, fmt.Sprintf("%s.replay", gameID))
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer zr.Close()

	var log Log
	if err := gob.NewDecoder(zr).Decode(&log); err != nil {
		return nil, fmt.Errorf("failed to decode replay log: %w", err)
	}
	if log.Version != 1 {
		return nil, fmt.Errorf("unsupported replay version: %d", log.Version)
	}
	return &log, nil
}

// Setup customizes a freshly built engine before a run — typically attaching
// hero skills or extra card effects. It must be the same setup the original
// run used, or determinism is off the table.
type Setup func(g *game.Game, caps *capability.Set, registry *resolve.Registry)

// Rerun replays the log through a fresh engine instance and returns the
// resolution records the run produced.
func Rerun(log *Log, setup Setup, logger *zap.Logger) ([]resolve.Record, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := game.New(log.Config, logger)
	caps := capability.NewSet()
	registry := resolve.DefaultRegistry()
	if setup != nil {
		setup(g, caps, registry)
	}
	ruleSvc := rules.NewService(g, caps, rules.NewUsageCounter(), logger)
	bus := events.NewBus()
	mover := game.NewMover(logger)
	provider := &resolve.ScriptedProvider{Script: log.Choices}

	d := driver.New(g, ruleSvc, caps, registry, mover, bus, provider, logger)
	if _, err := d.Run(); err != nil {
		return nil, fmt.Errorf("replay run failed: %w", err)
	}
	return d.Records(), nil
}

// VerifyDeterminism compares two record sequences by resolver identity and
// result, the replay contract's definition of "identical run".
func VerifyDeterminism(original, replayed []resolve.Record) error {
	if len(original) != len(replayed) {
		return fmt.Errorf("record count mismatch: %d vs %d", len(original), len(replayed))
	}
	for i := range original {
		a, b := original[i], replayed[i]
		if a.Resolver != b.Resolver {
			return fmt.Errorf("record %d resolver mismatch: %s vs %s", i, a.Resolver, b.Resolver)
		}
		if a.Result.Success != b.Result.Success || a.Result.Code != b.Result.Code {
			return fmt.Errorf("record %d result mismatch: %+v vs %+v", i, a.Result, b.Result)
		}
	}
	return nil
}
