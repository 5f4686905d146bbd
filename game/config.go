package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var ErrInvalidConfig = errors.New("invalid game config")

type GameConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	MineRate  float64 `yaml:"mineRate"`
	EasyTiles int     `yaml:"easyTiles"`

	// Seed for board generation; 0 picks one from the current time
	Seed int64 `yaml:"seed"`

	Scoring  ScoringMode `yaml:"scoring"`
	WinBonus int         `yaml:"winBonus"`

	MaxDepth     int           `yaml:"maxDepth"`
	RenderBudget time.Duration `yaml:"renderBudget"`
	// Animate leaves cascades pending until Session.Advance drives them
	Animate bool `yaml:"animate"`

	// Snapshot to load board configuration from
	Snapshot *BoardSnapshot `yaml:"-"`
	// Whether to set all tiles as unrevealed when loading the Snapshot
	LoadSnapshotFresh bool `yaml:"loadSnapshotFresh"`

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string `yaml:"snapshotsDir"`

	Clock func() time.Time `yaml:"-"`
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Width:             30,
		Height:            16,
		MineRate:          0.2,
		EasyTiles:         0,
		Scoring:           AdjacencyScoring,
		WinBonus:          DefaultWinBonus,
		MaxDepth:          DefaultMaxDepth,
		RenderBudget:      DefaultRenderBudget,
		LoadSnapshotFresh: true,
	}
}

// LoadGameConfig reads a YAML config file over the defaults
func LoadGameConfig(path string) (GameConfig, error) {
	config := NewGameConfig()

	in, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(in, &config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return config, nil
}

func (config GameConfig) Validate() error {
	switch {
	case config.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, config.Width)
	case config.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, config.Height)
	case config.MineRate < 0 || config.MineRate >= 1:
		return fmt.Errorf("%w: mine rate must be in [0, 1), got %v", ErrInvalidConfig, config.MineRate)
	case config.EasyTiles < 0:
		return fmt.Errorf("%w: easy tiles must not be negative, got %d", ErrInvalidConfig, config.EasyTiles)
	case config.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, config.MaxDepth)
	case config.RenderBudget < 0:
		return fmt.Errorf("%w: render budget must not be negative, got %v", ErrInvalidConfig, config.RenderBudget)
	}

	if _, isValid := ScoringModes[config.Scoring.String()]; !isValid {
		return fmt.Errorf("%w: unknown scoring mode %v", ErrInvalidConfig, config.Scoring)
	}

	return nil
}

func (config GameConfig) onGameEnd(session *Session) {
	config.saveSnapshot(session)
}

func (config GameConfig) saveSnapshot(session *Session) {
	if config.SavedSnapshotsDir == "" {
		return
	}

	stat, err := os.Stat(config.SavedSnapshotsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("cannot access snapshots directory")
			return
		}
		if err := os.MkdirAll(config.SavedSnapshotsDir, 0777); err != nil {
			log.WithError(err).Warn("cannot create snapshots directory")
			return
		}
	} else if !stat.Mode().IsDir() {
		log.WithField("path", config.SavedSnapshotsDir).Warn("not a directory; cannot save snapshots to it")
		return
	}

	filename := config.generateSnapshotFilename(session.Status(), time.Now())
	path := filepath.Join(config.SavedSnapshotsDir, filename)

	serialized, err := session.Snapshot().Serialize()
	if err != nil {
		log.WithError(err).Warn("cannot serialize snapshot")
		return
	}

	// TODO: prevent duplicate filenames when two games end within a second
	if err := os.WriteFile(path, []byte(serialized), 0666); err != nil {
		log.WithError(err).Warn("cannot write snapshot")
		return
	}

	log.WithFields(logrus.Fields{
		"path":   path,
		"status": session.Status(),
	}).Info("saved board snapshot")
}

func (config GameConfig) generateSnapshotFilename(status Status, t time.Time) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	var stateStr string
	switch status {
	case Won:
		stateStr = "win"
	case Lost:
		stateStr = "loss"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	filenameBuilder.WriteString(".yaml")

	return filenameBuilder.String()
}
