// Package config loads game, search and service settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"euphoria/game"
	"euphoria/meta"
	"euphoria/searcher"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Game      Game               `yaml:"game"`
	Penalties []game.PenaltySpec `yaml:"penalties"`
	Search    Search             `yaml:"search"`
	Log       Log                `yaml:"log"`
	Storage   Storage            `yaml:"storage"`
	Server    Server             `yaml:"server"`
}

type Game struct {
	Players           []string `yaml:"players"`
	Seed              uint64   `yaml:"seed"`
	Revision          int      `yaml:"revision"`
	StartingAuthority int      `yaml:"starting_authority"`
	StartingWorkers   int      `yaml:"starting_workers"`
	KnowledgeLimit    int      `yaml:"knowledge_limit"`
	MaxTurns          int      `yaml:"max_turns"`
	Debug             bool     `yaml:"debug"`
}

type Search struct {
	Goroutines  int           `yaml:"goroutines"`
	Episodes    int           `yaml:"episodes"`
	Duration    time.Duration `yaml:"duration"`
	Cutoff      int           `yaml:"cutoff"`
	Evaluation  string        `yaml:"evaluation"`
	Temperature float64       `yaml:"temperature"` // 0 plays the most visited move
	Metrics     bool          `yaml:"metrics"`
}

type Log struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

type Storage struct {
	ReplayDir string `yaml:"replay_dir"` // empty disables replays
	IndexPath string `yaml:"index_path"` // empty disables the index
}

type Server struct {
	Addr string `yaml:"addr"`
}

// Default is the standard two-player setup.
func Default() Config {
	opts := game.DefaultOptions("alice", "bob")
	return Config{
		Game: Game{
			Players:           opts.Players,
			Revision:          opts.Revision,
			StartingAuthority: opts.StartingAuthority,
			StartingWorkers:   opts.StartingWorkers,
			KnowledgeLimit:    opts.KnowledgeLimit,
			MaxTurns:          meta.MAX_TURNS,
		},
		Penalties: game.DefaultPenalties(),
		Search: Search{
			Goroutines: meta.GO_ROUTINES,
			Episodes:   meta.EPISODES,
			Cutoff:     meta.WITH_CUTOFF,
			Evaluation: "economy",
		},
		Log:     Log{Level: "info", Console: true},
		Storage: Storage{ReplayDir: "replays", IndexPath: "games.db"},
		Server:  Server{Addr: meta.ADDR},
	}
}

// Load reads path over the defaults, so a file only names what it changes.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	g := c.Game
	if n := len(g.Players); n < meta.MIN_PLAYERS || n > meta.MAX_PLAYERS {
		errs = append(errs, fmt.Errorf("game.players: need %d to %d players, got %d", meta.MIN_PLAYERS, meta.MAX_PLAYERS, n))
	}
	for i, name := range g.Players {
		if name == "" {
			errs = append(errs, fmt.Errorf("game.players[%d]: empty name", i))
		} else if slices.Index(g.Players, name) != i {
			errs = append(errs, fmt.Errorf("game.players: %q appears twice", name))
		}
	}
	if g.Revision < game.FirstRevision || g.Revision > game.CurrentRevision {
		errs = append(errs, fmt.Errorf("game.revision: %d is not in [%d, %d]", g.Revision, game.FirstRevision, game.CurrentRevision))
	}
	if g.StartingAuthority <= 0 {
		errs = append(errs, errors.New("game.starting_authority must be positive"))
	}
	if g.StartingWorkers < 1 || g.StartingWorkers > game.MaxWorkers {
		errs = append(errs, fmt.Errorf("game.starting_workers: need 1 to %d", game.MaxWorkers))
	}
	if g.KnowledgeLimit <= 0 {
		errs = append(errs, errors.New("game.knowledge_limit must be positive"))
	}
	if g.MaxTurns < 0 {
		errs = append(errs, errors.New("game.max_turns must not be negative"))
	}
	if _, err := game.CompilePenalties(c.Penalties); err != nil {
		errs = append(errs, fmt.Errorf("penalties: %w", err))
	}

	s := c.Search
	if s.Episodes <= 0 && s.Duration <= 0 {
		errs = append(errs, errors.New("search: set episodes or duration"))
	}
	if _, ok := game.Evaluations[s.Evaluation]; !ok {
		errs = append(errs, fmt.Errorf("search.evaluation: unknown %q", s.Evaluation))
	}
	if s.Temperature < 0 {
		errs = append(errs, errors.New("search.temperature must not be negative"))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// GameOptions compiles the game section and penalty table.
func (c Config) GameOptions() (game.Options, error) {
	penalties, err := game.CompilePenalties(c.Penalties)
	if err != nil {
		return game.Options{}, err
	}
	g := c.Game
	return game.Options{
		Players:           slices.Clone(g.Players),
		Seed:              g.Seed,
		Revision:          g.Revision,
		StartingAuthority: g.StartingAuthority,
		StartingWorkers:   g.StartingWorkers,
		KnowledgeLimit:    g.KnowledgeLimit,
		MaxTurns:          g.MaxTurns,
		Penalties:         penalties,
		Debug:             g.Debug,
	}, nil
}

// MCTS builds a searcher from the search section.
func (s Search) MCTS() *searcher.MCTS {
	options := []searcher.Option{}
	if s.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(s.Episodes))
	}
	if s.Duration > 0 {
		options = append(options, searcher.WithDuration(s.Duration))
	}
	if s.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(s.Cutoff))
	}
	if eval, ok := game.Evaluations[s.Evaluation]; ok {
		options = append(options, searcher.WithEvaluationFn(eval))
	}
	if s.Metrics {
		options = append(options, searcher.WithMetrics())
	}
	return searcher.NewMCTS(s.Goroutines, options...)
}
