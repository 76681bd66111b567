// Package replay stores games as compressed JSON lines and replays them to
// check that the rules still produce the recorded states.
package replay

import (
	"time"

	"euphoria/game"
)

// Entry kinds, one per line.
const (
	KindHeader  = "header"
	KindStep    = "step"
	KindTrailer = "trailer"
)

// Entry is one line of a replay file. Exactly one of the pointers is set,
// matching Kind.
type Entry struct {
	Kind    string   `json:"kind"`
	Header  *Header  `json:"header,omitempty"`
	Step    *Step    `json:"step,omitempty"`
	Trailer *Trailer `json:"trailer,omitempty"`
}

type Header struct {
	Game    string    `json:"game"`
	Started time.Time `json:"started"`
	Options Options   `json:"options"`
}

// Options is the serializable form of game.Options.
type Options struct {
	Players           []string           `json:"players"`
	Seed              uint64             `json:"seed"`
	Revision          int                `json:"revision"`
	StartingAuthority int                `json:"starting_authority"`
	StartingWorkers   int                `json:"starting_workers"`
	KnowledgeLimit    int                `json:"knowledge_limit"`
	MaxTurns          int                `json:"max_turns"`
	Penalties         []game.PenaltySpec `json:"penalties"`
}

func NewOptions(opts game.Options) Options {
	return Options{
		Players:           opts.Players,
		Seed:              opts.Seed,
		Revision:          opts.Revision,
		StartingAuthority: opts.StartingAuthority,
		StartingWorkers:   opts.StartingWorkers,
		KnowledgeLimit:    opts.KnowledgeLimit,
		MaxTurns:          opts.MaxTurns,
		Penalties:         game.Specs(opts.Penalties),
	}
}

// GameOptions compiles the penalties back.
func (o Options) GameOptions() (game.Options, error) {
	penalties, err := game.CompilePenalties(o.Penalties)
	if err != nil {
		return game.Options{}, err
	}
	return game.Options{
		Players:           o.Players,
		Seed:              o.Seed,
		Revision:          o.Revision,
		StartingAuthority: o.StartingAuthority,
		StartingWorkers:   o.StartingWorkers,
		KnowledgeLimit:    o.KnowledgeLimit,
		MaxTurns:          o.MaxTurns,
		Penalties:         penalties,
	}, nil
}

type Step struct {
	N      int         `json:"n"`
	Player string      `json:"player"`
	Intent game.Intent `json:"intent"`
	Digest uint64      `json:"digest"`
}

type Trailer struct {
	Winner  string    `json:"winner"`
	Ranking []string  `json:"ranking"`
	Turns   int       `json:"turns"`
	Digest  uint64    `json:"digest"`
	Ended   time.Time `json:"ended"`
}

// Replay is a decoded file. Trailer is nil for games that did not finish.
type Replay struct {
	Header  Header
	Steps   []Step
	Trailer *Trailer
}
