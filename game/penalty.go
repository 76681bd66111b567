package game

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
)

// PenaltySpec is the configured form of a market penalty. Suppresses is an
// expression over PenaltyEnv that is true for every hook the penalty
// disables. Forbids is true for every placement it rules out. MoraleLoss is
// the extra morale lost when workers come back unpaid.
type PenaltySpec struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Suppresses  string `json:"suppresses,omitempty" yaml:"suppresses"`
	Forbids     string `json:"forbids,omitempty" yaml:"forbids"`
	MoraleLoss  int    `json:"morale_loss,omitempty" yaml:"morale_loss"`
}

// Penalty is a compiled market penalty. It applies to every player without
// an authority token on an open market that carries it.
type Penalty struct {
	Name        string
	Description string
	Source      string
	Placement   string
	MoraleLoss  int
	suppresses  *vm.Program
	forbids     *vm.Program
}

// PenaltyEnv is what a penalty expression can see. Hook is set when a hook
// is checked, Place when a placement is.
type PenaltyEnv struct {
	Hook   HookEnv
	Player PlayerEnv
	Place  PlaceEnv
}

type HookEnv struct {
	Name    string
	Source  string
	Group   string
	Trigger string
}

type PlayerEnv struct {
	Knowledge    int
	Morale       int
	Workers      int
	Cards        int
	Gained       int // net goods gained this turn
	CardsGained  int
	WorkerGained bool
}

type PlaceEnv struct {
	Cell    string
	Kind    string
	Faction string
	Pips    int
	Doubled bool // one of the player's workers on the board shows the same number
	Own     int  // the player's workers already on the cell
	Others  int
}

func DefaultPenalties() []PenaltySpec {
	return []PenaltySpec{
		{Name: "NoActiveRecruits", Description: "recruit abilities do nothing", Suppresses: `Hook.Source == "recruit"`},
		{Name: "NoAllegianceBonus", Description: "allegiance bonuses do nothing", Suppresses: `Hook.Group == "allegiance"`},
		{Name: "NoCardPairs", Description: "artifact markets take no pairs", Suppresses: `Hook.Name == "PairPayment"`},
		{Name: "MoraleLimit3", Description: "morale abilities stop at 3 morale", Suppresses: `Hook.Group == "morale" && Player.Morale >= 3`},
		{Name: "NoIcariteWorkers", Description: "no workers in icarus", Forbids: `Place.Faction == "icarite"`},
		{Name: "NoSharedCommodity", Description: "one worker per commodity area", Forbids: `Place.Kind == "production" && Place.Own > 0`},
		{Name: "NoDoubles", Description: "no die matching one of your workers on the board", Forbids: `Place.Doubled`},
		{Name: "LoseMoreMorale", Description: "free retrieval costs an extra morale", MoraleLoss: 1},
		{Name: "LimitOf2Commodities", Description: "production abilities stop after two goods in a turn", Suppresses: `Hook.Group == "production" && Player.Gained >= 2`},
	}
}

func CompilePenalties(specs []PenaltySpec) ([]Penalty, error) {
	penalties := make([]Penalty, 0, len(specs))
	for _, s := range specs {
		p := Penalty{Name: s.Name, Description: s.Description, Source: s.Suppresses, Placement: s.Forbids, MoraleLoss: s.MoraleLoss}
		var err error
		if p.suppresses, err = compileCondition(s.Suppresses); err != nil {
			return nil, fmt.Errorf("compile penalty %q: %w", s.Name, err)
		}
		if p.forbids, err = compileCondition(s.Forbids); err != nil {
			return nil, fmt.Errorf("compile penalty %q placement: %w", s.Name, err)
		}
		if s.MoraleLoss < 0 {
			return nil, fmt.Errorf("penalty %q: negative morale loss", s.Name)
		}
		penalties = append(penalties, p)
	}
	return penalties, nil
}

func compileCondition(source string) (*vm.Program, error) {
	if source == "" {
		return nil, nil
	}
	return expr.Compile(source, expr.Env(PenaltyEnv{}), expr.AsBool())
}

// Specs turns compiled penalties back into their configured form.
func Specs(penalties []Penalty) []PenaltySpec {
	specs := make([]PenaltySpec, len(penalties))
	for i, p := range penalties {
		specs[i] = PenaltySpec{Name: p.Name, Description: p.Description, Suppresses: p.Source, Forbids: p.Placement, MoraleLoss: p.MoraleLoss}
	}
	return specs
}

// MustCompilePenalties panics on a bad expression; for built-in tables.
func MustCompilePenalties(specs []PenaltySpec) []Penalty {
	penalties, err := CompilePenalties(specs)
	if err != nil {
		panic(err)
	}
	return penalties
}

// Suppresses reports whether the penalty disables h for the player.
// Evaluation errors are logged and treated as no suppression.
func (p Penalty) Suppresses(h *Hook, l *Ledger) bool {
	env := PenaltyEnv{
		Hook:   HookEnv{Name: h.Name, Source: string(h.Source), Group: h.Group, Trigger: h.Trigger.String()},
		Player: playerEnv(l),
	}
	return p.eval(p.suppresses, env, h.Name)
}

// Forbids reports whether the penalty rules out the placement for the
// player. Evaluation errors are logged and treated as allowed.
func (p Penalty) Forbids(place PlaceEnv, l *Ledger) bool {
	return p.eval(p.forbids, PenaltyEnv{Player: playerEnv(l), Place: place}, place.Cell)
}

func (p Penalty) eval(prog *vm.Program, env PenaltyEnv, subject string) bool {
	if prog == nil {
		return false
	}
	result, err := vm.Run(prog, env)
	if err != nil {
		log.Warn().Err(err).Str("penalty", p.Name).Str("subject", subject).Msg("penalty condition error")
		return false
	}
	match, ok := result.(bool)
	return ok && match
}

func playerEnv(l *Ledger) PlayerEnv {
	return PlayerEnv{
		Knowledge:    l.Knowledge,
		Morale:       l.Morale,
		Workers:      l.Workers,
		Cards:        len(l.Cards),
		Gained:       l.Flags.GainedGoods(),
		CardsGained:  l.Flags.CardsGained,
		WorkerGained: l.Flags.WorkerGained,
	}
}

// active lists the distinct penalties applying to player: those of open
// markets the player has no token on.
func (gs *GameState) active(player int) []*Penalty {
	var out []*Penalty
	seen := map[int]bool{}
	for cell, index := range gs.MarketPenalty {
		if index < 0 || gs.Stars[cell] == 0 || gs.Stars[cell]&(1<<player) != 0 || seen[index] {
			continue
		}
		seen[index] = true
		out = append(out, &gs.Penalties[index])
	}
	return out
}

// suppressed is true when a penalty applying to the player disables h.
func (gs *GameState) suppressed(h *Hook, player int) bool {
	for _, p := range gs.active(player) {
		if p.Suppresses(h, &gs.Players[player]) {
			return true
		}
	}
	return false
}

// forbidden is true when a penalty applying to the player rules out placing
// a die showing pips on cell.
func (gs *GameState) forbidden(player int, cell CellID, pips int) bool {
	penalties := gs.active(player)
	if len(penalties) == 0 {
		return false
	}
	l := &gs.Players[player]
	c := gs.Board.Cell(cell)
	place := PlaceEnv{Cell: c.Name, Kind: c.Kind.String(), Faction: c.Faction.String(), Pips: pips}
	for id, workers := range gs.Workers {
		for _, w := range workers {
			switch {
			case w.Owner != player:
				if CellID(id) == cell {
					place.Others++
				}
				continue
			case CellID(id) == cell:
				place.Own++
			}
			if w.Pips == pips {
				place.Doubled = true
			}
		}
	}
	for _, p := range penalties {
		if p.Forbids(place, l) {
			return true
		}
	}
	return false
}

// moraleLoss is what retrieving without paying costs the player.
func (gs *GameState) moraleLoss(player int) int {
	n := 1
	for _, p := range gs.active(player) {
		n += p.MoraleLoss
	}
	return n
}

// ActivePenalties names the penalties currently applying to player.
func (gs *GameState) ActivePenalties(player int) []string {
	var names []string
	for _, p := range gs.active(player) {
		names = append(names, p.Name)
	}
	return names
}
