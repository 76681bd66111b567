package communication

import (
	"euphoria/game"
)

// View is what one seat is shown of a game. Hidden recruits of other seats
// are only counted.
type View struct {
	Phase    string        `json:"phase"`
	Turn     int           `json:"turn"`
	ToMove   string        `json:"to_move"`
	Prompt   string        `json:"prompt"`
	Ability  string        `json:"ability,omitempty"`
	Cost     string        `json:"cost,omitempty"`
	Benefit  string        `json:"benefit,omitempty"`
	Digest   uint64        `json:"digest"`
	Moves    []game.Intent `json:"moves,omitempty"` // only for the seat to move
	Players  []PlayerView  `json:"players"`
	Penalty  []string      `json:"penalties,omitempty"`
	GameOver bool          `json:"game_over,omitempty"`
	Winner   string        `json:"winner,omitempty"`
}

type PlayerView struct {
	Name      string         `json:"name"`
	Goods     map[string]int `json:"goods,omitempty"`
	Cards     int            `json:"cards"`
	Knowledge int            `json:"knowledge"`
	Morale    int            `json:"morale"`
	Authority int            `json:"authority"`
	Workers   int            `json:"workers"`
	Hand      []int          `json:"hand,omitempty"`
	Active    []string       `json:"active,omitempty"`
	Hidden    []string       `json:"hidden,omitempty"`
	HiddenN   int            `json:"hidden_count"`
	Dilemma   string         `json:"dilemma,omitempty"` // empty once settled
}

// NewView renders gs for seat. A negative seat sees public information only.
func NewView(gs *game.GameState, seat int) *View {
	p := gs.Prompt()
	v := &View{
		Phase:    gs.Phase.String(),
		Turn:     gs.Turns,
		ToMove:   gs.Player(),
		Prompt:   p.Text,
		Ability:  p.Ability,
		Digest:   gs.DigestFor(seat),
		GameOver: gs.IsOver(),
		Winner:   gs.Winner(),
	}
	if p.Cost != nil {
		v.Cost = p.Cost.String()
	}
	if p.Benefit != nil {
		v.Benefit = p.Benefit.String()
	}
	if seat == gs.Current && !gs.IsOver() {
		for _, m := range gs.LegalMoves() {
			v.Moves = append(v.Moves, m.(game.Intent))
		}
	}
	if seat >= 0 {
		v.Penalty = gs.ActivePenalties(seat)
	}
	for i := range gs.Players {
		l := &gs.Players[i]
		pv := PlayerView{
			Name:      gs.Names[i],
			Cards:     len(l.Cards),
			Knowledge: l.Knowledge,
			Morale:    l.Morale,
			Authority: l.Authority,
			Workers:   l.Workers,
			Hand:      l.Hand,
			HiddenN:   len(l.Hidden),
		}
		if !l.DilemmaResolved {
			pv.Dilemma = l.Dilemma.String()
		}
		for k := game.Kind(0); k < game.NumKinds; k++ {
			if l.Goods[k] > 0 {
				if pv.Goods == nil {
					pv.Goods = map[string]int{}
				}
				pv.Goods[k.String()] = l.Goods[k]
			}
		}
		for _, r := range l.Active {
			pv.Active = append(pv.Active, r.String())
		}
		if i == seat {
			for _, r := range l.Hidden {
				pv.Hidden = append(pv.Hidden, r.String())
			}
		}
		v.Players = append(v.Players, pv)
	}
	return v
}
