package game

import (
	"encoding/json"
	"fmt"
)

// wireIntent is the JSON form of an intent. Only the fields meaningful for
// Where are written.
type wireIntent struct {
	Kind    string `json:"kind"`
	Where   string `json:"where,omitempty"`
	Cell    *int   `json:"cell,omitempty"`
	Pips    int    `json:"pips,omitempty"`
	Goods   string `json:"goods,omitempty"`
	Card    string `json:"card,omitempty"`
	Track   string `json:"track,omitempty"`
	Recruit string `json:"recruit,omitempty"`
	Chance  bool   `json:"chance,omitempty"`
}

func (in Intent) MarshalJSON() ([]byte, error) {
	in = in.Normalized()
	w := wireIntent{Kind: in.Kind.String(), Chance: in.Chance}
	if in.Kind == PickIntent || in.Kind == DropIntent {
		l := in.Loc
		w.Where = l.Where.String()
		switch l.Where {
		case Hand:
			w.Pips = l.Pips
		case OnBoard:
			cell := int(l.Cell)
			w.Cell = &cell
			w.Pips = l.Pips
		case Goods, Supply:
			w.Goods = l.Kind.String()
		case CardSlot:
			w.Card = l.Card.String()
		case TrackSlot:
			w.Track = l.Track.String()
		case RecruitSlot:
			w.Recruit = l.Recruit.String()
		}
	}
	return json.Marshal(w)
}

func (in *Intent) UnmarshalJSON(data []byte) error {
	var w wireIntent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, ok := ParseIntentKind(w.Kind)
	if !ok {
		return fmt.Errorf("unknown intent kind %q", w.Kind)
	}
	out := Intent{Kind: kind, Loc: noLocation, Chance: w.Chance}
	if kind == PickIntent || kind == DropIntent {
		where, ok := ParseWhere(w.Where)
		if !ok || where == NoWhere {
			return fmt.Errorf("unknown location %q", w.Where)
		}
		l := Location{Where: where, Cell: NoCell, Pips: w.Pips}
		switch where {
		case OnBoard:
			if w.Cell == nil {
				return fmt.Errorf("board location without a cell")
			}
			l.Cell = CellID(*w.Cell)
		case Goods, Supply:
			if l.Kind, ok = ParseKind(w.Goods); !ok {
				return fmt.Errorf("unknown goods %q", w.Goods)
			}
		case CardSlot:
			if l.Card, ok = ParseArtifact(w.Card); !ok {
				return fmt.Errorf("unknown artifact %q", w.Card)
			}
		case TrackSlot:
			if l.Track, ok = ParseTrack(w.Track); !ok {
				return fmt.Errorf("unknown track %q", w.Track)
			}
		case RecruitSlot:
			if l.Recruit, ok = ParseRecruit(w.Recruit); !ok {
				return fmt.Errorf("unknown recruit %q", w.Recruit)
			}
		}
		out.Loc = l
	}
	*in = out.Normalized()
	return nil
}

func ParseTrack(s string) (Track, bool) {
	switch s {
	case "knowledge":
		return Knowledge, true
	case "morale":
		return Morale, true
	}
	return 0, false
}
