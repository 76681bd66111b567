package game

// CellID indexes a board cell.
type CellID int

const NoCell CellID = -1

type CellKind int

const (
	ProductionCell CellKind = iota
	TunnelCell
	MineCell
	MarketCell
	ArtifactMarketCell
	TrainingCell
	IcariteCell
)

var cellKindNames = [...]string{"production", "tunnel", "mine", "market", "artifact market", "training", "icarite"}

func (k CellKind) String() string {
	if k < 0 || int(k) >= len(cellKindNames) {
		return "unknown"
	}
	return cellKindNames[k]
}

func (k CellKind) IsMarket() bool {
	return k == MarketCell || k == ArtifactMarketCell
}

// Cell is a static board position: where a worker may be placed, what it
// costs and what it yields.
type Cell struct {
	ID        CellID
	Name      string
	Kind      CellKind
	Faction   Allegiance
	Exclusive bool // placing on an occupied cell bumps the occupant
	Cost      Cost
	Benefit   Benefit // nil for production cells
	Produces  Kind
}

// Board holds the static cells. It is shared between copies of a state.
type Board struct {
	Cells []Cell
}

func (b *Board) Cell(id CellID) *Cell {
	return &b.Cells[id]
}

// Lookup finds a cell by name.
func (b *Board) Lookup(name string) (CellID, bool) {
	for _, c := range b.Cells {
		if c.Name == name {
			return c.ID, true
		}
	}
	return NoCell, false
}

func (b *Board) add(c Cell) {
	c.ID = CellID(len(b.Cells))
	b.Cells = append(b.Cells, c)
}

// CreateBoard builds the standard board.
func CreateBoard() *Board {
	b := &Board{}

	production := []struct {
		name    string
		faction Allegiance
		kind    Kind
	}{
		{"Generator", Euphorian, Energy},
		{"Aquifer", Subterran, Water},
		{"Farm", Wastelander, Food},
		{"CloudMine", Icarite, Bliss},
	}
	for _, p := range production {
		b.add(Cell{Name: p.name, Kind: ProductionCell, Faction: p.faction, Cost: Free{}, Produces: p.kind})
	}

	tunnels := []struct {
		name    string
		faction Allegiance
		pay     Kind
	}{
		{"EuphorianTunnel", Euphorian, Energy},
		{"SubterranTunnel", Subterran, Water},
		{"WastelanderTunnel", Wastelander, Food},
	}
	for _, t := range tunnels {
		b.add(Cell{
			Name:      t.name,
			Kind:      TunnelCell,
			Faction:   t.faction,
			Exclusive: true,
			Cost:      Pay{Kind: t.pay, N: 1},
			Benefit:   All{Parts: []Benefit{Influence{Of: t.faction, N: 1}, Draw{N: 1}}},
		})
	}

	mines := []struct {
		name    string
		faction Allegiance
		yield   Kind
	}{
		{"EuphorianMine", Euphorian, Gold},
		{"SubterranMine", Subterran, Stone},
		{"WastelanderMine", Wastelander, Clay},
	}
	for _, m := range mines {
		b.add(Cell{
			Name:      m.name,
			Kind:      MineCell,
			Faction:   m.faction,
			Exclusive: true,
			Cost:      Member{Of: m.faction, Else: Closed{}},
			Benefit:   All{Parts: []Benefit{Influence{Of: m.faction, N: 1}, CardOr{Kind: m.yield, Of: m.faction}}},
		})
	}

	markets := []struct {
		name      string
		faction   Allegiance
		commodity Kind
		resource  Kind
	}{
		{"EuphorianMarket", Euphorian, Energy, Stone},
		{"SubterranMarket", Subterran, Water, Clay},
		{"WastelanderMarket", Wastelander, Food, Gold},
	}
	for _, m := range markets {
		b.add(Cell{
			Name:    m.name,
			Kind:    MarketCell,
			Faction: m.faction,
			Cost:    Then{Fixed: Pay{Kind: m.commodity, N: 4}, Rest: Pay{Kind: m.resource, N: 1}},
			Benefit: All{Parts: []Benefit{Authority{Of: m.faction}, Influence{Of: m.faction, N: 1}}},
		})
	}

	for _, f := range []Allegiance{Euphorian, Subterran, Wastelander} {
		b.add(Cell{
			Name:      f.title() + "ArtifactMarket",
			Kind:      ArtifactMarketCell,
			Faction:   f,
			Exclusive: true,
			Cost:      Cards{N: 3},
			Benefit:   All{Parts: []Benefit{Authority{Of: f}, Influence{Of: f, N: 1}}},
		})
	}

	b.add(Cell{
		Name:      "EuphorianTraining",
		Kind:      TrainingCell,
		Faction:   Euphorian,
		Exclusive: true,
		Cost:      Pay{Kind: Energy, N: 3},
		Benefit:   NewWorker{Knowledge: -2},
	})
	b.add(Cell{
		Name:      "SubterranTraining",
		Kind:      TrainingCell,
		Faction:   Subterran,
		Exclusive: true,
		Cost:      Pay{Kind: Water, N: 3},
		Benefit:   NewWorker{Morale: 2},
	})

	b.add(Cell{
		Name:      "NimbusLoft",
		Kind:      IcariteCell,
		Faction:   Icarite,
		Exclusive: true,
		Cost:      Mix{Of: Resources, N: 3},
		Benefit:   All{Parts: []Benefit{Influence{Of: Icarite, N: 1}, Choose{Of: Resources, N: 2}}},
	})
	b.add(Cell{
		Name:      "BreezeBar",
		Kind:      IcariteCell,
		Faction:   Icarite,
		Exclusive: true,
		Cost:      Then{Fixed: Pay{Kind: Bliss, N: 1}, Rest: Mix{Of: Kinds(Water, Energy, Food), N: 1}},
		Benefit:   All{Parts: []Benefit{Influence{Of: Icarite, N: 1}, Draw{N: 2}}},
	})
	b.add(Cell{
		Name:      "SkyLounge",
		Kind:      IcariteCell,
		Faction:   Icarite,
		Exclusive: true,
		Cost:      Then{Fixed: Pay{Kind: Bliss, N: 1}, Rest: Mix{Of: Kinds(Water, Energy, Food), N: 1}},
		Benefit:   All{Parts: []Benefit{Influence{Of: Icarite, N: 1}, Draw{N: 1}, Shift{Morale: 1}}},
	})

	return b
}

func (a Allegiance) title() string {
	s := a.String()
	return string(s[0]-'a'+'A') + s[1:]
}

// productionBenefit computes a production cell's yield from the pips of all
// workers standing on it.
func (gs *GameState) productionBenefit(cell CellID) Benefit {
	c := gs.Board.Cell(cell)
	total := 0
	for _, w := range gs.Workers[cell] {
		total += w.Pips
	}
	out := Produce{Kind: c.Produces, Of: c.Faction, N: 1}
	switch {
	case total <= 4:
		return All{Parts: []Benefit{out, Influence{Of: c.Faction, N: 1}}}
	case total <= 8:
		return All{Parts: []Benefit{out, Shift{Knowledge: -1}}}
	}
	out.N = 2
	return All{Parts: []Benefit{out, Shift{Knowledge: 1}}}
}
