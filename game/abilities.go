package game

import "slices"

// Abilities returns the hook table in declaration order. Cost and
// benefit rewrites run in this order, and later hooks rely on the shapes
// earlier ones produce: JoshTheNegotiator turns a resource into bliss before
// BrianTheViticulturist widens bliss to food.
func Abilities(revision int) []Hook {
	return []Hook{
		{
			Name:    "MatthewTheThief",
			Source:  RecruitSource,
			Group:   "knowledge",
			Trigger: OnCost,
			Recruit: MatthewTheThief,
			Applies: atKind(TunnelCell),
			RewriteCost: func(_ *GameState, _ int, _ Context, c Cost) Cost {
				if pay, ok := c.(Pay); ok && pay.Kind.IsCommodity() && pay.N == 1 {
					return Or{Alts: []Cost{pay, thiefAlternative(revision)}}
				}
				return c
			},
		},
		{
			Name:    "KadanTheInfiltrator",
			Source:  RecruitSource,
			Group:   "knowledge",
			Trigger: OnCost,
			Recruit: KadanTheInfiltrator,
			Applies: atKind(MineCell),
			RewriteCost: func(_ *GameState, _ int, _ Context, c Cost) Cost {
				if m, ok := c.(Member); ok {
					if _, closed := m.orElse().(Closed); closed {
						return Member{Of: m.Of, Else: RaiseKnowledge{N: 2}}
					}
				}
				return c
			},
		},
		{
			Name:    "JoshTheNegotiator",
			Source:  RecruitSource,
			Group:   "market",
			Trigger: OnCost,
			Recruit: JoshTheNegotiator,
			Applies: atKind(MarketCell),
			RewriteCost: func(_ *GameState, _ int, _ Context, c Cost) Cost {
				if pay, ok := c.(Pay); ok && Resources.Has(pay.Kind) && pay.N == 1 {
					return Or{Alts: []Cost{pay, Pay{Kind: Bliss, N: 1}}}
				}
				return c
			},
		},
		{
			Name:        "BrianTheViticulturist",
			Source:      RecruitSource,
			Group:       "market",
			Trigger:     OnCost,
			Recruit:     BrianTheViticulturist,
			OncePerTurn: true,
			RewriteCost: func(_ *GameState, _ int, _ Context, c Cost) Cost {
				if pay, ok := c.(Pay); ok && pay.Kind == Bliss {
					return Mix{Of: Kinds(Bliss, Food), N: pay.N, Via: "BrianTheViticulturist"}
				}
				return c
			},
			// food standing in for bliss uses up the turn, except at the
			// icarite cells
			Relied: func(gs *GameState, _ int, ctx Context) bool {
				if ctx.Paid.Goods[Food] == 0 || ctx.Settled == nil || atKind(IcariteCell)(gs, 0, ctx) {
					return false
				}
				plain := MapCost(ctx.Settled, func(node Cost) Cost {
					if m, ok := node.(Mix); ok && m.Via == "BrianTheViticulturist" {
						return Pay{Kind: Bliss, N: m.N}
					}
					return node
				})
				return !slices.Contains(Assignments(ctx.Held, plain), ctx.Paid)
			},
		},
		{
			Name:    "FlartnerTheLuddite",
			Source:  RecruitSource,
			Group:   "market",
			Trigger: OnCost,
			Recruit: FlartnerTheLuddite,
			Applies: atKind(MarketCell),
			RewriteCost: func(_ *GameState, _ int, _ Context, c Cost) Cost {
				if pay, ok := c.(Pay); ok && Resources.Has(pay.Kind) && pay.N == 1 {
					return Or{Alts: []Cost{pay, Cards{N: 1}}}
				}
				return c
			},
		},
		{
			Name:    "JeffersonTheShockArtist",
			Source:  RecruitSource,
			Group:   "morale",
			Trigger: OnCost,
			Recruit: JeffersonTheShockArtist,
			Applies: duringAction(RetrieveAction),
			RewriteCost: func(_ *GameState, _ int, _ Context, c Cost) Cost {
				if mix, ok := c.(Mix); ok && mix == retrievalCost {
					return Mix{Of: mix.Of.Add(Energy), N: mix.N}
				}
				return c
			},
		},
		{
			Name:    "PairPayment",
			Source:  RuleSource,
			Group:   "cards",
			Trigger: OnCost,
			Applies: atKind(ArtifactMarketCell),
			RewriteCost: func(_ *GameState, _ int, _ Context, c Cost) Cost {
				if cards, ok := c.(Cards); ok && cards.N == 3 {
					return Or{Alts: []Cost{cards, Pair{}}}
				}
				return c
			},
		},
		{
			Name:    "ReitzTheArcheologist",
			Source:  RecruitSource,
			Group:   "cards",
			Trigger: OnCost,
			Recruit: ReitzTheArcheologist,
			Wild:    ArtifactSet(0).Add(Book),
		},
		{
			Name:    "AllegianceBonus",
			Source:  AllegianceSource,
			Group:   "allegiance",
			Trigger: OnBenefit,
			RewriteBenefit: func(gs *GameState, player int, _ Context, b Benefit) Benefit {
				if p, ok := b.(Produce); ok && gs.Players[player].IsMember(p.Of) && gs.Influence[p.Of] >= TierOne {
					p.N++
					return p
				}
				return b
			},
		},
		{
			Name:    "MineUpgrade",
			Source:  AllegianceSource,
			Group:   "allegiance",
			Trigger: OnBenefit,
			RewriteBenefit: func(gs *GameState, player int, _ Context, b Benefit) Benefit {
				if u, ok := b.(CardOr); ok && gs.Players[player].IsMember(u.Of) && gs.Influence[u.Of] >= TierTwo {
					return u.Upgraded()
				}
				return b
			},
		},
		{
			Name:    "SoullessThePlumber",
			Source:  RecruitSource,
			Group:   "production",
			Trigger: OnBenefit,
			Recruit: SoullessThePlumber,
			Applies: func(gs *GameState, player int, ctx Context) bool {
				return atName("Aquifer")(gs, player, ctx) && len(gs.Players[player].Cards) == 0
			},
			RewriteBenefit: func(_ *GameState, _ int, _ Context, b Benefit) Benefit {
				if p, ok := b.(Produce); ok && p.Kind == Water {
					return All{Parts: []Benefit{p, Gain{Kind: Energy, N: 1}}}
				}
				return b
			},
		},
		{
			Name:    "GaryTheElectrician",
			Source:  RecruitSource,
			Group:   "morale",
			Trigger: OnBenefit,
			Recruit: GaryTheElectrician,
			Applies: atName("Generator"),
			RewriteBenefit: func(_ *GameState, _ int, _ Context, b Benefit) Benefit {
				if p, ok := b.(Produce); ok && p.Kind == Energy {
					return All{Parts: []Benefit{p, OneOf{Alts: []Benefit{Shift{Morale: 1}, Gain{Kind: Energy, N: 1}}}}}
				}
				return b
			},
		},
		{
			Name:    "FlartnerTheLudditeMorale",
			Source:  RecruitSource,
			Group:   "morale",
			Trigger: AfterPayment,
			Recruit: FlartnerTheLuddite,
			Applies: atKind(MarketCell),
			Schedule: func(_ *GameState, player int, ctx Context) []Frame {
				if ctx.Paid.CardTotal() == 0 || ctx.Original == nil || ContainsCost(ctx.Original, isCards) {
					return nil
				}
				return []Frame{deferred(player, ctx, Shift{Morale: 1})}
			},
		},
		{
			Name:    "JeffersonTheShockArtistMorale",
			Source:  RecruitSource,
			Group:   "morale",
			Trigger: AfterPayment,
			Recruit: JeffersonTheShockArtist,
			Applies: duringAction(RetrieveAction),
			Schedule: func(_ *GameState, player int, ctx Context) []Frame {
				if ctx.Paid.Goods[Energy] == 0 {
					return nil
				}
				return []Frame{deferred(player, ctx, Shift{Knowledge: -1, Morale: 1})}
			},
		},
		{
			Name:    "NickTheUnderstudy",
			Source:  RecruitSource,
			Group:   "morale",
			Trigger: AfterPayment,
			Recruit: NickTheUnderstudy,
			Schedule: func(_ *GameState, player int, ctx Context) []Frame {
				if ctx.Paid.Knowledge == 0 {
					return nil
				}
				return []Frame{deferred(player, ctx, Shift{Morale: 1})}
			},
		},
		{
			Name:    "CurtisThePropagandist",
			Source:  RecruitSource,
			Group:   "knowledge",
			Trigger: AfterBenefit,
			Recruit: CurtisThePropagandist,
			Schedule: func(_ *GameState, player int, ctx Context) []Frame {
				if ctx.Granted.Goods[Bliss] == 0 {
					return nil
				}
				return []Frame{deferred(player, ctx, Shift{Knowledge: -1})}
			},
		},
		{
			Name:    "PhilTheSpy",
			Source:  RecruitSource,
			Group:   "cards",
			Trigger: BeforePlacement,
			Recruit: PhilTheSpy,
			Applies: atKind(TunnelCell),
			Schedule: func(gs *GameState, player int, ctx Context) []Frame {
				cost := RaiseKnowledge{N: 2}
				// the spy only helps if the tunnel itself stays affordable
				cellCost, _ := gs.RewriteCost(player, gs.Board.Cell(ctx.Cell).Cost, ctx)
				if !gs.CanPay(player, Then{Fixed: cost, Rest: cellCost}, ctx) {
					return nil
				}
				return []Frame{{
					Step:        StepAwaitOptional,
					Cell:        ctx.Cell,
					Cost:        cost,
					Original:    cost,
					Benefit:     Draw{N: 1},
					Actor:       player,
					Responder:   player,
					ResumePhase: PayForOptionalEffectPhase,
					OnPaid:      StepCollect,
					OnDecline:   StepSkip,
					Ability:     "PhilTheSpy",
					Action:      AbilityAction,
				}}
			},
		},
		{
			Name:    "KyleTheScavenger",
			Source:  RecruitSource,
			Group:   "cards",
			Trigger: AfterPlacement,
			Recruit: KyleTheScavenger,
			Faction: Icarite,
			Schedule: func(_ *GameState, player int, ctx Context) []Frame {
				return []Frame{{
					Step:        StepAwaitOptionalBenefit,
					Cell:        ctx.Cell,
					Benefit:     Draw{N: 1},
					Actor:       player,
					Responder:   player,
					ResumePhase: CollectOptionalBenefitPhase,
					OnDecline:   StepSkip,
					Ability:     "KyleTheScavenger",
					Action:      AbilityAction,
				}}
			},
		},
		{
			Name:    "IanTheHorticulturist",
			Source:  RecruitSource,
			Group:   "production",
			Trigger: TurnStart,
			Recruit: IanTheHorticulturist,
			Schedule: func(gs *GameState, player int, ctx Context) []Frame {
				if gs.Players[player].Goods[Water] > 0 {
					return nil
				}
				return []Frame{deferred(player, ctx, Gain{Kind: Water, N: 1})}
			},
		},
		{
			Name:    "ScarbyTheHarvester",
			Source:  RecruitSource,
			Group:   "production",
			Trigger: AfterPlacement,
			Recruit: ScarbyTheHarvester,
			Applies: func(gs *GameState, player int, ctx Context) bool {
				return atName("Farm")(gs, player, ctx) && placedHighest(gs, ctx.Cell)
			},
			Schedule: func(_ *GameState, player int, ctx Context) []Frame {
				return []Frame{deferred(player, ctx, OneOf{Alts: []Benefit{Gain{Kind: Food, N: 1}, Shift{Knowledge: -1}}})}
			},
		},
		{
			Name:    "SarineeTheCloudMiner",
			Source:  RecruitSource,
			Group:   "production",
			Trigger: AfterPlacement,
			Recruit: SarineeTheCloudMiner,
			Applies: func(gs *GameState, player int, ctx Context) bool {
				return atName("CloudMine")(gs, player, ctx) && len(gs.Workers[ctx.Cell]) == 1
			},
			Schedule: func(_ *GameState, player int, ctx Context) []Frame {
				return []Frame{deferred(player, ctx, OneOf{Alts: []Benefit{Gain{Kind: Bliss, N: 1}, Shift{Knowledge: -1}}})}
			},
		},
		{
			Name:    "ZongTheAstronomer",
			Source:  RecruitSource,
			Group:   "production",
			Trigger: AfterPlacement,
			Recruit: ZongTheAstronomer,
			Applies: atName("CloudMine"),
			Schedule: func(gs *GameState, player int, ctx Context) []Frame {
				l := &gs.Players[player]
				if l.CountIn(Resources)+len(l.Cards) > 0 {
					return nil
				}
				return []Frame{deferred(player, ctx, OneOf{Alts: []Benefit{Gain{Kind: Water, N: 1}, Gain{Kind: Energy, N: 1}}})}
			},
		},
		{
			Name:    "KatyTheDietician",
			Source:  RecruitSource,
			Group:   "production",
			Trigger: AfterPlacement,
			Recruit: KatyTheDietician,
			Applies: atName("Generator"),
			Schedule: func(gs *GameState, player int, ctx Context) []Frame {
				if len(gs.Players[player].Cards) > 0 {
					return nil
				}
				return []Frame{deferred(player, ctx, Gain{Kind: Food, N: 1})}
			},
		},
		{
			Name:    "RayTheForeman",
			Source:  RecruitSource,
			Group:   "morale",
			Trigger: AfterBenefit,
			Recruit: RayTheForeman,
			Applies: func(gs *GameState, player int, ctx Context) bool {
				return ctx.Granted.Authority > 0 && ctx.Cell != NoCell && gs.Board.Cell(ctx.Cell).Kind.IsMarket()
			},
			Schedule: func(_ *GameState, player int, ctx Context) []Frame {
				return []Frame{deferred(player, ctx, Shift{Morale: 2})}
			},
		},
		{
			Name:        "JonathanTheGambler",
			Source:      RecruitSource,
			Group:       "cards",
			Trigger:     TurnEnd,
			Recruit:     JonathanTheGambler,
			OncePerTurn: true,
			Schedule: func(gs *GameState, player int, ctx Context) []Frame {
				cost := RaiseKnowledge{N: 1}
				if gs.Players[player].Flags.CardsGained == 0 || !gs.CanPay(player, cost, ctx) {
					return nil
				}
				return []Frame{{
					Step:        StepAwaitOptional,
					Cell:        NoCell,
					Cost:        cost,
					Original:    cost,
					Benefit:     Draw{N: 1},
					Actor:       player,
					Responder:   player,
					ResumePhase: PayForOptionalEffectPhase,
					OnPaid:      StepCollect,
					OnDecline:   StepSkip,
					Ability:     "JonathanTheGambler",
					Action:      AbilityAction,
				}, {Step: StepMoraleCheck, Cell: NoCell, Actor: player, Responder: player, Action: AbilityAction}}
			},
		},
		dilemmaHook(),
	}
}

// ReviewedOrder is the agreed order of rewriting hooks per trigger.
var ReviewedOrder = map[Trigger][]string{
	OnCost: {
		"MatthewTheThief",
		"KadanTheInfiltrator",
		"JoshTheNegotiator",
		"BrianTheViticulturist",
		"FlartnerTheLuddite",
		"JeffersonTheShockArtist",
		"PairPayment",
	},
	OnBenefit: {
		"AllegianceBonus",
		"MineUpgrade",
		"SoullessThePlumber",
		"GaryTheElectrician",
	},
}

// retrievalCost is what taking workers back costs before hooks.
var retrievalCost = Mix{Of: Kinds(Food, Bliss), N: 1}

func atKind(kind CellKind) func(*GameState, int, Context) bool {
	return func(gs *GameState, _ int, ctx Context) bool {
		return ctx.Cell != NoCell && gs.Board.Cell(ctx.Cell).Kind == kind
	}
}

func atName(name string) func(*GameState, int, Context) bool {
	return func(gs *GameState, _ int, ctx Context) bool {
		return ctx.Cell != NoCell && gs.Board.Cell(ctx.Cell).Name == name
	}
}

func duringAction(action ActionKind) func(*GameState, int, Context) bool {
	return func(_ *GameState, _ int, ctx Context) bool {
		return ctx.Action == action
	}
}

// placedHighest reports whether the die just placed on cell shows the most
// pips there.
func placedHighest(gs *GameState, cell CellID) bool {
	workers := gs.Workers[cell]
	if len(workers) == 0 {
		return false
	}
	placed := workers[len(workers)-1].Pips
	for _, w := range workers[:len(workers)-1] {
		if w.Pips > placed {
			return false
		}
	}
	return true
}

func isCards(c Cost) bool {
	switch c.(type) {
	case Cards, CardOf, Pair:
		return true
	}
	return false
}

// deferred wraps a hook side effect so it runs as its own step.
func deferred(player int, ctx Context, b Benefit) Frame {
	return Frame{
		Step:      StepGrant,
		Cell:      ctx.Cell,
		Benefit:   b,
		Actor:     player,
		Responder: player,
		Action:    AbilityAction,
	}
}
