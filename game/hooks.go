package game

import "euphoria/utils"

// Trigger is the point in a turn at which a hook is consulted.
type Trigger int

const (
	OnCost Trigger = iota
	OnBenefit
	AfterPayment
	AfterBenefit
	BeforePlacement
	AfterPlacement
	TurnStart
	TurnEnd
)

var triggerNames = [...]string{"cost", "benefit", "after-payment", "after-benefit", "before-placement", "after-placement", "turn-start", "turn-end"}

func (t Trigger) String() string {
	if t < 0 || int(t) >= len(triggerNames) {
		return "unknown"
	}
	return triggerNames[t]
}

// Source says where a hook comes from; penalties match on it.
type Source string

const (
	RecruitSource    Source = "recruit"
	AllegianceSource Source = "allegiance"
	RuleSource       Source = "rule"
)

// Hook is one special rule: a gate, plus a rewrite or a schedule. Hooks
// never touch a ledger themselves; anything that mutates is returned as
// frames and runs after the enclosing step commits.
type Hook struct {
	Name        string
	Source      Source
	Group       string
	Trigger     Trigger
	Recruit     Recruit    // required active recruit, NoRecruit for none
	Faction     Allegiance // required destination allegiance, Factionless for any
	OncePerTurn bool
	Wild        ArtifactSet

	Applies     func(gs *GameState, player int, ctx Context) bool
	RewriteCost func(gs *GameState, player int, ctx Context, c Cost) Cost
	// Relied decides, for each settled payment, whether a once-per-turn
	// cost rewrite was actually needed. Without it the hook counts as used
	// as soon as it changes a cost that is being paid.
	Relied         func(gs *GameState, player int, ctx Context) bool
	RewriteBenefit func(gs *GameState, player int, ctx Context, b Benefit) Benefit
	Schedule       func(gs *GameState, player int, ctx Context) []Frame
}

// applies runs the gates in order: recruit, destination allegiance,
// once-per-turn flag, penalty suppression, then the hook's own predicate.
func (gs *GameState) applies(h *Hook, player int, ctx Context) bool {
	l := &gs.Players[player]
	if h.Recruit != NoRecruit && !l.HasRecruit(h.Recruit) {
		return false
	}
	if h.Faction != Factionless && h.Faction != ctx.Faction {
		return false
	}
	if h.OncePerTurn && l.Flags.Used[h.Name] {
		return false
	}
	if gs.suppressed(h, player) {
		return false
	}
	return h.Applies == nil || h.Applies(gs, player, ctx)
}

// RewriteCost passes c through every applicable cost hook in declaration
// order. It is pure; fired lists the hooks that changed the cost.
func (gs *GameState) RewriteCost(player int, c Cost, ctx Context) (rewritten Cost, fired []string) {
	for i := range gs.hooks {
		h := &gs.hooks[i]
		if h.Trigger != OnCost || h.RewriteCost == nil || !gs.applies(h, player, ctx) {
			continue
		}
		before := c.String()
		c = MapCost(c, func(node Cost) Cost { return h.RewriteCost(gs, player, ctx, node) })
		if c.String() != before {
			fired = append(fired, h.Name)
		}
	}
	return c, fired
}

func (gs *GameState) rewriteBenefit(player int, b Benefit, ctx Context) Benefit {
	for i := range gs.hooks {
		h := &gs.hooks[i]
		if h.Trigger != OnBenefit || h.RewriteBenefit == nil || !gs.applies(h, player, ctx) {
			continue
		}
		before := b.String()
		b = MapBenefit(b, func(node Benefit) Benefit { return h.RewriteBenefit(gs, player, ctx, node) })
		if b.String() != before {
			gs.markUsed(player, h)
		}
	}
	return b
}

// markFired sets the once-per-turn flags of hooks that rewrote a cost which
// is now being paid. Hooks that decide for themselves are left to
// markRelied.
func (gs *GameState) markFired(player int, fired []string) {
	for _, name := range fired {
		if h := gs.hook(name); h != nil && h.Relied == nil {
			gs.markUsed(player, h)
		}
	}
}

// markRelied flags the once-per-turn cost hooks the settled payment in ctx
// depended on.
func (gs *GameState) markRelied(player int, ctx Context) {
	for i := range gs.hooks {
		h := &gs.hooks[i]
		if h.Relied != nil && h.Trigger == OnCost && gs.applies(h, player, ctx) && h.Relied(gs, player, ctx) {
			gs.markUsed(player, h)
		}
	}
}

func (gs *GameState) markUsed(player int, h *Hook) {
	if h.OncePerTurn {
		gs.Players[player].Flags.Used[h.Name] = true
	}
}

func (gs *GameState) hook(name string) *Hook {
	for i := range gs.hooks {
		if gs.hooks[i].Name == name {
			return &gs.hooks[i]
		}
	}
	return nil
}

// schedule collects the frames of every applicable hook for trigger and
// pushes them so they run in declaration order.
func (gs *GameState) schedule(player int, trigger Trigger, ctx Context) {
	var frames []Frame
	for i := range gs.hooks {
		h := &gs.hooks[i]
		if h.Trigger != trigger || h.Schedule == nil || !gs.applies(h, player, ctx) {
			continue
		}
		scheduled := h.Schedule(gs, player, ctx)
		if len(scheduled) > 0 {
			gs.markUsed(player, h)
			frames = append(frames, scheduled...)
		}
	}
	for i := len(frames) - 1; i >= 0; i-- {
		gs.push(frames[i])
	}
}

// wildcards is the union of artifact types that applicable hooks let match
// any other card.
func (gs *GameState) wildcards(player int, ctx Context) ArtifactSet {
	var wild ArtifactSet
	for i := range gs.hooks {
		h := &gs.hooks[i]
		if h.Wild != 0 && gs.applies(h, player, ctx) {
			wild |= h.Wild
		}
	}
	return wild
}

// OrderPair names two hooks that rewrite at the same trigger, in the order
// they are declared.
type OrderPair struct {
	First, Second string
}

// UnreviewedOverlaps lists hook pairs that rewrite at the same trigger but
// whose declared order is not confirmed by reviewed, which gives the agreed
// order of rewriting hooks per trigger. A newly added hook shows up here
// until someone decides where it goes.
func UnreviewedOverlaps(hooks []Hook, reviewed map[Trigger][]string) []OrderPair {
	var missing []OrderPair
	for i := range hooks {
		for j := i + 1; j < len(hooks); j++ {
			a, b := &hooks[i], &hooks[j]
			if a.Trigger != b.Trigger || !rewrites(a) || !rewrites(b) {
				continue
			}
			order := reviewed[a.Trigger]
			first, second := utils.FindIndex(order, a.Name), utils.FindIndex(order, b.Name)
			if first < 0 || second < 0 || first > second {
				missing = append(missing, OrderPair{First: a.Name, Second: b.Name})
			}
		}
	}
	return missing
}

func rewrites(h *Hook) bool {
	return h.RewriteCost != nil || h.RewriteBenefit != nil
}
