package game

// Phase is one state of the turn state machine. It decides which intents
// are legal and what the player is prompted with.
type Phase int

const (
	ChooseRecruitPhase Phase = iota
	ConfirmRecruitPhase
	PlaceOrRetrievePhase
	PlacePhase
	RetrievePhase
	ConfirmPlacePhase
	ConfirmRetrievePhase
	PayCostPhase
	ConfirmPayCostPhase
	PayForOptionalEffectPhase
	ConfirmOptionalEffectPhase
	CollectBenefitPhase
	ConfirmBenefitPhase
	CollectOptionalBenefitPhase
	ConfirmOptionalBenefitPhase
	DiscardCardsPhase
	ConfirmDiscardPhase
	PayPenaltyPhase
	ConfirmPenaltyPhase
	EndTurnPhase
	GameoverPhase
	NumPhases
)

var phaseInfo = [NumPhases]struct {
	name   string
	prompt string
}{
	ChooseRecruitPhase:          {"choose-recruit", "choose a recruit to reveal"},
	ConfirmRecruitPhase:         {"confirm-recruit", "confirm the revealed recruit"},
	PlaceOrRetrievePhase:        {"place-or-retrieve", "place a worker or retrieve workers"},
	PlacePhase:                  {"place", "choose where to place the worker"},
	RetrievePhase:               {"retrieve", "choose workers to retrieve"},
	ConfirmPlacePhase:           {"confirm-place", "confirm the placement"},
	ConfirmRetrievePhase:        {"confirm-retrieve", "confirm the retrieval"},
	PayCostPhase:                {"pay-cost", "choose how to pay"},
	ConfirmPayCostPhase:         {"confirm-pay-cost", "confirm the payment"},
	PayForOptionalEffectPhase:   {"pay-optional", "pay for the optional effect or decline"},
	ConfirmOptionalEffectPhase:  {"confirm-optional", "confirm paying for the optional effect"},
	CollectBenefitPhase:         {"collect-benefit", "choose what to gain"},
	ConfirmBenefitPhase:         {"confirm-benefit", "confirm what to gain"},
	CollectOptionalBenefitPhase: {"collect-optional", "take the optional benefit or decline"},
	ConfirmOptionalBenefitPhase: {"confirm-optional-benefit", "confirm taking the optional benefit"},
	DiscardCardsPhase:           {"discard", "discard down to your morale"},
	ConfirmDiscardPhase:         {"confirm-discard", "confirm the discard"},
	PayPenaltyPhase:             {"pay-penalty", "pay a good for the opened market"},
	ConfirmPenaltyPhase:         {"confirm-penalty", "confirm the market penalty"},
	EndTurnPhase:                {"end-turn", "end the turn"},
	GameoverPhase:               {"gameover", "the game is over"},
}

func (p Phase) String() string {
	if p < 0 || p >= NumPhases {
		return "unknown"
	}
	return phaseInfo[p].name
}

// Description is the prompt shown to the player who must act.
func (p Phase) Description() string {
	if p < 0 || p >= NumPhases {
		return ""
	}
	return phaseInfo[p].prompt
}

// IsPayment is true for phases that assemble a tender against a cost.
func (p Phase) IsPayment() bool {
	switch p {
	case PayCostPhase, ConfirmPayCostPhase,
		PayForOptionalEffectPhase, ConfirmOptionalEffectPhase,
		DiscardCardsPhase, ConfirmDiscardPhase,
		PayPenaltyPhase, ConfirmPenaltyPhase:
		return true
	}
	return false
}

// IsBenefit is true for phases that assemble a choice of grant.
func (p Phase) IsBenefit() bool {
	switch p {
	case CollectBenefitPhase, ConfirmBenefitPhase,
		CollectOptionalBenefitPhase, ConfirmOptionalBenefitPhase:
		return true
	}
	return false
}

// IsConfirm is true for the phases in which the selection is complete.
func (p Phase) IsConfirm() bool {
	switch p {
	case ConfirmRecruitPhase, ConfirmPlacePhase, ConfirmRetrievePhase,
		ConfirmPayCostPhase, ConfirmOptionalEffectPhase, ConfirmBenefitPhase,
		ConfirmOptionalBenefitPhase, ConfirmDiscardPhase, ConfirmPenaltyPhase,
		EndTurnPhase:
		return true
	}
	return false
}

// confirmed maps a selection phase to its complete variant and back.
func (p Phase) confirmed(complete bool) Phase {
	pairs := [...][2]Phase{
		{PayCostPhase, ConfirmPayCostPhase},
		{PayForOptionalEffectPhase, ConfirmOptionalEffectPhase},
		{CollectBenefitPhase, ConfirmBenefitPhase},
		{CollectOptionalBenefitPhase, ConfirmOptionalBenefitPhase},
		{DiscardCardsPhase, ConfirmDiscardPhase},
		{PayPenaltyPhase, ConfirmPenaltyPhase},
	}
	for _, pair := range pairs {
		if p == pair[0] || p == pair[1] {
			if complete {
				return pair[1]
			}
			return pair[0]
		}
	}
	return p
}

// Transition is the phase an intent leads to, before the selection is
// inspected and before any continuation runs. It is total: ok is false for
// every pair with no transition.
func Transition(p Phase, in Intent) (next Phase, ok bool) {
	kind := in.Kind
	switch p {
	case ChooseRecruitPhase:
		switch kind {
		case PickIntent:
			return ChooseRecruitPhase, true
		case DropIntent:
			return ConfirmRecruitPhase, true
		}
	case ConfirmRecruitPhase:
		switch kind {
		case ConfirmIntent, DeclineIntent:
			return ChooseRecruitPhase, true
		}
	case PlaceOrRetrievePhase:
		if kind == PickIntent {
			if in.Loc.Where == OnBoard {
				return RetrievePhase, true
			}
			return PlacePhase, true
		}
	case PlacePhase:
		switch kind {
		case PickIntent:
			return PlacePhase, true
		case DropIntent:
			return ConfirmPlacePhase, true
		case DeclineIntent:
			return PlaceOrRetrievePhase, true
		}
	case RetrievePhase:
		switch kind {
		case PickIntent:
			return RetrievePhase, true
		case DropIntent:
			return ConfirmRetrievePhase, true
		case DeclineIntent:
			return PlaceOrRetrievePhase, true
		}
	case ConfirmPlacePhase:
		switch kind {
		case ConfirmIntent:
			return EndTurnPhase, true
		case DeclineIntent:
			return PlacePhase, true
		}
	case ConfirmRetrievePhase:
		switch kind {
		case ConfirmIntent:
			return EndTurnPhase, true
		case DeclineIntent:
			return RetrievePhase, true
		}
	case PayCostPhase, PayForOptionalEffectPhase, DiscardCardsPhase, PayPenaltyPhase,
		CollectBenefitPhase, CollectOptionalBenefitPhase:
		switch kind {
		case PickIntent, DropIntent, DeclineIntent:
			return p, true
		}
	case ConfirmPayCostPhase, ConfirmOptionalEffectPhase, ConfirmDiscardPhase, ConfirmPenaltyPhase,
		ConfirmBenefitPhase, ConfirmOptionalBenefitPhase:
		switch kind {
		case PickIntent, DropIntent:
			return p.confirmed(false), true
		case ConfirmIntent, DeclineIntent:
			return p, true
		}
	case EndTurnPhase:
		if kind == ConfirmIntent {
			return PlaceOrRetrievePhase, true
		}
	}
	return p, false
}
