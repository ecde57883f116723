package app

import "stackem/internal/domain"

// DefaultDifficulty is used when a session is started without an explicit choice.
const DefaultDifficulty = domain.DifficultyMedium

// RefusalReason explains why a command left the session unchanged.
type RefusalReason string

const (
	RefusedAlreadyDealing      RefusalReason = "already_dealing"
	RefusedDeckCyclesExhausted RefusalReason = "deck_cycles_exhausted"
	RefusedOutsideSnapRadius   RefusalReason = "outside_snap_radius"
	RefusedSlotOccupied        RefusalReason = "slot_occupied"
	RefusedTotalSlot           RefusalReason = "total_slot"
	RefusedCardNotInHand       RefusalReason = "card_not_in_hand"
	RefusedNoSlots             RefusalReason = "no_slots"
	RefusedUnknownDifficulty   RefusalReason = "unknown_difficulty"
	RefusedUnknownCommand      RefusalReason = "unknown_command"
)
