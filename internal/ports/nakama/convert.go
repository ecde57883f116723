package nakama

import (
	"fmt"

	"stackem/internal/app"
	"stackem/internal/bot"
	"stackem/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var marshalOptions = protojson.MarshalOptions{EmitUnpopulated: true}

// encodeStruct converts a JSON-shaped map into protobuf JSON bytes.
func encodeStruct(m map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return marshalOptions.Marshal(s)
}

func cardToMap(c domain.Card) map[string]interface{} {
	return map[string]interface{}{
		"id":    c.ID(),
		"suit":  string(c.Suit),
		"rank":  string(c.Rank),
		"value": c.Value,
	}
}

func cardsToList(cards []domain.Card) []interface{} {
	out := make([]interface{}, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToMap(c))
	}
	return out
}

func gridToList(g domain.Grid) []interface{} {
	out := make([]interface{}, domain.GridSize)
	for i, p := range g {
		if p == nil {
			out[i] = nil
			continue
		}
		out[i] = cardToMap(p.Card)
	}
	return out
}

func lineTotalsToList(lines [domain.GridWidth]domain.LineTotal) []interface{} {
	// index 0 is the corner slot and carries no total
	out := make([]interface{}, 0, domain.LineLength)
	for _, l := range lines[1:] {
		out = append(out, map[string]interface{}{
			"total":  l.Total,
			"filled": l.Filled,
			"status": l.Status.String(),
		})
	}
	return out
}

// sessionToMap is the full snapshot sent as OpSessionSnapshot.
func sessionToMap(s domain.Session, rules domain.Rules) map[string]interface{} {
	totals := domain.ComputeBoardTotals(s.Grid)
	return map[string]interface{}{
		"session_id":      s.ID,
		"difficulty":      string(s.Difficulty),
		"score":           s.Score,
		"deck_cycles":     s.DeckCycles,
		"max_deck_cycles": rules.MaxDeckCycles,
		"undealt":         s.UndealtCount(),
		"can_deal":        s.CanDeal(rules.MaxDeckCycles),
		"is_over":         s.IsOver(rules.MaxDeckCycles),
		"hand":            cardsToList(s.DealtCards),
		"grid":            gridToList(s.Grid),
		"row_totals":      lineTotalsToList(totals.Rows),
		"column_totals":   lineTotalsToList(totals.Columns),
		"show_animation":  s.ShowAnimation,
		"animation_type":  string(s.AnimationType),
	}
}

// eventToMessage maps an app event to its op code and payload.
func eventToMessage(ev app.Event) (int64, map[string]interface{}, error) {
	switch p := ev.Payload.(type) {
	case app.CardsDealtPayload:
		return OpCardsDealt, map[string]interface{}{
			"cards":     cardsToList(p.Cards),
			"penalty":   p.Penalty,
			"score":     p.Score,
			"remaining": p.Remaining,
		}, nil
	case app.DeckReshuffledPayload:
		return OpDeckReshuffled, map[string]interface{}{
			"deck_cycles": p.DeckCycles,
			"penalty":     p.Penalty,
			"score":       p.Score,
			"remaining":   p.Remaining,
		}, nil
	case app.CardPlacedPayload:
		return OpCardPlaced, map[string]interface{}{
			"card":       cardToMap(p.Card),
			"hand_index": p.HandIndex,
			"slot":       p.Slot,
			"delta":      p.Delta,
			"score":      p.Score,
		}, nil
	case app.CombinationPayload:
		return OpCombination, map[string]interface{}{
			"line":       string(p.Combination.Line),
			"number":     p.Combination.Number,
			"card_count": p.Combination.CardCount,
			"animation":  string(p.Animation),
		}, nil
	case app.CommandRefusedPayload:
		return OpCommandRefused, map[string]interface{}{
			"command": p.Command,
			"reason":  string(p.Reason),
		}, nil
	case app.GameOverPayload:
		return OpGameOver, map[string]interface{}{
			"score":       p.Score,
			"difficulty":  string(p.Difficulty),
			"deck_cycles": p.DeckCycles,
		}, nil
	default:
		return 0, nil, fmt.Errorf("no message for event %s", ev.Kind)
	}
}

func hintToMap(m bot.Move) map[string]interface{} {
	return map[string]interface{}{
		"deal":       m.Deal,
		"hand_index": m.HandIndex,
		"slot":       m.Slot,
		"expected":   m.Expected,
	}
}
