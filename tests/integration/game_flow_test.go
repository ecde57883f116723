package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Op codes mirrored from the server module.
const (
	OpDeal            = 1
	OpSessionSnapshot = 101
	OpCardsDealt      = 102
)

func requireServer(t *testing.T) {
	if os.Getenv("STACKEM_INTEGRATION") != "1" {
		t.Skip("set STACKEM_INTEGRATION=1 to run against a live Nakama server")
	}
}

func decode(t *testing.T, data []byte) map[string]interface{} {
	var s structpb.Struct
	if err := protojson.Unmarshal(data, &s); err != nil {
		t.Fatalf("Failed to decode message: %v", err)
	}
	return s.AsMap()
}

func TestStartGameAndDeal(t *testing.T) {
	requireServer(t)

	client := NewTestClient(t)
	defer client.Close()

	matchID := client.StartAndJoinGame(t, "hard")
	t.Logf("Joined match: %s", matchID)

	snapshot := decode(t, client.WaitForMatchState(t, OpSessionSnapshot, 5*time.Second).Data)
	if snapshot["difficulty"] != "hard" {
		t.Fatalf("Expected hard session, got %v", snapshot["difficulty"])
	}

	if _, err := client.Socket.SendMatchState(context.Background(), matchID, OpDeal, nil, nil); err != nil {
		t.Fatalf("Failed to send Deal: %v", err)
	}

	dealt := decode(t, client.WaitForMatchState(t, OpCardsDealt, 5*time.Second).Data)
	if cards := dealt["cards"].([]interface{}); len(cards) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(cards))
	}
	t.Logf("Dealt: %v", dealt["cards"])
}

func TestSubmitScoreAndLeaderboard(t *testing.T) {
	requireServer(t)

	client := NewTestClient(t)
	defer client.Close()

	client.CallRPC(t, "submit_score", `{"score": 42, "difficulty": "easy"}`, nil)

	var resp struct {
		Entries []struct {
			OwnerID string `json:"owner_id"`
			Score   int64  `json:"score"`
		} `json:"entries"`
	}
	client.CallRPC(t, "get_leaderboard", `{"difficulty": "easy"}`, &resp)
	for _, e := range resp.Entries {
		if e.OwnerID == client.UserID {
			return
		}
	}
	t.Fatalf("Own record missing from leaderboard: %+v", resp.Entries)
}
