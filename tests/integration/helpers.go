package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/rtapi"
	"github.com/heroiclabs/nakama-go/v2"
)

const (
	ServerKey = "defaultkey"
	Host      = "127.0.0.1"
	Port      = 7350
)

// Player is one authenticated device account with an open realtime socket.
type Player struct {
	Client  *nakama.Client
	Session *nakama.Session
	Socket  *nakama.Socket
	UserID  string

	messages chan *rtapi.MatchData
}

func NewTestClient(t *testing.T) *Player {
	client := nakama.NewClient(ServerKey, Host, Port, false)

	deviceID := fmt.Sprintf("stackem_device_%d", time.Now().UnixNano())
	session, err := client.AuthenticateDevice(context.Background(), deviceID, true, "")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}

	p := &Player{
		Client:   client,
		Session:  session,
		Socket:   client.NewSocket(),
		UserID:   session.UserId,
		messages: make(chan *rtapi.MatchData, 64),
	}
	// Every match message is buffered; WaitForMatchState drops the ones it skips.
	p.Socket.OnMatchData = func(data *rtapi.MatchData) {
		p.messages <- data
	}
	if err := p.Socket.Connect(context.Background(), session, true); err != nil {
		t.Fatalf("Failed to connect socket: %v", err)
	}
	return p
}

func (p *Player) Close() {
	if p.Socket != nil {
		p.Socket.Close()
	}
}

// CallRPC invokes id with payload and decodes the JSON response into out.
func (p *Player) CallRPC(t *testing.T, id, payload string, out interface{}) {
	rpc, err := p.Client.RpcFunc(context.Background(), p.Session, id, payload)
	if err != nil {
		t.Fatalf("RPC %s failed: %v", id, err)
	}
	if out == nil {
		return
	}
	if err := json.Unmarshal([]byte(rpc.Payload), out); err != nil {
		t.Fatalf("RPC %s returned %q: %v", id, rpc.Payload, err)
	}
}

// StartAndJoinGame creates a match through start_game and joins it.
func (p *Player) StartAndJoinGame(t *testing.T, difficulty string) string {
	var resp struct {
		MatchID string `json:"match_id"`
	}
	p.CallRPC(t, "start_game", fmt.Sprintf(`{"difficulty": %q}`, difficulty), &resp)
	if resp.MatchID == "" {
		t.Fatalf("start_game returned no match id")
	}

	if _, err := p.Socket.JoinMatch(context.Background(), nil, resp.MatchID, nil); err != nil {
		t.Fatalf("Failed to join match %s: %v", resp.MatchID, err)
	}
	return resp.MatchID
}

// WaitForMatchState returns the next message with opCode.
func (p *Player) WaitForMatchState(t *testing.T, opCode int64, timeout time.Duration) *rtapi.MatchData {
	deadline := time.After(timeout)
	for {
		select {
		case data := <-p.messages:
			if data.OpCode == opCode {
				return data
			}
		case <-deadline:
			t.Fatalf("Timeout waiting for OpCode %d", opCode)
			return nil
		}
	}
}
