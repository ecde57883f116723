package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"stackem/internal/app"
	"stackem/internal/bot"
	"stackem/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// idleSeconds is how long a match survives without its owner connected.
const idleSeconds = 60

// MatchState holds the authoritative runtime state for one single-player game.
type MatchState struct {
	OwnerID   string           // only this user may join and send commands
	Presence  runtime.Presence // nil while the owner is disconnected
	Session   domain.Session
	App       *app.Service
	Hints     bot.Brain
	Tick      int64
	IdleTicks int64
	MaxIdle   int64
}

// matchMessage is the part of runtime.MatchData the handlers read.
type matchMessage interface {
	GetUserId() string
	GetOpCode() int64
	GetData() []byte
}

type slotCenterRequest struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type layoutRequest struct {
	OriginX  float64 `json:"origin_x"`
	OriginY  float64 `json:"origin_y"`
	CellSize float64 `json:"cell_size"`
	Gap      float64 `json:"gap"`
}

// placeCardRequest is the OpPlaceCard payload. Drop geometry comes from
// Slots, or from Layout when Slots is empty. Without either, Slot names the
// target directly and is treated as a drop on its own center.
type placeCardRequest struct {
	HandIndex int                 `json:"hand_index"`
	CardID    string              `json:"card_id"`
	X         float64             `json:"x"`
	Y         float64             `json:"y"`
	Slots     []slotCenterRequest `json:"slots"`
	Layout    *layoutRequest      `json:"layout"`
	Slot      *int                `json:"slot"`
}

type changeDifficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

func (r placeCardRequest) command(s domain.Session) app.Command {
	drop := app.Drop{HandIndex: r.HandIndex, Point: domain.Point{X: r.X, Y: r.Y}}
	if r.HandIndex >= 0 && r.HandIndex < len(s.DealtCards) {
		if c := s.DealtCards[r.HandIndex]; r.CardID == "" || c.ID() == r.CardID {
			drop.Card = c
		}
	}
	switch {
	case len(r.Slots) > 0:
		for _, sc := range r.Slots {
			drop.Slots = append(drop.Slots, domain.SlotCenter{Index: sc.Index, Center: domain.Point{X: sc.X, Y: sc.Y}})
		}
	case r.Layout != nil && r.Layout.CellSize > 0:
		layout := domain.GridLayout{
			Origin:   domain.Point{X: r.Layout.OriginX, Y: r.Layout.OriginY},
			CellSize: r.Layout.CellSize,
			Gap:      r.Layout.Gap,
		}
		drop.Slots = layout.Centers()
	case r.Slot != nil:
		drop.Point = domain.Point{}
		drop.Slots = []domain.SlotCenter{{Index: *r.Slot}}
	}
	return app.PlaceCommand{Drop: drop}
}

type matchHandler struct {
	rules             domain.Rules
	tickRate          int
	defaultDifficulty domain.Difficulty
}

func newMatchHandler(rules domain.Rules, tickRate int, defaultDifficulty domain.Difficulty) *matchHandler {
	if tickRate <= 0 {
		tickRate = 1
	}
	if !defaultDifficulty.Valid() {
		defaultDifficulty = app.DefaultDifficulty
	}
	return &matchHandler{rules: rules, tickRate: tickRate, defaultDifficulty: defaultDifficulty}
}

// MatchInit is called when the match is created. Params: owner_id, difficulty.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	ownerID, _ := params["owner_id"].(string)
	difficulty := mh.defaultDifficulty
	if raw, ok := params["difficulty"].(string); ok && raw != "" {
		d, err := domain.ParseDifficulty(raw)
		if err != nil {
			logger.Warn("MatchInit: %v, using %s", err, difficulty)
		} else {
			difficulty = d
		}
	}

	hints, err := bot.NewBrain(bot.BotLevelGreedy, nil)
	if err != nil {
		logger.Error("MatchInit: Failed to create hint brain: %v", err)
		return nil, 0, ""
	}

	service := app.NewService(mh.rules, nil)
	session, _ := service.NewSession(difficulty)
	state := &MatchState{
		OwnerID: ownerID,
		Session: session,
		App:     service,
		Hints:   hints,
		MaxIdle: int64(idleSeconds * mh.tickRate),
	}

	label, err := mh.label(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	logger.Debug("MatchInit: Session %s (%s) for owner %s.", session.ID, difficulty, ownerID)
	return state, mh.tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if matchState.OwnerID != "" && presence.GetUserId() != matchState.OwnerID {
		return state, false, "Match is single-player"
	}
	if matchState.Presence != nil && matchState.Presence.GetSessionId() != presence.GetSessionId() {
		return state, false, "Already connected"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if matchState.OwnerID == "" {
			matchState.OwnerID = p.GetUserId()
			mh.updateLabel(matchState, dispatcher, logger)
		}
		if p.GetUserId() != matchState.OwnerID {
			continue
		}
		matchState.Presence = p
		matchState.IdleTicks = 0
		logger.Debug("MatchJoin: Owner %s connected.", p.GetUserId())
	}

	mh.sendSnapshot(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave keeps the game so the owner can reconnect; MatchLoop ends it after idleSeconds.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if matchState.Presence != nil && p.GetSessionId() == matchState.Presence.GetSessionId() {
			matchState.Presence = nil
			logger.Debug("MatchLeave: Owner %s disconnected.", p.GetUserId())
		}
	}

	if matchState.Presence == nil && matchState.Session.IsOver(mh.rules.MaxDeckCycles) {
		logger.Info("MatchLeave: Terminating finished match.")
		return nil
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick
	if matchState.Presence == nil {
		matchState.IdleTicks++
		if matchState.IdleTicks >= matchState.MaxIdle {
			logger.Info("MatchLoop: Terminating match idle for %d ticks.", matchState.IdleTicks)
			return nil
		}
		return matchState
	}
	matchState.IdleTicks = 0

	for _, msg := range messages {
		mh.handleMessage(matchState, dispatcher, logger, msg)
	}
	return matchState
}

func (mh *matchHandler) handleMessage(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg matchMessage) {
	if msg.GetUserId() != state.OwnerID {
		logger.Warn("MatchLoop: Ignoring message from non-owner %s", msg.GetUserId())
		return
	}

	switch msg.GetOpCode() {
	case OpDeal:
		mh.apply(state, dispatcher, logger, app.DealCommand{})
	case OpPlaceCard:
		mh.handlePlaceCard(state, dispatcher, logger, msg)
	case OpChangeDifficulty:
		var req changeDifficultyRequest
		if err := json.Unmarshal(msg.GetData(), &req); err != nil {
			logger.Warn("handleChangeDifficulty: Invalid payload from %s: %v", msg.GetUserId(), err)
			return
		}
		difficulty := domain.Difficulty(req.Difficulty)
		if parsed, err := domain.ParseDifficulty(req.Difficulty); err == nil {
			difficulty = parsed
		}
		mh.apply(state, dispatcher, logger, app.ResetCommand{Difficulty: difficulty})
	case OpRequestHint:
		mh.handleHint(state, dispatcher, logger)
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
	}
}

func (mh *matchHandler) handlePlaceCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg matchMessage) {
	var req placeCardRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handlePlaceCard: Invalid payload from %s: %v", msg.GetUserId(), err)
		return
	}

	mh.apply(state, dispatcher, logger, req.command(state.Session))
}

func (mh *matchHandler) handleHint(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	move, err := state.Hints.CalculateMove(state.Session, mh.rules)
	if err != nil {
		logger.Debug("handleHint: No hint available: %v", err)
		return
	}
	mh.send(dispatcher, logger, OpHint, hintToMap(move))
}

func (mh *matchHandler) apply(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, cmd app.Command) {
	next, events := state.App.Apply(state.Session, cmd)
	mh.commit(state, dispatcher, logger, next, events)
}

// commit stores the new session and forwards the events. A snapshot follows
// every accepted command.
func (mh *matchHandler) commit(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, next domain.Session, events []app.Event) {
	accepted := false
	relabel := next.Difficulty != state.Session.Difficulty
	state.Session = next

	for _, ev := range events {
		switch ev.Kind {
		case app.EventSessionReset:
			accepted = true
			continue
		case app.EventCommandRefused:
			p := ev.Payload.(app.CommandRefusedPayload)
			logger.Debug("MatchLoop: Command %s refused: %s", p.Command, p.Reason)
		case app.EventGameOver:
			accepted = true
			relabel = true
		default:
			accepted = true
		}
		mh.broadcastEvent(dispatcher, logger, ev)
	}

	if relabel {
		mh.updateLabel(state, dispatcher, logger)
	}
	if accepted {
		mh.sendSnapshot(state, dispatcher, logger)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, payload, err := eventToMessage(ev)
	if err != nil {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}
	mh.send(dispatcher, logger, opCode, payload)
}

func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	mh.send(dispatcher, logger, OpSessionSnapshot, sessionToMap(state.Session, mh.rules))
}

func (mh *matchHandler) send(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload map[string]interface{}) {
	bytes, err := encodeStruct(payload)
	if err != nil {
		logger.Error("Failed to marshal message %d: %v", opCode, err)
		return
	}
	// Only the owner can be connected, so a broadcast reaches exactly them.
	if err := dispatcher.BroadcastMessage(opCode, bytes, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast message %d: %v", opCode, err)
	}
}

func (mh *matchHandler) label(state *MatchState) (string, error) {
	phase := "playing"
	if state.Session.IsOver(mh.rules.MaxDeckCycles) {
		phase = "over"
	}
	bytes, err := encodeStruct(map[string]interface{}{
		MatchLabelKeyGame:       "stackem",
		MatchLabelKeyOwner:      state.OwnerID,
		MatchLabelKeyDifficulty: string(state.Session.Difficulty),
		MatchLabelKeyState:      phase,
	})
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := mh.label(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d seconds grace", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
