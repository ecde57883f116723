package nakama

const (
	// RpcStartGame creates a single-player match for the caller and returns its id.
	RpcStartGame = "start_game"
	// RpcSubmitScore records the caller's final score on the difficulty leaderboard.
	RpcSubmitScore = "submit_score"
	// RpcGetLeaderboard returns the top scores for a difficulty.
	RpcGetLeaderboard = "get_leaderboard"
	RpcGetSettings    = "get_settings"
	RpcSaveSettings   = "save_settings"

	// MatchNameStackem is the authoritative match handler name registered with Nakama.
	MatchNameStackem = "stackem_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpDeal             int64 = 1
	OpPlaceCard        int64 = 2
	OpChangeDifficulty int64 = 3
	OpRequestHint      int64 = 4

	// Server -> Client events
	OpSessionSnapshot int64 = 101
	OpCardsDealt      int64 = 102
	OpDeckReshuffled  int64 = 103
	OpCardPlaced      int64 = 104
	OpCombination     int64 = 105
	OpCommandRefused  int64 = 106
	OpHint            int64 = 107
	OpGameOver        int64 = 108
)

// Match label keys, queryable with MatchList.
const (
	MatchLabelKeyGame       = "game"
	MatchLabelKeyOwner      = "owner"
	MatchLabelKeyDifficulty = "difficulty"
	MatchLabelKeyState      = "state"
)

// Nakama storage location of player settings.
const (
	settingsCollection = "stackem"
	settingsKey        = "settings_v1"
)
