package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// SessionSnapshot is the read-only view handed to observers after every
// mutating call. It never exposes the hidden deck kind map.
type SessionSnapshot struct {
	RoomID   string       `json:"room_id"`
	Settings GameSettings `json:"settings"`
	State    GameState    `json:"state"`
	Stage    FinalStage   `json:"stage"`

	Players []Player   `json:"players"`
	Cards   []Card     `json:"cards"`
	Timer   TimerState `json:"timer"`

	ActiveCardID   int    `json:"active_card_id"`
	ActivePlayerID string `json:"active_player_id"`

	TransitionTitle    string `json:"transition_title,omitempty"`
	TransitionSubtitle string `json:"transition_subtitle,omitempty"`
	NextRoundTitle     string `json:"next_round_title,omitempty"`
	NextRoundDesc      string `json:"next_round_desc,omitempty"`

	Finalists    []string `json:"finalists,omitempty"`
	FinalContent string   `json:"final_content,omitempty"`
	SpyMission   string   `json:"spy_mission,omitempty"`
	Winner       *Player  `json:"winner,omitempty"`

	KingScore  int `json:"king_score"`
	QueenScore int `json:"queen_score"`

	Log []string `json:"log"`
}

type TimerUpdateData struct {
	Value   int  `json:"value"`
	Max     int  `json:"max"`
	Running bool `json:"running"`
}

type ErrorData struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}
