package internal

import "time"

// Player is a roster entry inside one session. All mutation happens under the
// owning session's lock; the struct itself carries no synchronization.
type Player struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Avatar string       `json:"avatar"`
	Gender string       `json:"gender"`
	Score  int          `json:"score"`
	Status PlayerStatus `json:"status"`
	Team   Team         `json:"team,omitempty"`
	IsHost bool         `json:"is_host"`

	HasPlayedInRound bool `json:"has_played_in_round"`
	HasJoker         bool `json:"has_joker"`
	IsOnStage        bool `json:"is_on_stage"`
	IsSpy            bool `json:"is_spy"`
	IsMuted          bool `json:"is_muted"`
	IsMutedByHost    bool `json:"is_muted_by_host"`

	LastDelta   int       `json:"last_delta"`
	LastDeltaAt time.Time `json:"last_delta_at"`
	JoinedAt    time.Time `json:"joined_at"`
}

// ResetRoundState clears the per-round flags at every round start.
func (p *Player) ResetRoundState() {
	p.HasPlayedInRound = false
}

// Eligible reports whether the player can be picked for a turn.
func (p *Player) Eligible() bool {
	return !p.IsHost && p.Status == StatusActive && !p.HasPlayedInRound
}

// Snapshot copies the player into a detached value safe to hand to observers.
func (p *Player) Snapshot() Player {
	return *p
}
