package internal

import (
	"fmt"
	"slices"
	"strings"
)

// SettingsDraft is the typed edit buffer the host fills before committing
// settings changes. Zero-value fields mean "keep the current value".
type SettingsDraft struct {
	RoomName       string     `json:"room_name"`
	TargetLanguage string     `json:"target_language"`
	Difficulty     Difficulty `json:"difficulty"`
	MaxPlayers     int        `json:"max_players"`
	IsPrivate      *bool      `json:"is_private,omitempty"`
	Mode           GameMode   `json:"mode"`
	IsChatLocked   *bool      `json:"is_chat_locked,omitempty"`
}

// Validate checks the draft against the allowed value sets without touching
// the live settings.
func (d SettingsDraft) Validate() error {
	if d.RoomName != "" && strings.TrimSpace(d.RoomName) == "" {
		return fmt.Errorf("room name must not be blank")
	}
	if d.TargetLanguage != "" && !slices.Contains(AvailableLanguages, d.TargetLanguage) {
		return fmt.Errorf("unsupported target language %q", d.TargetLanguage)
	}
	switch d.Difficulty {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert:
	default:
		return fmt.Errorf("unsupported difficulty %q", d.Difficulty)
	}
	switch d.Mode {
	case "", ModeIndividual, ModeTeam:
	default:
		return fmt.Errorf("unsupported mode %q", d.Mode)
	}
	if d.MaxPlayers < 0 || d.MaxPlayers > MaxPlayersPerSession {
		return fmt.Errorf("max players must be between 1 and %d", MaxPlayersPerSession)
	}
	return nil
}

// Apply commits the draft onto settings. Callers must Validate first.
func (d SettingsDraft) Apply(s *GameSettings) {
	if d.RoomName != "" {
		s.RoomName = strings.TrimSpace(d.RoomName)
	}
	if d.TargetLanguage != "" {
		s.TargetLanguage = d.TargetLanguage
	}
	if d.Difficulty != "" {
		s.Difficulty = d.Difficulty
	}
	if d.MaxPlayers > 0 {
		s.MaxPlayers = d.MaxPlayers
	}
	if d.Mode != "" {
		s.Mode = d.Mode
	}
	if d.IsPrivate != nil {
		s.IsPrivate = *d.IsPrivate
	}
	if d.IsChatLocked != nil {
		s.IsChatLocked = *d.IsChatLocked
	}
}

// DefaultSettings returns the settings a freshly created room starts with.
func DefaultSettings(roomID string) GameSettings {
	return GameSettings{
		RoomID:         roomID,
		RoomName:       DefaultRoomName,
		TargetLanguage: DefaultLanguage,
		Difficulty:     DifficultyNormal,
		MaxPlayers:     DefaultMaxPlayers,
		Mode:           ModeIndividual,
	}
}
