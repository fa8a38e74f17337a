package game

import (
	"math/rand"
	"strings"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
)

// =============================================================================
// TURN SCHEDULER
// =============================================================================

// SelectNext picks the next player to answer, uniformly at random among the
// eligible candidates. Random, not round-robin: fairness by chance is the
// rule of the game. Returns ErrNoEligibleTurn when the round is exhausted.
func SelectNext(players []*internal.Player, rng *rand.Rand) (string, error) {
	candidates := make([]*internal.Player, 0, len(players))
	for _, p := range players {
		if p.Eligible() {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return "", internal.ErrNoEligibleTurn
	}
	return candidates[rng.Intn(len(candidates))].ID, nil
}

// Timer durations in seconds.
const (
	durationSong       = 30
	durationList       = 15
	durationEasy       = 30
	durationNormal     = 20
	durationHard       = 15
	durationPunishment = 15
)

// ResolveDuration sizes the answer timer for a revealed card. Content
// keywords win over difficulty; punishment cards always get the shortest
// slot. Kept as a flat rule table so each row is testable on its own.
func ResolveDuration(kind internal.CardKind, content string, difficulty internal.Difficulty) int {
	lower := strings.ToLower(content)
	if strings.Contains(lower, "şarkı") {
		return durationSong
	}
	if strings.Contains(lower, "say") || strings.Contains(lower, "listele") {
		return durationList
	}
	if kind == internal.KindPunishment {
		return durationPunishment
	}
	switch difficulty {
	case internal.DifficultyEasy:
		return durationEasy
	case internal.DifficultyHard, internal.DifficultyExpert:
		return durationHard
	default:
		return durationNormal
	}
}
