package game

import (
	"math/rand"
	"time"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
)

// =============================================================================
// SCORING LEDGER
// =============================================================================

// Round point tables. Scores are unbounded in both directions.
const (
	TaskSuccessPoints   = 15
	TaskFailurePoints   = -5
	PunishFailurePoints = -15
	TimeoutPoints       = -10
	FinalSuccessPoints  = 50
	FinalFailurePoints  = -20
)

// ApplyDelta adds delta to the player's score and records the audit fields
// used for transient score popups. Last write wins on LastDelta.
func ApplyDelta(p *internal.Player, delta int) {
	p.Score += delta
	p.LastDelta = delta
	p.LastDeltaAt = time.Now()
}

// JudgePoints maps a host verdict on a revealed card to a score delta.
func JudgePoints(kind internal.CardKind, success bool) int {
	if kind == internal.KindPunishment && !success {
		return PunishFailurePoints
	}
	if success {
		return TaskSuccessPoints
	}
	return TaskFailurePoints
}

// LuckOutcome is one row of the fixed luck table.
type LuckOutcome struct {
	Kind   string
	Text   string
	Points int
	Joker  bool
}

var luckTable = []LuckOutcome{
	{Kind: "JACKPOT", Text: "🎉 BÜYÜK İKRAMİYE!\n+50 PUAN!", Points: 50},
	{Kind: "BONUS", Text: "✨ ŞANSLI GÜN!\n+20 PUAN", Points: 20},
	{Kind: "JOKER", Text: "🃏 JOKER KAZANDIN!\nBu kartı sakla.", Points: 0, Joker: true},
	{Kind: "SAFE", Text: "🛡️ DOKUNULMAZLIK!\n+10 Puan", Points: 10},
}

// DrawLuckOutcome picks uniformly among the four luck outcomes.
func DrawLuckOutcome(rng *rand.Rand) LuckOutcome {
	return luckTable[rng.Intn(len(luckTable))]
}
