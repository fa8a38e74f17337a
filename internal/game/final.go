package game

import (
	"context"
	"log"
	"slices"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/gen"
)

// =============================================================================
// FINAL STAGE ENGINE - ROUND 3
// =============================================================================

var stageKinds = map[internal.FinalStage]gen.Kind{
	internal.StageWrongWord: gen.KindWrongWord,
	internal.StageQuery:     gen.KindInterview,
	internal.StageRiddle:    gen.KindRiddle,
}

// startFinalLocked enters ROUND_3 and freezes the finalist set. The frozen
// membership never changes afterwards, even if scores move.
func (s *Session) startFinalLocked() {
	s.state = internal.StateRound3
	s.stage = internal.StageWaiting
	s.activeCardID = 0
	s.activePlayerID = ""
	s.deck = nil
	s.finalists = s.computeFinalistsLocked()
	s.appendLogLocked("Büyük final başladı")
	log.Printf("[startFinal] room=%s: finalists=%v", s.id, s.finalists)
}

// computeFinalistsLocked picks the top three by score among players with a
// positive score who were not eliminated. Ties break toward the earlier
// joiner, which sortedByScoreLocked already guarantees.
func (s *Session) computeFinalistsLocked() []string {
	ids := make([]string, 0, internal.MaxFinalists)
	for _, p := range s.sortedByScoreLocked() {
		if len(ids) == internal.MaxFinalists {
			break
		}
		if p.Score > 0 && p.Status != internal.StatusEliminated {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// TriggerStage opens one of the three named final stages. The host may
// trigger stages in any order and any number of times; each trigger requests
// one piece of content and clears the player focus. The 30 second timer only
// starts once a finalist is put on stage.
func (s *Session) TriggerStage(stage internal.FinalStage) error {
	s.mu.Lock()
	if s.state != internal.StateRound3 {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	kind, ok := stageKinds[stage]
	if !ok {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	if s.genPending {
		s.mu.Unlock()
		return internal.ErrDuplicateAction
	}

	s.stage = stage
	s.finalContent = internal.ContentPreparing
	s.activePlayerID = ""
	s.stopTimerLocked()
	s.genPending = true
	captured := s.epoch
	params := gen.Params{
		Language:   s.settings.TargetLanguage,
		Difficulty: string(s.settings.Difficulty),
	}
	generator := s.generator
	log.Printf("[TriggerStage] room=%s: stage=%s", s.id, stage)

	go func() {
		text, err := generator.Generate(context.Background(), kind, params)

		s.mu.Lock()
		if s.epoch != captured || s.stage != stage {
			s.genPending = false
			s.mu.Unlock()
			return
		}
		s.genPending = false
		if err != nil {
			log.Printf("[TriggerStage] room=%s: stage=%s: %v: %v", s.id, stage, internal.ErrContentGeneration, err)
			s.finalContent = internal.ContentGenFailed
		} else {
			s.finalContent = text
		}
		s.finishLocked()
	}()

	s.finishLocked()
	return nil
}

// SetPlayerOnStage puts a finalist in focus and arms the 30 second timer.
// Only members of the frozen finalist set qualify.
func (s *Session) SetPlayerOnStage(playerID string) error {
	s.mu.Lock()
	if s.state != internal.StateRound3 || s.stage == internal.StageWaiting {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	if !slices.Contains(s.finalists, playerID) {
		s.mu.Unlock()
		return internal.ErrNotFinalist
	}
	s.setActivePlayerLocked(playerID)
	s.startTimerLocked(internal.FinalStageDuration)
	log.Printf("[SetPlayerOnStage] room=%s: player=%s stage=%s", s.id, playerID, s.stage)
	s.finishLocked()
	return nil
}

// JudgeFinal scores a staged finalist and frees the stage for the next one.
func (s *Session) JudgeFinal(playerID string, success bool) error {
	s.mu.Lock()
	if s.state != internal.StateRound3 {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	p, ok := s.players[playerID]
	if !ok {
		s.mu.Unlock()
		return internal.ErrUnknownPlayer
	}
	points := FinalFailurePoints
	if success {
		points = FinalSuccessPoints
	}
	ApplyDelta(p, points)
	s.stopTimerLocked()
	s.activePlayerID = ""
	s.timeoutDone = true
	s.appendLogLocked(p.Name + ": final " + verdict(success))
	log.Printf("[JudgeFinal] room=%s: player=%s success=%v points=%+d", s.id, playerID, success, points)
	s.finishLocked()
	return nil
}

// Finalize crowns the highest scorer among the frozen finalists and moves to
// WINNER_REVEAL. Ties resolve toward the finalist frozen first, which is the
// earlier joiner.
func (s *Session) Finalize() error {
	s.mu.Lock()
	if s.state != internal.StateRound3 {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	if len(s.finalists) == 0 {
		s.mu.Unlock()
		return internal.ErrNoEligibleTurn
	}

	var winner *internal.Player
	for _, id := range s.finalists {
		p, ok := s.players[id]
		if !ok {
			continue
		}
		if winner == nil || p.Score > winner.Score {
			winner = p
		}
	}
	if winner == nil {
		s.mu.Unlock()
		return internal.ErrNoEligibleTurn
	}
	s.declareWinnerLocked(winner)
	s.finishLocked()
	return nil
}
