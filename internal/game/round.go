package game

import (
	"context"
	"log"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/gen"
)

// =============================================================================
// ROUND ENGINE - ROUNDS 1 & 2
// =============================================================================

// DrawCard reveals a card for the active player. If no player is in focus a
// turn is selected first; ErrNoEligibleTurn means the round is exhausted and
// the host should advance. LUCK cards resolve locally, TASK and PUNISHMENT
// cards go through the async generator. At most one card is in flight: a
// second draw is rejected, never queued.
func (s *Session) DrawCard(cardID int) error {
	s.mu.Lock()
	if s.state != internal.StateRound1 && s.state != internal.StateRound2 {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	if s.activeCardID != 0 || s.genPending {
		s.mu.Unlock()
		return internal.ErrDuplicateAction
	}
	card := s.deck.Card(cardID)
	if card == nil {
		s.mu.Unlock()
		return internal.ErrUnknownCard
	}
	if card.IsRevealed || card.Completed {
		s.mu.Unlock()
		return internal.ErrDuplicateAction
	}

	if s.activePlayerID == "" {
		players := make([]*internal.Player, 0, len(s.players))
		for _, id := range s.order {
			players = append(players, s.players[id])
		}
		pid, err := SelectNext(players, s.rng)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.setActivePlayerLocked(pid)
	}

	kind, ok := s.deck.KindOf(cardID)
	if !ok {
		s.mu.Unlock()
		return internal.ErrUnknownCard
	}

	card.IsRevealed = true
	card.Kind = kind
	card.Content = internal.ContentLoading
	s.activeCardID = cardID
	s.timeoutDone = false
	log.Printf("[DrawCard] room=%s: card=%d kind=%s player=%s", s.id, cardID, kind, s.activePlayerID)

	if kind == internal.KindLuck {
		s.resolveLuckLocked(cardID)
		s.finishLocked()
		return nil
	}

	s.requestContentLocked(cardID, kind, card.ColorName)
	s.finishLocked()
	return nil
}

// resolveLuckLocked applies a luck outcome immediately; no generator call is
// made. The card text appears after a short reveal delay and the card then
// auto-completes without judging.
func (s *Session) resolveLuckLocked(cardID int) {
	outcome := DrawLuckOutcome(s.rng)
	p := s.players[s.activePlayerID]
	ApplyDelta(p, outcome.Points)
	if outcome.Joker {
		p.HasJoker = true
	}
	p.HasPlayedInRound = true
	s.appendLogLocked(p.Name + ": " + outcome.Kind)
	log.Printf("[resolveLuck] room=%s: player=%s outcome=%s points=%+d", s.id, p.ID, outcome.Kind, outcome.Points)

	text := outcome.Text
	s.schedule(s.luckRevealDelay, func() {
		if s.deck == nil {
			return
		}
		card := s.deck.Card(cardID)
		if card == nil {
			return
		}
		// The card retires even if an early close already dropped the
		// focus; only the auto-close is keyed on it.
		card.Content = text
		card.Completed = true
		if s.activeCardID != cardID {
			return
		}
		s.schedule(s.luckCloseDelay, func() {
			if s.activeCardID != cardID {
				return
			}
			s.closeActiveCardLocked()
			s.activePlayerID = ""
		})
	})
}

// requestContentLocked fires the single in-flight generation request for the
// revealed card. On success content lands after a short reveal delay and the
// answer timer starts; on failure the card shows the fixed failure text and
// no timer starts until the host abandons the turn.
func (s *Session) requestContentLocked(cardID int, kind internal.CardKind, colorName string) {
	s.genPending = true
	captured := s.epoch

	genKind := gen.KindTask
	params := gen.Params{
		Language:   s.settings.TargetLanguage,
		Difficulty: string(s.settings.Difficulty),
	}
	switch {
	case kind == internal.KindPunishment:
		genKind = gen.KindPenalty
	case s.state == internal.StateRound2:
		genKind = gen.KindColorTask
		params.Extra = colorName
	}
	difficulty := s.settings.Difficulty
	generator := s.generator

	go func() {
		text, err := generator.Generate(context.Background(), genKind, params)

		s.mu.Lock()
		if s.epoch != captured || s.activeCardID != cardID {
			s.genPending = false
			s.mu.Unlock()
			return
		}
		s.genPending = false
		card := s.deck.Card(cardID)

		if err != nil {
			log.Printf("[requestContent] room=%s: card=%d: %v: %v", s.id, cardID, internal.ErrContentGeneration, err)
			card.Content = internal.ContentGenFailed
			s.finishLocked()
			return
		}

		s.schedule(s.taskRevealDelay, func() {
			if s.activeCardID != cardID {
				return
			}
			c := s.deck.Card(cardID)
			c.Content = text
			s.startTimerLocked(ResolveDuration(kind, text, difficulty))
		})
		s.finishLocked()
	}()
}

// Judge records the host verdict on the active card. LUCK cards are never
// judged; closing them has no score effect beyond what the draw applied.
func (s *Session) Judge(success bool) error {
	s.mu.Lock()
	if s.activeCardID == 0 || s.activePlayerID == "" {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	if s.genPending {
		s.mu.Unlock()
		return internal.ErrDuplicateAction
	}
	card := s.deck.Card(s.activeCardID)
	if card.Kind == internal.KindLuck {
		s.closeActiveCardLocked()
		s.activePlayerID = ""
		s.finishLocked()
		return nil
	}

	points := JudgePoints(card.Kind, success)
	p := s.players[s.activePlayerID]
	ApplyDelta(p, points)
	p.HasPlayedInRound = true
	card.Completed = true
	s.appendLogLocked(p.Name + ": " + string(card.Kind) + " " + verdict(success))
	log.Printf("[Judge] room=%s: player=%s card=%d success=%v points=%+d", s.id, p.ID, card.ID, success, points)

	s.closeActiveCardLocked()
	s.activePlayerID = ""
	s.finishLocked()
	return nil
}

func verdict(success bool) string {
	if success {
		return "başarılı"
	}
	return "başarısız"
}

// HandleTimeout applies the timeout penalty to the player in focus. Driven
// by the countdown expiry; calling it again before a new player takes focus
// is a no-op.
func (s *Session) HandleTimeout() {
	s.mu.Lock()
	s.handleTimeoutLocked()
	s.finishLocked()
}

func (s *Session) handleTimeoutLocked() {
	if s.timeoutDone {
		return
	}
	if s.activePlayerID == "" {
		s.closeActiveCardLocked()
		return
	}
	s.timeoutDone = true
	p := s.players[s.activePlayerID]
	ApplyDelta(p, TimeoutPoints)
	p.HasPlayedInRound = true
	s.appendLogLocked(p.Name + ": süre doldu")
	log.Printf("[handleTimeout] room=%s: player=%s penalized", s.id, p.ID)

	if s.activeCardID != 0 {
		if card := s.deck.Card(s.activeCardID); card != nil {
			card.Content = internal.ContentTimedOut
		}
	}
	cardID := s.activeCardID
	s.schedule(s.timeoutCloseDelay, func() {
		if cardID != 0 && s.activeCardID != cardID {
			return
		}
		s.closeActiveCardLocked()
		s.activePlayerID = ""
	})
}

// AbandonTurn is the host's way out of a turn whose content generation
// failed. The card is retired, the player keeps their eligibility.
func (s *Session) AbandonTurn() error {
	s.mu.Lock()
	if s.activeCardID == 0 {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	if s.genPending {
		s.mu.Unlock()
		return internal.ErrDuplicateAction
	}
	if card := s.deck.Card(s.activeCardID); card != nil {
		card.Completed = true
	}
	s.closeActiveCardLocked()
	s.activePlayerID = ""
	s.appendLogLocked("Tur iptal edildi")
	s.finishLocked()
	return nil
}

func (s *Session) setActivePlayerLocked(playerID string) {
	s.activePlayerID = playerID
	if p, ok := s.players[playerID]; ok {
		p.IsOnStage = true
		p.IsMuted = false
	}
	s.timeoutDone = false
}

// closeActiveCardLocked drops the card focus and stops the timer. The player
// focus is the caller's business: judging clears it, a luck reveal keeps it
// until the auto-close.
func (s *Session) closeActiveCardLocked() {
	s.activeCardID = 0
	s.stopTimerLocked()
}
