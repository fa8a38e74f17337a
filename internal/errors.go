package internal

import "errors"

// Error taxonomy of the session core. Everything here is recoverable by the
// caller; nothing is fatal to the process.
var (
	// ErrNoEligibleTurn signals round exhaustion: no non-host ACTIVE player
	// is left who has not played this round. The caller should advance.
	ErrNoEligibleTurn = errors.New("no eligible player left this round")

	// ErrInvalidTransition is returned when an operation is called in the
	// wrong game state or final sub-stage. Session state is unchanged.
	ErrInvalidTransition = errors.New("operation not valid in current state")

	// ErrDuplicateAction is returned when a draw, judge or stage trigger is
	// invoked while one is already in flight. Rejected, never queued.
	ErrDuplicateAction = errors.New("action already in progress")

	// ErrContentGeneration wraps failures of the content collaborator. The
	// session recovers locally by writing a fixed failure string.
	ErrContentGeneration = errors.New("content generation failed")

	// ErrUnknownCard is returned for a card id not present in the deck.
	ErrUnknownCard = errors.New("unknown card")

	// ErrUnknownPlayer is returned for a player id not in the roster.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrNotFinalist is returned when a non-finalist is put on stage.
	ErrNotFinalist = errors.New("player is not a finalist")

	// ErrSessionFull is returned when the roster hit MaxPlayers.
	ErrSessionFull = errors.New("session is full")
)
