package game

import (
	"context"
	"time"
)

// =============================================================================
// COUNTDOWN TIMER
// =============================================================================

// Countdown runs a seconds-granularity countdown on its own goroutine.
// onTick fires once per elapsed second with the remaining value, onExpire
// fires exactly once when the countdown reaches zero. Stop cancels without
// firing onExpire. The owner (the session) never runs more than one at a
// time; starting a new countdown stops the previous one first.
type Countdown struct {
	ctx    context.Context
	cancel context.CancelFunc
	max    int
}

func StartCountdown(seconds int, onTick func(remaining int), onExpire func()) *Countdown {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(seconds)*time.Second)
	c := &Countdown{ctx: ctx, cancel: cancel, max: seconds}

	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		remaining := seconds
		for {
			select {
			case <-ticker.C:
				if remaining > 0 {
					remaining--
				}
				if onTick != nil {
					onTick(remaining)
				}
			case <-ctx.Done():
				// Deadline means natural expiry; anything else is a Stop.
				if ctx.Err() == context.DeadlineExceeded && onExpire != nil {
					// Run the callback off the timer goroutine so it may
					// start the next countdown freely.
					go onExpire()
				}
				return
			}
		}
	}()

	return c
}

// Stop cancels the countdown. Safe to call more than once and on nil.
func (c *Countdown) Stop() {
	if c == nil {
		return
	}
	c.cancel()
}

// Max returns the seconds the countdown started with.
func (c *Countdown) Max() int {
	return c.max
}
