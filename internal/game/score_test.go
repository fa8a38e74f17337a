package game

import (
	"math/rand"
	"testing"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
)

func TestApplyDelta(t *testing.T) {
	p := &internal.Player{ID: "a", Score: 10}

	ApplyDelta(p, 15)
	if p.Score != 25 {
		t.Errorf("Score = %d, want 25", p.Score)
	}
	if p.LastDelta != 15 {
		t.Errorf("LastDelta = %d, want 15", p.LastDelta)
	}

	ApplyDelta(p, -30)
	if p.Score != -5 {
		t.Errorf("Score = %d, want -5 (scores may go negative)", p.Score)
	}
	if p.LastDelta != -30 {
		t.Errorf("LastDelta = %d, want last write -30", p.LastDelta)
	}
	if p.LastDeltaAt.IsZero() {
		t.Error("LastDeltaAt not recorded")
	}
}

func TestJudgePoints(t *testing.T) {
	cases := []struct {
		kind    internal.CardKind
		success bool
		want    int
	}{
		{internal.KindTask, true, 15},
		{internal.KindTask, false, -5},
		{internal.KindPunishment, true, 15},
		{internal.KindPunishment, false, -15},
	}
	for _, tc := range cases {
		if got := JudgePoints(tc.kind, tc.success); got != tc.want {
			t.Errorf("JudgePoints(%s, %v) = %d, want %d", tc.kind, tc.success, got, tc.want)
		}
	}
}

func TestDrawLuckOutcome(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	seen := make(map[string]LuckOutcome)
	for i := 0; i < 500; i++ {
		o := DrawLuckOutcome(rng)
		seen[o.Kind] = o
		switch o.Points {
		case 50, 20, 10, 0:
		default:
			t.Fatalf("outcome %s has unexpected points %d", o.Kind, o.Points)
		}
		if o.Joker && o.Points != 0 {
			t.Fatalf("joker outcome must not score, got %d", o.Points)
		}
	}
	if len(seen) != 4 {
		t.Errorf("expected all 4 outcomes over 500 draws, saw %d", len(seen))
	}
	if o, ok := seen["JOKER"]; !ok || !o.Joker {
		t.Error("JOKER outcome missing or not flagged")
	}
	if o, ok := seen["JACKPOT"]; !ok || o.Points != 50 {
		t.Error("JACKPOT outcome missing or mispriced")
	}
}
