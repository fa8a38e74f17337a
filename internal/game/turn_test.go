package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
)

func rosterForTurns() []*internal.Player {
	return []*internal.Player{
		{ID: "host", IsHost: true, Status: internal.StatusActive},
		{ID: "a", Status: internal.StatusActive},
		{ID: "b", Status: internal.StatusActive, HasPlayedInRound: true},
		{ID: "c", Status: internal.StatusEliminated},
		{ID: "d", Status: internal.StatusActive},
	}
}

func TestSelectNextOnlyEligible(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	players := rosterForTurns()

	picked := make(map[string]int)
	for i := 0; i < 200; i++ {
		id, err := SelectNext(players, rng)
		if err != nil {
			t.Fatalf("SelectNext: %v", err)
		}
		picked[id]++
	}
	for id := range picked {
		if id != "a" && id != "d" {
			t.Errorf("ineligible player %q was picked", id)
		}
	}
	if picked["a"] == 0 || picked["d"] == 0 {
		t.Errorf("selection is not spread over eligible players: %v", picked)
	}
}

func TestSelectNextExhausted(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	players := []*internal.Player{
		{ID: "host", IsHost: true, Status: internal.StatusActive},
		{ID: "a", Status: internal.StatusActive, HasPlayedInRound: true},
	}
	_, err := SelectNext(players, rng)
	if !errors.Is(err, internal.ErrNoEligibleTurn) {
		t.Fatalf("err = %v, want ErrNoEligibleTurn", err)
	}
}

func TestResolveDuration(t *testing.T) {
	cases := []struct {
		name       string
		kind       internal.CardKind
		content    string
		difficulty internal.Difficulty
		want       int
	}{
		{"song keyword wins", internal.KindTask, "Bir şarkı söyle", internal.DifficultyEasy, 30},
		{"song wins over punishment", internal.KindPunishment, "İngilizce şarkı mırıldan", internal.DifficultyNormal, 30},
		{"count keyword", internal.KindTask, "10'a kadar say", internal.DifficultyEasy, 15},
		{"list keyword", internal.KindTask, "5 hayvan listele", internal.DifficultyNormal, 15},
		{"punishment default", internal.KindPunishment, "Tek ayak üstünde dur", internal.DifficultyEasy, 15},
		{"easy", internal.KindTask, "Kendini tanıt", internal.DifficultyEasy, 30},
		{"normal", internal.KindTask, "Kendini tanıt", internal.DifficultyNormal, 20},
		{"hard", internal.KindTask, "Kendini tanıt", internal.DifficultyHard, 15},
		{"expert as hard", internal.KindTask, "Kendini tanıt", internal.DifficultyExpert, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveDuration(tc.kind, tc.content, tc.difficulty)
			if got != tc.want {
				t.Errorf("ResolveDuration(%s, %q, %s) = %d, want %d", tc.kind, tc.content, tc.difficulty, got, tc.want)
			}
		})
	}
}
