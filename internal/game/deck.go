package game

import (
	"fmt"
	"math/rand"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
)

// =============================================================================
// DECK BUILDER
// =============================================================================

// round2Palette names the color labels of round-2 cards. The color feeds the
// generator prompt only; it says nothing about the hidden kind.
var round2Palette = []string{
	"Kırmızı", "Mavi", "Yeşil", "Mor", "Altın",
	"Pembe", "Turuncu", "Turkuaz", "Lacivert", "Gül",
	"Camgöbeği", "Limon", "Kehribar", "Gümüş", "Zümrüt",
}

// composition returns the fixed kind counts for a round. The totals always
// add up to internal.DeckSize.
func composition(round int) (luck, task, punishment int, err error) {
	switch round {
	case 1:
		return 3, 8, 4, nil
	case 2:
		return 2, 8, 5, nil
	default:
		return 0, 0, 0, fmt.Errorf("no card deck for round %d", round)
	}
}

// BuildDeck constructs and shuffles the deck for rounds 1 and 2. Round 3 has
// no card grid. The shuffle is a Fisher-Yates permutation of the declared
// composition, so kind counts are conserved exactly.
func BuildDeck(round int, rng *rand.Rand) (*internal.Deck, error) {
	luck, task, punishment, err := composition(round)
	if err != nil {
		return nil, err
	}

	kinds := make([]internal.CardKind, 0, internal.DeckSize)
	for i := 0; i < luck; i++ {
		kinds = append(kinds, internal.KindLuck)
	}
	for i := 0; i < task; i++ {
		kinds = append(kinds, internal.KindTask)
	}
	for i := 0; i < punishment; i++ {
		kinds = append(kinds, internal.KindPunishment)
	}

	for i := len(kinds) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		kinds[i], kinds[j] = kinds[j], kinds[i]
	}

	cards := make([]internal.Card, 0, internal.DeckSize)
	kindMap := make(map[int]internal.CardKind, internal.DeckSize)
	for i := 0; i < internal.DeckSize; i++ {
		card := internal.Card{
			Kind:    internal.KindEmpty,
			Content: "?",
		}
		if round == 1 {
			card.ID = i + 1
			card.Label = fmt.Sprintf("%d", i+1)
		} else {
			// Round-2 ids live in their own range so a stale round-1 card id
			// can never address a round-2 card.
			card.ID = i + 200
			card.ColorName = round2Palette[i]
		}
		kindMap[card.ID] = kinds[i]
		cards = append(cards, card)
	}

	return internal.NewDeck(round, cards, kindMap), nil
}
