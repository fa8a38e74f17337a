package internal

import (
	"time"
)

const (
	TransitionDuration   = 3 * time.Second
	LuckRevealDelay      = 800 * time.Millisecond
	TaskRevealDelay      = 1 * time.Second
	LuckCloseDelay       = 3 * time.Second
	TimeoutCloseDelay    = 2500 * time.Millisecond
	FinalStageDuration   = 30
	DeckSize             = 15
	MaxFinalists         = 3
	DefaultMaxPlayers    = 50
	MaxPlayersPerSession = 50
)

// User-facing content placeholders. Turkish by design: the game room speaks
// the players' language, the target language lives inside the generated tasks.
const (
	ContentLoading   = "YÜKLENİYOR..."
	ContentPreparing = "Soru Hazırlanıyor..."
	ContentGenFailed = "Bağlantı hatası. Lütfen tekrar deneyin."
	ContentTimedOut  = "🛑 SÜRE DOLDU!"
	DefaultRoomName  = "DİL AVCILARI"
	DefaultLanguage  = "İngilizce"
)

type GameState string

const (
	StateMenu         GameState = "MENU"
	StateSocial       GameState = "SOCIAL"
	StateTransition   GameState = "TRANSITION"
	StatePrepareRound GameState = "PREPARE_ROUND"
	StateRound1       GameState = "ROUND_1"
	StateRound2       GameState = "ROUND_2"
	StateRound3       GameState = "ROUND_3"
	StateWinnerReveal GameState = "WINNER_REVEAL"
)

// FinalStage is the sub-state of ROUND_3. It is only meaningful while the
// session state is StateRound3.
type FinalStage string

const (
	StageWaiting   FinalStage = "WAITING"
	StageWrongWord FinalStage = "WRONG_WORD"
	StageQuery     FinalStage = "QUERY"
	StageRiddle    FinalStage = "RIDDLE"
)

type PlayerStatus string

const (
	StatusActive     PlayerStatus = "ACTIVE"
	StatusEliminated PlayerStatus = "ELIMINATED"
	StatusSpectator  PlayerStatus = "SPECTATOR"
)

type CardKind string

const (
	KindTask       CardKind = "TASK"
	KindPunishment CardKind = "PUNISHMENT"
	KindLuck       CardKind = "LUCK"
	KindEmpty      CardKind = "EMPTY"
)

type GameMode string

const (
	ModeIndividual GameMode = "INDIVIDUAL"
	ModeTeam       GameMode = "TEAM"
)

type Team string

const (
	TeamKing  Team = "KING"
	TeamQueen Team = "QUEEN"
	TeamNone  Team = ""
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Kolay"
	DifficultyNormal Difficulty = "Orta"
	DifficultyHard   Difficulty = "Zor"
	DifficultyExpert Difficulty = "Expert"
)

// AvailableLanguages are the target languages a host may pick for a room.
var AvailableLanguages = []string{
	"Türkçe", "İngilizce", "Kürtçe", "Arapça", "İspanyolca",
	"Almanca", "Fransızca", "Çince", "Rusça", "İtalyanca",
	"Japonca", "Portekizce", "Farsça", "Azerice", "Osmanlıca", "Korece",
}

// GameSettings is mutated only by the host and read by the round engines to
// parametrize generated content and timer durations.
type GameSettings struct {
	RoomID         string     `json:"room_id"`
	RoomName       string     `json:"room_name"`
	TargetLanguage string     `json:"target_language"`
	Difficulty     Difficulty `json:"difficulty"`
	MaxPlayers     int        `json:"max_players"`
	IsPrivate      bool       `json:"is_private"`
	IsPublished    bool       `json:"is_published"`
	Mode           GameMode   `json:"mode"`
	IsChatLocked   bool       `json:"is_chat_locked"`
}

// RoomSummary is the listing record pushed to the persistence side channel.
type RoomSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Language string   `json:"language"`
	Count    int      `json:"count"`
	Avatars  []string `json:"avatars"`
	Tags     []string `json:"tags"`
	IsLive   bool     `json:"is_live"`
}

// Identity is the resolved user handed over by the identity collaborator at
// join time. This backend never authenticates, it only reads one of these.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Gender string `json:"gender"`
}

// Card is a drawable unit in rounds 1-2. Kind stays KindEmpty until the card
// is drawn; Completed never flips back to false within a round.
type Card struct {
	ID         int      `json:"id"`
	Kind       CardKind `json:"kind"`
	Label      string   `json:"label"`
	ColorName  string   `json:"color_name,omitempty"`
	Content    string   `json:"content"`
	IsRevealed bool     `json:"is_revealed"`
	Completed  bool     `json:"completed"`
}

// Deck holds the cards of the active round plus the hidden kind assignment.
// The kind map is only consulted when a player draws, so snapshots never leak
// what an unrevealed card is.
type Deck struct {
	Round int
	Cards []Card
	kinds map[int]CardKind
}

func NewDeck(round int, cards []Card, kinds map[int]CardKind) *Deck {
	return &Deck{Round: round, Cards: cards, kinds: kinds}
}

// KindOf reveals the hidden kind of a card.
func (d *Deck) KindOf(id int) (CardKind, bool) {
	k, ok := d.kinds[id]
	return k, ok
}

// Card returns a pointer into the deck for in-place mutation, or nil.
func (d *Deck) Card(id int) *Card {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i]
		}
	}
	return nil
}

// KindCounts tallies the hidden composition, used by tests and sanity checks.
func (d *Deck) KindCounts() map[CardKind]int {
	counts := make(map[CardKind]int)
	for _, k := range d.kinds {
		counts[k]++
	}
	return counts
}

// TimerState is the observable slice of the countdown. The goroutine driving
// it lives in the game package; at most one is live per session.
type TimerState struct {
	Value   int  `json:"value"`
	Max     int  `json:"max"`
	Running bool `json:"running"`
}
