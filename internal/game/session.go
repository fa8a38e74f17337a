package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/gen"
)

// =============================================================================
// SESSION ORCHESTRATOR - LIFECYCLE
// =============================================================================

// RoomListing is the fire-and-forget persistence side channel. Failures are
// logged and never affect the state machine.
type RoomListing interface {
	Upsert(ctx context.Context, summary internal.RoomSummary) error
	SetCount(ctx context.Context, roomID string, count int) error
	SetLive(ctx context.Context, roomID string, live bool) error
	Delete(ctx context.Context, roomID string) error
}

const listingTimeout = 5 * time.Second

// Session is the single owner of one room's game state. Every mutating
// operation takes the mutex, mutates, snapshots, unlocks, then broadcasts;
// helpers suffixed Locked assume the caller holds the lock.
type Session struct {
	mu sync.Mutex

	id       string
	settings internal.GameSettings
	state    internal.GameState
	stage    internal.FinalStage

	players map[string]*internal.Player
	order   []string // join order, drives deterministic iteration

	deck           *internal.Deck
	activeCardID   int
	activePlayerID string

	timer     internal.TimerState
	countdown *Countdown
	timerGen  uint64

	// epoch guards every delayed continuation: a reset or restart bumps it
	// and all continuations captured under the old epoch become no-ops.
	epoch uint64

	genPending  bool
	timeoutDone bool

	// pendingRound is the round PREPARE_ROUND will confirm into.
	pendingRound int

	finalists []string
	winnerID  string

	transitionTitle    string
	transitionSubtitle string
	nextRoundTitle     string
	nextRoundDesc      string
	finalContent       string
	spyMission         string

	gameLog []string

	rng       *rand.Rand
	generator gen.Generator
	listing   RoomListing
	broadcast func(internal.Message[any])

	// Delays are fields so tests can shrink them.
	transitionDelay   time.Duration
	luckRevealDelay   time.Duration
	taskRevealDelay   time.Duration
	luckCloseDelay    time.Duration
	timeoutCloseDelay time.Duration
}

// NewSession creates a fresh room with the caller as its sole host, on stage
// with score zero, and puts the session in the SOCIAL lobby. Every call
// produces a new room id.
func NewSession(host internal.Identity, generator gen.Generator, listing RoomListing, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	roomID := fmt.Sprintf("RM-%04d", 1000+rng.Intn(9000))

	s := &Session{
		id:        roomID,
		settings:  internal.DefaultSettings(roomID),
		state:     internal.StateSocial,
		stage:     internal.StageWaiting,
		players:   make(map[string]*internal.Player),
		rng:       rng,
		generator: generator,
		listing:   listing,

		transitionDelay:   internal.TransitionDuration,
		luckRevealDelay:   internal.LuckRevealDelay,
		taskRevealDelay:   internal.TaskRevealDelay,
		luckCloseDelay:    internal.LuckCloseDelay,
		timeoutCloseDelay: internal.TimeoutCloseDelay,
	}
	s.addPlayerLocked(host, true)
	s.appendLogLocked("Oda kuruldu: " + roomID)
	log.Printf("[NewSession] room=%s: created by host %s", roomID, host.ID)
	return s
}

func (s *Session) ID() string { return s.id }

// SetBroadcaster wires the transport layer in. The callback runs on its own
// goroutine and must not call back into the session synchronously.
func (s *Session) SetBroadcaster(fn func(internal.Message[any])) {
	s.mu.Lock()
	s.broadcast = fn
	s.mu.Unlock()
}

// Join adds a resolved identity to the roster. Joining twice is a no-op.
func (s *Session) Join(who internal.Identity) error {
	s.mu.Lock()
	if _, ok := s.players[who.ID]; ok {
		s.mu.Unlock()
		return nil
	}
	if len(s.players) >= s.settings.MaxPlayers {
		s.mu.Unlock()
		return internal.ErrSessionFull
	}
	s.addPlayerLocked(who, false)
	s.appendLogLocked(who.Name + " odaya katıldı")
	s.pushCountLocked()
	s.finishLocked()
	return nil
}

// addPlayerLocked builds the Player record. Team assignment follows gender;
// undeclared genders flip a coin.
func (s *Session) addPlayerLocked(who internal.Identity, isHost bool) {
	id := who.ID
	if id == "" {
		id = uuid.NewString()
	}
	team := internal.TeamKing
	switch who.Gender {
	case "Kadın":
		team = internal.TeamQueen
	case "Erkek":
		team = internal.TeamKing
	default:
		if s.rng.Intn(2) == 0 {
			team = internal.TeamQueen
		}
	}
	s.players[id] = &internal.Player{
		ID:        id,
		Name:      who.Name,
		Avatar:    who.Avatar,
		Gender:    who.Gender,
		Status:    internal.StatusActive,
		Team:      team,
		IsHost:    isHost,
		IsOnStage: isHost,
		IsMuted:   !isHost,
		JoinedAt:  time.Now(),
	}
	s.order = append(s.order, id)
}

// Leave removes a player. The host leaving aborts the whole session.
func (s *Session) Leave(playerID string) {
	s.mu.Lock()
	p, ok := s.players[playerID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if p.IsHost {
		s.abortLocked()
		s.finishLocked()
		return
	}
	s.removePlayerLocked(playerID)
	s.appendLogLocked(p.Name + " odadan ayrıldı")
	s.pushCountLocked()
	s.finishLocked()
}

// Kick removes a player by host decision. The host cannot be kicked.
func (s *Session) Kick(playerID string) error {
	s.mu.Lock()
	p, ok := s.players[playerID]
	if !ok {
		s.mu.Unlock()
		return internal.ErrUnknownPlayer
	}
	if p.IsHost {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	s.removePlayerLocked(playerID)
	s.appendLogLocked(p.Name + " odadan atıldı")
	s.pushCountLocked()
	s.finishLocked()
	return nil
}

func (s *Session) removePlayerLocked(playerID string) {
	delete(s.players, playerID)
	for i, id := range s.order {
		if id == playerID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.activePlayerID == playerID {
		// A player leaving mid-turn retires their card so it cannot wedge
		// the round half-revealed.
		if s.activeCardID != 0 && s.deck != nil {
			if card := s.deck.Card(s.activeCardID); card != nil {
				card.Completed = true
			}
		}
		s.activePlayerID = ""
		s.closeActiveCardLocked()
	}
}

// ToggleMute flips a player's own mute flag.
func (s *Session) ToggleMute(playerID string) error {
	s.mu.Lock()
	p, ok := s.players[playerID]
	if !ok {
		s.mu.Unlock()
		return internal.ErrUnknownPlayer
	}
	p.IsMuted = !p.IsMuted
	s.finishLocked()
	return nil
}

// MuteAll silences everyone except the host.
func (s *Session) MuteAll() {
	s.mu.Lock()
	for _, p := range s.players {
		if !p.IsHost {
			p.IsMuted = true
			p.IsMutedByHost = true
		}
	}
	s.finishLocked()
}

// ToggleSpy flips the spy flag on a player.
func (s *Session) ToggleSpy(playerID string) error {
	s.mu.Lock()
	p, ok := s.players[playerID]
	if !ok {
		s.mu.Unlock()
		return internal.ErrUnknownPlayer
	}
	p.IsSpy = !p.IsSpy
	s.finishLocked()
	return nil
}

// GenerateSpyMission asks the collaborator for a fresh spy mission text.
func (s *Session) GenerateSpyMission() {
	s.mu.Lock()
	captured := s.epoch
	generator := s.generator
	s.mu.Unlock()

	go func() {
		text, err := generator.Generate(context.Background(), gen.KindSpy, gen.Params{})
		s.mu.Lock()
		if s.epoch != captured {
			s.mu.Unlock()
			return
		}
		if err != nil {
			log.Printf("[GenerateSpyMission] room=%s: %v", s.id, err)
			s.spyMission = internal.ContentGenFailed
		} else {
			s.spyMission = text
		}
		s.finishLocked()
	}()
}

// UpdateSettings validates and commits a host settings draft.
func (s *Session) UpdateSettings(draft internal.SettingsDraft) error {
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	s.mu.Lock()
	draft.Apply(&s.settings)
	if s.settings.IsPublished {
		s.pushSummaryLocked()
	}
	s.finishLocked()
	return nil
}

// Publish puts the room on the public listing.
func (s *Session) Publish() {
	s.mu.Lock()
	s.settings.IsPublished = true
	s.pushSummaryLocked()
	s.finishLocked()
}

// StartGame locks the chat, marks the listing live and runs the round-1
// transition banner. The banner delay is a scheduled continuation, never a
// sleep: the session stays fully operable while it shows.
func (s *Session) StartGame() error {
	s.mu.Lock()
	if s.state != internal.StateSocial {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	s.settings.IsChatLocked = true
	s.resetRoundStatusLocked()
	s.pushLiveLocked(true)
	s.appendLogLocked("Oyun başladı")
	s.runTransitionLocked("1. TUR", "HIZLI & ÖFKELİ", 1)
	s.finishLocked()
	return nil
}

// runTransitionLocked shows the banner and schedules the landing state.
func (s *Session) runTransitionLocked(title, subtitle string, round int) {
	s.state = internal.StateTransition
	s.transitionTitle = title
	s.transitionSubtitle = subtitle
	log.Printf("[runTransition] room=%s: %q -> round %d", s.id, title, round)
	s.schedule(s.transitionDelay, func() {
		if round == 3 {
			s.startFinalLocked()
			return
		}
		s.startRoundLocked(round)
	})
}

// startRoundLocked builds the round deck and enters ROUND_1 or ROUND_2.
func (s *Session) startRoundLocked(round int) {
	deck, err := BuildDeck(round, s.rng)
	if err != nil {
		log.Printf("[startRound] room=%s: %v", s.id, err)
		return
	}
	s.resetRoundStatusLocked()
	s.deck = deck
	s.genPending = false
	if round == 1 {
		s.state = internal.StateRound1
	} else {
		s.state = internal.StateRound2
	}
	s.appendLogLocked(fmt.Sprintf("%d. tur başladı", round))
	log.Printf("[startRound] room=%s: round %d, %d cards", s.id, round, len(deck.Cards))
}

func (s *Session) resetRoundStatusLocked() {
	for _, p := range s.players {
		p.ResetRoundState()
	}
	s.activePlayerID = ""
	s.activeCardID = 0
	s.timeoutDone = false
}

// AdvanceRound enters the PREPARE_ROUND preview. Only the explicit host
// confirmation moves on from there.
func (s *Session) AdvanceRound() error {
	s.mu.Lock()
	var title, desc string
	switch s.state {
	case internal.StateRound1:
		s.pendingRound = 2
		title = "2. TUR: RENKLERİN DİLİ"
		desc = "Kutuları seç, rengine uygun görevi yap! Dikkat: Cevaplar sende, sorular bizde."
	case internal.StateRound2:
		s.pendingRound = 3
		title = "BÜYÜK FİNAL"
		desc = "Sadece en iyiler kaldı. Soruyu bil, cevabı bul, şampiyonluğu kazan."
	default:
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	s.state = internal.StatePrepareRound
	s.nextRoundTitle = title
	s.nextRoundDesc = desc
	s.closeActiveCardLocked()
	s.activePlayerID = ""
	s.finishLocked()
	return nil
}

// ConfirmAdvance runs the transition into the prepared round.
func (s *Session) ConfirmAdvance() error {
	s.mu.Lock()
	if s.state != internal.StatePrepareRound || s.pendingRound == 0 {
		s.mu.Unlock()
		return internal.ErrInvalidTransition
	}
	round := s.pendingRound
	s.pendingRound = 0
	if round == 2 {
		s.runTransitionLocked("2. TUR", "RENK SPEKTRUMU", 2)
	} else {
		s.runTransitionLocked("FİNAL", "SON KARAR", 3)
	}
	s.finishLocked()
	return nil
}

// DeclareWinner ends the game on an explicit winner.
func (s *Session) DeclareWinner(playerID string) error {
	s.mu.Lock()
	p, ok := s.players[playerID]
	if !ok {
		s.mu.Unlock()
		return internal.ErrUnknownPlayer
	}
	s.declareWinnerLocked(p)
	s.finishLocked()
	return nil
}

func (s *Session) declareWinnerLocked(p *internal.Player) {
	s.winnerID = p.ID
	s.state = internal.StateWinnerReveal
	s.stopTimerLocked()
	s.appendLogLocked("Kazanan: " + p.Name)
	log.Printf("[declareWinner] room=%s: winner=%s score=%d", s.id, p.ID, p.Score)
}

// Restart keeps the roster, zeroes scores and per-round flags and returns to
// the SOCIAL lobby. Pending continuations die with the epoch bump.
func (s *Session) Restart() {
	s.mu.Lock()
	s.epoch++
	s.stopTimerLocked()
	s.state = internal.StateSocial
	s.stage = internal.StageWaiting
	s.settings.IsChatLocked = false
	s.deck = nil
	s.activeCardID = 0
	s.activePlayerID = ""
	s.genPending = false
	s.finalists = nil
	s.winnerID = ""
	s.finalContent = ""
	s.pendingRound = 0
	for _, p := range s.players {
		p.Score = 0
		p.LastDelta = 0
		p.HasPlayedInRound = false
		p.Status = internal.StatusActive
	}
	s.appendLogLocked("Oyun sıfırlandı")
	s.pushLiveLocked(false)
	s.finishLocked()
}

// Abort short-circuits any state back to MENU, clears the roster and pulls
// the room off the listing.
func (s *Session) Abort() {
	s.mu.Lock()
	s.abortLocked()
	s.finishLocked()
}

func (s *Session) abortLocked() {
	s.epoch++
	s.stopTimerLocked()
	s.state = internal.StateMenu
	s.stage = internal.StageWaiting
	s.settings.IsChatLocked = false
	s.players = make(map[string]*internal.Player)
	s.order = nil
	s.deck = nil
	s.activeCardID = 0
	s.activePlayerID = ""
	s.genPending = false
	s.finalists = nil
	s.winnerID = ""
	s.pendingRound = 0
	if s.listing != nil {
		roomID := s.id
		listing := s.listing
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), listingTimeout)
			defer cancel()
			if err := listing.Delete(ctx, roomID); err != nil {
				log.Printf("[Abort] room=%s: listing delete: %v", roomID, err)
			}
		}()
	}
	log.Printf("[Abort] room=%s: session reset to menu", s.id)
}

// =============================================================================
// SCHEDULING, TIMER, SNAPSHOT PLUMBING
// =============================================================================

// schedule runs fn under the lock after d, unless the session epoch moved on
// in the meantime. fn must not unlock; broadcasting happens afterwards.
func (s *Session) schedule(d time.Duration, fn func()) {
	captured := s.epoch
	time.AfterFunc(d, func() {
		s.mu.Lock()
		if s.epoch != captured {
			s.mu.Unlock()
			return
		}
		fn()
		s.finishLocked()
	})
}

// startTimerLocked arms the single countdown, cancelling any previous one.
func (s *Session) startTimerLocked(seconds int) {
	s.countdown.Stop()
	s.timer = internal.TimerState{Value: seconds, Max: seconds, Running: true}
	s.timerGen++
	captured := s.epoch
	tgen := s.timerGen

	onTick := func(remaining int) {
		s.mu.Lock()
		// A replaced countdown may deliver one last tick; the generation
		// check drops it.
		if s.epoch != captured || s.timerGen != tgen || !s.timer.Running {
			s.mu.Unlock()
			return
		}
		s.timer.Value = remaining
		update := internal.TimerUpdateData{Value: remaining, Max: s.timer.Max, Running: true}
		b := s.broadcast
		s.mu.Unlock()
		if b != nil {
			b(internal.Message[any]{Type: "timer_update", Data: update})
		}
	}
	onExpire := func() {
		s.mu.Lock()
		if s.epoch != captured || s.timerGen != tgen {
			s.mu.Unlock()
			return
		}
		s.timer.Value = 0
		s.timer.Running = false
		s.handleTimeoutLocked()
		s.finishLocked()
	}
	s.countdown = StartCountdown(seconds, onTick, onExpire)
}

func (s *Session) stopTimerLocked() {
	s.countdown.Stop()
	s.countdown = nil
	s.timer.Running = false
	s.timer.Value = 0
}

func (s *Session) appendLogLocked(entry string) {
	s.gameLog = append(s.gameLog, entry)
	if len(s.gameLog) > 100 {
		s.gameLog = s.gameLog[len(s.gameLog)-100:]
	}
}

// finishLocked snapshots, unlocks and broadcasts. Every mutating public
// method and every scheduled continuation ends through here.
func (s *Session) finishLocked() {
	snap := s.snapshotLocked()
	b := s.broadcast
	s.mu.Unlock()
	if b != nil {
		b(internal.Message[any]{Type: "snapshot", Data: snap})
	}
}

// Snapshot returns a read-only copy of the observable session state.
func (s *Session) Snapshot() internal.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() internal.SessionSnapshot {
	players := make([]internal.Player, 0, len(s.players))
	kingScore, queenScore := 0, 0
	for _, id := range s.order {
		p := s.players[id]
		players = append(players, p.Snapshot())
		switch p.Team {
		case internal.TeamKing:
			kingScore += p.Score
		case internal.TeamQueen:
			queenScore += p.Score
		}
	}

	var cards []internal.Card
	if s.deck != nil {
		cards = make([]internal.Card, len(s.deck.Cards))
		copy(cards, s.deck.Cards)
	}

	var winner *internal.Player
	if s.winnerID != "" {
		if p, ok := s.players[s.winnerID]; ok {
			w := p.Snapshot()
			winner = &w
		}
	}

	return internal.SessionSnapshot{
		RoomID:             s.id,
		Settings:           s.settings,
		State:              s.state,
		Stage:              s.stage,
		Players:            players,
		Cards:              cards,
		Timer:              s.timer,
		ActiveCardID:       s.activeCardID,
		ActivePlayerID:     s.activePlayerID,
		TransitionTitle:    s.transitionTitle,
		TransitionSubtitle: s.transitionSubtitle,
		NextRoundTitle:     s.nextRoundTitle,
		NextRoundDesc:      s.nextRoundDesc,
		Finalists:          append([]string(nil), s.finalists...),
		FinalContent:       s.finalContent,
		SpyMission:         s.spyMission,
		Winner:             winner,
		KingScore:          kingScore,
		QueenScore:         queenScore,
		Log:                append([]string(nil), s.gameLog...),
	}
}

// =============================================================================
// LISTING SIDE CHANNEL
// =============================================================================

func (s *Session) summaryLocked() internal.RoomSummary {
	avatars := make([]string, 0, 3)
	for _, id := range s.order {
		if len(avatars) == 3 {
			break
		}
		avatars = append(avatars, s.players[id].Avatar)
	}
	tags := []string{s.settings.TargetLanguage}
	if s.settings.Mode == internal.ModeTeam {
		tags = append(tags, "Takım Savaşı")
	} else {
		tags = append(tags, "Yarışma")
	}
	return internal.RoomSummary{
		ID:       s.id,
		Title:    s.settings.RoomName,
		Language: s.settings.TargetLanguage,
		Count:    len(s.players),
		Avatars:  avatars,
		Tags:     tags,
		IsLive:   s.state != internal.StateSocial && s.state != internal.StateMenu,
	}
}

func (s *Session) pushSummaryLocked() {
	if s.listing == nil {
		return
	}
	summary := s.summaryLocked()
	listing := s.listing
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), listingTimeout)
		defer cancel()
		if err := listing.Upsert(ctx, summary); err != nil {
			log.Printf("[pushSummary] room=%s: %v", summary.ID, err)
		}
	}()
}

func (s *Session) pushCountLocked() {
	if s.listing == nil || !s.settings.IsPublished {
		return
	}
	roomID, count, listing := s.id, len(s.players), s.listing
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), listingTimeout)
		defer cancel()
		if err := listing.SetCount(ctx, roomID, count); err != nil {
			log.Printf("[pushCount] room=%s: %v", roomID, err)
		}
	}()
}

func (s *Session) pushLiveLocked(live bool) {
	if s.listing == nil || !s.settings.IsPublished {
		return
	}
	roomID, listing := s.id, s.listing
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), listingTimeout)
		defer cancel()
		if err := listing.SetLive(ctx, roomID, live); err != nil {
			log.Printf("[pushLive] room=%s: %v", roomID, err)
		}
	}()
}

// sortedByScoreLocked returns roster ids ordered by score descending with
// earlier joiners first on ties.
func (s *Session) sortedByScoreLocked() []*internal.Player {
	out := make([]*internal.Player, 0, len(s.players))
	for _, id := range s.order {
		out = append(out, s.players[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
