// Package engine owns the two-player tally state: life totals, the
// coalesced change log, and the transient delta badges.
package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Player identifies one of the two counters.
type Player int

// The two fixed player identities.
const (
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

// Players lists both identities in display order.
var Players = [2]Player{PlayerOne, PlayerTwo}

// DefaultStartLife is the starting total when nothing else is configured.
const DefaultStartLife = 20

// Default coalescing windows. The badge lingers a little longer than the
// log debounce so the user can still read the combined delta after it
// has been committed.
const (
	DefaultDisplayWindow = 3000 * time.Millisecond
	DefaultHistoryWindow = 2000 * time.Millisecond
)

// ErrInvalidConfiguration reports a malformed starting-life value. The
// previous configuration stays in effect.
var ErrInvalidConfiguration = errors.New("invalid starting life")

// ErrZeroAmount reports an UpdateLife call with a zero delta, which is a
// caller bug: a zero delta can never appear in the change log.
var ErrZeroAmount = errors.New("zero life change")

// HistoryEntry is one committed, coalesced life change. Amount is the net
// sum of the burst and is never zero; ResultingLife is the player's total
// at commit time.
type HistoryEntry struct {
	Player        Player
	Amount        int
	ResultingLife int
	At            time.Time
}

// Config defines a session's starting state and coalescing windows.
type Config struct {
	StartLifeP1   int
	StartLifeP2   int
	DisplayWindow time.Duration
	HistoryWindow time.Duration
}

// DefaultConfig returns a Config with the stock values.
func DefaultConfig() Config {
	return Config{
		StartLifeP1:   DefaultStartLife,
		StartLifeP2:   DefaultStartLife,
		DisplayWindow: DefaultDisplayWindow,
		HistoryWindow: DefaultHistoryWindow,
	}
}

type slot struct {
	startLife   int
	currentLife int
	color       string

	display track // pending-delta badge
	journal track // change-log buffer
}

// Session is the authoritative owner of both player slots and the change
// log. All mutation goes through its methods, and all timing goes through
// Tick, so the whole engine stays on the caller's single event queue.
type Session struct {
	slots    map[Player]*slot
	history  []HistoryEntry
	notifier Notifier

	displayWindow time.Duration
	historyWindow time.Duration

	now func() time.Time
}

// New creates a session from cfg, assigning each player a color that
// stays fixed for the session's lifetime.
func New(cfg Config) *Session {
	if cfg.DisplayWindow <= 0 {
		cfg.DisplayWindow = DefaultDisplayWindow
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = DefaultHistoryWindow
	}
	colors := sessionColors()
	s := &Session{
		slots: map[Player]*slot{
			PlayerOne: {startLife: cfg.StartLifeP1, currentLife: cfg.StartLifeP1, color: colors[0]},
			PlayerTwo: {startLife: cfg.StartLifeP2, currentLife: cfg.StartLifeP2, color: colors[1]},
		},
		displayWindow: cfg.DisplayWindow,
		historyWindow: cfg.HistoryWindow,
		now:           time.Now,
	}
	return s
}

// OnLifeChanged registers fn to run whenever a life total or delta badge
// changes. Callbacks run synchronously inside the mutating call.
func (s *Session) OnLifeChanged(fn func()) {
	s.notifier.OnLifeChanged(fn)
}

// OnHistoryChanged registers fn to run whenever the change log grows or
// is cleared.
func (s *Session) OnHistoryChanged(fn func()) {
	s.notifier.OnHistoryChanged(fn)
}

// UpdateLife applies a signed delta to a player's total. Totals are
// unbounded in both directions. The delta is buffered into both
// coalescing tracks and restarts both of that player's windows; the
// other player's tracks are untouched.
func (s *Session) UpdateLife(p Player, amount int) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	sl, err := s.slot(p)
	if err != nil {
		return err
	}
	now := s.now()
	sl.currentLife += amount
	sl.display.add(amount, now.Add(s.displayWindow))
	sl.journal.add(amount, now.Add(s.historyWindow))
	s.notifier.lifeChanged()
	return nil
}

// SetStartLife parses raw as a player's new starting life and performs a
// full reset on success. Malformed input returns ErrInvalidConfiguration
// and leaves both the configuration and the running session untouched.
func (s *Session) SetStartLife(p Player, raw string) error {
	sl, err := s.slot(p)
	if err != nil {
		return err
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidConfiguration, raw)
	}
	sl.startLife = value
	s.Reset()
	return nil
}

// Reset restores both totals to their starting life, clears the change
// log, and cancels all four coalescing tracks without committing them. A
// buffered delta at reset time is discarded, never logged, so a window
// armed before the reset can't touch the fresh session.
func (s *Session) Reset() {
	for _, sl := range s.slots {
		sl.currentLife = sl.startLife
		sl.display.clear()
		sl.journal.clear()
	}
	s.history = nil
	s.notifier.lifeChanged()
	s.notifier.historyChanged()
}

// Tick commits any expired coalescing windows. The driver calls it from
// the same event loop that delivers input, so expiries never race a
// half-applied update.
func (s *Session) Tick() {
	now := s.now()
	for _, p := range Players {
		sl := s.slots[p]
		if sl.journal.expired(now) {
			if sum := sl.journal.sum; sum != 0 {
				s.history = append(s.history, HistoryEntry{
					Player:        p,
					Amount:        sum,
					ResultingLife: sl.currentLife,
					At:            now,
				})
				s.notifier.historyChanged()
			}
			sl.journal.clear()
		}
		if sl.display.expired(now) {
			sl.display.clear()
			s.notifier.lifeChanged()
		}
	}
}

// TimersActive reports whether any coalescing window is still armed, so
// the driver can stop ticking when the session is idle.
func (s *Session) TimersActive() bool {
	for _, sl := range s.slots {
		if sl.display.armed() || sl.journal.armed() {
			return true
		}
	}
	return false
}

// CurrentLife returns a player's total.
func (s *Session) CurrentLife(p Player) int {
	if sl, err := s.slot(p); err == nil {
		return sl.currentLife
	}
	return 0
}

// StartLife returns a player's configured starting total.
func (s *Session) StartLife(p Player) int {
	if sl, err := s.slot(p); err == nil {
		return sl.startLife
	}
	return 0
}

// PendingDelta returns the in-flight delta shown on a player's badge, or
// 0 once the display window has been committed or cleared.
func (s *Session) PendingDelta(p Player) int {
	if sl, err := s.slot(p); err == nil {
		return sl.display.sum
	}
	return 0
}

// Color returns the hex color assigned to a player for this session.
func (s *Session) Color(p Player) string {
	if sl, err := s.slot(p); err == nil {
		return sl.color
	}
	return ""
}

// History returns a copy of the change log, oldest first.
func (s *Session) History() []HistoryEntry {
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) slot(p Player) (*slot, error) {
	sl, ok := s.slots[p]
	if !ok {
		return nil, fmt.Errorf("unknown player %d", p)
	}
	return sl, nil
}
