package usecase

import (
	"strings"
	"sync"
	"time"

	"github.com/ecomate/backend/internal/domain"
	"github.com/ecomate/backend/internal/infrastructure/logging"
	"github.com/rs/zerolog"
)

// Default timings for an interactive session
const (
	DefaultResultDelay   = 2500 * time.Millisecond
	DefaultInputDebounce = 300 * time.Millisecond
)

// SessionState is the lifecycle state of a SearchSession
type SessionState int

const (
	StateIdle SessionState = iota
	StatePending
	StateLoading
	StateDisplaying
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateLoading:
		return "loading"
	case StateDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// Renderer is the presentation side of a session. Calls are serialized by
// the session; implementations must not call back into the session.
type Renderer interface {
	ShowLoading(query string)
	Render(product domain.Product)
	ShowSuggestions(query string, alternatives []domain.Product)
	HideSuggestions()
	Clear()
}

// Timer is a pending callback that can be canceled
type Timer interface {
	Stop() bool
}

// Scheduler arms delayed callbacks
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SearchSessionConfig holds the timings for a session. Zero values use the defaults.
type SearchSessionConfig struct {
	ResultDelay   time.Duration
	InputDebounce time.Duration
	Scheduler     Scheduler
}

// SearchSession drives one search box: keystrokes, explicit searches and clears.
// It owns a single timer. Arming a new one always cancels the previous one, so a
// burst of triggers produces one computation, for the last trigger.
type SearchSession struct {
	matcher   *MatchingService
	catalog   *domain.Catalog
	renderer  Renderer
	scheduler Scheduler

	resultDelay   time.Duration
	inputDebounce time.Duration

	mu           sync.Mutex
	state        SessionState
	timer        Timer
	generation   uint64
	displaying   bool
	alternatives []domain.Product

	logger zerolog.Logger
}

// NewSearchSession creates a session over catalog. A nil catalog makes every
// search a no-op.
func NewSearchSession(
	matcher *MatchingService,
	catalog *domain.Catalog,
	renderer Renderer,
	config SearchSessionConfig,
) *SearchSession {
	resultDelay := config.ResultDelay
	if resultDelay == 0 {
		resultDelay = DefaultResultDelay
	}

	inputDebounce := config.InputDebounce
	if inputDebounce == 0 {
		inputDebounce = DefaultInputDebounce
	}

	scheduler := config.Scheduler
	if scheduler == nil {
		scheduler = realScheduler{}
	}

	return &SearchSession{
		matcher:       matcher,
		catalog:       catalog,
		renderer:      renderer,
		scheduler:     scheduler,
		resultDelay:   resultDelay,
		inputDebounce: inputDebounce,
		state:         StateIdle,
		logger:        logging.Logger("session"),
	}
}

// State returns the current lifecycle state
func (s *SearchSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Input handles a keystroke: any armed timer is canceled and, for a non-empty
// query, suggestions are shown once typing pauses for the input debounce.
func (s *SearchSession) Input(query string) {
	q := strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if q == "" || s.catalog == nil {
		s.cancelLocked()
		s.alternatives = nil
		s.renderer.HideSuggestions()
		s.state = s.restingStateLocked()
		return
	}

	s.state = StatePending
	s.rearmLocked(s.inputDebounce, func() {
		s.alternatives = s.matcher.Suggest(q, s.catalog)
		if len(s.alternatives) == 0 {
			s.renderer.HideSuggestions()
		} else {
			s.renderer.ShowSuggestions(q, s.alternatives)
		}
		s.state = s.restingStateLocked()
	})
}

// Search starts a lookup for query. The result is rendered after the result
// delay unless another trigger or Clear comes first. Returns false, doing
// nothing, when the query is blank or no catalog is loaded.
func (s *SearchSession) Search(query string) bool {
	q := strings.TrimSpace(query)
	if q == "" || s.catalog == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateLoading
	s.displaying = false
	s.renderer.ShowLoading(q)

	s.rearmLocked(s.resultDelay, func() {
		product := s.matcher.Match(q, s.catalog)
		s.state = StateDisplaying
		s.displaying = true
		s.renderer.Render(product)
		s.logger.Debug().Str("query", q).Str("product", product.Name).Msg("result displayed")
	})
	return true
}

// SelectSample searches for the name of the catalog product stored under key
func (s *SearchSession) SelectSample(key string) bool {
	product, ok := s.catalog.Get(key)
	if !ok {
		return false
	}
	return s.Search(product.Name)
}

// SelectSuggestion displays the index-th currently shown suggestion right away
func (s *SearchSession) SelectSuggestion(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.alternatives) {
		return false
	}
	product := s.alternatives[index]

	s.cancelLocked()
	s.alternatives = nil
	s.renderer.HideSuggestions()
	s.state = StateDisplaying
	s.displaying = true
	s.renderer.Render(product)
	return true
}

// Clear cancels any pending work and resets the session to idle
func (s *SearchSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.state = StateIdle
	s.displaying = false
	s.alternatives = nil
	s.renderer.Clear()
}

// rearmLocked cancels the current timer and arms a new one running fire.
// fire runs with s.mu held, and only if no cancel or re-arm happened since.
func (s *SearchSession) rearmLocked(delay time.Duration, fire func()) {
	s.cancelLocked()

	gen := s.generation
	s.timer = s.scheduler.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if gen != s.generation {
			return
		}
		s.timer = nil
		fire()
	})
}

// cancelLocked stops the current timer and invalidates any callback that
// already escaped Stop
func (s *SearchSession) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

func (s *SearchSession) restingStateLocked() SessionState {
	if s.displaying {
		return StateDisplaying
	}
	return StateIdle
}
