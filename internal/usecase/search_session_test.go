package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/ecomate/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer is a manually fired timer
type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

// fakeScheduler records armed timers so tests decide when they fire
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// fireAll runs every armed timer that was not stopped
func (s *fakeScheduler) fireAll() {
	s.mu.Lock()
	timers := append([]*fakeTimer(nil), s.timers...)
	s.mu.Unlock()

	for _, t := range timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.fn()
		}
	}
}

// active counts timers that are armed and not stopped
func (s *fakeScheduler) active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *fakeScheduler) last() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers[len(s.timers)-1]
}

// recordingRenderer captures presentation calls
type recordingRenderer struct {
	loading     []string
	rendered    []domain.Product
	suggestions [][]domain.Product
	hidden      int
	cleared     int
}

func (r *recordingRenderer) ShowLoading(query string)      { r.loading = append(r.loading, query) }
func (r *recordingRenderer) Render(product domain.Product) { r.rendered = append(r.rendered, product) }
func (r *recordingRenderer) ShowSuggestions(query string, alternatives []domain.Product) {
	r.suggestions = append(r.suggestions, alternatives)
}
func (r *recordingRenderer) HideSuggestions() { r.hidden++ }
func (r *recordingRenderer) Clear()           { r.cleared++ }

func newTestSession(catalog *domain.Catalog) (*SearchSession, *fakeScheduler, *recordingRenderer) {
	scheduler := &fakeScheduler{}
	renderer := &recordingRenderer{}
	session := NewSearchSession(NewMatchingService(MatchConfig{}), catalog, renderer, SearchSessionConfig{
		Scheduler: scheduler,
	})
	return session, scheduler, renderer
}

func TestNewSearchSession_Defaults(t *testing.T) {
	session := NewSearchSession(NewMatchingService(MatchConfig{}), nil, &recordingRenderer{}, SearchSessionConfig{})

	assert.Equal(t, DefaultResultDelay, session.resultDelay)
	assert.Equal(t, DefaultInputDebounce, session.inputDebounce)
	assert.IsType(t, realScheduler{}, session.scheduler)
	assert.Equal(t, StateIdle, session.State())
}

func TestSearchSession_Search(t *testing.T) {
	t.Run("renders match after the result delay", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		require.True(t, session.Search("  bamboo "))
		assert.Equal(t, StateLoading, session.State())
		assert.Equal(t, []string{"bamboo"}, renderer.loading)
		assert.Empty(t, renderer.rendered)
		assert.Equal(t, DefaultResultDelay, scheduler.last().delay)

		scheduler.fireAll()

		assert.Equal(t, StateDisplaying, session.State())
		require.Len(t, renderer.rendered, 1)
		assert.Equal(t, "Bamboo Cup", renderer.rendered[0].Name)
	})

	t.Run("unknown query renders synthetic product", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		require.True(t, session.Search("xyz-unknown"))
		scheduler.fireAll()

		require.Len(t, renderer.rendered, 1)
		assert.True(t, renderer.rendered[0].Synthetic)
		assert.Equal(t, "xyz-unknown", renderer.rendered[0].Name)
	})

	t.Run("blank query is a no-op", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		assert.False(t, session.Search("   "))
		assert.Equal(t, StateIdle, session.State())
		assert.Empty(t, renderer.loading)
		assert.Equal(t, 0, scheduler.active())
	})

	t.Run("missing catalog is a no-op", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(nil)

		assert.False(t, session.Search("bamboo"))
		assert.Equal(t, StateIdle, session.State())
		assert.Empty(t, renderer.loading)
		assert.Equal(t, 0, scheduler.active())
	})

	t.Run("rapid triggers compute once for the last query", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		session.Search("plastic")
		session.Search("bamboo")
		session.Search("xyz")
		session.Search("bamboo cup")

		assert.Equal(t, 1, scheduler.active())
		scheduler.fireAll()

		require.Len(t, renderer.rendered, 1)
		assert.Equal(t, "Bamboo Cup", renderer.rendered[0].Name)
	})

	t.Run("stale callback that escaped Stop is discarded", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		session.Search("plastic")
		stale := scheduler.last()
		session.Search("bamboo")

		// Simulate the runtime firing the old timer after Stop lost the race
		stale.fn()
		assert.Empty(t, renderer.rendered)
		assert.Equal(t, StateLoading, session.State())

		scheduler.fireAll()
		require.Len(t, renderer.rendered, 1)
		assert.Equal(t, "Bamboo Cup", renderer.rendered[0].Name)
	})
}

func TestSearchSession_Clear(t *testing.T) {
	t.Run("clear before the timer fires renders nothing", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		session.Search("bamboo")
		session.Clear()

		assert.Equal(t, StateIdle, session.State())
		assert.Equal(t, 0, scheduler.active())
		assert.Equal(t, 1, renderer.cleared)

		scheduler.fireAll()
		assert.Empty(t, renderer.rendered)
	})

	t.Run("clear after display returns to idle", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		session.Search("bamboo")
		scheduler.fireAll()
		session.Clear()

		assert.Equal(t, StateIdle, session.State())
		assert.Equal(t, 1, renderer.cleared)
	})
}

func TestSearchSession_Input(t *testing.T) {
	t.Run("shows suggestions after the debounce", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		session.Input("bam")
		assert.Equal(t, StatePending, session.State())
		assert.Empty(t, renderer.suggestions)
		assert.Equal(t, DefaultInputDebounce, scheduler.last().delay)

		scheduler.fireAll()

		require.Len(t, renderer.suggestions, 1)
		assert.Equal(t, []string{"Bamboo Cup"}, names(renderer.suggestions[0]))
		assert.Equal(t, StateIdle, session.State())
	})

	t.Run("each keystroke re-arms the debounce", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		session.Input("b")
		session.Input("ba")
		session.Input("bam")

		assert.Equal(t, 1, scheduler.active())
		scheduler.fireAll()
		assert.Len(t, renderer.suggestions, 1)
	})

	t.Run("empty input hides suggestions immediately", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		session.Input("bam")
		session.Input("  ")

		assert.Equal(t, 0, scheduler.active())
		assert.Equal(t, 1, renderer.hidden)
		assert.Equal(t, StateIdle, session.State())
	})

	t.Run("keystroke cancels a loading search", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(exampleCatalog())

		session.Search("bamboo")
		session.Input("plas")
		scheduler.fireAll()

		assert.Empty(t, renderer.rendered)
		assert.Len(t, renderer.suggestions, 1)
		assert.Equal(t, StateIdle, session.State())
	})

	t.Run("keystroke while displaying returns to displaying", func(t *testing.T) {
		session, scheduler, _ := newTestSession(exampleCatalog())

		session.Search("bamboo")
		scheduler.fireAll()
		session.Input("cup")
		assert.Equal(t, StatePending, session.State())

		scheduler.fireAll()
		assert.Equal(t, StateDisplaying, session.State())
	})

	t.Run("missing catalog hides suggestions", func(t *testing.T) {
		session, scheduler, renderer := newTestSession(nil)

		session.Input("bamboo")

		assert.Equal(t, 0, scheduler.active())
		assert.Equal(t, 1, renderer.hidden)
		assert.Empty(t, renderer.suggestions)
	})
}

func TestSearchSession_SelectSample(t *testing.T) {
	session, scheduler, renderer := newTestSession(exampleCatalog())

	assert.False(t, session.SelectSample("no-such-key"))
	assert.Empty(t, renderer.loading)

	require.True(t, session.SelectSample("plastic-bottle"))
	assert.Equal(t, []string{"Plastic Bottle"}, renderer.loading)

	scheduler.fireAll()
	require.Len(t, renderer.rendered, 1)
	assert.Equal(t, "Plastic Bottle", renderer.rendered[0].Name)
}

func TestSearchSession_SelectSuggestion(t *testing.T) {
	session, scheduler, renderer := newTestSession(exampleCatalog())

	assert.False(t, session.SelectSuggestion(0), "nothing shown yet")

	session.Input("xyz")
	scheduler.fireAll()
	require.Len(t, renderer.suggestions, 1)

	require.True(t, session.SelectSuggestion(1))
	assert.Equal(t, StateDisplaying, session.State())
	require.Len(t, renderer.rendered, 1)
	assert.Equal(t, "Plastic Bottle", renderer.rendered[0].Name)
	assert.Empty(t, renderer.loading, "suggestions display without the artificial delay")

	assert.False(t, session.SelectSuggestion(0), "suggestions are hidden after a pick")
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "displaying", StateDisplaying.String())
	assert.Equal(t, "unknown", SessionState(42).String())
}

func TestSearchSession_RealTimers(t *testing.T) {
	renderer := &lockedRenderer{}
	session := NewSearchSession(NewMatchingService(MatchConfig{}), exampleCatalog(), renderer, SearchSessionConfig{
		ResultDelay:   20 * time.Millisecond,
		InputDebounce: time.Millisecond,
	})

	for _, q := range []string{"plastic", "bamboo", "bamboo cup"} {
		session.Search(q)
	}

	assert.Eventually(t, func() bool { return session.State() == StateDisplaying }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)

	rendered := renderer.renderedNames()
	assert.Equal(t, []string{"Bamboo Cup"}, rendered)
}

// lockedRenderer is a recordingRenderer safe for timer goroutines
type lockedRenderer struct {
	mu sync.Mutex
	recordingRenderer
}

func (r *lockedRenderer) Render(product domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordingRenderer.Render(product)
}

func (r *lockedRenderer) renderedNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return names(r.rendered)
}
