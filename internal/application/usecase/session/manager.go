package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devfinder/internal/domain/account"
	sessiondomain "github.com/khoahotran/devfinder/internal/domain/session"
	"github.com/khoahotran/devfinder/internal/view"
	"github.com/khoahotran/devfinder/pkg/logger"
	"github.com/khoahotran/devfinder/pkg/metrics"
)

const saveTimeout = 2 * time.Second

// FetcherFactory returns the fetcher a session's controller should use.
type FetcherFactory func(sessionID string) account.Fetcher

type Options struct {
	TTL             time.Duration
	ClearDelay      time.Duration
	DefaultUsername string
	SweepInterval   time.Duration
	Clock           view.Clock
}

type entry struct {
	ctrl     *view.Controller
	lastSeen time.Time
	stop     chan struct{}
	saved    chan struct{}
}

// Manager keeps one view controller per browser session and mirrors every
// state change into the session store.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	store    sessiondomain.Store
	fetchers FetcherFactory
	opts     Options
	logger   logger.Logger
	now      func() time.Time
}

func NewManager(store sessiondomain.Store, fetchers FetcherFactory, opts Options, log logger.Logger) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.ClearDelay <= 0 {
		opts.ClearDelay = view.DefaultClearDelay
	}
	if opts.DefaultUsername == "" {
		opts.DefaultUsername = view.DefaultUsername
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = view.RealClock()
	}
	return &Manager{
		sessions: make(map[string]*entry),
		store:    store,
		fetchers: fetchers,
		opts:     opts,
		logger:   log,
		now:      time.Now,
	}
}

func NewID() string {
	return uuid.NewString()
}

// Get returns the live controller for id, restoring it from the store or
// creating and mounting a fresh one.
func (m *Manager) Get(ctx context.Context, id string) (*view.Controller, error) {
	if id == "" {
		return nil, errors.New("empty session id")
	}

	if ctrl := m.touch(id); ctrl != nil {
		return ctrl, nil
	}

	log := m.logger.WithContext(ctx).With(zap.String("session_id", id))

	restored := false
	state := view.NewState(m.opts.DefaultUsername)
	snapshot, err := m.store.Load(ctx, id)
	switch {
	case err == nil:
		state = snapshot.Restored()
		restored = true
	case errors.Is(err, sessiondomain.ErrNotFound):
	default:
		log.Warn("Failed to load session snapshot, starting fresh", zap.Error(err))
	}

	ctrl := view.NewController(
		m.fetchers(id),
		view.WithState(state),
		view.WithClock(m.opts.Clock),
		view.WithClearDelay(m.opts.ClearDelay),
		view.WithLogger(log),
	)

	m.mu.Lock()
	if existing, ok := m.sessions[id]; ok {
		existing.lastSeen = m.now()
		m.mu.Unlock()
		ctrl.Close()
		return existing.ctrl, nil
	}
	e := &entry{
		ctrl:     ctrl,
		lastSeen: m.now(),
		stop:     make(chan struct{}),
		saved:    make(chan struct{}),
	}
	m.sessions[id] = e
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	m.startSaver(id, e, log)

	if restored {
		log.Info("Session restored")
	} else {
		log.Info("Session created")
		ctrl.Dispatch(view.Mounted{})
	}
	return ctrl, nil
}

func (m *Manager) touch(id string) *view.Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil
	}
	e.lastSeen = m.now()
	return e.ctrl
}

// startSaver writes the latest state after each change. Bursts of changes
// collapse into one write.
func (m *Manager) startSaver(id string, e *entry, log logger.Logger) {
	dirty := make(chan struct{}, 1)
	e.ctrl.OnChange(func(view.State) {
		select {
		case dirty <- struct{}{}:
		default:
		}
	})

	save := func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := m.store.Save(ctx, id, e.ctrl.State(), m.opts.TTL); err != nil {
			log.Warn("Failed to save session snapshot", zap.Error(err))
		}
	}

	go func() {
		defer close(e.saved)
		for {
			select {
			case <-dirty:
				save()
			case <-e.stop:
				select {
				case <-dirty:
					save()
				default:
				}
				return
			}
		}
	}()
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// were closed. Their snapshots stay in the store until they expire.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	var idle []*entry
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) >= m.opts.TTL {
			idle = append(idle, e)
			delete(m.sessions, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	for _, e := range idle {
		m.closeEntry(e)
	}
	if len(idle) > 0 {
		m.logger.Info("Swept idle sessions", zap.Int("count", len(idle)))
	}
	return len(idle)
}

// Run sweeps on the configured interval until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.opts.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			m.Sweep(t)
		}
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) Close() {
	m.mu.Lock()
	all := make([]*entry, 0, len(m.sessions))
	for id, e := range m.sessions {
		all = append(all, e)
		delete(m.sessions, id)
	}
	metrics.ActiveSessions.Set(0)
	m.mu.Unlock()

	for _, e := range all {
		m.closeEntry(e)
	}
}

func (m *Manager) closeEntry(e *entry) {
	e.ctrl.Close()
	close(e.stop)
	<-e.saved
}
