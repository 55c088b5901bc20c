package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/devfinder/internal/domain/account"
	"github.com/khoahotran/devfinder/pkg/logger"
)

var errEmptyAccount = errors.New("fetcher returned no account")

// Controller owns the state of one profile card and runs the effects that
// Reduce asks for.
type Controller struct {
	mu       sync.Mutex
	state    State
	reducer  Reducer
	fetcher  account.Fetcher
	clock    Clock
	log      logger.Logger
	timers   map[uint64]armedTimer
	changed  chan struct{}
	onChange []func(State)
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type armedTimer struct {
	Timer
	due time.Time
}

type Option func(*Controller)

func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

func WithLogger(log logger.Logger) Option {
	return func(c *Controller) { c.log = log }
}

func WithClearDelay(d time.Duration) Option {
	return func(c *Controller) { c.reducer.ClearDelay = d }
}

func WithState(s State) Option {
	return func(c *Controller) { c.state = s }
}

func NewController(fetcher account.Fetcher, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		state:   NewState(DefaultUsername),
		reducer: Reducer{ClearDelay: DefaultClearDelay},
		fetcher: fetcher,
		clock:   RealClock(),
		log:     logger.NewNop(),
		timers:  make(map[uint64]armedTimer),
		changed: make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers fn to be called with the new state after every event.
// Calls happen outside the controller lock and may overlap.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Dispatch(e Event) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	next, effects := c.reducer.Reduce(c.state, e)
	c.state = next

	var fetches []StartFetch
	for _, eff := range effects {
		switch eff := eff.(type) {
		case StartFetch:
			fetches = append(fetches, eff)
		case ScheduleErrorClear:
			token := eff.Token
			c.timers[token] = armedTimer{
				Timer: c.clock.AfterFunc(eff.After, func() {
					c.Dispatch(ErrorTimerFired{Token: token})
				}),
				due: c.clock.Now().Add(eff.After),
			}
		case CancelErrorClear:
			if t, ok := c.timers[eff.Token]; ok {
				t.Stop()
				delete(c.timers, eff.Token)
			}
		}
	}
	if ev, ok := e.(ErrorTimerFired); ok {
		delete(c.timers, ev.Token)
	}

	close(c.changed)
	c.changed = make(chan struct{})
	hooks := append([]func(State){}, c.onChange...)
	c.wg.Add(len(fetches))
	c.mu.Unlock()

	for _, f := range fetches {
		go c.fetch(f)
	}
	for _, fn := range hooks {
		fn(next)
	}
}

func (c *Controller) fetch(eff StartFetch) {
	defer c.wg.Done()

	log := c.log.With(zap.String("username", eff.Username), zap.Uint64("seq", eff.Seq))
	log.Debug("Fetching account")

	acc, err := c.fetcher.GetAccount(c.ctx, eff.Username)
	if err == nil && acc == nil {
		err = errEmptyAccount
	}
	if err != nil {
		log.Debug("Account fetch failed", zap.Error(err))
		c.Dispatch(FetchFailed{Seq: eff.Seq, Err: err})
		return
	}
	c.Dispatch(FetchSucceeded{Seq: eff.Seq, Account: *acc})
}

// ErrorClearsIn reports how long the shown error has left before it is
// cleared. ok is false when no error is shown or no clear is armed.
func (c *Controller) ErrorClearsIn() (left time.Duration, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.ErrorMsg == "" {
		return 0, false
	}
	t, ok := c.timers[c.state.ErrorToken]
	if !ok {
		return 0, false
	}
	return max(t.due.Sub(c.clock.Now()), 0), true
}

// WaitIdle blocks until no fetch is pending or ctx is done.
func (c *Controller) WaitIdle(ctx context.Context) error {
	for {
		c.mu.Lock()
		if !c.state.Loading || c.closed {
			c.mu.Unlock()
			return nil
		}
		ch := c.changed
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels in-flight fetches and pending timers. Events dispatched
// afterwards are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for token, t := range c.timers {
		t.Stop()
		delete(c.timers, token)
	}
	close(c.changed)
	c.changed = make(chan struct{})
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}
