package graphz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTickInterval is the time between two price ticks.
const DefaultTickInterval = 2000 * time.Millisecond

// ErrAlreadyRunning is returned by Start on a running engine.
var ErrAlreadyRunning = errors.New("engine is already running")

// Options configures an Engine. The zero value is usable.
type Options struct {
	TickInterval         time.Duration    // DefaultTickInterval if zero
	NotificationLifetime time.Duration    // DefaultNotificationLifetime if zero
	Rand                 Rand             // seeded from the clock if nil
	Now                  func() time.Time // time.Now if nil
	Logger               *logrus.Logger   // discards everything if nil
}

// Engine owns the simulation state and is the only way to change it.
//
// All state changes replace the whole State value under the engine lock, and
// consumers only ever get Snapshots, never a live handle.
type Engine struct {
	mu       sync.Mutex
	rng      Rand
	now      func() time.Time
	interval time.Duration
	logger   *logrus.Logger

	state    State
	txs      TransactionLog
	selected string
	notifier *Notifier

	subscribers map[int]chan Snapshot
	nextSub     int

	cancel context.CancelFunc // non nil while the tick loop runs
	done   chan struct{}
}

// New creates an engine trading the registry listings with a fresh portfolio.
// The first listing is selected.
func New(registry *Registry, opts Options) *Engine {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
		opts.Logger.SetOutput(io.Discard)
	}

	e := &Engine{
		rng:         opts.Rand,
		now:         opts.Now,
		interval:    opts.TickInterval,
		logger:      opts.Logger,
		subscribers: make(map[int]chan Snapshot),
	}
	e.state = State{
		Portfolio: NewPortfolio(),
		Market:    NewMarket(e.rng, registry, e.now()),
	}
	if symbols := e.state.Market.Symbols(); len(symbols) > 0 {
		e.selected = symbols[0]
	}
	e.notifier = NewNotifier(opts.NotificationLifetime, e.publish)
	return e
}

// Start runs the tick loop until ctx is done or Stop is called.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	go e.run(ctx, e.done)

	e.logger.WithField("interval", e.interval).Info("price simulation started")
	return nil
}

func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		// a canceled parent context ends the loop without Stop
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.done == done {
			e.cancel()
			e.cancel, e.done = nil, nil
			e.logger.Info("price simulation stopped")
		}
	}()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Stop cancels the tick loop, waits for it to return and cancels the pending
// notification expiry. It is safe to call Stop on a stopped engine.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done // the loop may be waiting for e.mu in Tick
		e.logger.Info("price simulation stopped")
	}
	e.notifier.Stop()
}

// Running returns true while the tick loop runs.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancel != nil
}

// Tick advances every instrument by one candle.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Market = e.state.Market.Tick(e.rng, e.now())
	e.logger.WithField("instruments", e.state.Market.Len()).Debug("tick")
	e.publishLocked()
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	var n *Notification
	if current, ok := e.notifier.Current(); ok {
		n = &current
	}
	return newSnapshot(e.state, e.txs, e.selected, n)
}

// SelectInstrument sets the instrument the detail view is on. It returns false
// for an unknown symbol.
func (e *Engine) SelectInstrument(symbol string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Market.Has(symbol) {
		return false
	}
	e.selected = symbol
	e.publishLocked()
	return true
}

// BuyStock buys quantity shares of symbol at the current price.
//
// It returns false when the trade is not executed. Insufficient funds are
// reported through an error notification; an unknown symbol or a non positive
// quantity fail silently.
func (e *Engine) BuyStock(symbol string, quantity int) bool {
	_, err := e.Trade(TxBuy, symbol, quantity)
	return err == nil
}

// SellStock sells quantity shares of symbol at the current price. Failures are
// reported as in BuyStock, with insufficient shares instead of funds.
func (e *Engine) SellStock(symbol string, quantity int) bool {
	_, err := e.Trade(TxSell, symbol, quantity)
	return err == nil
}

// Trade executes a buy or a sell and returns the executed transaction, or the
// executor error that rejected it. Notifications are emitted as for BuyStock.
func (e *Engine) Trade(typ TransactionType, symbol string, quantity int) (Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var execute func(State, string, Quantity, time.Time) (State, Transaction, error)
	switch typ {
	case TxBuy:
		execute = Buy
	case TxSell:
		execute = Sell
	default:
		return Transaction{}, fmt.Errorf("unknown transaction type %q", typ)
	}
	next, tx, err := execute(e.state, symbol, Q(quantity), e.now())

	entry := e.logger.WithFields(logrus.Fields{
		"type":     typ,
		"symbol":   symbol,
		"quantity": quantity,
	})
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		entry.WithError(err).Warn("trade rejected")
		e.notifier.Notify("Insufficient funds!", NotifyError)
		e.publishLocked()
		return Transaction{}, err
	case errors.Is(err, ErrInsufficientShares):
		entry.WithError(err).Warn("trade rejected")
		e.notifier.Notify("Insufficient shares!", NotifyError)
		e.publishLocked()
		return Transaction{}, err
	case err != nil:
		entry.WithError(err).Debug("trade ignored")
		return Transaction{}, err
	}

	e.state = next
	e.txs = e.txs.Append(tx)
	entry.WithFields(logrus.Fields{"price": tx.Price.String(), "total": tx.Total.String()}).Info("trade executed")

	verb := "Bought"
	if typ == TxSell {
		verb = "Sold"
	}
	e.notifier.Notify(fmt.Sprintf("%s %d shares of %s", verb, quantity, symbol), NotifySuccess)
	e.publishLocked()
	return tx, nil
}

// PortfolioValue is the market value of the holdings.
func (e *Engine) PortfolioValue() Money {
	e.mu.Lock()
	defer e.mu.Unlock()
	return PortfolioValue(e.state.Portfolio.Holdings, e.state.Market)
}

// TotalValue is cash plus the market value of the holdings.
func (e *Engine) TotalValue() Money {
	e.mu.Lock()
	defer e.mu.Unlock()
	return TotalValue(e.state.Portfolio, e.state.Market)
}

// TotalProfitLoss is the total value minus the initial cash.
func (e *Engine) TotalProfitLoss() Money {
	e.mu.Lock()
	defer e.mu.Unlock()
	return TotalProfitLoss(e.state.Portfolio, e.state.Market)
}

// TotalProfitLossPercent is the total profit and loss relative to the initial cash.
func (e *Engine) TotalProfitLossPercent() Percent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return TotalProfitLossPercent(e.state.Portfolio, e.state.Market)
}

// HoldingQuantity returns the number of shares of symbol held.
func (e *Engine) HoldingQuantity(symbol string) Quantity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Portfolio.Holdings.Quantity(symbol)
}

// InitialValue is the cash the portfolio started with.
func (e *Engine) InitialValue() Money { return InitialCash }

// Subscribe returns a channel receiving a Snapshot after every change, and the
// function to unsubscribe. The channel holds one snapshot: a subscriber that
// falls behind only gets the newest one.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	ch := make(chan Snapshot, 1)
	e.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.subscribers, id)
			close(ch)
		})
	}
}

// publish is called when a notification expires.
func (e *Engine) publish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.publishLocked()
}

func (e *Engine) publishLocked() {
	if len(e.subscribers) == 0 {
		return
	}
	for _, ch := range e.subscribers {
		select {
		case <-ch: // drop the stale snapshot
		default:
		}
		select {
		case ch <- e.snapshotLocked(): // one copy per subscriber
		default:
		}
	}
}
