package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kerbaras/mangaverse/pkg/config"
	"github.com/kerbaras/mangaverse/pkg/search"
	"github.com/kerbaras/mangaverse/pkg/store"
	"go.uber.org/zap"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Change tells observers which part of the state moved.
type Change int

const (
	ChangeTheme Change = iota
	ChangeAdminMode
	ChangeBalance
	ChangeSettings
	ChangeHistory
	ChangeLibrary
)

func (c Change) String() string {
	switch c {
	case ChangeTheme:
		return "theme"
	case ChangeAdminMode:
		return "admin-mode"
	case ChangeBalance:
		return "balance"
	case ChangeSettings:
		return "settings"
	case ChangeHistory:
		return "history"
	case ChangeLibrary:
		return "library"
	}
	return fmt.Sprintf("change(%d)", int(c))
}

// Saved is an entry the reader bookmarked or liked.
type Saved struct {
	EntryID string
	At      time.Time
}

// State is the application-wide state shared by every screen. Reads go
// through getters and every mutation notifies subscribers.
type State struct {
	logger *zap.Logger

	mu           sync.RWMutex
	theme        Theme
	adminMode    bool
	cacheEnabled bool
	checkout     *store.Checkout
	provider     store.PaymentProvider
	history      *search.History
	trending     []string
	displayLimit int
	bookmarks    []Saved
	likes        []Saved

	autoplay        time.Duration
	cacheClearDelay time.Duration

	obsMu     sync.Mutex
	observers map[int]func(Change)
	nextObs   int
}

func NewState(cfg *config.Config, logger *zap.Logger) (*State, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rate, err := cfg.Rate()
	if err != nil {
		return nil, err
	}
	calc, err := store.NewCalculator(rate, cfg.Limits())
	if err != nil {
		return nil, err
	}
	checkout := store.NewCheckout(calc, store.NewWallet(cfg.Store.StartingBalance))
	checkout.SetPaymentsEnabled(cfg.PaymentsEnabled())

	return &State{
		logger:       logger,
		theme:        ThemeDark,
		cacheEnabled: true,
		checkout:     checkout,
		provider: store.SimulatedProvider{
			Delay:   cfg.Store.ProcessingDelay,
			Decline: cfg.Store.SimulateDecline,
		},
		history:         search.NewHistory(cfg.Search.MaxRecent, cfg.Search.Recent...),
		trending:        append([]string(nil), cfg.Search.Trending...),
		displayLimit:    cfg.Search.DisplayLimit,
		autoplay:        cfg.Home.AutoplayInterval,
		cacheClearDelay: cfg.Admin.CacheClearDelay,
		observers:       make(map[int]func(Change)),
	}, nil
}

// Subscribe registers fn for every change. The returned function removes it.
func (s *State) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

func (s *State) notify(c Change) {
	s.obsMu.Lock()
	fns := make([]func(Change), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	s.logger.Debug("State changed", zap.Stringer("change", c))
	for _, fn := range fns {
		fn(c)
	}
}

func (s *State) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *State) SetTheme(t Theme) {
	s.mu.Lock()
	if s.theme == t {
		s.mu.Unlock()
		return
	}
	s.theme = t
	s.mu.Unlock()
	s.notify(ChangeTheme)
}

func (s *State) ToggleTheme() Theme {
	next := ThemeLight
	if s.Theme() == ThemeLight {
		next = ThemeDark
	}
	s.SetTheme(next)
	return next
}

func (s *State) AdminMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminMode
}

func (s *State) SetAdminMode(on bool) {
	s.mu.Lock()
	if s.adminMode == on {
		s.mu.Unlock()
		return
	}
	s.adminMode = on
	s.mu.Unlock()
	s.notify(ChangeAdminMode)
}

func (s *State) CacheEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cacheEnabled
}

func (s *State) SetCacheEnabled(on bool) {
	s.mu.Lock()
	if s.cacheEnabled == on {
		s.mu.Unlock()
		return
	}
	s.cacheEnabled = on
	s.mu.Unlock()
	s.notify(ChangeSettings)
}

func (s *State) PaymentsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkout.PaymentsEnabled()
}

func (s *State) SetPaymentsEnabled(on bool) {
	s.mu.Lock()
	if s.checkout.PaymentsEnabled() == on {
		s.mu.Unlock()
		return
	}
	s.checkout.SetPaymentsEnabled(on)
	s.mu.Unlock()
	s.notify(ChangeSettings)
}

func (s *State) Rate() store.Rate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkout.Calculator().Rate()
}

// SetRate changes the coin exchange rate. Invalid rates are rejected.
func (s *State) SetRate(rate store.Rate) error {
	s.mu.Lock()
	if err := s.checkout.Calculator().SetRate(rate); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.logger.Info("Coin rate changed", zap.Stringer("rate", rate))
	s.notify(ChangeSettings)
	return nil
}

// Calculator is the store calculator. Callers run on the UI loop.
func (s *State) Calculator() *store.Calculator {
	return s.checkout.Calculator()
}

func (s *State) Provider() store.PaymentProvider {
	return s.provider
}

func (s *State) Balance() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkout.Wallet().Balance()
}

func (s *State) Receipts() []store.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkout.Wallet().History()
}

func (s *State) PendingOrder() *store.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkout.Pending()
}

// BeginPurchase opens an order for the current quote.
func (s *State) BeginPurchase(payee string) (*store.Order, error) {
	s.mu.Lock()
	order, err := s.checkout.Begin(payee)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.logger.Info("Purchase started",
		zap.Stringer("order", order.ID),
		zap.Int64("coins", order.Coins),
		zap.String("amount", order.Amount.StringFixed(2)),
	)
	s.notify(ChangeBalance)
	return order, nil
}

// CompletePurchase settles order with the provider outcome.
func (s *State) CompletePurchase(order *store.Order, conf store.Confirmation, chargeErr error) (*store.Receipt, error) {
	s.mu.Lock()
	receipt, err := s.checkout.Complete(order, conf, chargeErr)
	s.mu.Unlock()
	if errors.Is(err, store.ErrStaleOrder) {
		return nil, err
	}
	if err != nil {
		s.logger.Warn("Purchase failed", zap.Stringer("order", order.ID), zap.Error(err))
	} else {
		s.logger.Info("Purchase completed", zap.Stringer("order", order.ID), zap.String("reference", receipt.Reference))
	}
	s.notify(ChangeBalance)
	return receipt, err
}

// Purchase runs a whole checkout synchronously, for callers outside the UI
// loop.
func (s *State) Purchase(ctx context.Context, payee string) (*store.Receipt, error) {
	order, err := s.BeginPurchase(payee)
	if err != nil {
		return nil, err
	}
	conf, err := s.provider.Charge(ctx, *order)
	return s.CompletePurchase(order, conf, err)
}

// AbortPurchase drops the pending order, if any.
func (s *State) AbortPurchase() {
	s.mu.Lock()
	pending := s.checkout.Pending() != nil
	s.checkout.Abort()
	s.mu.Unlock()
	if pending {
		s.logger.Info("Purchase aborted")
		s.notify(ChangeBalance)
	}
}

// Suggestions returns recent and trending searches.
func (s *State) Suggestions() search.Suggestions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return search.Suggestions{
		Recent:   s.history.Entries(),
		Trending: append([]string(nil), s.trending...),
	}
}

// RecordSearch remembers a submitted query. Nothing is kept while the
// cache is disabled.
func (s *State) RecordSearch(query string) {
	s.mu.Lock()
	if !s.cacheEnabled {
		s.mu.Unlock()
		return
	}
	before := s.history.Entries()
	s.history.Add(query)
	after := s.history.Entries()
	s.mu.Unlock()
	if !slices.Equal(before, after) {
		s.notify(ChangeHistory)
	}
}

// ClearCache forgets the search history.
func (s *State) ClearCache() {
	s.mu.Lock()
	s.history.Clear()
	s.mu.Unlock()
	s.logger.Info("Cache cleared")
	s.notify(ChangeHistory)
}

// ToggleBookmark bookmarks entryID, or removes the bookmark, and reports
// whether it is bookmarked now.
func (s *State) ToggleBookmark(entryID string) bool {
	return s.toggleSaved(&s.bookmarks, entryID, "Bookmark")
}

func (s *State) Bookmarked(entryID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return savedIndex(s.bookmarks, entryID) >= 0
}

// Bookmarks lists bookmarked entries, newest first.
func (s *State) Bookmarks() []Saved {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bookmarks)
}

// ToggleLike likes entryID, or takes the like back, and reports whether
// it is liked now.
func (s *State) ToggleLike(entryID string) bool {
	return s.toggleSaved(&s.likes, entryID, "Like")
}

func (s *State) Liked(entryID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return savedIndex(s.likes, entryID) >= 0
}

// Likes lists liked entries, newest first.
func (s *State) Likes() []Saved {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.likes)
}

func (s *State) toggleSaved(list *[]Saved, entryID, what string) bool {
	if entryID == "" {
		return false
	}
	s.mu.Lock()
	on := true
	if i := savedIndex(*list, entryID); i >= 0 {
		*list = slices.Delete(*list, i, i+1)
		on = false
	} else {
		*list = slices.Insert(*list, 0, Saved{EntryID: entryID, At: time.Now()})
	}
	s.mu.Unlock()
	s.logger.Debug(what+" toggled", zap.String("entry", entryID), zap.Bool("on", on))
	s.notify(ChangeLibrary)
	return on
}

func savedIndex(list []Saved, entryID string) int {
	return slices.IndexFunc(list, func(sv Saved) bool { return sv.EntryID == entryID })
}

func (s *State) DisplayLimit() int                { return s.displayLimit }
func (s *State) AutoplayInterval() time.Duration { return s.autoplay }
func (s *State) CacheClearDelay() time.Duration  { return s.cacheClearDelay }
