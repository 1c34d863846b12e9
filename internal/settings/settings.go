// Package settings keeps the process-wide display preferences.
package settings

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendview/internal/kv"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const DefaultCurrency = "$"

var (
	ErrInvalidBudget   = errors.New("monthly budget must be a number >= 0")
	ErrInvalidCurrency = errors.New("currency symbol is required")
)

type Settings struct {
	Currency      string  `json:"currency"`
	MonthlyBudget float64 `json:"monthly_budget"`
	Theme         Theme   `json:"theme"`
}

// Defaults returns the settings used before anything was stored.
func Defaults() Settings {
	return Settings{Currency: DefaultCurrency, Theme: ThemeLight}
}

// Service holds the current settings and writes every change through to the store.
type Service struct {
	store kv.Store

	mu      sync.Mutex
	current Settings
}

func NewService(store kv.Store) *Service {
	return &Service{store: store, current: Defaults()}
}

// Load reads the stored settings. Missing, unreadable or unusable values fall back to
// defaults.
func (s *Service) Load(ctx context.Context) error {
	loaded := Defaults()

	if currency, found := s.read(ctx, kv.KeyCurrency); found && strings.TrimSpace(currency) != "" {
		loaded.Currency = currency
	}

	if budget, found := s.read(ctx, kv.KeyMonthlyBudget); found {
		if b, err := parseBudget(budget); err == nil {
			loaded.MonthlyBudget = b
		} else {
			slog.Warn("ignoring stored monthly budget", "value", budget, "error", err)
		}
	}

	if theme, found := s.read(ctx, kv.KeyTheme); found && Theme(theme) == ThemeDark {
		loaded.Theme = ThemeDark
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	return nil
}

func (s *Service) read(ctx context.Context, key string) (string, bool) {
	value, found, err := s.store.Get(ctx, key)
	if err != nil {
		slog.Warn("reading setting failed, using default", "key", key, "error", err)
		return "", false
	}

	return value, found
}

func (s *Service) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// SetCurrency changes the display symbol. Amounts are not converted.
func (s *Service) SetCurrency(ctx context.Context, symbol string) (Settings, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return s.Get(), ErrInvalidCurrency
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.Currency = symbol
	s.persist(ctx, kv.KeyCurrency, symbol)

	return s.current, nil
}

// SetBudget parses raw as a non-negative amount. On rejection the previous budget
// is kept and returned.
func (s *Service) SetBudget(ctx context.Context, raw string) (Settings, error) {
	budget, err := parseBudget(raw)
	if err != nil {
		return s.Get(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.MonthlyBudget = budget
	s.persist(ctx, kv.KeyMonthlyBudget, decimal.NewFromFloat(budget).String())

	return s.current, nil
}

func (s *Service) ToggleTheme(ctx context.Context) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Theme == ThemeDark {
		s.current.Theme = ThemeLight
	} else {
		s.current.Theme = ThemeDark
	}

	s.persist(ctx, kv.KeyTheme, string(s.current.Theme))

	return s.current
}

// persist must be called with mu held. A failing write keeps the in-memory value.
func (s *Service) persist(ctx context.Context, key, value string) {
	if err := s.store.Set(ctx, key, value); err != nil {
		slog.Warn("persisting setting failed, continuing in memory", "key", key, "error", err)
	}
}

func parseBudget(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidBudget
	}

	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return 0, ErrInvalidBudget
	}

	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, ErrInvalidBudget
	}

	return f, nil
}
