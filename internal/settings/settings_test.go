package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendview/internal/kv"
	"github.com/MrJamesThe3rd/spendview/internal/kv/memory"
	"github.com/MrJamesThe3rd/spendview/internal/settings"
)

func TestService_Load(t *testing.T) {
	type testCase struct {
		name   string
		stored map[string]string
		want   settings.Settings
	}

	tests := []testCase{
		{
			name:   "Defaults",
			stored: map[string]string{},
			want:   settings.Settings{Currency: "$", MonthlyBudget: 0, Theme: settings.ThemeLight},
		},
		{
			name: "Stored",
			stored: map[string]string{
				kv.KeyCurrency:      "€",
				kv.KeyMonthlyBudget: "750.5",
				kv.KeyTheme:         "dark",
			},
			want: settings.Settings{Currency: "€", MonthlyBudget: 750.5, Theme: settings.ThemeDark},
		},
		{
			name: "NegativeBudgetFallsBack",
			stored: map[string]string{
				kv.KeyMonthlyBudget: "-10",
			},
			want: settings.Defaults(),
		},
		{
			name: "OverflowingBudgetFallsBack",
			stored: map[string]string{
				kv.KeyMonthlyBudget: "1e400",
			},
			want: settings.Defaults(),
		},
		{
			name: "GarbageValuesFallBack",
			stored: map[string]string{
				kv.KeyMonthlyBudget: "lots",
				kv.KeyTheme:         "purple",
				kv.KeyCurrency:      "  ",
			},
			want: settings.Defaults(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := settings.NewService(memory.NewFrom(tt.stored))

			require.NoError(t, svc.Load(context.Background()))
			assert.Equal(t, tt.want, svc.Get())
		})
	}
}

func TestService_SetBudget(t *testing.T) {
	type testCase struct {
		name    string
		raw     string
		want    float64
		wantErr error
	}

	tests := []testCase{
		{name: "Valid", raw: "500", want: 500},
		{name: "Zero", raw: "0", want: 0},
		{name: "Fraction", raw: " 99.99 ", want: 99.99},
		{name: "Negative", raw: "-1", want: 100, wantErr: settings.ErrInvalidBudget},
		{name: "NotANumber", raw: "abc", want: 100, wantErr: settings.ErrInvalidBudget},
		{name: "Blank", raw: "", want: 100, wantErr: settings.ErrInvalidBudget},
		{name: "Overflow", raw: "1e400", want: 100, wantErr: settings.ErrInvalidBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := memory.NewFrom(map[string]string{kv.KeyMonthlyBudget: "100"})
			svc := settings.NewService(store)
			require.NoError(t, svc.Load(ctx))

			got, err := svc.SetBudget(ctx, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.InDelta(t, tt.want, got.MonthlyBudget, 1e-9)

			stored, _, _ := store.Get(ctx, kv.KeyMonthlyBudget)
			if tt.wantErr != nil {
				assert.Equal(t, "100", stored)
			}
		})
	}
}

func TestService_SetCurrency(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := settings.NewService(store)

	got, err := svc.SetCurrency(ctx, " £ ")
	require.NoError(t, err)
	assert.Equal(t, "£", got.Currency)

	stored, _, _ := store.Get(ctx, kv.KeyCurrency)
	assert.Equal(t, "£", stored)

	_, err = svc.SetCurrency(ctx, " ")
	assert.ErrorIs(t, err, settings.ErrInvalidCurrency)
	assert.Equal(t, "£", svc.Get().Currency)
}

func TestService_ToggleTheme(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := settings.NewService(store)

	assert.Equal(t, settings.ThemeDark, svc.ToggleTheme(ctx).Theme)

	stored, _, _ := store.Get(ctx, kv.KeyTheme)
	assert.Equal(t, "dark", stored)

	assert.Equal(t, settings.ThemeLight, svc.ToggleTheme(ctx).Theme)
}

type failingStore struct{ kv.Store }

type unreadableStore struct{ kv.Store }

func (unreadableStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("wrong passphrase")
}

func TestService_LoadUnreadableFallsBack(t *testing.T) {
	svc := settings.NewService(unreadableStore{memory.NewFrom(map[string]string{kv.KeyTheme: "dark"})})

	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, settings.Defaults(), svc.Get())
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func TestService_PersistFailureKeepsValue(t *testing.T) {
	svc := settings.NewService(failingStore{memory.New()})

	got, err := svc.SetBudget(context.Background(), "250")
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.MonthlyBudget)
	assert.Equal(t, 250.0, svc.Get().MonthlyBudget)
}
