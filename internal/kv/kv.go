// Package kv defines the string-valued key-value store the application persists to.
package kv

import "context"

// Keys used by the application.
const (
	KeyExpenses      = "expenses"
	KeyCurrency      = "currency"
	KeyMonthlyBudget = "monthlyBudget"
	KeyTheme         = "theme"
)

// Store is a flat string-valued key-value store. Set overwrites any previous value.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
