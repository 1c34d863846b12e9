// Package matching suggests categories while the user types.
package matching

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
)

// maxTypoRatio is the largest edit distance, relative to the longer name, still treated
// as a misspelling.
const maxTypoRatio = 0.4

// DefaultCategories are always offered, ahead of the categories found in the records.
var DefaultCategories = []string{
	"Food", "Transport", "Utilities", "Entertainment", "Health", "Shopping", "Other",
}

type Lister interface {
	List() []expense.Record
}

type Service struct {
	expenses Lister
}

func NewService(expenses Lister) *Service {
	return &Service{expenses: expenses}
}

// Suggest returns the known categories starting with prefix.
func (s *Service) Suggest(prefix string) []string {
	return Suggest(s.expenses.List(), prefix)
}

// Closest returns the known category that input most likely misspells.
func (s *Service) Closest(input string) (string, bool) {
	return Closest(s.expenses.List(), input)
}

// Suggest lists DefaultCategories followed by the categories of records in first-seen
// order. Names are deduplicated and matched against prefix without regard to case;
// the first spelling seen wins.
func Suggest(records []expense.Record, prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	seen := make(map[string]bool)
	out := []string{}

	add := func(category string) {
		category = strings.TrimSpace(category)
		key := strings.ToLower(category)

		if category == "" || seen[key] {
			return
		}

		seen[key] = true

		if strings.HasPrefix(key, prefix) {
			out = append(out, category)
		}
	}

	for _, c := range DefaultCategories {
		add(c)
	}

	for _, r := range records {
		add(r.Category)
	}

	return out
}

// Closest finds the known category nearest to input by edit distance, ignoring case.
// An exact match or nothing close enough reports false.
func Closest(records []expense.Record, input string) (string, bool) {
	needle := strings.ToUpper(strings.TrimSpace(input))
	if needle == "" {
		return "", false
	}

	var (
		best      string
		bestScore = maxTypoRatio
	)

	for _, candidate := range Suggest(records, "") {
		upper := strings.ToUpper(candidate)
		if upper == needle {
			return "", false
		}

		dist := levenshtein.ComputeDistance(needle, upper)
		score := float64(dist) / float64(max(len(needle), len(upper)))

		if score < bestScore {
			best, bestScore = candidate, score
		}
	}

	return best, best != ""
}
