package session

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScoring is returned for an unregistered scoring formula name.
var ErrUnknownScoring = errors.New("session: unknown scoring formula")

// ScoreFunc converts the size of a removed region into points.
type ScoreFunc func(removed int) int

// Squared scores n².
func Squared(n int) int {
	return n * n
}

// Cubed scores n³.
func Cubed(n int) int {
	return n * n * n
}

// MinusOneSquared scores (n-1)², so single blocks are worth nothing.
func MinusOneSquared(n int) int {
	if n < 1 {
		return 0
	}
	return (n - 1) * (n - 1)
}

var formulas = map[string]ScoreFunc{
	"squared":           Squared,
	"cubed":             Cubed,
	"minus_one_squared": MinusOneSquared,
}

// ScoreFuncByName returns a built-in scoring formula.
func ScoreFuncByName(name string) (ScoreFunc, error) {
	f, ok := formulas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScoring, name)
	}
	return f, nil
}

// ScoringNames returns the names of the built-in formulas, sorted.
func ScoringNames() []string {
	names := make([]string, 0, len(formulas))
	for name := range formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
