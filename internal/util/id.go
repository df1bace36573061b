// Package util provides shared utility functions.
package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/types"
)

const (
	// DefaultShortIDLength is the default number of characters for short IDs.
	DefaultShortIDLength = 8
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = types.ErrNotFound
)

// ShortID returns the first n characters of id.
// If n is 0 or negative, DefaultShortIDLength (8) is used.
//
// Examples:
//
//	ShortID("6f1c2a9e-77aa-4c1e", 0) → "6f1c2a9e"
//	ShortID("42", 0) → "42" (no truncation if shorter)
func ShortID(id models.ID, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	s := id.String()
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ResolveTaskID resolves a task ID or prefix against the loaded tasks.
//
// Resolution rules:
//  1. If idOrPrefix equals a task ID, return it.
//  2. If idOrPrefix prefixes exactly one task ID, return that ID.
//  3. If multiple match, return ErrAmbiguousID with candidates.
//  4. If none match, return ErrNotFound.
func ResolveTaskID(tasks []models.Task, idOrPrefix string) (models.ID, error) {
	prefix := strings.TrimSpace(idOrPrefix)
	if prefix == "" {
		return "", fmt.Errorf("task ID: %w", ErrNotFound)
	}

	var candidates []models.ID
	for _, t := range tasks {
		if t.ID.String() == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID.String(), prefix) {
			candidates = append(candidates, t.ID)
		}
	}
	return resolveFromCandidates(prefix, candidates, "task")
}

// resolveFromCandidates handles the common resolution logic.
func resolveFromCandidates(prefix string, candidates []models.ID, entityType string) (models.ID, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%s with prefix %q: %w", entityType, prefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := candidates
		if len(shown) > MaxAmbiguousCandidates {
			shown = shown[:MaxAmbiguousCandidates]
		}
		return "", fmt.Errorf("%w: prefix %q matches %d %ss: %v",
			ErrAmbiguousID, prefix, len(candidates), entityType, shown)
	}
}
