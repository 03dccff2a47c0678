package store

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"tasklist/internal/errors"
)

// MinPrefixLength is the shortest ID prefix accepted as a task reference.
const MinPrefixLength = 4

// Resolve turns a user reference into a store index.
//
// Rules:
//  1. All digits: a 1-based position.
//  2. Otherwise an exact ID.
//  3. Otherwise a unique ID prefix of at least MinPrefixLength characters.
func (s *Store) Resolve(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, errors.NewInvalidInputError("task", ref, "task reference required")
	}

	if isAllDigits(ref) {
		position, err := strconv.Atoi(ref)
		if err != nil {
			return -1, errors.NewInvalidInputError("task", ref, "position is too large")
		}
		index := position - 1
		if err := s.checkIndex(index); err != nil {
			return -1, err
		}
		return index, nil
	}

	if index, err := s.IndexOf(ref); err == nil {
		return index, nil
	}

	if len(ref) < MinPrefixLength {
		return -1, errors.NewInvalidInputError("task", ref,
			fmt.Sprintf("use a position or at least %d characters of the ID", MinPrefixLength))
	}

	match := -1
	for i, task := range s.tasks {
		if !strings.HasPrefix(task.ID, ref) {
			continue
		}
		if match >= 0 {
			return -1, errors.NewInvalidInputError("task", ref, "ID prefix matches more than one task")
		}
		match = i
	}
	if match < 0 {
		return -1, errors.NewNotFoundError("task", ref)
	}
	return match, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
