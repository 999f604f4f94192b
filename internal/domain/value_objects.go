package domain

import (
	"fmt"
	"strings"
)

// Title is a validated, trimmed, non-empty title value object.
type Title struct {
	value string
}

// NewTitle creates a new Title, validating the input.
func NewTitle(s string) (Title, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return Title{}, ErrTitleRequired
	}

	return Title{value: s}, nil
}

// String returns the title value.
func (t Title) String() string {
	return t.value
}

// NewCommentText trims a comment and rejects blank text.
func NewCommentText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrCommentRequired
	}
	return s, nil
}

// NewStatus validates and creates a Status.
func NewStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))

	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusExpired:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// NewPriority validates and creates a Priority.
// Empty input yields DefaultPriority. Matching is case-insensitive but the
// canonical spelling is always returned.
func NewPriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPriority, nil
	}

	for _, p := range Priorities {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// NewCategory validates and creates a Category.
// Empty input yields DefaultCategory.
func NewCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCategory, nil
	}

	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}
