package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"safety_reports/internal/status"
)

var (
	// ErrNotFound is returned when an entity is absent, or present but not
	// owned by the caller where ownership is part of the lookup.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied is returned when the actor's role is insufficient.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotAuthenticated is returned when an action needs an actor and none is present.
	ErrNotAuthenticated = errors.New("authentication required")
	// ErrInvalidStatus is returned for investigation status codes outside the fixed set.
	ErrInvalidStatus = status.ErrInvalidStatus
	// ErrConflict is returned when a unique username or email is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials is returned when a login does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries one message per offending input field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

// orNil returns e only when at least one field failed.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func fieldError(field, msg string) error {
	v := &ValidationError{}
	v.add(field, msg)
	return v
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
