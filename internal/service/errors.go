package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"absencehub/internal/models"
	"absencehub/internal/validation"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrInUse      = errors.New("still in use")
)

// ValidationError carries every failed field of a rejected request.
type ValidationError struct {
	Fields validation.Result
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for name, err := range e.Fields {
		fields = append(fields, name+": "+err.Msg)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func fieldError(field string, kind validation.Kind, key, msg string) *ValidationError {
	return &ValidationError{Fields: validation.Result{
		field: {Field: field, Kind: kind, Key: key, Msg: msg},
	}}
}

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userKey
)

// WithRequestID tags ctx with the id of the request that caused a change.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithUser tags ctx with the acting user recorded in the audit log.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func userFrom(ctx context.Context) string {
	if user, ok := ctx.Value(userKey).(string); ok && user != "" {
		return user
	}
	return models.SystemUser
}
