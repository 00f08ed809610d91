package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrCapability    = errors.New("capability unavailable")
	ErrExternalTool  = errors.New("external tool error")
	ErrTimeout       = errors.New("timeout")
	ErrExhausted     = errors.New("strategies exhausted")
	ErrInternal      = errors.New("internal error")
	ErrConfiguration = errors.New("configuration error")
)

// Failure kinds reported by FailureKind.
const (
	KindValidation = "validation"
	KindCapability = "capability"
	KindAttempt    = "attempt"
	KindExhausted  = "exhausted"
	KindInternal   = "internal"
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureKind maps an error to the job failure taxonomy. Nil yields "".
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration):
		return KindValidation
	case errors.Is(err, ErrCapability):
		return KindCapability
	case errors.Is(err, ErrExhausted):
		return KindExhausted
	case errors.Is(err, ErrExternalTool), errors.Is(err, ErrTimeout):
		return KindAttempt
	default:
		return KindInternal
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "merge failure"
	}
	return strings.Join(parts, ": ")
}
