package resilience

import (
	"context"
	"errors"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

// ClassifyDomainError retries only errors of kind domain.ErrTemporary.
// Cancellation is neither retried nor held against the breaker.
func ClassifyDomainError(err error) ErrorClassification {
	if err == nil {
		return ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if domain.IsKind(err, domain.ErrInvalidInput) {
		return ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		return ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}
	return ErrorClassification{
		Retryable:     false,
		RecordFailure: true,
	}
}
