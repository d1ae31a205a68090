package genai

import (
	"context"
	"errors"
	"strings"

	errs "github.com/cindyylim/LanguageLearningApp-sub000/internal/errors"
)

// Classify maps an external-call failure to one of the error codes used for
// observability and propagation. Classification is by substring matching on
// the error text, except for errors that already carry a code.
func Classify(err error) errs.ErrorCode {
	if err == nil {
		return ""
	}

	var genErr *errs.GenError
	if errors.As(err, &genErr) && genErr.Code != errs.ErrCodeUnknown {
		return genErr.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrCodeTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "validation"):
		return errs.ErrCodeValidation
	case strings.Contains(msg, "json") || strings.Contains(msg, "unmarshal") || strings.Contains(msg, "parse"):
		return errs.ErrCodeJSONParse
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "429") || strings.Contains(msg, "quota"):
		return errs.ErrCodeRateLimit
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return errs.ErrCodeTimeout
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") || strings.Contains(msg, "network"):
		return errs.ErrCodeNetwork
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "authentication") || strings.Contains(msg, "api key"):
		return errs.ErrCodeAuthentication
	default:
		return errs.ErrCodeUnknown
	}
}
