package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned when generation is attempted before a credential is set.
	ErrMissingCredential = errors.New("api credential is not set")
	// ErrInvalidTransition is returned when an operation is not allowed from the current step.
	ErrInvalidTransition = errors.New("operation not allowed at current step")
	// ErrNoArticle is returned when the session holds no generated article.
	ErrNoArticle = errors.New("no generated article")
	// ErrArticleNotFound is returned when a history lookup misses.
	ErrArticleNotFound = errors.New("article not found in history")
)

// ValidationError 表示某一步缺少必填字段或取值非法。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ErrorKind classifies generation failures.
type ErrorKind string

const (
	KindTransport            ErrorKind = "transport"
	KindAuthentication       ErrorKind = "authentication"
	KindUnrecognizedResponse ErrorKind = "unrecognized_response"
	KindOther                ErrorKind = "other"
)

// GenerationError 外部生成接口调用失败。
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	switch {
	case e.Message == "" && e.Err != nil:
		return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
	case e.Kind == KindTransport && e.Err != nil:
		return fmt.Sprintf("generation failed (%s): %s: %v", e.Kind, e.Message, e.Err)
	default:
		return fmt.Sprintf("generation failed (%s): %s", e.Kind, e.Message)
	}
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// AsGenerationError extracts a GenerationError from err.
func AsGenerationError(err error) (*GenerationError, bool) {
	var g *GenerationError
	if errors.As(err, &g) {
		return g, true
	}
	return nil, false
}
