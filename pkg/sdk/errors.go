package socratic

import "github.com/kailas-cloud/socratic/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrAlreadyExists          = domain.ErrAlreadyExists
	ErrInvalidName            = domain.ErrInvalidName
	ErrInvalidMode            = domain.ErrInvalidMode
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrEmptyMessage           = domain.ErrEmptyMessage
	ErrInvalidStep            = domain.ErrInvalidStep
	ErrChatProviderError      = domain.ErrChatProviderError
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrEmbeddingUnavailable   = domain.ErrEmbeddingUnavailable
)
