package domain

import (
	"errors"
)

var (
	// ErrNotFound signals a missing user or project.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate project.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidName signals a user or project name that cannot be used as a directory.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidMode signals an unknown search mode.
	ErrInvalidMode = errors.New("invalid search mode")
	// ErrInvalidQuery signals an empty or oversized search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmptyMessage signals a chat message without content.
	ErrEmptyMessage = errors.New("empty message")
	// ErrInvalidStep signals a dialogue step transition other than 2 or 3.
	ErrInvalidStep = errors.New("invalid step")
	// ErrChatProviderError signals an LLM provider failure.
	ErrChatProviderError = errors.New("chat provider error")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbeddingUnavailable signals that the embedding provider never initialized.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
)
