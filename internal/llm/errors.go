package llm

import "errors"

var (
	// ErrUnknownProvider is returned by the factory for an
	// unrecognized provider tag.
	ErrUnknownProvider = errors.New("unknown LLM provider")

	// ErrMissingParameter is returned by the factory when a parameter
	// required by the selected backend is absent or empty.
	ErrMissingParameter = errors.New("missing provider parameter")

	// ErrMissingCredential is returned by Initialize when a cloud
	// backend has an empty API key.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrBackendUnavailable wraps client construction or invocation
	// failures; the original cause is preserved in the message chain.
	ErrBackendUnavailable = errors.New("LLM backend unavailable")
)
