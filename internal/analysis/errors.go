package analysis

import "errors"

var (
	// ErrConfiguration means the remote provider credentials are missing or
	// were rejected. Callers should disable remote-dependent features rather
	// than retry.
	ErrConfiguration = errors.New("inference provider is not configured")

	// ErrRemoteUnavailable covers timeouts, non-success statuses and
	// malformed responses. Analyze recovers from it locally and never
	// returns it.
	ErrRemoteUnavailable = errors.New("remote inference unavailable")

	// ErrAnalysisFailed is the only failure Analyze reports besides
	// ErrConfiguration. It carries no detail about the failing step.
	ErrAnalysisFailed = errors.New("failed to analyze article, please try again")
)
