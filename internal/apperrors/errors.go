// Package apperrors defines the error kinds shared across the application.
package apperrors

import "errors"

// Kind errors. Call sites wrap these with fmt.Errorf and %w so callers can
// classify a failure with errors.Is without depending on its origin.
var (
	// ErrConfig marks a fatal configuration problem. The run aborts.
	ErrConfig = errors.New("configuration error")
	// ErrNetwork marks a failed GitHub API call. The affected repository or
	// pull request is skipped and the run continues.
	ErrNetwork = errors.New("network error")
	// ErrDelivery marks a failed webhook post. Logged, never fatal.
	ErrDelivery = errors.New("delivery error")
)

// Validation errors returned by config loading and domain constructors.
var (
	ErrNoTargets          = errors.New("no notification targets configured")
	ErrOwnerRequired      = errors.New("target owner is required")
	ErrRepoRequired       = errors.New("target repo is required")
	ErrLabelRequired      = errors.New("target label is required")
	ErrWebhookEnvRequired = errors.New("target webhook_env is required")
	ErrWebhookNotSet      = errors.New("webhook environment variable is empty or unset")
	ErrTokenNotSet        = errors.New("GITHUB_TOKEN environment variable is not set")
	ErrAPIURLRequired     = errors.New("pull request api url is required")
	ErrHTMLURLRequired    = errors.New("pull request html url is required")
)
