// Package config loads the notification targets and runtime settings.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/naka-gawa/pr-notify/internal/apperrors"
	"github.com/naka-gawa/pr-notify/internal/domain"
)

// Target is one entry of the targets list in the config file. The webhook URL
// itself never appears in the file; WebhookEnv names the environment variable
// that holds it.
type Target struct {
	Owner      string `yaml:"owner"`
	Repo       string `yaml:"repo"`
	Label      string `yaml:"label"`
	WebhookEnv string `yaml:"webhook_env"`
}

// Config is the full content of the config file plus environment overrides.
type Config struct {
	Targets           []Target `yaml:"targets"`
	ApprovalThreshold int      `yaml:"approval_threshold" env:"PRNOTIFY_APPROVAL_THRESHOLD" env-default:"1"`
}

// Load reads the YAML config file, applies environment overrides, and resolves
// each target's webhook URL from the environment. Every returned error wraps
// apperrors.ErrConfig; any of them is fatal to the run.
func Load(path string) (*Config, []domain.NotificationTarget, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, nil, fmt.Errorf("%w: read %s: %w", apperrors.ErrConfig, path, err)
	}
	if len(cfg.Targets) == 0 {
		return nil, nil, fmt.Errorf("%w: %s: %w", apperrors.ErrConfig, path, apperrors.ErrNoTargets)
	}
	if cfg.ApprovalThreshold < 1 {
		return nil, nil, fmt.Errorf("%w: approval_threshold must be at least 1, got %d", apperrors.ErrConfig, cfg.ApprovalThreshold)
	}

	targets := make([]domain.NotificationTarget, 0, len(cfg.Targets))
	for i, t := range cfg.Targets {
		if err := t.validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: target %d: %w", apperrors.ErrConfig, i, err)
		}
		url := os.Getenv(t.WebhookEnv)
		if url == "" {
			return nil, nil, fmt.Errorf("%w: target %d (%s/%s): %s: %w", apperrors.ErrConfig, i, t.Owner, t.Repo, t.WebhookEnv, apperrors.ErrWebhookNotSet)
		}
		targets = append(targets, domain.NotificationTarget{
			Owner:      t.Owner,
			Repo:       t.Repo,
			Label:      t.Label,
			WebhookURL: url,
		})
	}
	return &cfg, targets, nil
}

func (t Target) validate() error {
	if t.Owner == "" {
		return apperrors.ErrOwnerRequired
	}
	if t.Repo == "" {
		return apperrors.ErrRepoRequired
	}
	if t.Label == "" {
		return apperrors.ErrLabelRequired
	}
	if t.WebhookEnv == "" {
		return apperrors.ErrWebhookEnvRequired
	}
	return nil
}

// Token returns the GitHub API token from the environment.
func Token() (string, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return "", fmt.Errorf("%w: %w", apperrors.ErrConfig, apperrors.ErrTokenNotSet)
	}
	return token, nil
}
