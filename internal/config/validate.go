package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret)))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.access_token_ttl must be > 0"))
	}

	if c.Ledger.TxMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("ledger.tx_max_attempts must be >= 1 (got %d)", c.Ledger.TxMaxAttempts))
	}
	if c.Ledger.TxRetryBaseDelay < 0 {
		errs = append(errs, fmt.Errorf("ledger.tx_retry_base_delay must be >= 0"))
	}

	if err := c.Receipts.validate(); err != nil {
		errs = append(errs, fmt.Errorf("receipts: %w", err))
	}
	if err := c.ObjectStore.validate(); err != nil {
		errs = append(errs, fmt.Errorf("object_store: %w", err))
	}
	if err := c.Notifications.validate(); err != nil {
		errs = append(errs, fmt.Errorf("notifications: %w", err))
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.requests_per_minute must be >= 0"))
	}

	return errors.Join(errs...)
}

func (r ReceiptsConfig) validate() error {
	if r.MaxBytes <= 0 {
		return fmt.Errorf("max_bytes must be > 0 (got %d)", r.MaxBytes)
	}
	if r.UploadAttempts < 1 || r.UploadAttempts > 10 {
		return fmt.Errorf("upload_attempts must be between 1 and 10 (got %d)", r.UploadAttempts)
	}
	if r.UploadBaseDelay < 0 {
		return fmt.Errorf("upload_base_delay must be >= 0")
	}
	if r.BreakerMaxFailures == 0 {
		return fmt.Errorf("breaker_max_failures must be > 0")
	}
	return nil
}

func (o ObjectStoreConfig) validate() error {
	if o.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	for name, raw := range map[string]string{"base_url": o.BaseURL, "public_url": o.PublicURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s %q is not an absolute URL", name, raw)
		}
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}
	return nil
}

func (n NotificationsConfig) validate() error {
	if n.ListLimit < 1 || n.ListLimit > n.MaxListLimit {
		return fmt.Errorf("list_limit must be between 1 and max_list_limit (got %d, max %d)", n.ListLimit, n.MaxListLimit)
	}
	if n.DispatchConcurrency < 1 {
		return fmt.Errorf("dispatch_concurrency must be >= 1 (got %d)", n.DispatchConcurrency)
	}
	if n.ReplayTTL <= 0 {
		return fmt.Errorf("replay_ttl must be > 0")
	}
	return nil
}
