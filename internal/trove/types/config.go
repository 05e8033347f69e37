package types

// ClientConfig represents Trove client configuration
type ClientConfig struct {
	APIHost string `json:"api_host" yaml:"api_host"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Optional settings
	Timeout      int    `json:"timeout,omitempty" yaml:"timeout,omitempty"`             // seconds, default: 15
	MaxRetries   int    `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`     // default: 3
	RetryBackoff int    `json:"retry_backoff,omitempty" yaml:"retry_backoff,omitempty"` // seconds, default: 3
	UserAgent    string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// Validate validates the client configuration. A missing API key is not an
// error here: the server must come up without one and report the missing
// key per request instead.
func (c *ClientConfig) Validate() error {
	if c.APIHost == "" {
		return ErrInvalidAPIHost
	}
	return nil
}
