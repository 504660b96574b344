package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Config is the complete server configuration.
//
// Keys use the same camelCase spelling in every supported file format.
type Config struct {
	// FessBaseURL is the root URL of the Fess server, without trailing slash.
	FessBaseURL string `toml:"fessBaseUrl" json:"fessBaseUrl" yaml:"fessBaseUrl"`

	// Domain describes the knowledge domain this server instance exposes.
	Domain DomainConfig `toml:"domain" json:"domain" yaml:"domain"`

	// Labels maps Fess label values to agent-facing descriptors.
	Labels map[string]LabelDescriptor `toml:"labels" json:"labels" yaml:"labels"`

	// DefaultLabel scopes requests that do not name a label.
	DefaultLabel string `toml:"defaultLabel" json:"defaultLabel" yaml:"defaultLabel"`

	// StrictLabels rejects labels that are neither configured nor known to Fess.
	StrictLabels bool `toml:"strictLabels" json:"strictLabels" yaml:"strictLabels"`

	HTTPTransport HTTPTransportConfig `toml:"httpTransport" json:"httpTransport" yaml:"httpTransport"`
	Timeouts      TimeoutsConfig      `toml:"timeouts" json:"timeouts" yaml:"timeouts"`
	Limits        LimitsConfig        `toml:"limits" json:"limits" yaml:"limits"`
	Logging       LoggingConfig       `toml:"logging" json:"logging" yaml:"logging"`
	Security      SecurityConfig      `toml:"security" json:"security" yaml:"security"`
	ContentFetch  ContentFetchConfig  `toml:"contentFetch" json:"contentFetch" yaml:"contentFetch"`
	RateLimit     RateLimitConfig     `toml:"rateLimit" json:"rateLimit" yaml:"rateLimit"`

	// LabelCacheTTLSeconds is how long labels fetched from Fess stay fresh.
	LabelCacheTTLSeconds int `toml:"labelCacheTtlSeconds" json:"labelCacheTtlSeconds" yaml:"labelCacheTtlSeconds"`
}

// DomainConfig identifies the knowledge domain.
type DomainConfig struct {
	ID          string `toml:"id" json:"id" yaml:"id"`
	Name        string `toml:"name" json:"name" yaml:"name"`
	Description string `toml:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`

	// LabelFilter is the legacy way to set a default label.
	LabelFilter string `toml:"labelFilter,omitempty" json:"labelFilter,omitempty" yaml:"labelFilter,omitempty"`
}

// HTTPTransportConfig configures the streamable HTTP transport.
type HTTPTransportConfig struct {
	BindAddress string `toml:"bindAddress" json:"bindAddress" yaml:"bindAddress"`
	Port        int    `toml:"port" json:"port" yaml:"port"`
	Path        string `toml:"path" json:"path" yaml:"path"`
}

// TimeoutsConfig holds timeouts in milliseconds.
type TimeoutsConfig struct {
	FessRequestTimeoutMs   int `toml:"fessRequestTimeoutMs" json:"fessRequestTimeoutMs" yaml:"fessRequestTimeoutMs"`
	LongRunningThresholdMs int `toml:"longRunningThresholdMs" json:"longRunningThresholdMs" yaml:"longRunningThresholdMs"`
}

// FessRequestTimeout returns the per-request timeout for Fess calls.
func (t TimeoutsConfig) FessRequestTimeout() time.Duration {
	return time.Duration(t.FessRequestTimeoutMs) * time.Millisecond
}

// LongRunningThreshold returns the duration after which an operation is
// reported as long-running.
func (t TimeoutsConfig) LongRunningThreshold() time.Duration {
	return time.Duration(t.LongRunningThresholdMs) * time.Millisecond
}

// LimitsConfig bounds request sizes and snippet generation.
type LimitsConfig struct {
	MaxPageSize         int `toml:"maxPageSize" json:"maxPageSize" yaml:"maxPageSize"`
	MaxChunkBytes       int `toml:"maxChunkBytes" json:"maxChunkBytes" yaml:"maxChunkBytes"`
	MaxInFlightRequests int `toml:"maxInFlightRequests" json:"maxInFlightRequests" yaml:"maxInFlightRequests"`

	SnippetDefaultChars     int `toml:"snippetDefaultChars" json:"snippetDefaultChars" yaml:"snippetDefaultChars"`
	SnippetMinChars         int `toml:"snippetMinChars" json:"snippetMinChars" yaml:"snippetMinChars"`
	SnippetMaxChars         int `toml:"snippetMaxChars" json:"snippetMaxChars" yaml:"snippetMaxChars"`
	SnippetDefaultFragments int `toml:"snippetDefaultFragments" json:"snippetDefaultFragments" yaml:"snippetDefaultFragments"`
	SnippetMaxFragments     int `toml:"snippetMaxFragments" json:"snippetMaxFragments" yaml:"snippetMaxFragments"`
	SnippetDefaultDocs      int `toml:"snippetDefaultDocs" json:"snippetDefaultDocs" yaml:"snippetDefaultDocs"`
	SnippetMaxDocs          int `toml:"snippetMaxDocs" json:"snippetMaxDocs" yaml:"snippetMaxDocs"`
	SnippetScanMaxChars     int `toml:"snippetScanMaxChars" json:"snippetScanMaxChars" yaml:"snippetScanMaxChars"`

	// SnippetMatchCapFactor multiplies the fragment count to bound how many
	// match positions are collected per document.
	SnippetMatchCapFactor int `toml:"snippetMatchCapFactor" json:"snippetMatchCapFactor" yaml:"snippetMatchCapFactor"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level      string `toml:"level" json:"level" yaml:"level"`
	RetainDays int    `toml:"retainDays" json:"retainDays" yaml:"retainDays"`
}

// SecurityConfig holds HTTP transport security settings.
type SecurityConfig struct {
	HTTPAuthToken         string `toml:"httpAuthToken,omitempty" json:"httpAuthToken,omitempty" yaml:"httpAuthToken,omitempty"`
	AllowNonLocalhostBind bool   `toml:"allowNonLocalhostBind" json:"allowNonLocalhostBind" yaml:"allowNonLocalhostBind"`
}

// ContentFetchConfig controls the document text tools.
type ContentFetchConfig struct {
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`
}

// RateLimitConfig throttles outbound requests to Fess.
type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requestsPerSecond" json:"requestsPerSecond" yaml:"requestsPerSecond"`
	Burst             int     `toml:"burst" json:"burst" yaml:"burst"`
}

// DefaultConfig returns a configuration with every optional value set.
// FessBaseURL and Domain must still be supplied.
func DefaultConfig() Config {
	return Config{
		DefaultLabel: LabelAll,
		StrictLabels: true,
		HTTPTransport: HTTPTransportConfig{
			BindAddress: "127.0.0.1",
			Port:        0,
			Path:        "/mcp",
		},
		Timeouts: TimeoutsConfig{
			FessRequestTimeoutMs:   30000,
			LongRunningThresholdMs: 2000,
		},
		Limits: LimitsConfig{
			MaxPageSize:             100,
			MaxChunkBytes:           262144,
			MaxInFlightRequests:     32,
			SnippetDefaultChars:     200,
			SnippetMinChars:         50,
			SnippetMaxChars:         1000,
			SnippetDefaultFragments: 3,
			SnippetMaxFragments:     10,
			SnippetDefaultDocs:      5,
			SnippetMaxDocs:          20,
			SnippetScanMaxChars:     100000,
			SnippetMatchCapFactor:   5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			RetainDays: 7,
		},
		ContentFetch: ContentFetchConfig{
			Enabled: true,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
		},
		LabelCacheTTLSeconds: 300,
	}
}

var domainIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Normalise trims the base URL and fills values that depend on other fields.
func (c *Config) Normalise() {
	c.FessBaseURL = strings.TrimRight(strings.TrimSpace(c.FessBaseURL), "/")
	if c.DefaultLabel == "" {
		c.DefaultLabel = LabelAll
	}
	if c.Labels == nil {
		c.Labels = make(map[string]LabelDescriptor)
	}
	if _, ok := c.Labels[LabelAll]; !ok {
		c.Labels[LabelAll] = AllLabelDescriptor()
	}
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	if c.FessBaseURL == "" {
		return fmt.Errorf("%w: fessBaseUrl cannot be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.FessBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: fessBaseUrl must be an http(s) URL, got %q", ErrInvalidConfig, c.FessBaseURL)
	}
	if !domainIDPattern.MatchString(c.Domain.ID) {
		return fmt.Errorf("%w: domain.id must match %s, got %q", ErrInvalidConfig, domainIDPattern, c.Domain.ID)
	}
	if strings.TrimSpace(c.Domain.Name) == "" {
		return fmt.Errorf("%w: domain.name cannot be empty", ErrInvalidConfig)
	}
	if err := c.Limits.validate(); err != nil {
		return err
	}
	if !strings.HasPrefix(c.HTTPTransport.Path, "/") {
		return fmt.Errorf("%w: httpTransport.path must start with '/'", ErrInvalidConfig)
	}
	if c.HTTPTransport.Port < 0 || c.HTTPTransport.Port > 65535 {
		return fmt.Errorf("%w: httpTransport.port out of range: %d", ErrInvalidConfig, c.HTTPTransport.Port)
	}
	if c.Timeouts.FessRequestTimeoutMs <= 0 {
		return fmt.Errorf("%w: timeouts.fessRequestTimeoutMs must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: logging.level must be one of error, warn, info, debug; got %q",
			ErrInvalidConfig, c.Logging.Level)
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rateLimit values cannot be negative", ErrInvalidConfig)
	}
	return nil
}

func (l LimitsConfig) validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"maxPageSize", l.MaxPageSize},
		{"maxChunkBytes", l.MaxChunkBytes},
		{"maxInFlightRequests", l.MaxInFlightRequests},
		{"snippetDefaultChars", l.SnippetDefaultChars},
		{"snippetMinChars", l.SnippetMinChars},
		{"snippetMaxChars", l.SnippetMaxChars},
		{"snippetDefaultFragments", l.SnippetDefaultFragments},
		{"snippetMaxFragments", l.SnippetMaxFragments},
		{"snippetDefaultDocs", l.SnippetDefaultDocs},
		{"snippetMaxDocs", l.SnippetMaxDocs},
		{"snippetScanMaxChars", l.SnippetScanMaxChars},
		{"snippetMatchCapFactor", l.SnippetMatchCapFactor},
	}
	for _, p := range positive {
		if p.value < 1 {
			return fmt.Errorf("%w: limits.%s must be a positive integer, got %d", ErrInvalidConfig, p.name, p.value)
		}
	}

	if l.SnippetMinChars > l.SnippetMaxChars {
		return fmt.Errorf("%w: limits.snippetMinChars exceeds limits.snippetMaxChars", ErrInvalidConfig)
	}
	if l.SnippetDefaultChars < l.SnippetMinChars || l.SnippetDefaultChars > l.SnippetMaxChars {
		return fmt.Errorf("%w: limits.snippetDefaultChars must lie within [snippetMinChars, snippetMaxChars]",
			ErrInvalidConfig)
	}
	if l.SnippetDefaultFragments > l.SnippetMaxFragments {
		return fmt.Errorf("%w: limits.snippetDefaultFragments exceeds limits.snippetMaxFragments", ErrInvalidConfig)
	}
	if l.SnippetDefaultDocs > l.SnippetMaxDocs {
		return fmt.Errorf("%w: limits.snippetDefaultDocs exceeds limits.snippetMaxDocs", ErrInvalidConfig)
	}
	return nil
}

// EffectiveDefaultLabel returns the label used when a request names none.
// A legacy domain.labelFilter takes over when defaultLabel is left at "all".
func (c *Config) EffectiveDefaultLabel() string {
	if (c.DefaultLabel == "" || c.DefaultLabel == LabelAll) && c.Domain.LabelFilter != "" {
		return c.Domain.LabelFilter
	}
	if c.DefaultLabel == "" {
		return LabelAll
	}
	return c.DefaultLabel
}

// ServerName is the MCP implementation name for this domain.
func (c *Config) ServerName() string {
	return "mcp-fess-" + c.Domain.ID
}

// IsLoopbackBind reports whether the HTTP transport binds to a loopback address.
func (h HTTPTransportConfig) IsLoopbackBind() bool {
	switch h.BindAddress {
	case "127.0.0.1", "::1", "localhost":
		return true
	default:
		return false
	}
}

// EffectivePort returns the configured port, or 3000 when unset.
func (h HTTPTransportConfig) EffectivePort() int {
	if h.Port == 0 {
		return 3000
	}
	return h.Port
}
