package config

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// WordPressEnv names the environment variable holding the CMS API root.
const WordPressEnv = "WP_API_URL"

// PlaceholderWordPressURL is used when no CMS address is configured. It does
// not serve content; requests against it degrade to fallback copy.
const PlaceholderWordPressURL = "https://example.org/wp-json"

// WordPressConfig groups settings for the content gateway.
type WordPressConfig struct {
	BaseURL    string        `mapstructure:"baseUrl"`
	TimeoutSec int           `mapstructure:"timeoutSec"`
	Embed      bool          `mapstructure:"embed"`
	UserAgent  string        `mapstructure:"userAgent"`
	Timeout    time.Duration `mapstructure:"-"`
}

// WebhookConfig controls the inbound rebuild hook.
type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
}

// ContactConfig holds the contact details printed on the site.
type ContactConfig struct {
	Email   string `mapstructure:"email"`
	Phone   string `mapstructure:"phone"`
	Address string `mapstructure:"address"`
}

// Config encapsulates runtime and build-time options.
type Config struct {
	Listen                 string          `mapstructure:"listen"`
	BaseURL                string          `mapstructure:"baseUrl"`
	OutputDir              string          `mapstructure:"outputDir"`
	TemplateDir            string          `mapstructure:"templateDir"`
	WatchTemplates         bool            `mapstructure:"watchTemplates"`
	Live                   bool            `mapstructure:"live"`
	LogLevel               string          `mapstructure:"logLevel"`
	EnableTLS              bool            `mapstructure:"enableTLS"`
	TLSCert                string          `mapstructure:"tlsCert"`
	TLSKey                 string          `mapstructure:"tlsKey"`
	TrustedProxies         []string        `mapstructure:"trustedProxies"`
	TrustedRemoteAddrLevel int             `mapstructure:"trustedRemoteAddrLevel"`
	RebuildIntervalSec     int             `mapstructure:"rebuildIntervalSec"`
	WordPress              WordPressConfig `mapstructure:"wordpress"`
	Webhook                WebhookConfig   `mapstructure:"webhook"`
	Contact                ContactConfig   `mapstructure:"contact"`
	RebuildInterval        time.Duration   `mapstructure:"-"`
	trustedProxyPrefixes   []netip.Prefix
}

// Load reads configuration from path (JSON), the process environment and an
// optional .env file, then applies defaults. A missing file is not an error
// unless required is set.
func Load(path string, required bool) (*Config, error) {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("ATHLETOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("wordpress.baseUrl", WordPressEnv, "ATHLETOS_WORDPRESS_BASEURL"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			switch {
			case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
				if required {
					return nil, fmt.Errorf("open config: %w", err)
				}
			default:
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Every key needs a default so AutomaticEnv can override it during Unmarshal.
	v.SetDefault("listen", ":8080")
	v.SetDefault("baseUrl", "")
	v.SetDefault("outputDir", "./dist")
	v.SetDefault("templateDir", "")
	v.SetDefault("watchTemplates", false)
	v.SetDefault("live", true)
	v.SetDefault("logLevel", "info")
	v.SetDefault("enableTLS", false)
	v.SetDefault("tlsCert", "")
	v.SetDefault("tlsKey", "")
	v.SetDefault("trustedProxies", []string{})
	v.SetDefault("trustedRemoteAddrLevel", 1)
	v.SetDefault("rebuildIntervalSec", 0)
	v.SetDefault("wordpress.baseUrl", "")
	v.SetDefault("wordpress.timeoutSec", 15)
	v.SetDefault("wordpress.embed", false)
	v.SetDefault("wordpress.userAgent", "")
	v.SetDefault("webhook.enabled", false)
	v.SetDefault("webhook.secret", "")
	v.SetDefault("contact.email", "jonas.kerwin.hansen@gmail.com")
	v.SetDefault("contact.phone", "+45 50 10 69 17")
	v.SetDefault("contact.address", "Servicevej 6, 4220 Korsør")
}

func (c *Config) applyDefaults() error {
	c.Listen = strings.TrimSpace(c.Listen)
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = "./dist"
	}
	c.TemplateDir = strings.TrimSpace(c.TemplateDir)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.TrustedRemoteAddrLevel <= 0 {
		c.TrustedRemoteAddrLevel = 1
	}

	c.WordPress.BaseURL = strings.TrimRight(strings.TrimSpace(c.WordPress.BaseURL), "/")
	if c.WordPress.BaseURL == "" {
		c.WordPress.BaseURL = PlaceholderWordPressURL
	}
	if c.WordPress.TimeoutSec <= 0 {
		c.WordPress.TimeoutSec = 15
	}
	c.WordPress.Timeout = time.Duration(c.WordPress.TimeoutSec) * time.Second
	c.WordPress.UserAgent = strings.TrimSpace(c.WordPress.UserAgent)

	c.Webhook.Secret = strings.TrimSpace(c.Webhook.Secret)

	if c.RebuildIntervalSec > 0 {
		c.RebuildInterval = time.Duration(c.RebuildIntervalSec) * time.Second
	} else {
		c.RebuildInterval = 0
	}

	return c.compileTrustedProxies()
}

func (c *Config) validate() error {
	if c.EnableTLS {
		if c.TLSCert == "" || c.TLSKey == "" {
			return fmt.Errorf("tls enabled but certificates missing")
		}
	}
	parsed, err := url.ParseRequestURI(c.WordPress.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid wordpress baseUrl: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid wordpress baseUrl: unsupported scheme %q", parsed.Scheme)
	}
	if c.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
			return fmt.Errorf("invalid baseUrl: %w", err)
		}
	}
	if c.Webhook.Enabled {
		if n := len(c.Webhook.Secret); n < 8 || n > 128 {
			return fmt.Errorf("webhook secret must be between 8 and 128 characters when the webhook is enabled")
		}
	}
	return nil
}

// UsesPlaceholderCMS reports whether no CMS address was configured.
func (c *Config) UsesPlaceholderCMS() bool {
	return c.WordPress.BaseURL == PlaceholderWordPressURL
}

func (c *Config) compileTrustedProxies() error {
	if c.trustedProxyPrefixes != nil {
		c.trustedProxyPrefixes = c.trustedProxyPrefixes[:0]
	}
	for _, entry := range c.TrustedProxies {
		token := strings.TrimSpace(entry)
		if token == "" {
			continue
		}
		if strings.Contains(token, "/") {
			prefix, err := netip.ParsePrefix(token)
			if err != nil {
				return fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
			}
			c.trustedProxyPrefixes = append(c.trustedProxyPrefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(token)
		if err != nil {
			return fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		c.trustedProxyPrefixes = append(c.trustedProxyPrefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return nil
}

// IsTrustedProxy reports whether the provided address is within the trusted proxy list.
func (c *Config) IsTrustedProxy(addr netip.Addr) bool {
	for _, prefix := range c.trustedProxyPrefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// RemoteAddrFromRequest determines the originating client address. It walks
// X-Forwarded-For from the right, skipping at most TrustedRemoteAddrLevel
// trusted proxies.
func (c *Config) RemoteAddrFromRequest(r *http.Request) netip.Addr {
	chain := c.remoteAddrChain(r)
	if len(chain) == 0 {
		return netip.Addr{}
	}

	allowed := max(c.TrustedRemoteAddrLevel, 0)
	idx := len(chain) - 1
	for idx > 0 && allowed > 0 && c.IsTrustedProxy(chain[idx]) {
		idx--
		allowed--
	}
	return chain[idx]
}

func (c *Config) remoteAddrChain(r *http.Request) []netip.Addr {
	chain := make([]netip.Addr, 0, 4)

	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for raw := range strings.SplitSeq(header, ",") {
			if addr, err := netip.ParseAddr(strings.TrimSpace(raw)); err == nil {
				chain = append(chain, addr)
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if addr, err := netip.ParseAddr(strings.TrimSpace(host)); err == nil {
		chain = append(chain, addr)
	}
	return chain
}
