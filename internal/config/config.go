package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/koding/multiconfig"
)

// Config defines server configuration. Judge credentials are not part of
// it: the submission proxy reads JUDGE0_* from the environment per request.
type Config struct {
	// server
	Mode          string `flagUsage:"what to run: all, api or worker" default:"all"`
	HTTPAddr      string `flagUsage:"specifies the http binding address" default:":8080"`
	MonitorAddr   string `flagUsage:"specifies the metrics binding address" default:":8081"`
	EnableMetrics bool   `flagUsage:"enable prometheus metrics endpoint" default:"true"`
	BaseURL       string `flagUsage:"public URL of this server, used for OAuth callbacks" default:"http://localhost:8080"`

	// storage
	DatabaseURL   string `flagUsage:"postgres connection string" required:"true"`
	RedisAddr     string `flagUsage:"redis address" default:"localhost:6379"`
	RedisPassword string `flagUsage:"redis password"`
	RedisDB       int    `flagUsage:"redis database index" default:"0"`
	Migrate       bool   `flagUsage:"apply the schema on startup" default:"true"`

	// auth
	SessionSecret  string        `flagUsage:"HMAC secret for session tokens" required:"true"`
	SessionIssuer  string        `flagUsage:"issuer claim for session tokens" default:"algodojo"`
	SessionTTL     time.Duration `flagUsage:"session token lifetime" default:"168h"`
	StateKey       string        `flagUsage:"hex-encoded 32-byte key sealing the OAuth state" required:"true"`
	AllowedOrigins string        `flagUsage:"comma separated origins allowed as login redirect targets, defaults to the BaseURL origin"`

	GoogleClientID     string `flagUsage:"google oauth client id"`
	GoogleClientSecret string `flagUsage:"google oauth client secret"`
	GitHubClientID     string `flagUsage:"github oauth client id"`
	GitHubClientSecret string `flagUsage:"github oauth client secret"`

	// submissions
	JudgeTimeout time.Duration `flagUsage:"timeout for one judge round trip" default:"30s"`

	// drafts and leaderboard
	DraftCapacity       int           `flagUsage:"max stored drafts per user" default:"200"`
	LeaderboardSize     int           `flagUsage:"entries kept per leaderboard" default:"50"`
	LeaderboardInterval time.Duration `flagUsage:"leaderboard refresh interval" default:"1m"`

	// logger
	LogLevel  string `flagUsage:"log level (debug, info, warn, error)" default:"info"`
	LogFormat string `flagUsage:"log format (json, console)" default:"json"`
	Release   bool   `flagUsage:"release mode for gin"`
}

// Load loads config from tags, environment variables (DOJO_ prefix) and flags.
func (c *Config) Load() error {
	return c.loader(nil).Load(c)
}

func (c *Config) loader(args []string) multiconfig.Loader {
	flags := &multiconfig.FlagLoader{
		CamelCase: true,
		EnvPrefix: "DOJO",
	}
	if args != nil {
		flags.Args = args
	}
	return multiconfig.MultiLoader(
		&multiconfig.TagLoader{},
		&multiconfig.EnvironmentLoader{
			Prefix:    "DOJO",
			CamelCase: true,
		},
		flags,
	)
}

// Validate checks required fields.
func (c *Config) Validate() error {
	return multiconfig.MultiValidator(&multiconfig.RequiredValidator{}).Validate(c)
}

// Origins splits AllowedOrigins. When none are set, only the origin of
// BaseURL is allowed.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, strings.TrimRight(o, "/"))
		}
	}
	if len(out) == 0 {
		if u, err := url.Parse(c.BaseURL); err == nil && u.Scheme != "" && u.Host != "" {
			out = append(out, u.Scheme+"://"+u.Host)
		}
	}
	return out
}
