package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Config struct {
	AppName  string
	Env      string // DEV (local; default), TEST, QA, PROD
	Debug    bool
	TestMode bool
	Build    string

	APIBaseURL     string
	RequestTimeout time.Duration

	SessionStorePath string

	RollbarToken string
	Google       GoogleConfig
}

// NewConfig loads configuration from defaults, an optional config/.env.<env>
// file and ENV-prefixed environment variables.
func NewConfig(workDir string) (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "SkillShare")
	v.SetDefault("apiBaseUrl", "http://localhost:8080")
	v.SetDefault("requestTimeout", 15*time.Second)
	v.SetDefault("sessionStorePath", filepath.Join(workDir, ".skillshare", "session.json"))

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Build:            v.GetString("build"),
		APIBaseURL:       v.GetString("apiBaseUrl"),
		RequestTimeout:   v.GetDuration("requestTimeout"),
		SessionStorePath: v.GetString("sessionStorePath"),
		RollbarToken:     v.GetString("rollbarToken"),
		Google: GoogleConfig{
			ClientID:     v.GetString("googleClientId"),
			ClientSecret: v.GetString("googleClientSecret"),
			RedirectURL:  v.GetString("googleRedirectUrl"),
		},
	}

	if conf.RequestTimeout <= 0 {
		conf.RequestTimeout = 15 * time.Second
	}
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.AppName, "appName"),
		vala.StringNotEmpty(conf.APIBaseURL, "apiBaseUrl"),
		vala.StringNotEmpty(conf.SessionStorePath, "sessionStorePath"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return conf, nil
}
