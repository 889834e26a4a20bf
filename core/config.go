package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvDev  = "DEV"
	EnvTest = "TEST"
	EnvQA   = "QA"
	EnvProd = "PROD"
)

type (
	ServerConfig struct {
		Address         string
		DebugHost       string
		Host            string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
		APIToken        string
	}

	DatabaseConfig struct {
		URL          string
		AutoMigrate  bool
		MaxOpenConns int
	}

	Config struct {
		Env               string
		Debug             bool
		TestMode          bool
		AppName           string
		Build             string
		Server            ServerConfig
		Database          DatabaseConfig
		RollbarToken      string
		SendgridApiKey    string
		DefaultFromEmail  mail.Address
		ContactRecipients []mail.Address
	}
)

// NewConfig loads the configuration of the current ENV (DEV by default) from
// defaults, an optional config/.env.<env> file and the environment.
func NewConfig() (*Config, error) {
	conf := viper.New()

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = EnvDev
	}

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", env == EnvDev || env == EnvTest)
	conf.SetDefault("testMode", env == EnvTest)
	conf.SetDefault("appName", "Sessionbook")
	conf.SetDefault("build", "dev")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.disableReqLogs", false)
	conf.SetDefault("server.apiToken", "")
	conf.SetDefault("database.url", "sqlite://./app.db")
	conf.SetDefault("database.autoMigrate", env == EnvDev)
	conf.SetDefault("database.maxOpenConns", 10)
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("contactRecipients", "")

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	// well-known unprefixed variables
	_ = conf.BindEnv("database.url", env+"_DATABASE_URL", "DATABASE_URL")
	_ = conf.BindEnv("server.apiToken", env+"_API_TOKEN", "API_TOKEN")
	_ = conf.BindEnv("rollbarToken", env+"_ROLLBAR_TOKEN", "ROLLBAR_TOKEN")
	_ = conf.BindEnv("sendgridApiKey", env+"_SENDGRID_API_KEY", "SENDGRID_API_KEY")

	addr := conf.GetString("server.address")
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	from, err := mail.ParseAddress(conf.GetString("defaultFromEmail"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing defaultFromEmail")
	}
	var recipients []mail.Address
	if rcpts := CleanString(conf.GetString("contactRecipients")); rcpts != "" {
		list, err := mail.ParseAddressList(rcpts)
		if err != nil {
			return nil, errors.Wrap(err, "parsing contactRecipients")
		}
		for _, r := range list {
			recipients = append(recipients, *r)
		}
	}

	c := &Config{
		Env:      env,
		Debug:    conf.GetBool("debug"),
		TestMode: conf.GetBool("testMode"),
		AppName:  conf.GetString("appName"),
		Build:    conf.GetString("build"),
		Server: ServerConfig{
			Address:         addr,
			DebugHost:       conf.GetString("server.debugHost"),
			Host:            conf.GetString("server.host"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  conf.GetBool("server.disableReqLogs"),
			APIToken:        conf.GetString("server.apiToken"),
		},
		Database: DatabaseConfig{
			URL:          conf.GetString("database.url"),
			AutoMigrate:  conf.GetBool("database.autoMigrate"),
			MaxOpenConns: conf.GetInt("database.maxOpenConns"),
		},
		RollbarToken:      conf.GetString("rollbarToken"),
		SendgridApiKey:    conf.GetString("sendgridApiKey"),
		DefaultFromEmail:  *from,
		ContactRecipients: recipients,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// a DEV token is generated at startup when none is set; every other env must provide one.
func (c *Config) validate() error {
	if c.Server.APIToken == "" && c.Env != EnvDev && c.Env != EnvTest {
		return errors.Errorf("%s: API_TOKEN is required", c.Env)
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}
