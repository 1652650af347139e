package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		PollTimeout int   `mapstructure:"poll_timeout"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Storage struct {
		// postgres | memory
		Driver string
	} `mapstructure:"storage"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Verify struct {
		// auto | random | manual
		Mode     string
		PassRate float64 `mapstructure:"pass_rate"`
	} `mapstructure:"verify"`

	Booking struct {
		MinProblemLen int    `mapstructure:"min_problem_len"`
		WizardTTL     string `mapstructure:"wizard_ttl"`
	} `mapstructure:"booking"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// Токен и DSN можно переопределять через ENV (APP_*)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("telegram.poll_timeout", 30)
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("verify.mode", "auto")
	v.SetDefault("verify.pass_rate", 0.7)
	v.SetDefault("booking.min_problem_len", 1)
	v.SetDefault("booking.wizard_ttl", "24h")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if c.Telegram.Token == "" {
		return c, errors.New("telegram.token is required")
	}
	return c, nil
}
