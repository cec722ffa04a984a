package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Telegram Telegram
	Poll     Poll
	Store    Store
	HTTP     HTTP
	Log      Log
}

type Telegram struct {
	APIID           int    `env:"TG_API_ID" env-required:"true"`
	APIHash         string `env:"TG_API_HASH" env-required:"true"`
	BotToken        string `env:"TG_BOT_TOKEN" env-required:"true"`
	AdminChatID     int64  `env:"TG_ADMIN_CHAT_ID" env-required:"true"`
	UserSessionPath string `env:"TG_USER_SESSION_PATH" env-default:"user_account.session.json"`
}

type Poll struct {
	IntervalSeconds int `env:"POLL_INTERVAL_SECONDS" env-default:"60"`
}

type Store struct {
	Path string `env:"STORE_PATH" env-default:"subwatch.db"`
}

type HTTP struct {
	Port string `env:"HTTP_PORT" env-default:"8080"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

func (p Poll) Interval() time.Duration {
	return time.Duration(p.IntervalSeconds) * time.Second
}

func MustLoad() *Config {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.Fatal("failed to read config from env: ", err)
	}
	return cfg
}
