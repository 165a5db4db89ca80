package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	cacheConfig "github.com/iurnickita/autosalon/internal/cache/config"
	dealConfig "github.com/iurnickita/autosalon/internal/deal/config"
	handlerConfig "github.com/iurnickita/autosalon/internal/handler/config"
	loggerConfig "github.com/iurnickita/autosalon/internal/logger/config"
	schedulerConfig "github.com/iurnickita/autosalon/internal/scheduler/config"
	serviceConfig "github.com/iurnickita/autosalon/internal/service/config"
	storeConfig "github.com/iurnickita/autosalon/internal/store/config"
	tokenConfig "github.com/iurnickita/autosalon/internal/token/config"
)

type Config struct {
	Handler   handlerConfig.Config
	Service   serviceConfig.Config
	Store     storeConfig.Config
	Logger    loggerConfig.Config
	Token     tokenConfig.Config
	Deal      dealConfig.Config
	Scheduler schedulerConfig.Config
	Cache     cacheConfig.Config
}

// GetConfig builds the configuration from defaults, a .env file (if any) and the environment.
func GetConfig() Config {
	// .env необязателен
	_ = godotenv.Load()

	var cfg Config

	cfg.Handler.ServerAddr = getEnv("RUN_ADDRESS", "localhost:8080")
	cfg.Store.DBDsn = getEnv("DATABASE_URI", "")
	cfg.Logger.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.Service.MailAddr = getEnv("MAIL_ADDRESS", "")
	cfg.Service.MailFrom = getEnv("MAIL_FROM", "noreply@autosalon.local")

	cfg.Token.AccessSecret = getEnv("SECRET_KEY_OF_ACCESS_TOKEN", "access-secret")
	cfg.Token.RefreshSecret = getEnv("SECRET_KEY_OF_REFRESH_TOKEN", "refresh-secret")
	cfg.Token.DefaultSecrets = os.Getenv("SECRET_KEY_OF_ACCESS_TOKEN") == "" ||
		os.Getenv("SECRET_KEY_OF_REFRESH_TOKEN") == ""
	cfg.Token.AccessTTL = getEnvDuration("ACCESS_TOKEN_TTL", 30*time.Minute)
	cfg.Token.RefreshTTL = getEnvDuration("REFRESH_TOKEN_TTL", 60*time.Minute)

	cfg.Deal.Timeout = getEnvDuration("DEAL_TIMEOUT", 5*time.Second)
	cfg.Deal.MaxRetries = getEnvInt("DEAL_MAX_RETRIES", 3)
	cfg.Deal.TransferInventory = getEnvBool("DEAL_TRANSFER_INVENTORY", true)

	cfg.Scheduler.RecheckInterval = getEnvDuration("RECHECK_INTERVAL", 10*time.Minute)

	cfg.Cache.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.Cache.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.Cache.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.Cache.TTL = getEnvDuration("CACHE_TTL", 2*time.Minute)

	return cfg
}

// ParseFlags overrides cfg with command-line flags. Flags win over the environment.
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("autosalon", flag.ContinueOnError)
	fs.StringVar(&cfg.Handler.ServerAddr, "a", cfg.Handler.ServerAddr, "server address host:port")
	fs.StringVar(&cfg.Store.DBDsn, "d", cfg.Store.DBDsn, "database DSN")
	fs.StringVar(&cfg.Logger.LogLevel, "l", cfg.Logger.LogLevel, "log level")
	fs.StringVar(&cfg.Service.MailAddr, "m", cfg.Service.MailAddr, "mail gateway address")
	fs.StringVar(&cfg.Cache.RedisAddr, "r", cfg.Cache.RedisAddr, "redis address")
	fs.DurationVar(&cfg.Scheduler.RecheckInterval, "recheck", cfg.Scheduler.RecheckInterval, "supplier discount recheck interval, 0 disables")
	fs.BoolVar(&cfg.Deal.TransferInventory, "transfer-inventory", cfg.Deal.TransferInventory, "move supplier cars into autosalon on purchase")
	return fs.Parse(args)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
