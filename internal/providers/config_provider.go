package providers

import (
	"aurora/internal/structures"
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
	"time"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 5000)

	v.SetDefault("storage.dataDir", "./data")
	v.SetDefault("storage.usersFile", "users.json")
	v.SetDefault("storage.alertsFile", "alerts.log")
	v.SetDefault("storage.counterFile", "alerts.counter")
	v.SetDefault("storage.alertsFormat", "ndjson")
	v.SetDefault("storage.quarantineDir", "quarantine")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")

	v.SetDefault("rateLimit.cooldown", 5*time.Second)
	v.SetDefault("rateLimit.maxKeys", 10000)
	v.SetDefault("rateLimit.sweepInterval", time.Minute)

	v.SetDefault("contacts.maxTrusted", 3)

	v.SetDefault("auth.defaultAdminUser", "admin")
	v.SetDefault("auth.defaultAdminPassword", "admin123")
	v.SetDefault("auth.defaultAdminName", "Admin Aurora")
	v.SetDefault("auth.minPasswordLength", 6)
	v.SetDefault("auth.bcryptCost", 10)
	v.SetDefault("auth.sessionTTL", 12*time.Hour)
	v.SetDefault("auth.cookieName", "aurora_session")
	v.SetDefault("auth.loginRequests", 10)
	v.SetDefault("auth.loginWindow", time.Minute)

	v.SetDefault("session.cacheSize", 8)
	v.SetDefault("metrics.enabled", true)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "AURORA_LOG_LEVEL")
	v.BindEnv("webServer.port", "AURORA_PORT")
	v.BindEnv("storage.dataDir", "AURORA_DATA_DIR")
	v.BindEnv("rateLimit.cooldown", "AURORA_COOLDOWN")
	v.BindEnv("contacts.maxTrusted", "AURORA_MAX_TRUSTED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "AuroraPanicButton"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
