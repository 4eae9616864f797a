package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1|max:65535"`
}

type StorageConfig struct {
	DataDir       string `yaml:"dataDir" validate:"required"`
	UsersFile     string `yaml:"usersFile" validate:"required"`
	AlertsFile    string `yaml:"alertsFile" validate:"required"`
	CounterFile   string `yaml:"counterFile" validate:"required"`
	AlertsFormat  string `yaml:"alertsFormat" validate:"required|in:ndjson,array"`
	QuarantineDir string `yaml:"quarantineDir"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type RateLimitConfig struct {
	Cooldown      time.Duration `yaml:"cooldown" validate:"required|min:1"`
	MaxKeys       int           `yaml:"maxKeys"`
	SweepInterval time.Duration `yaml:"sweepInterval"`
}

type ContactsConfig struct {
	MaxTrusted int `yaml:"maxTrusted" validate:"required|int|min:1"`
}

type AuthConfig struct {
	DefaultAdminUser     string        `yaml:"defaultAdminUser" validate:"required"`
	DefaultAdminPassword string        `yaml:"defaultAdminPassword" validate:"required"`
	DefaultAdminName     string        `yaml:"defaultAdminName"`
	MinPasswordLength    int           `yaml:"minPasswordLength" validate:"required|int|min:1"`
	BcryptCost           int           `yaml:"bcryptCost"`
	SessionTTL           time.Duration `yaml:"sessionTTL" validate:"required|min:1"`
	CookieName           string        `yaml:"cookieName" validate:"required"`
	CookieSecure         bool          `yaml:"cookieSecure"`
	LoginRequests        int           `yaml:"loginRequests"`
	LoginWindow          time.Duration `yaml:"loginWindow"`
}

type SessionConfig struct {
	CacheSize int `yaml:"cacheSize"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type BackendConfig struct {
	Name string `yaml:"name"`
	Url  string `yaml:"url"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Storage   StorageConfig   `yaml:"storage"`
	Logger    LoggerConfig    `yaml:"logger"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Contacts  ContactsConfig  `yaml:"contacts"`
	Auth      AuthConfig      `yaml:"auth"`
	Session   SessionConfig   `yaml:"session"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Backends  []BackendConfig `yaml:"backends"`
}
