package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Log      LogConfig
	IDGen    IDGenConfig
}

type AppConfig struct {
	Name string
}

type HTTPConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// Addr devuelve ":<port>" para http.Server.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

type DatabaseConfig struct {
	// memory | postgres | sqlite. Si está vacío: postgres cuando hay DSN, memory si no.
	Driver string
	DSN    string

	// Clave de cifrado de SQLite (sqlcipher). Si está vacía se busca en el keyring del SO.
	Key            string
	KeyringService string

	ConnectRetries int
}

type LogConfig struct {
	Level  string
	Format string
}

type IDGenConfig struct {
	Node int64
}

// Source es la configuración respaldada por viper: archivo opcional + env + defaults.
type Source struct {
	v    *viper.Viper
	file string
}

// NewSource carga la configuración. path puede estar vacío (sólo env + defaults).
//
// Env: cada clave "a.b" se lee de A_B (HTTP_PORT, DATABASE_DSN, LOG_LEVEL...).
// Se aceptan también PORT y DB_DSN por compatibilidad.
func NewSource(path string) (*Source, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// BindEnv sólo falla si no se pasa clave.
	_ = v.BindEnv("http.port", "HTTP_PORT", "PORT")
	_ = v.BindEnv("database.dsn", "DATABASE_DSN", "DB_DSN")
	_ = v.BindEnv("database.key", "DATABASE_KEY", "VETSOFT_DB_KEY")
	_ = v.BindEnv("app.name", "APP_NAME")

	path = strings.TrimSpace(path)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	s := &Source{v: v, file: path}
	if _, err := s.Config(); err != nil {
		return nil, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vetsoft")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", "5s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.cors_origins", "*")
	v.SetDefault("database.driver", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.keyring_service", "vetsoft")
	v.SetDefault("database.connect_retries", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("idgen.node", 1)
}

// Config arma el struct tipado desde el estado actual de viper.
func (s *Source) Config() (*Config, error) {
	v := s.v

	cfg := &Config{
		App: AppConfig{Name: v.GetString("app.name")},
		HTTP: HTTPConfig{
			Port:         v.GetInt("http.port"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			CORSOrigins:  splitList(v.GetStringSlice("http.cors_origins")),
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
			DSN:            strings.TrimSpace(v.GetString("database.dsn")),
			Key:            v.GetString("database.key"),
			KeyringService: v.GetString("database.keyring_service"),
			ConnectRetries: v.GetInt("database.connect_retries"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		IDGen: IDGenConfig{Node: v.GetInt64("idgen.node")},
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverMemory
		if cfg.Database.DSN != "" {
			cfg.Database.Driver = DriverPostgres
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: invalid http.port %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if c.Database.DSN == "" {
			return fmt.Errorf("config: database.dsn is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}
	if c.Database.ConnectRetries < 0 {
		return errors.New("config: database.connect_retries must be >= 0")
	}
	return nil
}

// OnChange re-lee el archivo cuando cambia y entrega la config nueva.
// Sin archivo no hay nada que observar.
func (s *Source) OnChange(fn func(*Config)) {
	if s.file == "" {
		return
	}
	s.v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := s.Config()
		if err != nil {
			slog.Error("config reload failed", "path", s.file, "err", err)
			return
		}
		slog.Info("config success reloaded", "path", s.file)
		fn(cfg)
	})
	s.v.WatchConfig()
}

// splitList acepta tanto listas YAML como "a,b,c" desde env.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
