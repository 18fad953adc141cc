// config - источник загрузки конфигурации админ-шлюза.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const localConfig = "local.yaml"

const (
	SessionMemory = "memory"
	SessionFile   = "file"
	SessionRedis  = "redis"
)

type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Backend  BackendConfig `yaml:"backend"`
	Session  SessionConfig `yaml:"session"`
	Routes   RoutesConfig  `yaml:"routes"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — таймауты:
//   - Service — общий дедлайн входящего запроса к шлюзу (0 отключает);
//   - Request — запасной дедлайн исходящего вызова, когда у контекста своего
//     нет: при Service=0 и для вызовов api.Service не из HTTP-обработчика.
//     Под роутером с Service>0 контекст уже с дедлайном, и Request не действует;
//   - Refresh — дедлайн обмена refresh-токена.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
	Request time.Duration `yaml:"request" env:"REQUEST_TIMEOUT" env-default:"30s"`
	Refresh time.Duration `yaml:"refresh" env:"REFRESH_TIMEOUT" env-default:"10s"`
}

// HTTPConfig — публичный REST-сервер шлюза.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50090" validate:"required,numeric"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// BackendConfig — REST-бэкенд дашборда. Пути auth-эндпойнтов относительны BaseURL.
type BackendConfig struct {
	BaseURL     string `yaml:"base_url"     env:"BACKEND_BASE_URL"     env-required:"true" validate:"required,url"`
	LoginPath   string `yaml:"login_path"   env:"BACKEND_LOGIN_PATH"   env-default:"auth/login"`
	LogoutPath  string `yaml:"logout_path"  env:"BACKEND_LOGOUT_PATH"  env-default:"auth/logout"`
	RefreshPath string `yaml:"refresh_path" env:"BACKEND_REFRESH_PATH" env-default:"auth/refresh"`
	UserAgent   string `yaml:"user_agent"   env:"BACKEND_USER_AGENT"   env-default:"aprilwind-admin"`
}

// SessionConfig — где хранится сессия оператора.
type SessionConfig struct {
	Backend  string `yaml:"backend"   env:"SESSION_BACKEND"   env-default:"file" validate:"oneof=memory file redis"`
	Path     string `yaml:"path"      env:"SESSION_PATH"      env-default:"./session.json"`
	RedisURL string `yaml:"redis_url" env:"SESSION_REDIS_URL" env-default:"redis://localhost:6379/0"`
	Key      string `yaml:"key"       env:"SESSION_KEY"       env-default:"aprilwind:session:default"`
}

// RoutesConfig — цели навигации фронта.
type RoutesConfig struct {
	SignIn       string `yaml:"sign_in"      env:"ROUTE_SIGN_IN"      env-default:"/sign-in"      validate:"required,startswith=/"`
	Unauthorized string `yaml:"unauthorized" env:"ROUTE_UNAUTHORIZED" env-default:"/unauthorized" validate:"required,startswith=/"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load читает конфигурацию из первого найденного источника и накладывает ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	file, err := source(path)
	if err != nil {
		return nil, err
	}

	if file == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}

		return validated(&cfg)
	}

	// ReadConfig сам накладывает ENV поверх файла.
	if err := cleanenv.ReadConfig(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", file, err)
	}

	return validated(&cfg)
}

// source выбирает файл конфигурации; пустая строка означает только ENV.
// Явно заданный путь обязан существовать, local.yaml необязателен.
func source(path string) (string, error) {
	explicit := path
	if explicit == "" {
		explicit = os.Getenv("CONFIG_PATH")
	}

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %q stat failed: %w", explicit, err)
		}

		return explicit, nil
	}

	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	return "", nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validated проверяет то, что cleanenv проверить не может: пустые значения
// из ENV, форму URL и согласованность таймаутов.
func validated(cfg *Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Бюджет запроса включает ожидание обновления токена.
	if cfg.Timeouts.Service > 0 && cfg.Timeouts.Service <= cfg.Timeouts.Refresh {
		return nil, fmt.Errorf("invalid config: timeouts.service (%s) must exceed timeouts.refresh (%s)",
			cfg.Timeouts.Service, cfg.Timeouts.Refresh)
	}

	return cfg, nil
}
