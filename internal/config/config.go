package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/lead-crm-api/pkg/utils"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	placeholderSecretKey = "your_secret_key"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Cors        Cors        `mapstructure:",squash"`
	Leads       Leads       `mapstructure:",squash"`
	Export      Export      `mapstructure:",squash"`
	Cache       Cache       `mapstructure:",squash"`
	StatsWarmup StatsWarmup `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	// IPs ou faixas CIDR dos proxies reversos autorizados a informar o IP do cliente
	TrustedProxies []string             `mapstructure:"trusted_proxies"`
	Proxies        utils.TrustedProxies `mapstructure:"-"`
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type App struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
}

func (a App) IsDevelopment() bool {
	env := strings.ToLower(strings.TrimSpace(a.Env))
	return env == "" || env == "development" || env == "dev"
}

type Auth struct {
	// Senha compartilhada em texto puro ou hash bcrypt
	Password            string        `mapstructure:"auth_password"`
	TokenTTL            time.Duration `mapstructure:"token_ttl"`
	LoginRateLimitRPS   float64       `mapstructure:"login_rate_limit_rps"`
	LoginRateLimitBurst int           `mapstructure:"login_rate_limit_burst"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Leads struct {
	DefaultLGPDConsent bool `mapstructure:"leads_default_lgpd_consent"`
}

type Export struct {
	Timezone string         `mapstructure:"export_timezone"`
	Location *time.Location `mapstructure:"-"`
}

type Cache struct {
	RedisURL      string        `mapstructure:"redis_url"`
	StatsCacheTTL time.Duration `mapstructure:"stats_cache_ttl"`
}

type StatsWarmup struct {
	CronSchedule string `mapstructure:"stats_warmup_cron"`
	Enabled      bool   `mapstructure:"stats_warmup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("TRUSTED_PROXIES", "") // vazio ignora X-Forwarded-For e X-Real-IP
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("DATABASE_URL", "localhost:5432/leads?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("SECRET_KEY", placeholderSecretKey) // aceito só em desenvolvimento
	viper.SetDefault("AUTH_PASSWORD", "")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("LOGIN_RATE_LIMIT_RPS", 0.2) // uma tentativa a cada 5 segundos
	viper.SetDefault("LOGIN_RATE_LIMIT_BURST", 5)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("LEADS_DEFAULT_LGPD_CONSENT", false)
	viper.SetDefault("EXPORT_TIMEZONE", "America/Sao_Paulo")

	viper.SetDefault("REDIS_URL", "") // vazio desabilita o cache de estatísticas
	viper.SetDefault("STATS_CACHE_TTL", "5m")

	viper.SetDefault("STATS_WARMUP_CRON", "*/10 * * * *") // A cada 10 minutos
	viper.SetDefault("STATS_WARMUP_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize monta os valores derivados e valida o que não pode ser corrigido com defaults
func (c *Config) finalize() error {
	c.SecretKey = strings.TrimSpace(c.SecretKey)
	if c.SecretKey == "" || c.SecretKey == placeholderSecretKey {
		if !c.App.IsDevelopment() {
			return errors.Errorf("SECRET_KEY precisa ser definida fora de desenvolvimento (APP_ENV=%s)", c.App.Env)
		}
		logrus.Warn("SECRET_KEY vazia ou com o valor padrão, aceitável apenas em desenvolvimento")
	}

	c.Server.TrustedProxies = trimEmpty(c.Server.TrustedProxies)
	proxies, err := utils.ParseTrustedProxies(c.Server.TrustedProxies)
	if err != nil {
		return errors.Wrap(err, "TRUSTED_PROXIES inválido")
	}
	c.Server.Proxies = proxies

	dsn, err := BuildDSN(c.Database)
	if err != nil {
		return err
	}
	c.Database.DSN = dsn

	loc, err := time.LoadLocation(c.Export.Timezone)
	if err != nil {
		return errors.Wrapf(err, "fuso horário de exportação inválido %q", c.Export.Timezone)
	}
	c.Export.Location = loc

	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}

	c.Cors.AllowedOrigins = trimEmpty(c.Cors.AllowedOrigins)

	if c.Auth.Password == "" {
		logrus.Warn("AUTH_PASSWORD não configurada, todas as tentativas de login serão recusadas")
	}

	return nil
}

func trimEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}

// BuildDSN monta a string de conexão de acordo com o driver.
// Para o SQLite DATABASE_URL é o caminho do arquivo.
func BuildDSN(db Database) (string, error) {
	switch db.Driver {
	case DriverPostgres:
		return fmt.Sprintf(
			"%s://%s:%s@%s",
			db.Driver,
			db.User,
			db.Password,
			db.URL,
		), nil
	case DriverSQLite:
		return db.URL, nil
	default:
		return "", fmt.Errorf("driver de banco de dados não suportado: %q", db.Driver)
	}
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
