package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una sola vez al arrancar y se pasa por referencia; nada la lee desde variables globales.
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	Security SecurityConfig
	HTTP     HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración del emisor de tokens.
type JWTConfig struct {
	Secret     string
	Algorithm  string
	Expiration int // minutos
	Issuer     string
}

// TTL devuelve la vigencia de los tokens emitidos.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.Expiration) * time.Minute
}

// SecurityConfig parámetros del hash de contraseñas.
type SecurityConfig struct {
	BcryptCost int
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

var (
	ErrMissingSecret     = errors.New("config: JWT_SECRET es obligatorio")
	ErrInvalidAlgorithm  = errors.New("config: JWT_ALGORITHM debe ser HS256, HS384 o HS512")
	ErrInvalidExpiration = errors.New("config: JWT_EXPIRATION_MINUTES debe ser mayor que cero")
)

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "supermercado-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "supermercado"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Algorithm:  strings.ToUpper(getString(v, "JWT_ALGORITHM", "HS256")),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 30),
			Issuer:     getString(v, "JWT_ISSUER", "supermercado-api"),
		},
		Security: SecurityConfig{
			BcryptCost: getInt(v, "BCRYPT_COST", 10),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}
	if err := cfg.JWT.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c JWTConfig) validate() error {
	if c.Secret == "" {
		return ErrMissingSecret
	}
	switch c.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return ErrInvalidAlgorithm
	}
	if c.Expiration <= 0 {
		return ErrInvalidExpiration
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
