package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	sellersdomain "olist/internal/sellers/domain"
)

// EnvPrefix préfixe des variables d'environnement (OLIST_DATA_DIR, OLIST_SERVER_PORT, ...)
const EnvPrefix = "OLIST"

// ConfigFileEnv variable contenant le chemin du fichier YAML optionnel
const ConfigFileEnv = "OLIST_CONFIG_FILE"

// Loader kinds
const (
	LoaderCSV      = "csv"
	LoaderPostgres = "postgres"
)

// Config configuration complète de l'application
type Config struct {
	Data      DataConfig      `yaml:"data" envconfig:"data"`
	Database  DatabaseConfig  `yaml:"database" envconfig:"database"`
	Economics EconomicsConfig `yaml:"economics" envconfig:"economics"`
	Server    ServerConfig    `yaml:"server" envconfig:"server"`
	Redis     RedisConfig     `yaml:"redis" envconfig:"redis"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"logging"`
}

// DataConfig source des tables Olist
type DataConfig struct {
	Dir     string `yaml:"dir" envconfig:"dir"`
	Loader  string `yaml:"loader" envconfig:"loader"`
	Workers int    `yaml:"workers" envconfig:"workers"`
}

// DatabaseConfig connexion PostgreSQL
type DatabaseConfig struct {
	Host     string `yaml:"host" envconfig:"host"`
	Port     int    `yaml:"port" envconfig:"port"`
	User     string `yaml:"user" envconfig:"user"`
	Password string `yaml:"password" envconfig:"password"`
	Name     string `yaml:"name" envconfig:"name"`
	SSLMode  string `yaml:"sslmode" envconfig:"sslmode"`
}

// DSN retourne la chaîne de connexion lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// EconomicsConfig paramètres économiques vendeurs
type EconomicsConfig struct {
	MonthlyFee  float64         `yaml:"monthly_fee" envconfig:"monthly_fee"`
	SalesCut    float64         `yaml:"sales_cut" envconfig:"sales_cut"`
	ReviewCosts map[int]float64 `yaml:"review_costs" envconfig:"review_costs"`
}

// Economics convertit la section en politique du domaine vendeurs
func (e EconomicsConfig) Economics() sellersdomain.Economics {
	costs := make(map[int]float64, len(e.ReviewCosts))
	for score, cost := range e.ReviewCosts {
		costs[score] = cost
	}
	return sellersdomain.Economics{
		MonthlyFee:  e.MonthlyFee,
		SalesCut:    e.SalesCut,
		ReviewCosts: costs,
	}
}

// ServerConfig serveur HTTP
type ServerConfig struct {
	Port     int           `yaml:"port" envconfig:"port"`
	CacheTTL time.Duration `yaml:"cache_ttl" envconfig:"cache_ttl"`
}

// Addr adresse d'écoute
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// RedisConfig cache partagé des exports; désactivé si Addr est vide
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"addr"`
	Password string `yaml:"password" envconfig:"password"`
	DB       int    `yaml:"db" envconfig:"db"`
	Prefix   string `yaml:"prefix" envconfig:"prefix"`
}

// Enabled indique si un serveur Redis est configuré
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// LoggingConfig logger zap
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"level"`
	Development bool   `yaml:"development" envconfig:"development"`
}

// Default retourne la configuration par défaut
func Default() Config {
	economics := sellersdomain.DefaultEconomics()
	return Config{
		Data: DataConfig{
			Dir:     "data/csv",
			Loader:  LoaderCSV,
			Workers: 4,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "olist",
			Password: "olist",
			Name:     "olist",
			SSLMode:  "disable",
		},
		Economics: EconomicsConfig{
			MonthlyFee:  economics.MonthlyFee,
			SalesCut:    economics.SalesCut,
			ReviewCosts: economics.ReviewCosts,
		},
		Server: ServerConfig{
			Port:     8080,
			CacheTTL: 10 * time.Minute,
		},
		Redis: RedisConfig{
			Prefix: "olist:exports:",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load charge .env, le fichier YAML désigné par OLIST_CONFIG_FILE puis les variables OLIST_*
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFile(os.Getenv(ConfigFileEnv))
}

// LoadFile applique le fichier YAML path (ignoré si vide) puis l'environnement aux valeurs par défaut
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate vérifie la configuration
func (c *Config) Validate() error {
	switch c.Data.Loader {
	case LoaderCSV, LoaderPostgres:
	default:
		return fmt.Errorf("unknown loader %q", c.Data.Loader)
	}
	if c.Data.Workers < 1 {
		return errors.New("data workers must be at least 1")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if err := c.Economics.Economics().Validate(); err != nil {
		return fmt.Errorf("economics: %w", err)
	}
	return nil
}
