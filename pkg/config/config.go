package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Security SecurityConfig `yaml:"security"`
	Logging  LoggingConfig  `yaml:"logging"`
	Workflow WorkflowConfig `yaml:"workflow"`
	Seed     SeedConfig     `yaml:"seed"`
}

type ServerConfig struct {
	APIPort int    `yaml:"api_port"`
	Mode    string `yaml:"mode"` // debug / release / test
	// CORSOrigins origens liberadas para o front-end; vazio libera todas
	CORSOrigins []string `yaml:"cors_allowed_origins"`
}

// SetDefaults aplica os valores padrão
func (c *ServerConfig) SetDefaults() {
	if c.APIPort == 0 {
		c.APIPort = 8080
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
}

type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // sqlite, mysql, postgres (padrão: sqlite)
	Path            string `yaml:"path"`   // usado apenas pelo sqlite
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	LogLevel        string `yaml:"log_level"` // silent / error / warn / info
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

type RedisConfig struct {
	// Enabled habilita o lock distribuído na criação de processos.
	// Desabilitado, a unicidade de numero_sei depende só do índice único.
	Enabled bool `yaml:"enabled"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	// Timeouts em segundos
	ConnectTimeout int `yaml:"connect_timeout"`
	ReadTimeout    int `yaml:"read_timeout"`
	WriteTimeout   int `yaml:"write_timeout"`

	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`

	// LockTTL expiração do lock distribuído (segundos)
	LockTTL int `yaml:"lock_ttl"`
}

// Validate valida a configuração do Redis
func (c *RedisConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Host == "" {
		return fmt.Errorf("redis host is required when enabled=true")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid redis port: %d", c.Port)
	}

	return nil
}

// SetDefaults aplica os valores padrão
func (c *RedisConfig) SetDefaults() {
	if c.Port == 0 {
		c.Port = 6379
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 5
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 3
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 3
	}
	if c.PoolSize == 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 2
	}
	if c.LockTTL == 0 {
		c.LockTTL = 10
	}
}

type SecurityConfig struct {
	// JWTSecret chave de assinatura; em produção sobrescrever via JWT_SECRET
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTLHours validade do token (horas)
	TokenTTLHours int `yaml:"token_ttl_hours"`
}

// SetDefaults aplica os valores padrão de segurança
func (c *SecurityConfig) SetDefaults() {
	if c.JWTSecret == "" {
		// somente desenvolvimento
		c.JWTSecret = "cecomp-dev-secret-change-me-0f3a9c7e51b24d8a9e6b"
	}
	if c.TokenTTLHours == 0 {
		c.TokenTTLHours = 12
	}
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug / info / warn / error
	Output string `yaml:"output"` // console / file / both
	File   string `yaml:"file"`   // caminho do arquivo de log
}

// WorkflowConfig configura os modelos de fluxo (modalidades)
type WorkflowConfig struct {
	// FallbackPhase fase inicial quando a modalidade não tem fases
	FallbackPhase string `yaml:"fallback_phase"`
	// StandardPhases fases oferecidas no cadastro de modalidades
	StandardPhases []string `yaml:"standard_phases"`
}

// DefaultStandardPhases fases usuais de uma contratação
var DefaultStandardPhases = []string{
	"Recepção",
	"Análise da Demanda",
	"Pesquisa de Preços",
	"Termo de Referência",
	"Parecer Jurídico",
	"Publicação do Edital",
	"Sessão Pública",
	"Adjudicação",
	"Homologação",
	"Contrato",
}

// SetDefaults aplica os valores padrão
func (c *WorkflowConfig) SetDefaults() {
	if strings.TrimSpace(c.FallbackPhase) == "" {
		c.FallbackPhase = "Início"
	}
	if len(c.StandardPhases) == 0 {
		c.StandardPhases = append([]string(nil), DefaultStandardPhases...)
	}
}

// SeedConfig dados iniciais criados na subida do servidor
type SeedConfig struct {
	AdminLogin    string   `yaml:"admin_login"`
	AdminName     string   `yaml:"admin_name"`
	AdminPassword string   `yaml:"admin_password"`
	AdminSector   string   `yaml:"admin_sector"`
	Sectors       []string `yaml:"sectors"`
}

// SetDefaults aplica os valores padrão
func (c *SeedConfig) SetDefaults() {
	if c.AdminLogin == "" {
		c.AdminLogin = "admin"
	}
	if c.AdminName == "" {
		c.AdminName = "Administrador"
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin123"
	}
	if c.AdminSector == "" {
		c.AdminSector = "CECOMP"
	}
}

var GlobalConfig *Config

// Load lê o arquivo de configuração; se ele não existir usa só padrões e variáveis de ambiente
func Load(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// segue só com padrões
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(&config)

	config.Server.SetDefaults()
	config.Database.SetDefaults()
	config.Redis.SetDefaults()
	config.Security.SetDefaults()
	config.Workflow.SetDefaults()
	config.Seed.SetDefaults()

	if err := config.Database.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	if err := config.Redis.Validate(); err != nil {
		return nil, fmt.Errorf("invalid redis config: %w", err)
	}

	GlobalConfig = &config
	return &config, nil
}

// applyEnv sobrescreve a configuração por variáveis de ambiente (deploy em Docker)
func applyEnv(config *Config) {
	if port := os.Getenv("API_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.APIPort = p
		}
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		config.Server.CORSOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				config.Server.CORSOrigins = append(config.Server.CORSOrigins, origin)
			}
		}
	}

	if v := os.Getenv("DB_DRIVER"); v != "" {
		config.Database.Driver = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		config.Database.Path = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		config.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		config.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		config.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		config.Database.DBName = v
	}

	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			config.Redis.Enabled = enabled
		}
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		config.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Redis.Port = port
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		config.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			config.Redis.DB = db
		}
	}

	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Security.JWTSecret = v
	}
}

func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Password, c.DBName)
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.DBName)
	default:
		// sqlite: sem foreign_keys(1) o ON DELETE CASCADE é ignorado
		return c.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
}

// SetDefaults aplica os valores padrão
func (c *DatabaseConfig) SetDefaults() {
	if c.Driver == "" {
		c.Driver = "sqlite"
	}
	if c.Driver == "sqlite" && c.Path == "" {
		c.Path = "central_compras.db"
	}
	if c.Port == 0 {
		switch c.Driver {
		case "postgres", "postgresql":
			c.Port = 5432
		case "mysql":
			c.Port = 3306
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 10
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 50
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 3600 // 1 hour
	}
}

// Validate valida a configuração do banco
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case "sqlite":
		if c.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case "mysql", "postgres", "postgresql":
		if c.Host == "" || c.DBName == "" {
			return fmt.Errorf("%s requires host and dbname", c.Driver)
		}
	default:
		return fmt.Errorf("unsupported database driver: %s (supported: sqlite, mysql, postgres)", c.Driver)
	}
	return nil
}
