// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig         `mapstructure:"app"`
	Server       ServerConfig      `mapstructure:"server"`
	Database     DatabaseConfig    `mapstructure:"database"`
	GenAI        GenAIConfig       `mapstructure:"genai"`
	Integrations IntegrationConfig `mapstructure:"integrations"`
	Payments     PaymentsConfig    `mapstructure:"payments"`
	Workflows    WorkflowsConfig   `mapstructure:"workflows"`
	Activation   ActivationConfig  `mapstructure:"activation"`
	Logging      LoggingConfig     `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address        string `mapstructure:"address"`
	ReadTimeout    int    `mapstructure:"read_timeout"`  // seconds
	WriteTimeout   int    `mapstructure:"write_timeout"` // seconds
	MaxRequestSize int64  `mapstructure:"max_request_size"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GenAIConfig holds settings for the generative-AI backend.
type GenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
}

// IntegrationConfig holds settings for CRM, mail, and identity services.
type IntegrationConfig struct {
	CRM struct {
		BaseURL    string `mapstructure:"base_url"`
		APIKey     string `mapstructure:"api_key"`
		OAuthToken string `mapstructure:"oauth_token"`
	} `mapstructure:"crm"`

	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
	} `mapstructure:"aws"`

	CertifiedMail struct {
		Enabled     bool    `mapstructure:"enabled"`
		FromName    string  `mapstructure:"from_name"`
		FromAddress string  `mapstructure:"from_address"`
		LetterCost  float64 `mapstructure:"letter_cost"`
	} `mapstructure:"certified_mail"`

	Identity struct {
		URL          string `mapstructure:"url"`
		Realm        string `mapstructure:"realm"`
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
	} `mapstructure:"identity"`
}

// PaymentsConfig holds checkout and webhook settings.
type PaymentsConfig struct {
	SigningSecret string             `mapstructure:"signing_secret"`
	SuccessURL    string             `mapstructure:"success_url"`
	CancelURL     string             `mapstructure:"cancel_url"`
	Products      map[string]float64 `mapstructure:"products"` // product type -> price USD
}

// WorkflowsConfig names the CRM workflows the onboarding orchestrator
// enrolls contacts into.
type WorkflowsConfig struct {
	ClientWelcome     string `mapstructure:"client_welcome"`
	AffiliateNotify   string `mapstructure:"affiliate_notify"`
	BusinessWelcome   string `mapstructure:"business_welcome"`
	BusinessAffiliate string `mapstructure:"business_affiliate"`
}

// ActivationConfig holds account-activation token settings.
type ActivationConfig struct {
	TokenTTL int    `mapstructure:"token_ttl"` // hours
	BaseURL  string `mapstructure:"base_url"`  // activation page the emailed link points at
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
