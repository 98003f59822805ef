package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string // DEV (local; default), TEST, QA, PROD
		AppName          string
		Build            string
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Billing  BillingConfig
	}

	ServerConfig struct {
		Host            string
		Addr            string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine        string // DBEnginePostgres | DBEngineInmem
		Name          string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	BillingConfig struct {
		InvoicePrefix string
		TaxBasis      string // "pre_discount" | "post_discount"
		Currency      string
	}
)

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Bizdesk")
	conf.SetDefault("build", "dev")
	conf.SetDefault("frontendBaseURL", "http://localhost:5173")
	conf.SetDefault("defaultFromEmail", "billing@localhost")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("dbEngine", DBEngineInmem)
	conf.SetDefault("dbName", "backoffice")
	conf.SetDefault("dbHost", "localhost")
	conf.SetDefault("dbPort", "5432")
	conf.SetDefault("dbUser", "")
	conf.SetDefault("dbPassword", "")
	conf.SetDefault("dbAdminUser", "")
	conf.SetDefault("dbAdminPassword", "")
	conf.SetDefault("dbDisableTLS", true)
	conf.SetDefault("invoicePrefix", "INV")
	conf.SetDefault("taxBasis", "pre_discount")
	conf.SetDefault("currency", "INR")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:           conf.GetBool("debug"),
		TestMode:        env == "TEST",
		Env:             env,
		AppName:         conf.GetString("appName"),
		Build:           conf.GetString("build"),
		WorkDir:         wd,
		FrontendBaseURL: conf.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{
			Name:    conf.GetString("appName"),
			Address: conf.GetString("defaultFromEmail"),
		},
		SendgridAPIKey: conf.GetString("sendgridApiKey"),
		RollbarToken:   conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            conf.GetString("serverHost"),
			Addr:            conf.GetString("serverAddr"),
			ShutdownTimeout: conf.GetDuration("serverShutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("dbEngine"),
			Name:          conf.GetString("dbName"),
			Host:          conf.GetString("dbHost"),
			Port:          conf.GetString("dbPort"),
			User:          conf.GetString("dbUser"),
			Password:      conf.GetString("dbPassword"),
			AdminUser:     conf.GetString("dbAdminUser"),
			AdminPassword: conf.GetString("dbAdminPassword"),
			DisableTLS:    conf.GetBool("dbDisableTLS"),
		},
		Billing: BillingConfig{
			InvoicePrefix: conf.GetString("invoicePrefix"),
			TaxBasis:      conf.GetString("taxBasis"),
			Currency:      conf.GetString("currency"),
		},
	}
}
