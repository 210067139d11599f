package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

var Conf *Config

type (
	ServerConfig struct {
		Host string
		Port string
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}

	GeocoderConfig struct {
		BaseURL      string
		ContactEmail string // sent with every request per the service's usage policy
		Timeout      time.Duration
	}

	MediaConfig struct {
		Root    string
		BaseURL string
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		AppName  string
		WorkDir  string

		AdminEmail       mail.Address
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Geocoder GeocoderConfig
		Media    MediaConfig

		accessCodeHash []byte
	}
)

func (c ServerConfig) Addr() string { return c.Host + ":" + c.Port }

func (c DatabaseConfig) Address() string { return c.Host + ":" + c.Port }

// CheckAccessCode verifies the shared code gating school registration.
// This is a cosmetic gate, not an authentication system.
func (c *Config) CheckAccessCode(code string) error {
	return bcrypt.CompareHashAndPassword(c.accessCodeHash, []byte(code))
}

func init() {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "LetsCatchUp")
	conf.SetDefault("adminEmail", "admin@localhost")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("accessCode", "catchup-alumni")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("serverHost", "")
	conf.SetDefault("serverPort", "8000")

	conf.SetDefault("databaseEngine", "postgres")
	conf.SetDefault("databaseName", "letscatchup")
	conf.SetDefault("databaseUser", "letscatchup")
	conf.SetDefault("databasePassword", "")
	conf.SetDefault("databaseAdminUser", "")
	conf.SetDefault("databaseAdminPassword", "")
	conf.SetDefault("databaseHost", "localhost")
	conf.SetDefault("databasePort", "5432")
	conf.SetDefault("databaseDisableTLS", true)

	conf.SetDefault("geocoderBaseURL", "https://nominatim.openstreetmap.org")
	conf.SetDefault("geocoderContactEmail", "letscatchup@localhost")
	conf.SetDefault("geocoderTimeout", 10*time.Second)

	conf.SetDefault("mediaRoot", "media")
	conf.SetDefault("mediaBaseURL", "/media")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
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

	// the plain code is hashed once at load and never kept around
	codeHash, err := bcrypt.GenerateFromPassword([]byte(conf.GetString("accessCode")), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("config.bcrypt: %v", err)
	}

	Conf = &Config{
		Debug:    conf.GetBool("debug"),
		TestMode: conf.GetBool("testMode"),
		Env:      env,
		AppName:  conf.GetString("appName"),
		WorkDir:  wd,

		AdminEmail:       mail.Address{Address: conf.GetString("adminEmail")},
		DefaultFromEmail: mail.Address{Address: conf.GetString("defaultFromEmail")},
		SendgridApiKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),

		Server: ServerConfig{
			Host: conf.GetString("serverHost"),
			Port: conf.GetString("serverPort"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("databaseEngine"),
			Name:          conf.GetString("databaseName"),
			User:          conf.GetString("databaseUser"),
			Password:      conf.GetString("databasePassword"),
			AdminUser:     conf.GetString("databaseAdminUser"),
			AdminPassword: conf.GetString("databaseAdminPassword"),
			Host:          conf.GetString("databaseHost"),
			Port:          conf.GetString("databasePort"),
			DisableTLS:    conf.GetBool("databaseDisableTLS"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:      conf.GetString("geocoderBaseURL"),
			ContactEmail: conf.GetString("geocoderContactEmail"),
			Timeout:      conf.GetDuration("geocoderTimeout"),
		},
		Media: MediaConfig{
			Root:    conf.GetString("mediaRoot"),
			BaseURL: conf.GetString("mediaBaseURL"),
		},

		accessCodeHash: codeHash,
	}
}
