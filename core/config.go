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
)

type (
	ServerConfig struct {
		Host               string
		Addr               string
		JWTExpirationDelta time.Duration
	}

	AdminConfig struct {
		Email        string
		PasswordHash string // bcrypt
	}

	DatabaseConfig struct {
		DSN string
	}

	RedisConfig struct {
		Addr string
	}

	SNSConfig struct {
		Region   string
		SenderID string
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (local; default), TEST, QA, PROD
		Build    string

		AppName         string
		SchoolName      string
		SecretKey       string
		WorkDir         string
		FrontendBaseURL string

		DefaultFromEmail mail.Address
		AdmissionsEmail  mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Admin    AdminConfig
		Database DatabaseConfig
		Redis    RedisConfig
		SNS      SNSConfig
	}
)

var Conf *Config

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "KSJ Admissions")
	v.SetDefault("schoolName", "King Solomon Junior Primary School")
	v.SetDefault("secretKey", "w3lc0me-t0-k1ng-s0l0m0n-jun10r!-ch4ng3-m3-1n-pr0d")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@kingsolomonjunior.ac.ke")
	v.SetDefault("admissionsEmail", "admissions@kingsolomonjunior.ac.ke")
	v.SetDefault("jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("snsSenderID", "KSJUNIOR")

	env := os.Getenv("ENV")
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         testMode,
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SchoolName:       v.GetString("schoolName"),
		SecretKey:        v.GetString("secretKey"),
		WorkDir:          Getwd(),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{Name: v.GetString("schoolName"), Address: v.GetString("defaultFromEmail")},
		AdmissionsEmail:  mail.Address{Name: "Admissions Office", Address: v.GetString("admissionsEmail")},
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Addr:               v.GetString("serverAddr"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Admin: AdminConfig{
			Email:        v.GetString("adminEmail"),
			PasswordHash: v.GetString("adminPasswordHash"),
		},
		Database: DatabaseConfig{DSN: v.GetString("databaseDSN")},
		Redis:    RedisConfig{Addr: v.GetString("redisAddr")},
		SNS: SNSConfig{
			Region:   v.GetString("snsRegion"),
			SenderID: v.GetString("snsSenderID"),
		},
	}
}
