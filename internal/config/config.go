package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Env             string
	Port            string
	Store           string
	MongoURI        string
	DBName          string
	FirebaseKeyData string
	ImageKit        ImageKit
	StripeSecretKey string
	RollbarToken    string
	CORSOrigins     []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type ImageKit struct {
	PublicKey   string
	PrivateKey  string
	URLEndpoint string
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("env", "development")
	v.SetDefault("port", "5000")
	v.SetDefault("store", StoreMongo)
	v.SetDefault("db_name", "mentora")
	v.SetDefault("imagekit_url_endpoint", "https://ik.imagekit.io/jakariya")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config out of an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		Env:             v.GetString("env"),
		Port:            v.GetString("port"),
		Store:           strings.ToLower(v.GetString("store")),
		MongoURI:        v.GetString("mongodb_uri"),
		DBName:          v.GetString("db_name"),
		FirebaseKeyData: v.GetString("key_data"),
		ImageKit: ImageKit{
			PublicKey:   v.GetString("imagekit_public_key"),
			PrivateKey:  v.GetString("imagekit_private_key"),
			URLEndpoint: v.GetString("imagekit_url_endpoint"),
		},
		StripeSecretKey: v.GetString("stripe_secret_key"),
		RollbarToken:    v.GetString("rollbar_token"),
		CORSOrigins:     splitList(v.GetString("cors_origins")),
		RequestTimeout:  v.GetDuration("request_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}
}

// Validate reports the first required setting that is missing.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI environment variable not set")
		}
	case StoreMemory:
	default:
		return errors.Errorf("unknown STORE %q (want %q or %q)", c.Store, StoreMongo, StoreMemory)
	}
	if c.FirebaseKeyData == "" {
		return errors.New("KEY_DATA environment variable not set")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
