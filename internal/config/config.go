package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime configuration, populated from PREORDER_-prefixed
// environment variables.
type Config struct {
	Port          string `envconfig:"PORT" default:"8081"`
	JWTSecret     string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"1234"`
	UPIPayeeID    string `envconfig:"UPI_PAYEE_ID" default:"disha041203@okicici"`
	UPIPayeeName  string `envconfig:"UPI_PAYEE_NAME" default:"RFC Dinner"`

	// AdminPasswordHash is derived from AdminPassword at load time;
	// the plaintext is cleared and never compared directly.
	AdminPasswordHash []byte `ignored:"true"`
}

// Load parses configuration from the environment and hashes the admin
// password for later comparison.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("PREORDER", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	cfg.AdminPasswordHash = hash
	cfg.AdminPassword = ""

	return &cfg, nil
}
