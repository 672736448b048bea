package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	ClientID     string
	ClientIDFile string
	Output       string
	Verbose      bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("PORTAL_SERVER", "http://localhost:8080"),
		ClientID:     os.Getenv("PORTAL_CLIENT_ID"),
		ClientIDFile: getEnvOrDefault("PORTAL_CLIENT_ID_FILE", defaultClientIDFile()),
		Output:       "text",
		Verbose:      false,
	}
}

// LoadClientID reads the client ID from file if not already set, generating
// and saving a new one when the file does not exist
func (c *Config) LoadClientID() error {
	if c.ClientID != "" {
		return validateClientID(c.ClientID)
	}

	data, err := os.ReadFile(c.ClientIDFile)
	switch {
	case err == nil:
		c.ClientID = strings.TrimSpace(string(data))
		return validateClientID(c.ClientID)
	case os.IsNotExist(err):
		return c.SaveClientID(uuid.NewString())
	default:
		return err
	}
}

// SaveClientID saves the client ID to the client ID file
func (c *Config) SaveClientID(id string) error {
	c.ClientID = id

	dir := filepath.Dir(c.ClientIDFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.ClientIDFile, []byte(id+"\n"), 0600)
}

func validateClientID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("client ID %q is not a UUID", id)
	}
	return nil
}

func defaultClientIDFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gameportal/client_id"
	}
	return filepath.Join(home, ".gameportal", "client_id")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
