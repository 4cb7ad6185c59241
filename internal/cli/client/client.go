// Package client builds the shared API client and session state for CLI
// commands from viper configuration.
package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"forumhub/internal/api"
	"forumhub/internal/session"
)

// BaseURL returns the HTTP API base URL from configuration.
func BaseURL() string {
	if base := viper.GetString("server.base_url"); base != "" {
		return base
	}
	host := viper.GetString("server.host")
	if host == "" {
		host = "localhost"
	}
	port := viper.GetInt("server.http_port")
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("http://%s:%d/api", host, port)
}

// New returns an API client with any persisted session token applied.
func New() *api.Client {
	c := api.NewClient(BaseURL())
	store := Session()
	if token := store.Token(); token != "" {
		c.SetToken(token)
	}
	return c
}

// Session returns the session store backed by viper, with any persisted
// token already loaded.
func Session() *session.Store {
	store := session.NewStore(viperTokenStore{})
	store.Load()
	return store
}

// viperTokenStore keeps the token under user.token in the CLI config file.
type viperTokenStore struct{}

func (viperTokenStore) LoadToken() (string, error) {
	return viper.GetString("user.token"), nil
}

func (viperTokenStore) SaveToken(token string) error {
	viper.Set("user.token", token)
	return writeConfig()
}

func (viperTokenStore) ClearToken() error {
	viper.Set("user.token", "")
	viper.Set("user.username", "")
	return writeConfig()
}

func writeConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	configDir := filepath.Join(home, ".forumhub")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(configDir, "config.yaml"))
}
