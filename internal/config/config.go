// Package config resolves Orbit's connection settings from the environment
// and an optional global config file. Secret values are never printed.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variables consulted by Load.
const (
	ConnectionStringEnv = "ORBIT_COSMOS_CONNECTION_STRING"
	EndpointEnv         = "ORBIT_COSMOS_ENDPOINT"
	KeyEnv              = "ORBIT_COSMOS_KEY"
	DatabaseEnv         = "ORBIT_DATABASE_NAME"
)

var (
	// ErrAmbiguousAuth is returned when both a connection string and an
	// endpoint/key pair are configured.
	ErrAmbiguousAuth = errors.New("ambiguous auth configuration: provide either a connection string or an endpoint/key pair")

	// ErrMissingAuth is returned when no usable credentials are configured.
	ErrMissingAuth = errors.New("connection string not provided")

	// ErrMissingDatabase is returned when the database name is not configured.
	ErrMissingDatabase = errors.New("database name not configured")

	// ErrInvalidConnectionString is returned for malformed connection strings.
	ErrInvalidConnectionString = errors.New("invalid connection string")
)

// Settings holds resolved connection settings for one CLI invocation.
type Settings struct {
	Endpoint string
	Key      string
	Database string
}

// Load resolves settings from the environment, falling back to the global
// config file for any value the environment does not set.
func Load() (*Settings, error) {
	global, err := LoadGlobal()
	if err != nil {
		return nil, err
	}

	connStr := firstNonEmpty(os.Getenv(ConnectionStringEnv), global.ConnectionString)
	endpoint := firstNonEmpty(os.Getenv(EndpointEnv), global.Endpoint)
	key := firstNonEmpty(os.Getenv(KeyEnv), global.Key)
	database := firstNonEmpty(os.Getenv(DatabaseEnv), global.Database)

	if connStr != "" && (endpoint != "" || key != "") {
		return nil, ErrAmbiguousAuth
	}

	if connStr != "" {
		endpoint, key, err = ParseConnectionString(connStr)
		if err != nil {
			return nil, err
		}
	}

	if endpoint == "" || key == "" {
		return nil, ErrMissingAuth
	}
	if database == "" {
		return nil, ErrMissingDatabase
	}

	return &Settings{Endpoint: endpoint, Key: key, Database: database}, nil
}

// ParseConnectionString splits a Cosmos DB connection string of the form
// "AccountEndpoint=https://...;AccountKey=...;" into its endpoint and key.
// Error messages never include the key material.
func ParseConnectionString(s string) (endpoint, key string, err error) {
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return "", "", fmt.Errorf("%w: expected 'Name=value' segments", ErrInvalidConnectionString)
		}
		switch name {
		case "AccountEndpoint":
			endpoint = value
		case "AccountKey":
			// The key is base64 and may itself contain '='; Cut keeps the rest.
			key = value
		}
	}

	if endpoint == "" {
		return "", "", fmt.Errorf("%w: missing AccountEndpoint", ErrInvalidConnectionString)
	}
	if key == "" {
		return "", "", fmt.Errorf("%w: missing AccountKey", ErrInvalidConnectionString)
	}
	return endpoint, key, nil
}

// emulatorHostMarkers identify endpoints served by the local emulator.
var emulatorHostMarkers = []string{"localhost", "127.0.0.1"}

// IsEmulator reports whether the endpoint points at the local Cosmos emulator.
func IsEmulator(endpoint string) bool {
	lowered := strings.ToLower(endpoint)
	for _, marker := range emulatorHostMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
