package backend

import (
	"errors"
	"fmt"

	"expensetracker/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:            backendType,
		DataDirectory:   appConfig.DataDir,
		SQLiteDBPath:    appConfig.SQLiteDBPath,
		MongoURI:        appConfig.MongoURI,
		MongoDB:         appConfig.MongoDB,
		MongoCollection: appConfig.MongoCollection,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case FileBackend:
		if c.DataDirectory == "" {
			return errors.New("data directory is required for file backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return errors.New("SQLite database path is required for sqlite backend")
		}
	case MongoBackend:
		if c.MongoURI == "" {
			return errors.New("MongoDB URI is required for mongo backend")
		}
		if c.MongoDB == "" || c.MongoCollection == "" {
			return errors.New("MongoDB database and collection are required for mongo backend")
		}
	case MemoryBackend:
		// Nothing to configure; data lives as long as the process.
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{MemoryBackend, FileBackend, SQLiteBackend, MongoBackend}
}
