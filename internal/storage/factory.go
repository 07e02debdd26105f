// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/seaicedyn/driftdeform/internal/config"
	"github.com/seaicedyn/driftdeform/internal/storage/memory"
)

// NewBackend creates a results backend based on configuration
func NewBackend(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Type {
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
