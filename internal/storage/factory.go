// Package storage selects and constructs the persistence backend.
package storage

import (
	"fmt"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/storage/surrealdb"
)

// Backend type constants.
const (
	BackendSurrealDB = "surrealdb"
)

// NewManager creates a storage manager for the configured backend.
// SurrealDB is the only backend today and the default.
func NewManager(config *common.Config, logger *common.Logger) (interfaces.StorageManager, error) {
	backend := config.Storage.Backend
	if backend == "" {
		backend = BackendSurrealDB
	}

	switch backend {
	case BackendSurrealDB:
		return surrealdb.NewManager(logger, config)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: surrealdb)", backend)
	}
}
