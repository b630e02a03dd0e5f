package bootstrap

import (
	"fmt"
	"log"

	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/store"
)

// initializeDatabase opens the audit database. Returns nil when audit
// logging is disabled, the gateway has no other persistent state.
func initializeDatabase(cfg *config.Config) (*store.Store, error) {
	if !cfg.EnableAuditLogging {
		log.Println("Audit logging disabled, skipping database initialization")
		return nil, nil //nolint:nilnil // database not needed in this configuration
	}

	db, err := store.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Printf("Audit database initialized (driver: %s)", cfg.DatabaseDriver)
	return db, nil
}
