package store

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/madfam-org/tezca-gateway/internal/models"
)

// Store wraps the audit database. The gateway holds no user or token tables;
// identity lives at the provider and sessions live in signed cookies, so the
// only persistent state is the audit trail.
type Store struct {
	db *gorm.DB
}

// New opens the database and runs migrations.
func New(driver, dsn string) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// CreateAuditLogBatch writes a batch of audit log entries in one insert.
// The audit service only ever writes batches, so there is no single-entry
// variant.
func (s *Store) CreateAuditLogBatch(entries []*models.AuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.Create(entries).Error
}

// CountLoginsSince counts successful logins after the given time.
func (s *Store) CountLoginsSince(since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.AuditLog{}).
		Where("event_type = ? AND success = ? AND event_time > ?",
			models.EventSSOCallbackSuccess, true, since).
		Count(&count).Error
	return count, err
}

// DeleteAuditLogsBefore removes entries older than the cutoff and returns
// the number of rows deleted.
func (s *Store) DeleteAuditLogsBefore(cutoff time.Time) (int64, error) {
	result := s.db.Where("event_time < ?", cutoff).Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}

// Health checks database connectivity.
func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// DB exposes the underlying gorm handle for tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}
