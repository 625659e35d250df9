package history

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore keeps history in an embedded SQLite database via gorm.
type SQLiteStore struct {
	db    *gorm.DB
	limit int
}

// NewSQLiteStore opens (or creates) the database file and migrates the
// history table.
func NewSQLiteStore(path string, limit int) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate history table: %w", err)
	}
	return &SQLiteStore{db: db, limit: limit}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("insert history record: %w", err)
		}

		var count int64
		if err := tx.Model(&Record{}).Where("session_id = ?", rec.SessionID).Count(&count).Error; err != nil {
			return fmt.Errorf("count history records: %w", err)
		}
		if count <= int64(s.limit) {
			return nil
		}

		// Evict the oldest rows past the cap.
		var stale []Record
		if err := tx.Where("session_id = ?", rec.SessionID).
			Order("created_at ASC").
			Limit(int(count) - s.limit).
			Find(&stale).Error; err != nil {
			return fmt.Errorf("find stale history records: %w", err)
		}
		ids := make([]string, len(stale))
		for i, old := range stale {
			ids[i] = old.ID
		}
		if err := tx.Where("id IN ?", ids).Delete(&Record{}).Error; err != nil {
			return fmt.Errorf("evict history records: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) List(ctx context.Context, sessionID string) ([]Record, error) {
	var records []Record
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(s.limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list history records: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
