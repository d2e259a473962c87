package storage

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"wardrobe/internal/logger"
	"wardrobe/internal/metrics"
)

// documentEntry is one top-level key of one document.
type documentEntry struct {
	Document string `gorm:"primaryKey;type:varchar(64)"`
	EntryKey string `gorm:"primaryKey;type:varchar(255)"`
	Value    string `gorm:"type:text;not null"`
}

func (documentEntry) TableName() string { return "document_entries" }

// saveBatchSize keeps each INSERT under SQLite's 999 bind-parameter limit (3 per row).
const saveBatchSize = 300

// GormBackend stores documents as rows of document_entries. Save deletes and
// reinserts a document's rows in one transaction.
type GormBackend struct {
	db    *gorm.DB
	locks documentLocks
}

// OpenGormBackend connects with the named driver ("sqlite" or "postgres") and migrates.
func OpenGormBackend(driver, dsn string) (*GormBackend, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported gorm driver: %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return NewGormBackend(db)
}

// NewGormBackend wraps an open connection and migrates the entries table.
func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&documentEntry{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate document_entries: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (b *GormBackend) Load(name string) (Document, error) {
	mu := b.locks.get(name)
	mu.Lock()
	defer mu.Unlock()

	var rows []documentEntry
	if err := b.db.Where("document = ?", name).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load document %s: %w", name, err)
	}

	doc := make(Document, len(rows))
	for _, row := range rows {
		if !json.Valid([]byte(row.Value)) {
			metrics.StoreCorruptDocuments.WithLabelValues(name).Inc()
			logger.Named("storage").Warn("document row holds invalid JSON, treating document as empty",
				zap.String("document", name), zap.String("key", row.EntryKey))
			return Document{}, nil
		}
		doc[row.EntryKey] = json.RawMessage(row.Value)
	}
	return doc, nil
}

func (b *GormBackend) Save(name string, doc Document) error {
	mu := b.locks.get(name)
	mu.Lock()
	defer mu.Unlock()

	rows := make([]documentEntry, 0, len(doc))
	for k, v := range doc {
		rows = append(rows, documentEntry{Document: name, EntryKey: k, Value: string(v)})
	}

	err := b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document = ?", name).Delete(&documentEntry{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, saveBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("save document %s: %w", name, err)
	}
	return nil
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
