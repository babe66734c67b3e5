package liststore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"asset-lists/core/assetlist"

	"gorm.io/gorm"
)

// ListRecord is a stored list header.
type ListRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Locator   string `gorm:"size:512;uniqueIndex;not null"`
	Count     int
	UpdatedAt time.Time
}

// TableName overrides the default table name.
func (ListRecord) TableName() string { return "asset_lists" }

// EntryRecord is one asset file info row of a stored list.
type EntryRecord struct {
	ID               uint   `gorm:"primaryKey"`
	ListID           uint   `gorm:"index:idx_list_position,priority:1;not null"`
	Position         int    `gorm:"index:idx_list_position,priority:2"`
	AssetID          string `gorm:"size:64;not null"`
	RelativePath     string `gorm:"size:1024"`
	ModificationTime uint64
	Hash             string `gorm:"size:40"`
	Metadata         string `gorm:"type:text"`
}

// TableName overrides the default table name.
func (EntryRecord) TableName() string { return "asset_list_entries" }

const insertBatchSize = 500

// DBStore keeps lists in relational tables through gorm.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore wraps db. Call Migrate before first use on a fresh database.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Migrate creates or updates the list tables.
func (s *DBStore) Migrate() error {
	if err := s.db.AutoMigrate(&ListRecord{}, &EntryRecord{}); err != nil {
		return fmt.Errorf("failed to migrate list tables: %w", err)
	}
	return nil
}

// Load reads a list and its entries in stored order.
func (s *DBStore) Load(ctx context.Context, locator string) (*assetlist.List, error) {
	db := s.db.WithContext(ctx)

	var rec ListRecord
	if err := db.Where("locator = ?", locator).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", locator, assetlist.ErrListNotFound)
		}
		return nil, fmt.Errorf("failed to query list %s: %w", locator, err)
	}

	var rows []EntryRecord
	if err := db.Where("list_id = ?", rec.ID).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query entries of %s: %w", locator, err)
	}

	list := assetlist.NewList()
	for _, row := range rows {
		info, err := row.toInfo()
		if err != nil {
			return nil, fmt.Errorf("invalid entry %d of %s: %w", row.Position, locator, err)
		}
		list.Add(info)
	}
	return list, nil
}

// Save replaces the stored entries of locator in a single transaction.
func (s *DBStore) Save(ctx context.Context, locator string, list *assetlist.List) error {
	rows, err := entryRows(list)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", locator, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := ListRecord{Locator: locator}
		if err := tx.Where(ListRecord{Locator: locator}).FirstOrCreate(&rec).Error; err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", rec.ID).Delete(&EntryRecord{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].ListID = rec.ID
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
				return err
			}
		}
		return tx.Model(&rec).Updates(map[string]any{
			"count":      len(rows),
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save list %s: %w", locator, err)
	}
	return nil
}

// Locators returns every stored list locator.
func (s *DBStore) Locators(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.db.WithContext(ctx).Model(&ListRecord{}).Order("locator").Pluck("locator", &out).Error; err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	return out, nil
}

func entryRows(list *assetlist.List) ([]EntryRecord, error) {
	rows := make([]EntryRecord, 0, list.Len())
	for i, info := range list.Entries() {
		meta := ""
		if len(info.Metadata) > 0 {
			b, err := json.Marshal(info.Metadata)
			if err != nil {
				return nil, err
			}
			meta = string(b)
		}
		rows = append(rows, EntryRecord{
			Position:         i,
			AssetID:          info.AssetID.String(),
			RelativePath:     info.RelativePath,
			ModificationTime: info.ModificationTime,
			Hash:             info.Hash.String(),
			Metadata:         meta,
		})
	}
	return rows, nil
}

func (r EntryRecord) toInfo() (assetlist.AssetFileInfo, error) {
	id, err := assetlist.ParseAssetID(r.AssetID)
	if err != nil {
		return assetlist.AssetFileInfo{}, err
	}
	hash, err := assetlist.ParseHash(r.Hash)
	if err != nil {
		return assetlist.AssetFileInfo{}, err
	}
	info := assetlist.AssetFileInfo{
		AssetID:          id,
		RelativePath:     r.RelativePath,
		ModificationTime: r.ModificationTime,
		Hash:             hash,
	}
	if r.Metadata != "" {
		if err := json.Unmarshal([]byte(r.Metadata), &info.Metadata); err != nil {
			return assetlist.AssetFileInfo{}, err
		}
	}
	return info, nil
}
