package repository

import (
	"context"
	"fmt"

	"vda5050-bridge/internal/models"
	"vda5050-bridge/internal/utils"

	"gorm.io/gorm"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ArchiveFilter 아카이브 조회 조건
type ArchiveFilter struct {
	SerialNumber string
	Kind         string
	Limit        int
}

// ArchiveRepository 메시지 아카이브 저장소
type ArchiveRepository struct {
	db *gorm.DB
}

// NewArchiveRepository 새 아카이브 저장소 생성
func NewArchiveRepository(db *gorm.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Save 메시지 기록 저장
func (r *ArchiveRepository) Save(ctx context.Context, rec *models.MessageRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("archive %s from %s: %w", rec.Kind, rec.SerialNumber, err)
	}
	utils.Logger.Debugf("Archived %s message %d for %s", rec.Kind, rec.HeaderID, rec.SerialNumber)
	return nil
}

// List 최신 순으로 메시지 기록 조회
func (r *ArchiveRepository) List(ctx context.Context, filter ArchiveFilter) ([]models.MessageRecord, error) {
	records := []models.MessageRecord{}
	if err := listQuery(r.db.WithContext(ctx), filter).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	return records, nil
}

func listQuery(db *gorm.DB, filter ArchiveFilter) *gorm.DB {
	q := db.Model(&models.MessageRecord{})
	if filter.SerialNumber != "" {
		q = q.Where("serial_number = ?", filter.SerialNumber)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	return q.Order("created_at DESC").Order("id DESC").Limit(clampLimit(filter.Limit))
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}
