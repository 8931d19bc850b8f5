package database

import (
	"fmt"

	"vda5050-bridge/internal/config"
	"vda5050-bridge/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DSN 설정으로 Postgres 접속 문자열 생성
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
}

// NewPostgresDB Postgres 연결 후 아카이브 테이블 마이그레이션
func NewPostgresDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&models.MessageRecord{}, // 메시지 아카이브
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
