package models

import "time"

// Direction 메시지 방향
type Direction string

const (
	DirectionInbound  Direction = "in"  // 차량 → 브리지
	DirectionOutbound Direction = "out" // 브리지 → 차량
)

// MessageRecord 송수신된 VDA5050 메시지 아카이브
type MessageRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Kind           string    `gorm:"size:20;not null;index" json:"kind"` // order, instantActions, state, connection, factsheet
	Manufacturer   string    `gorm:"size:100;not null" json:"manufacturer"`
	SerialNumber   string    `gorm:"size:100;not null;index" json:"serial_number"`
	HeaderID       uint32    `gorm:"not null" json:"header_id"`
	Timestamp      string    `gorm:"size:40" json:"timestamp"` // 메시지 헤더의 timestamp 원문
	Direction      Direction `gorm:"size:3;not null" json:"direction"`
	Payload        string    `gorm:"type:text;not null" json:"payload"`
	ViolationCount int       `gorm:"default:0" json:"violation_count"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// TableName 테이블 이름
func (MessageRecord) TableName() string {
	return "message_records"
}
