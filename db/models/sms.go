package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SmsMessage struct {
	ID          uint
	MessageType string `gorm:"type:varchar(50)"`
	Sender      string `gorm:"type:varchar(50)"`
	Timestamp   *time.Time
	RawContent  string    `gorm:"type:text"`
	ProcessedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

type Transaction struct {
	ID              uint
	SmsID           *uint
	SmsMessage      *SmsMessage         `gorm:"foreignKey:SmsID"`
	TransactionType string              `gorm:"type:varchar(50)"`
	Amount          decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	SenderReceiver  string              `gorm:"type:varchar(100)"`
	ReferenceNumber string              `gorm:"type:varchar(50)"`
	Timestamp       *time.Time
	Status          string              `gorm:"type:varchar(20)"`
	Fee             decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Balance         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
}
