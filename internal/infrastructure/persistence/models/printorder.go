package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/printorder"
	"github.com/web2print/backend/internal/domain/shared"
)

// PrintOrderModel is the persistence model for the PrintOrder domain entity.
// The document cost is not stored; it is recomputed from the rate table.
type PrintOrderModel struct {
	AggregateModel
	UserID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	StoreID     *uuid.UUID             `gorm:"type:uuid;index"`
	FileName    string                 `gorm:"type:varchar(255);not null"`
	FileLocator string                 `gorm:"type:varchar(500);not null"`
	PageSize    printorder.PageSize    `gorm:"type:varchar(10);not null"`
	PrintMode   printorder.PrintMode   `gorm:"type:varchar(10);not null"`
	NumCopies   int                    `gorm:"not null;default:1"`
	NumPages    int                    `gorm:"not null;default:1"`
	Status      printorder.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	UploadedAt  time.Time              `gorm:"not null"`
	IsEncrypted bool                   `gorm:"not null;default:false"`
	IV          []byte                 `gorm:"type:bytea"`
}

// TableName returns the table name for GORM
func (PrintOrderModel) TableName() string {
	return "print_orders"
}

// ToDomain converts the persistence model to a domain PrintOrder entity.
func (m *PrintOrderModel) ToDomain() *printorder.PrintOrder {
	return &printorder.PrintOrder{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		UserID:      m.UserID,
		StoreID:     m.StoreID,
		FileName:    m.FileName,
		FileLocator: m.FileLocator,
		PageSize:    m.PageSize,
		PrintMode:   m.PrintMode,
		NumCopies:   m.NumCopies,
		NumPages:    m.NumPages,
		Status:      m.Status,
		UploadedAt:  m.UploadedAt,
		IsEncrypted: m.IsEncrypted,
		IV:          m.IV,
	}
}

// FromDomain populates the persistence model from a domain PrintOrder entity.
func (m *PrintOrderModel) FromDomain(o *printorder.PrintOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.UserID = o.UserID
	m.StoreID = o.StoreID
	m.FileName = o.FileName
	m.FileLocator = o.FileLocator
	m.PageSize = o.PageSize
	m.PrintMode = o.PrintMode
	m.NumCopies = o.NumCopies
	m.NumPages = o.NumPages
	m.Status = o.Status
	m.UploadedAt = o.UploadedAt
	m.IsEncrypted = o.IsEncrypted
	m.IV = o.IV
}

// PrintOrderModelFromDomain creates a new persistence model from a domain PrintOrder entity.
func PrintOrderModelFromDomain(o *printorder.PrintOrder) *PrintOrderModel {
	m := &PrintOrderModel{}
	m.FromDomain(o)
	return m
}
