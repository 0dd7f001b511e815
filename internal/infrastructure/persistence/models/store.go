package models

import (
	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/shared"
	"github.com/web2print/backend/internal/domain/store"
)

// StoreModel is the persistence model for the Store domain entity.
type StoreModel struct {
	AggregateModel
	Name     string     `gorm:"type:varchar(200);not null"`
	Location string     `gorm:"type:varchar(500);not null"`
	Contact  string     `gorm:"type:varchar(100);not null"`
	AdminID  *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store entity.
func (m *StoreModel) ToDomain() *store.Store {
	return &store.Store{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:     m.Name,
		Location: m.Location,
		Contact:  m.Contact,
		AdminID:  m.AdminID,
	}
}

// FromDomain populates the persistence model from a domain Store entity.
func (m *StoreModel) FromDomain(s *store.Store) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Location = s.Location
	m.Contact = s.Contact
	m.AdminID = s.AdminID
}

// StoreModelFromDomain creates a new persistence model from a domain Store entity.
func StoreModelFromDomain(s *store.Store) *StoreModel {
	m := &StoreModel{}
	m.FromDomain(s)
	return m
}
