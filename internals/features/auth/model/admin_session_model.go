package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminSessionModel is the server-side half of an admin session.
// The client only holds a signed token carrying the ID.
type AdminSessionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Authenticated bool      `gorm:"not null;default:false"`
	GrantedAt     time.Time `gorm:"not null;index"`
	UserAgent     *string   `gorm:"type:text"`
	IP            *string   `gorm:"type:varchar(64)"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (AdminSessionModel) TableName() string {
	return "admin_sessions"
}
