package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CertificateStatusValid = "valid"

	// Reserved; nothing writes these yet.
	CertificateStatusRevoked = "revoked"
	CertificateStatusExpired = "expired"
)

type CertificateModel struct {
	ID            uint           `gorm:"primaryKey"`
	CertificateID string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	StudentName   string         `gorm:"type:varchar(200);not null"`
	CourseName    string         `gorm:"type:varchar(200);not null"`
	IssueDate     datatypes.Date `gorm:"not null"`
	CreatedAt     time.Time      `gorm:"index"`
	Status        string         `gorm:"type:varchar(20);not null;default:'valid'"`
}

func (CertificateModel) TableName() string {
	return "certificates"
}
