package dto

import (
	"time"

	"akcert_backend/internals/features/certificates/model"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = time.RFC3339
)

/* ===================== REQUEST ===================== */

type CreateCertificateRequest struct {
	StudentName string `json:"studentName" validate:"required,max=200"`
	CourseName  string `json:"courseName"  validate:"required,max=200"`
	IssueDate   string `json:"issueDate"   validate:"required"`
}

/* ===================== RESPONSE ===================== */

type CertificateResponse struct {
	Key         uint   `json:"key"`
	ID          string `json:"id"`
	StudentName string `json:"studentName"`
	CourseName  string `json:"courseName"`
	IssueDate   string `json:"issueDate"`
	CreatedAt   string `json:"createdAt"`
	Status      string `json:"status"`
}

func FromModel(m model.CertificateModel) CertificateResponse {
	return CertificateResponse{
		Key:         m.ID,
		ID:          m.CertificateID,
		StudentName: m.StudentName,
		CourseName:  m.CourseName,
		IssueDate:   time.Time(m.IssueDate).Format(DateLayout),
		CreatedAt:   m.CreatedAt.UTC().Format(DateTimeLayout),
		Status:      m.Status,
	}
}

func FromModels(rows []model.CertificateModel) []CertificateResponse {
	out := make([]CertificateResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

type QRCodeResponse struct {
	QRCode string `json:"qr_code"`
}
