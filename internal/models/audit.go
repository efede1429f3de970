package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditStatus string

const (
	AuditDelivered AuditStatus = "delivered"
	AuditRejected  AuditStatus = "rejected"
)

// AnalysisAudit records the outcome of one pipeline run. Document content,
// filenames, links and generated text are never stored here.
type AnalysisAudit struct {
	ID            uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RequestID     string      `gorm:"type:text;index" json:"request_id"`
	Variant       Variant     `gorm:"type:text;not null" json:"variant"`
	Status        AuditStatus `gorm:"type:text;not null" json:"status"`
	ErrorKind     string      `gorm:"type:text" json:"error_kind,omitempty"`
	FileSizeBytes int64       `json:"file_size_bytes"`
	Model         string      `gorm:"type:text" json:"model"`
	DurationMs    int64       `json:"duration_ms"`
	CreatedAt     time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AnalysisAudit) TableName() string {
	return "analysis_audits"
}
