package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"resumelens/portfolio-analyzer/internal/models"
)

type AuditRepository interface {
	Create(ctx context.Context, audit *models.AnalysisAudit) error
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, audit *models.AnalysisAudit) error {
	if err := r.db.WithContext(ctx).Create(audit).Error; err != nil {
		return fmt.Errorf("failed to create analysis audit: %w", err)
	}
	return nil
}
