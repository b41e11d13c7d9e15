package repository

import (
	"context"
	"time"

	"freelancebid/internal/domain/entity"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)

	// Projects carrying at least one embedded complaint
	ListReported(ctx context.Context) ([]*entity.Project, error)

	// Complaint methods, addressed by (projectID, reportID) or resolved through the owner index
	AddReport(ctx context.Context, projectID string, complaint entity.ProjectComplaint) error
	RespondToReport(ctx context.Context, reportID, message string, at time.Time) (*entity.ProjectComplaint, error)
	DeleteReport(ctx context.Context, projectID, reportID string) error
}
