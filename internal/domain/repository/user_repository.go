package repository

import (
	"context"
	"time"

	"freelancebid/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByIDs skips ids that do not exist
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)

	// Users carrying at least one embedded complaint
	ListReported(ctx context.Context) ([]*entity.User, error)

	AddReport(ctx context.Context, userID string, complaint entity.UserComplaint) error
	RespondToReport(ctx context.Context, reportID, message string, at time.Time) (*entity.UserComplaint, error)
	DeleteReport(ctx context.Context, userID, reportID string) error
}

// UserDirectory resolves display identities. Missing users are absent from the result.
type UserDirectory interface {
	LookupUsers(ctx context.Context, ids []string) (map[string]entity.UserIdentity, error)
}
