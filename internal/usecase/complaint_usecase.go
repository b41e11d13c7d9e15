package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"freelancebid/internal/domain/entity"
	"freelancebid/internal/domain/repository"
	"freelancebid/internal/infrastructure/ratelimit"
	"freelancebid/pkg/errors"
	"freelancebid/pkg/logger"
)

const (
	MinReasonLength = 5
	MaxReasonLength = 1000

	defaultNotificationLimit = 50
)

// ActionLimiter throttles an action per subject.
type ActionLimiter interface {
	Allow(subject, action string) bool
}

// ComplaintUseCase lets regular users file complaints and read the replies
// moderators send back.
type ComplaintUseCase struct {
	projectRepo      repository.ProjectRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	limiter          ActionLimiter
	now              func() time.Time
}

func NewComplaintUseCase(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *ComplaintUseCase {
	return &ComplaintUseCase{
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// WithLimiter throttles complaint filing per reporter.
func (uc *ComplaintUseCase) WithLimiter(limiter ActionLimiter) *ComplaintUseCase {
	uc.limiter = limiter
	return uc
}

func (uc *ComplaintUseCase) allowFiling(reporterID string) error {
	if uc.limiter != nil && !uc.limiter.Allow(reporterID, ratelimit.ActionFileComplaint) {
		logger.Warn("Complaint rate limit exceeded for %s", reporterID)
		return errors.TooManyRequests("Too many reports filed, try again later")
	}
	return nil
}

func validateReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	n := utf8.RuneCountInString(reason)
	if n < MinReasonLength {
		return "", errors.Validation("reason must be at least 5 characters")
	}
	if n > MaxReasonLength {
		return "", errors.Validation("reason must be at most 1000 characters")
	}
	return reason, nil
}

func (uc *ComplaintUseCase) ReportProject(ctx context.Context, reporterID, projectID, reason string) (string, error) {
	reason, err := validateReason(reason)
	if err != nil {
		return "", err
	}

	if err := uc.allowFiling(reporterID); err != nil {
		return "", err
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	if project.UserID == reporterID {
		return "", errors.BadRequest("You cannot report your own project", nil)
	}

	complaint := entity.ProjectComplaint{
		ID:         uuid.New().String(),
		ReportedBy: reporterID,
		Reason:     reason,
		CreatedAt:  uc.now().UTC(),
	}
	if err := uc.projectRepo.AddReport(ctx, projectID, complaint); err != nil {
		return "", err
	}

	logger.Info("User %s reported project %s (report %s)", reporterID, projectID, complaint.ID)
	return complaint.ID, nil
}

func (uc *ComplaintUseCase) ReportUser(ctx context.Context, reporterID, userID, reason string) (string, error) {
	reason, err := validateReason(reason)
	if err != nil {
		return "", err
	}
	if userID == reporterID {
		return "", errors.BadRequest("You cannot report yourself", nil)
	}

	if err := uc.allowFiling(reporterID); err != nil {
		return "", err
	}

	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}

	complaint := entity.UserComplaint{
		ID:         uuid.New().String(),
		ReporterID: reporterID,
		Reason:     reason,
		ReportedAt: uc.now().UTC(),
	}
	if err := uc.userRepo.AddReport(ctx, userID, complaint); err != nil {
		return "", err
	}

	logger.Info("User %s reported user %s (report %s)", reporterID, userID, complaint.ID)
	return complaint.ID, nil
}

// ListNotifications returns the newest notifications for a user.
func (uc *ComplaintUseCase) ListNotifications(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > defaultNotificationLimit {
		limit = defaultNotificationLimit
	}
	return uc.notificationRepo.ListByUser(ctx, userID, limit)
}
