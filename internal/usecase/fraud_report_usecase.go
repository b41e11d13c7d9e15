package usecase

import (
	"context"
	"strings"
	"time"

	"freelancebid/internal/domain/entity"
	"freelancebid/internal/domain/repository"
	"freelancebid/pkg/errors"
	"freelancebid/pkg/logger"
	"freelancebid/pkg/utils"
)

const respondSuccessMessage = "Response sent successfully"

type FraudReportUseCase struct {
	projectRepo      repository.ProjectRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	normalizer       *ReportNormalizer
	now              func() time.Time
}

func NewFraudReportUseCase(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	directory repository.UserDirectory,
) *FraudReportUseCase {
	return &FraudReportUseCase{
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		normalizer:       NewReportNormalizer(projectRepo, userRepo, directory),
		now:              time.Now,
	}
}

// WithClock replaces the time source used for responseAt.
func (uc *FraudReportUseCase) WithClock(now func() time.Time) *FraudReportUseCase {
	uc.now = now
	return uc
}

type ListReportsInput struct {
	Page   int
	Limit  int
	Filter ReportFilter
}

func (uc *FraudReportUseCase) ListReports(ctx context.Context, input ListReportsInput) (utils.Page[entity.FraudReport], error) {
	reports, err := uc.normalizer.Normalize(ctx)
	if err != nil {
		return utils.Page[entity.FraudReport]{}, err
	}

	filtered := FilterReports(reports, input.Filter)
	SortNewestFirst(filtered)

	return utils.Paginate(filtered, input.Page, input.Limit), nil
}

type RespondInput struct {
	ReportType      string
	ReportID        string
	ResponseMessage string
}

type RespondResult struct {
	Message         string            `json:"message"`
	ReportID        string            `json:"reportId"`
	ReportType      entity.ReportType `json:"reportType"`
	ResponseMessage string            `json:"responseMessage"`
	ResponseAt      time.Time         `json:"responseAt"`
}

// Respond records a moderator reply on one complaint. Responding again
// overwrites the previous reply.
func (uc *FraudReportUseCase) Respond(ctx context.Context, adminID string, input RespondInput) (*RespondResult, error) {
	reportType := entity.ReportType(input.ReportType)
	if !reportType.Valid() {
		return nil, errors.Validation("reportType must be one of: project user")
	}
	if strings.TrimSpace(input.ReportID) == "" {
		return nil, errors.Validation("reportId is required")
	}
	if !entity.ValidResponseMessage(input.ResponseMessage) {
		return nil, errors.Validation("Response message must be at least 10 characters")
	}

	at := uc.now().UTC()
	var reporterID string

	switch reportType {
	case entity.ReportTypeProject:
		complaint, err := uc.projectRepo.RespondToReport(ctx, input.ReportID, input.ResponseMessage, at)
		if err != nil {
			logger.LogReportError(string(reportType), input.ReportID, "respond", err)
			return nil, err
		}
		reporterID = complaint.ReportedBy
	case entity.ReportTypeUser:
		complaint, err := uc.userRepo.RespondToReport(ctx, input.ReportID, input.ResponseMessage, at)
		if err != nil {
			logger.LogReportError(string(reportType), input.ReportID, "respond", err)
			return nil, err
		}
		reporterID = complaint.ReporterID
	}

	logger.Info("Admin %s responded to %s report %s", adminID, reportType, input.ReportID)
	uc.notifyReporter(ctx, reporterID, reportType, input.ReportID, input.ResponseMessage, at)

	return &RespondResult{
		Message:         respondSuccessMessage,
		ReportID:        input.ReportID,
		ReportType:      reportType,
		ResponseMessage: input.ResponseMessage,
		ResponseAt:      at,
	}, nil
}

func (uc *FraudReportUseCase) notifyReporter(ctx context.Context, reporterID string, reportType entity.ReportType, reportID, message string, at time.Time) {
	if uc.notificationRepo == nil || reporterID == "" {
		return
	}

	notification := &entity.Notification{
		UserID:     reporterID,
		Type:       entity.NotificationFraudReportResponse,
		Message:    message,
		ReportID:   reportID,
		ReportType: reportType,
		CreatedAt:  at,
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.Warn("Failed to notify reporter %s about report %s: %v", reporterID, reportID, err)
	}
}

type DeleteReportInput struct {
	ReportType   string
	ReportedOnID string
	ReportID     string
}

// DeleteReport removes one complaint from its owning project or user.
func (uc *FraudReportUseCase) DeleteReport(ctx context.Context, adminID string, input DeleteReportInput) error {
	reportType := entity.ReportType(input.ReportType)
	if !reportType.Valid() {
		return errors.Validation("type must be one of: project user")
	}
	if input.ReportedOnID == "" || input.ReportID == "" {
		return errors.Validation("reportedOnId and reportId are required")
	}

	var err error
	switch reportType {
	case entity.ReportTypeProject:
		err = uc.projectRepo.DeleteReport(ctx, input.ReportedOnID, input.ReportID)
	case entity.ReportTypeUser:
		err = uc.userRepo.DeleteReport(ctx, input.ReportedOnID, input.ReportID)
	}
	if err != nil {
		logger.LogReportError(string(reportType), input.ReportID, "delete", err)
		return err
	}

	logger.Info("Admin %s deleted %s report %s on %s", adminID, reportType, input.ReportID, input.ReportedOnID)
	return nil
}
