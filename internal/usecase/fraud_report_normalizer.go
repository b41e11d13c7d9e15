package usecase

import (
	"context"
	"time"

	"freelancebid/internal/domain/entity"
	"freelancebid/internal/domain/repository"
	"freelancebid/pkg/logger"
)

// ReportNormalizer flattens the complaints embedded in projects and users into
// FraudReport records and attaches display identities.
type ReportNormalizer struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	directory   repository.UserDirectory
}

func NewReportNormalizer(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	directory repository.UserDirectory,
) *ReportNormalizer {
	return &ReportNormalizer{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		directory:   directory,
	}
}

// Normalize returns every complaint currently stored. Order is unspecified.
func (n *ReportNormalizer) Normalize(ctx context.Context) ([]entity.FraudReport, error) {
	projects, err := n.projectRepo.ListReported(ctx)
	if err != nil {
		return nil, err
	}

	users, err := n.userRepo.ListReported(ctx)
	if err != nil {
		return nil, err
	}

	identities := n.lookup(ctx, collectIdentityIDs(projects, users))

	reports := make([]entity.FraudReport, 0)
	for _, p := range projects {
		owner, ownerFound := identities[p.UserID]
		for _, c := range p.Reports {
			r := &entity.ProjectReport{
				ReportBase: entity.ReportBase{
					ReportID:         c.ID,
					ReportedByUserID: c.ReportedBy,
					Reason:           c.Reason,
					CreatedAt:        c.CreatedAt,
				},
				FraudProjectID: p.ID,
				ProjectTitle:   optional(p.Title),
			}
			copyResponse(&r.ReportBase, c.ResponseMessage, c.ResponseAt)
			applyReporter(&r.ReportBase, identities)

			if ownerFound {
				r.ProjectOwnerName = optional(owner.Name)
				r.ProjectOwnerEmail = optional(owner.Email)
			} else {
				r.SubjectUnavailable = true
			}
			reports = append(reports, r)
		}
	}

	for _, u := range users {
		for _, c := range u.ReportedBy {
			r := &entity.UserReport{
				ReportBase: entity.ReportBase{
					ReportID:         c.ID,
					ReportedByUserID: c.ReporterID,
					Reason:           c.Reason,
					CreatedAt:        c.ReportedAt,
				},
				ReportedUserID:    u.ID,
				ReportedUserName:  optional(u.Name),
				ReportedUserEmail: optional(u.Email),
			}
			copyResponse(&r.ReportBase, c.ResponseMessage, c.ResponseAt)
			applyReporter(&r.ReportBase, identities)
			reports = append(reports, r)
		}
	}

	return reports, nil
}

func (n *ReportNormalizer) lookup(ctx context.Context, ids []string) map[string]entity.UserIdentity {
	if len(ids) == 0 {
		return map[string]entity.UserIdentity{}
	}

	identities, err := n.directory.LookupUsers(ctx, ids)
	if err != nil {
		logger.Warn("Identity lookup failed for %d users, display fields degraded: %v", len(ids), err)
		return map[string]entity.UserIdentity{}
	}

	if len(identities) < len(ids) {
		logger.Warn("Identity lookup resolved %d of %d users", len(identities), len(ids))
	}
	return identities
}

func collectIdentityIDs(projects []*entity.Project, users []*entity.User) []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, p := range projects {
		add(p.UserID)
		for _, c := range p.Reports {
			add(c.ReportedBy)
		}
	}
	for _, u := range users {
		for _, c := range u.ReportedBy {
			add(c.ReporterID)
		}
	}
	return ids
}

func applyReporter(base *entity.ReportBase, identities map[string]entity.UserIdentity) {
	reporter, ok := identities[base.ReportedByUserID]
	if !ok {
		base.ReporterUnavailable = true
		return
	}
	base.ReportedByName = optional(reporter.Name)
	base.ReportedByEmail = optional(reporter.Email)
}

func copyResponse(base *entity.ReportBase, message *string, at *time.Time) {
	if message == nil || at == nil {
		return
	}
	base.SetResponse(*message, *at)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
