package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"freelancebid/internal/domain/entity"
	"freelancebid/internal/domain/repository"
	"freelancebid/pkg/errors"
)

type firestoreProjectRepository struct {
	client *firestore.Client
}

func NewFirestoreProjectRepository(client *firestore.Client) repository.ProjectRepository {
	return &firestoreProjectRepository{
		client: client,
	}
}

func (r *firestoreProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	if project.ID == "" {
		project.ID = r.client.Collection(projectsCollection).NewDoc().ID
	}

	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	project.ReindexReports()

	_, err := r.client.Collection(projectsCollection).Doc(project.ID).Set(ctx, project)
	if err != nil {
		return errors.Internal("Failed to create project", err)
	}

	return nil
}

func (r *firestoreProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	doc, err := r.client.Collection(projectsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Project", err)
		}
		return nil, errors.Internal("Failed to get project", err)
	}

	var project entity.Project
	if err := doc.DataTo(&project); err != nil {
		return nil, errors.Internal("Failed to parse project data", err)
	}

	return &project, nil
}

func (r *firestoreProjectRepository) ListReported(ctx context.Context) ([]*entity.Project, error) {
	iter := r.client.Collection(projectsCollection).Where("reportCount", ">", 0).Documents(ctx)
	defer iter.Stop()

	var projects []*entity.Project
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate reported projects", err)
		}

		var project entity.Project
		if err := doc.DataTo(&project); err != nil {
			return nil, errors.Internal("Failed to parse project data", err)
		}
		projects = append(projects, &project)
	}

	return projects, nil
}

func (r *firestoreProjectRepository) AddReport(ctx context.Context, projectID string, complaint entity.ProjectComplaint) error {
	docRef := r.client.Collection(projectsCollection).Doc(projectID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("Project", err)
			}
			return errors.Internal("Failed to get project", err)
		}

		var project entity.Project
		if err := doc.DataTo(&project); err != nil {
			return errors.Internal("Failed to parse project data", err)
		}

		project.Reports = append(project.Reports, complaint)
		project.ReindexReports()

		return tx.Update(docRef, []firestore.Update{
			{Path: "reports", Value: project.Reports},
			{Path: "reportIds", Value: project.ReportIDs},
			{Path: "reportCount", Value: project.ReportCount},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
}

func (r *firestoreProjectRepository) RespondToReport(ctx context.Context, reportID, message string, at time.Time) (*entity.ProjectComplaint, error) {
	docRef, err := resolveReportOwner(ctx, r.client, projectsCollection, reportID)
	if err != nil {
		return nil, err
	}

	var updated entity.ProjectComplaint
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("Fraud report", err)
			}
			return errors.Internal("Failed to get project", err)
		}

		var project entity.Project
		if err := doc.DataTo(&project); err != nil {
			return errors.Internal("Failed to parse project data", err)
		}

		idx := project.FindReport(reportID)
		if idx < 0 {
			return errors.NotFound("Fraud report", nil)
		}

		msg, ts := message, at
		project.Reports[idx].ResponseMessage = &msg
		project.Reports[idx].ResponseAt = &ts
		updated = project.Reports[idx]

		return tx.Update(docRef, []firestore.Update{
			{Path: "reports", Value: project.Reports},
			{Path: "updatedAt", Value: at},
		})
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *firestoreProjectRepository) DeleteReport(ctx context.Context, projectID, reportID string) error {
	docRef := r.client.Collection(projectsCollection).Doc(projectID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("Project", err)
			}
			return errors.Internal("Failed to get project", err)
		}

		var project entity.Project
		if err := doc.DataTo(&project); err != nil {
			return errors.Internal("Failed to parse project data", err)
		}

		idx := project.FindReport(reportID)
		if idx < 0 {
			return errors.NotFound("Fraud report", nil)
		}

		project.Reports = append(project.Reports[:idx], project.Reports[idx+1:]...)
		project.ReindexReports()

		return tx.Update(docRef, []firestore.Update{
			{Path: "reports", Value: project.Reports},
			{Path: "reportIds", Value: project.ReportIDs},
			{Path: "reportCount", Value: project.ReportCount},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
}
