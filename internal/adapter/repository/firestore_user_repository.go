package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"freelancebid/internal/domain/entity"
	"freelancebid/internal/domain/repository"
	"freelancebid/pkg/errors"
	"freelancebid/pkg/logger"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = r.client.Collection(usersCollection).NewDoc().ID
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	user.ReindexReports()

	_, err := r.client.Collection(usersCollection).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	users := make(map[string]*entity.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.client.Collection(usersCollection).Doc(id))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errors.Internal("Failed to batch get users", err)
	}

	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			logger.Warn("Skipping unreadable user document %s: %v", doc.Ref.ID, err)
			continue
		}
		if user.ID == "" {
			user.ID = doc.Ref.ID
		}
		users[user.ID] = &user
	}

	return users, nil
}

func (r *firestoreUserRepository) ListReported(ctx context.Context) ([]*entity.User, error) {
	iter := r.client.Collection(usersCollection).Where("reportCount", ">", 0).Documents(ctx)
	defer iter.Stop()

	var users []*entity.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate reported users", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return nil, errors.Internal("Failed to parse user data", err)
		}
		users = append(users, &user)
	}

	return users, nil
}

func (r *firestoreUserRepository) AddReport(ctx context.Context, userID string, complaint entity.UserComplaint) error {
	docRef := r.client.Collection(usersCollection).Doc(userID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("User", err)
			}
			return errors.Internal("Failed to get user", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return errors.Internal("Failed to parse user data", err)
		}

		user.ReportedBy = append(user.ReportedBy, complaint)
		user.ReindexReports()

		return tx.Update(docRef, []firestore.Update{
			{Path: "reportedBy", Value: user.ReportedBy},
			{Path: "reportIds", Value: user.ReportIDs},
			{Path: "reportCount", Value: user.ReportCount},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
}

func (r *firestoreUserRepository) RespondToReport(ctx context.Context, reportID, message string, at time.Time) (*entity.UserComplaint, error) {
	docRef, err := resolveReportOwner(ctx, r.client, usersCollection, reportID)
	if err != nil {
		return nil, err
	}

	var updated entity.UserComplaint
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("Fraud report", err)
			}
			return errors.Internal("Failed to get user", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return errors.Internal("Failed to parse user data", err)
		}

		idx := user.FindReport(reportID)
		if idx < 0 {
			return errors.NotFound("Fraud report", nil)
		}

		msg, ts := message, at
		user.ReportedBy[idx].ResponseMessage = &msg
		user.ReportedBy[idx].ResponseAt = &ts
		updated = user.ReportedBy[idx]

		return tx.Update(docRef, []firestore.Update{
			{Path: "reportedBy", Value: user.ReportedBy},
			{Path: "updatedAt", Value: at},
		})
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *firestoreUserRepository) DeleteReport(ctx context.Context, userID, reportID string) error {
	docRef := r.client.Collection(usersCollection).Doc(userID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("User", err)
			}
			return errors.Internal("Failed to get user", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return errors.Internal("Failed to parse user data", err)
		}

		idx := user.FindReport(reportID)
		if idx < 0 {
			return errors.NotFound("Fraud report", nil)
		}

		user.ReportedBy = append(user.ReportedBy[:idx], user.ReportedBy[idx+1:]...)
		user.ReindexReports()

		return tx.Update(docRef, []firestore.Update{
			{Path: "reportedBy", Value: user.ReportedBy},
			{Path: "reportIds", Value: user.ReportIDs},
			{Path: "reportCount", Value: user.ReportCount},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
}
