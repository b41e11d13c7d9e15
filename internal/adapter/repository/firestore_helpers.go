package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"freelancebid/pkg/errors"
)

const (
	projectsCollection      = "projects"
	usersCollection         = "users"
	notificationsCollection = "notifications"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// resolveReportOwner finds the single document in collection whose owner
// index contains reportID.
func resolveReportOwner(ctx context.Context, client *firestore.Client, collection, reportID string) (*firestore.DocumentRef, error) {
	iter := client.Collection(collection).
		Where("reportIds", "array-contains", reportID).
		Limit(2).
		Documents(ctx)
	defer iter.Stop()

	var refs []*firestore.DocumentRef
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to resolve report owner", err)
		}
		refs = append(refs, doc.Ref)
	}

	switch len(refs) {
	case 0:
		return nil, errors.NotFound("Fraud report", nil)
	case 1:
		return refs[0], nil
	default:
		return nil, errors.Conflict("Report id is shared by more than one owner")
	}
}
