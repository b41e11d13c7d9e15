package repository

import (
	"context"
	"time"

	"freelancebid/internal/domain/entity"
)

// SeedDemoData fills an empty store with an admin account and a few open
// complaints so STORAGE_DRIVER=memory is usable without Firestore.
func SeedDemoData(ctx context.Context, store *MemoryStore, adminUID string) error {
	now := time.Now().UTC()

	users := []*entity.User{
		{ID: adminUID, Name: "Admin", Email: "admin@example.com", Role: entity.RoleAdmin, Status: "active"},
		{ID: "client-1", Name: "Dina Client", Email: "dina@example.com", Role: entity.RoleUser, Status: "active"},
		{ID: "freelancer-1", Name: "Budi Freelancer", Email: "budi@example.com", Role: entity.RoleUser, Status: "active",
			ReportedBy: []entity.UserComplaint{
				{ID: "seed-user-report-1", ReporterID: "client-1", Reason: "Asked for payment outside the platform", ReportedAt: now.Add(-48 * time.Hour)},
			},
		},
	}
	for _, u := range users {
		if err := store.Users().Create(ctx, u); err != nil {
			return err
		}
	}

	project := &entity.Project{
		ID:     "project-1",
		Title:  "Landing page redesign",
		UserID: "client-1",
		Status: "open",
		Reports: []entity.ProjectComplaint{
			{ID: "seed-project-report-1", ReportedBy: "freelancer-1", Reason: "Budget listed does not match the brief", CreatedAt: now.Add(-24 * time.Hour)},
		},
	}
	return store.Projects().Create(ctx, project)
}
