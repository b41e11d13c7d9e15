package repository

import (
	"context"

	"freelancebid/internal/domain/entity"
	"freelancebid/internal/domain/repository"
)

type userDirectory struct {
	userRepo repository.UserRepository
}

// NewUserDirectory resolves display identities straight from the user store.
func NewUserDirectory(userRepo repository.UserRepository) repository.UserDirectory {
	return &userDirectory{userRepo: userRepo}
}

func (d *userDirectory) LookupUsers(ctx context.Context, ids []string) (map[string]entity.UserIdentity, error) {
	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	identities := make(map[string]entity.UserIdentity, len(users))
	for id, u := range users {
		identities[id] = u.Identity()
	}
	return identities, nil
}
