package services

import (
	"context"
	"fmt"

	"github.com/avorobjovs/demoboard/internal/client/models"
	"github.com/avorobjovs/demoboard/internal/client/repositories/usersoverlay"
)

// DirectoryAPI is the remote surface of the user directory the service
// consumes.
type DirectoryAPI interface {
	Users(ctx context.Context, page int) (*models.UsersPage, error)
	Register(ctx context.Context, email, password string) (int64, string, error)
}

// UsersService merges the remote directory with the local overlay: deleted
// users disappear from every listing and role overrides replace the derived
// default role. The directory itself carries no roles at all.
type UsersService struct {
	directory DirectoryAPI
	overlay   usersoverlay.Repository
}

func NewUsersService(directory DirectoryAPI, overlay usersoverlay.Repository) *UsersService {
	return &UsersService{directory: directory, overlay: overlay}
}

// List returns one merged page of the directory. Users in the deletion set
// are dropped; every remaining user carries either its role override or the
// default derived from its id.
func (s *UsersService) List(ctx context.Context, page int) (*models.UsersPage, error) {
	remote, err := s.directory.Users(ctx, page)
	if err != nil {
		return nil, err
	}
	deleted, err := s.overlay.DeletedIDs(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.overlay.RoleChanges(ctx)
	if err != nil {
		return nil, err
	}

	merged := *remote
	merged.Data = make([]models.User, 0, len(remote.Data))
	for _, user := range remote.Data {
		if deleted[user.ID] {
			continue
		}
		if role, ok := overrides[user.ID]; ok {
			user.Role = role
		} else {
			user.Role = models.DefaultRoleFor(user.ID)
		}
		merged.Data = append(merged.Data, user)
	}
	return &merged, nil
}

// Delete hides a user from every listing for the rest of the session.
func (s *UsersService) Delete(ctx context.Context, userID int64) error {
	return s.overlay.MarkDeleted(ctx, userID)
}

// ChangeRole records a role override for a user.
func (s *UsersService) ChangeRole(ctx context.Context, userID int64, role string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	return s.overlay.ChangeRole(ctx, userID, models.Role(role))
}

// Register passes a registration through to the directory's public endpoint.
func (s *UsersService) Register(ctx context.Context, email, password string) (int64, string, error) {
	return s.directory.Register(ctx, email, password)
}
