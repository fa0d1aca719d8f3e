package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avorobjovs/demoboard/internal/client/models"
	"github.com/avorobjovs/demoboard/internal/client/repositories/usersoverlay"

	_ "modernc.org/sqlite"
)

type fakeDirectoryAPI struct {
	page *models.UsersPage
	err  error
}

func (f *fakeDirectoryAPI) Users(ctx context.Context, page int) (*models.UsersPage, error) {
	return f.page, f.err
}

func (f *fakeDirectoryAPI) Register(ctx context.Context, email, password string) (int64, string, error) {
	return 4, "QpwL5tke4Pnpja7X4", nil
}

func newUsersFixture(t *testing.T) (*UsersService, usersoverlay.Repository) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE deleted_users (id INTEGER PRIMARY KEY);
		CREATE TABLE role_changes (user_id INTEGER PRIMARY KEY, role TEXT NOT NULL);
	`)
	require.NoError(t, err)

	overlay := usersoverlay.NewSQLiteRepository(db)
	dir := &fakeDirectoryAPI{page: &models.UsersPage{
		Page: 1, PerPage: 6, Total: 12, TotalPages: 2,
		Data: []models.User{
			{ID: 1, Email: "george.bluth@reqres.in", FirstName: "George"},
			{ID: 2, Email: "janet.weaver@reqres.in", FirstName: "Janet"},
			{ID: 3, Email: "emma.wong@reqres.in", FirstName: "Emma"},
		},
	}}
	return NewUsersService(dir, overlay), overlay
}

func TestUsersList_DerivesDefaultRoles(t *testing.T) {
	svc, _ := newUsersFixture(t)

	page, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Data, 3)

	// Role is a stable function of the id: [admin,user,moderator][id%3].
	assert.Equal(t, models.RoleUser, page.Data[0].Role)
	assert.Equal(t, models.RoleModerator, page.Data[1].Role)
	assert.Equal(t, models.RoleAdmin, page.Data[2].Role)
}

func TestUsersList_RoleOverrideWins(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUsersFixture(t)

	require.NoError(t, svc.ChangeRole(ctx, 1, "moderator"))

	page, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, page.Data[0].Role)
	assert.Equal(t, models.RoleModerator, page.Data[1].Role, "others keep the derived default")
}

func TestUsersList_DeletedUsersDisappear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUsersFixture(t)

	require.NoError(t, svc.Delete(ctx, 2))

	page, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	for _, u := range page.Data {
		assert.NotEqual(t, int64(2), u.ID)
	}
}

func TestChangeRole_RejectsUnknownRole(t *testing.T) {
	svc, _ := newUsersFixture(t)
	require.Error(t, svc.ChangeRole(context.Background(), 1, "superadmin"))
}

func TestUsersOverlay_ClearUserData(t *testing.T) {
	ctx := context.Background()
	svc, overlay := newUsersFixture(t)

	require.NoError(t, svc.Delete(ctx, 2))
	require.NoError(t, svc.ChangeRole(ctx, 1, "admin"))
	require.NoError(t, overlay.ClearUserData(ctx))

	deleted, err := overlay.DeletedIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, deleted)

	changes, err := overlay.RoleChanges(ctx)
	require.NoError(t, err)
	assert.Empty(t, changes)
}
