package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"user-account-service/internal/config"
	"user-account-service/internal/database"
	"user-account-service/internal/models"
)

func newTestRepo(t *testing.T) UserRepository {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormRepository(db)
}

func seedRoles(t *testing.T, repo UserRepository) []models.Role {
	t.Helper()
	r := repo.(*gormRepository)
	roles := []models.Role{
		{Name: "admin", Permissions: []models.Permission{{Name: "users:read"}, {Name: "users:write"}}},
		{Name: "viewer", Permissions: []models.Permission{{Name: "users:list"}}},
		{Name: "auditor"},
	}
	for i := range roles {
		if err := r.db.Create(&roles[i]).Error; err != nil {
			t.Fatalf("seed role: %v", err)
		}
	}
	return roles
}

func seedUserWithRole(t *testing.T, repo UserRepository, email string, roleID uint) *models.User {
	t.Helper()
	ctx := context.Background()
	u := &models.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: "hashed",
		CreateTime:   time.Now(),
		DNI:          "11223344",
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if roleID != 0 {
		r := repo.(*gormRepository)
		if err := r.db.Create(&models.UserRole{UserID: u.ID, RoleID: roleID}).Error; err != nil {
			t.Fatalf("assign role: %v", err)
		}
	}
	return u
}

func TestFindByEmailPreloadsRoles(t *testing.T) {
	repo := newTestRepo(t)
	roles := seedRoles(t, repo)
	seedUserWithRole(t, repo, "ana@example.com", roles[0].ID)

	got, err := repo.FindByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got == nil {
		t.Fatal("user not found")
	}
	if got.PasswordHash != "hashed" {
		t.Errorf("login lookup must include the stored hash, got %q", got.PasswordHash)
	}
	if len(got.Roles) != 1 || got.Roles[0].Name != "admin" {
		t.Fatalf("roles = %+v, want [admin]", got.Roles)
	}
	if len(got.Roles[0].Permissions) != 2 {
		t.Errorf("permissions = %+v, want 2 entries", got.Roles[0].Permissions)
	}
}

func TestFindByEmailMissing(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v, want nil", got)
	}
}

func TestFindPageExcludesPassword(t *testing.T) {
	repo := newTestRepo(t)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		seedUserWithRole(t, repo, email, 0)
	}

	users, err := repo.FindPage(context.Background(), 0, 2)
	if err != nil {
		t.Fatalf("FindPage: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Errorf("password hash leaked into page query for %s", u.Email)
		}
	}

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestUpdateWithRolesReplacesAssignments(t *testing.T) {
	repo := newTestRepo(t)
	roles := seedRoles(t, repo)
	u := seedUserWithRole(t, repo, "ana@example.com", roles[0].ID)

	u.Username = "renamed"
	err := repo.UpdateWithRoles(context.Background(), u, []uint{roles[1].ID, roles[2].ID})
	if err != nil {
		t.Fatalf("UpdateWithRoles: %v", err)
	}

	got, err := repo.FindByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Username != "renamed" {
		t.Errorf("username = %q, want renamed", got.Username)
	}
	names := map[string]bool{}
	for _, r := range got.Roles {
		names[r.Name] = true
	}
	if len(got.Roles) != 2 || !names["viewer"] || !names["auditor"] {
		t.Errorf("roles after replacement = %+v, want exactly {viewer, auditor}", got.Roles)
	}
}

func TestUpdateWithRolesMissingUser(t *testing.T) {
	repo := newTestRepo(t)
	seedRoles(t, repo)

	err := repo.UpdateWithRoles(context.Background(), &models.User{ID: 999, Username: "x"}, []uint{1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	u := seedUserWithRole(t, repo, "ana@example.com", 0)

	if err := repo.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := repo.FindByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != nil {
		t.Errorf("user still present after delete: %+v", got)
	}

	if err := repo.Delete(context.Background(), u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestListRoles(t *testing.T) {
	repo := newTestRepo(t)
	seedRoles(t, repo)

	roles, err := repo.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles: %v", err)
	}
	if len(roles) != 3 {
		t.Fatalf("len = %d, want 3", len(roles))
	}
	if roles[0].Name != "admin" || len(roles[0].Permissions) != 2 {
		t.Errorf("first role = %+v", roles[0])
	}
}
