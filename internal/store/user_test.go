package store

import (
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

func TestUserCreateAndAuthenticate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := s.Create(email, "s3cret-pass", "Test Editor", models.RoleEditor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("password stored in plain text")
	}

	found, err := s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil {
		t.Fatal("expected user, got nil")
	}
	if found.Role != models.RoleEditor {
		t.Errorf("Role = %q, want %q", found.Role, models.RoleEditor)
	}

	if !s.CheckPassword(found, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(found, "wrong-pass") {
		t.Error("wrong password accepted")
	}

	byID, err := s.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Email != email {
		t.Errorf("FindByID returned %+v, want email %q", byID, email)
	}
}

func TestUserFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user, err := s.FindByEmail("nobody-" + uuid.NewString()[:8] + "@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for unknown email, got %+v", user)
	}

	user, err = s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for unknown id, got %+v", user)
	}
}
