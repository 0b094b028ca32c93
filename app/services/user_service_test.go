package services

import (
	"errors"
	"testing"

	jwtutil "carmarket/app/jwt"
	"carmarket/app/repo"
	"carmarket/app/testutil"
)

func newUserService(t *testing.T, name string) *UserService {
	t.Helper()
	return NewUserService(repo.NewUserRepository(testutil.OpenTestDB(t, name)))
}

func TestEnsureAdminIdempotent(t *testing.T) {
	svc := newUserService(t, "usersvc-admin")
	if err := svc.EnsureAdmin("admin", "admin123"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if err := svc.EnsureAdmin("admin", "admin123"); err != nil {
		t.Fatalf("second ensure admin: %v", err)
	}
	u, err := svc.ValidateCredentials("admin", "admin123")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !u.IsAdmin() {
		t.Fatalf("expected admin role, got %q", u.Role)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newUserService(t, "usersvc-register")
	u, err := svc.Register("alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != "regular" {
		t.Fatalf("expected regular role, got %q", u.Role)
	}

	if _, err := svc.Register("alice", "", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	if _, err := svc.ValidateCredentials("alice", "wrong"); err == nil {
		t.Fatal("expected bad password to fail")
	}
	if _, err := svc.ValidateCredentials("alice", "hunter22"); err != nil {
		t.Fatalf("expected login to succeed: %v", err)
	}
}

func TestUserDeleteAuthz(t *testing.T) {
	svc := newUserService(t, "usersvc-delete")
	alice, err := svc.Register("alice", "", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	bob, err := svc.Register("bob", "", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	bobClaims := &jwtutil.Claims{UserID: bob.ID, Username: "bob", Role: "regular"}
	if err := svc.Delete(bobClaims, alice.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := &jwtutil.Claims{UserID: 99, Username: "root", Role: "admin"}
	if err := svc.Delete(admin, alice.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := svc.Get(alice.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// self-delete allowed
	if err := svc.Delete(bobClaims, bob.ID); err != nil {
		t.Fatalf("self delete: %v", err)
	}
}
