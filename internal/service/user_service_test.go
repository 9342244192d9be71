package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/warehouse-rental/internal/auth"
	"github.com/spec-kit/warehouse-rental/internal/domain"
)

func newUserFixture(t *testing.T) (*UserService, *memUserRepo, *memRoleRepo) {
	t.Helper()
	userRepo := newMemUserRepo()
	roleRepo := newMemRoleRepo()
	if err := roleRepo.Create(context.Background(), &domain.Role{Name: "CLIENTE"}); err != nil {
		t.Fatalf("seed role: %v", err)
	}
	svc := NewUserService(UserDependencies{
		UserRepo: userRepo,
		RoleRepo: roleRepo,
		Verifier: auth.PlaintextVerifier{},
		Tokens:   auth.NewTokenManager("test-secret", 60),
	})
	return svc, userRepo, roleRepo
}

func userInput(email string) UserCreateInput {
	return UserCreateInput{
		FullName:   "Ana Lopez",
		Mobile:     "099123456",
		Email:      email,
		RoleID:     1,
		Credential: "secreta",
	}
}

func TestUserCreate(t *testing.T) {
	svc, repo, _ := newUserFixture(t)

	user, err := svc.Create(context.Background(), userInput("ana@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user id to be assigned")
	}
	if user.EmailConfirmed {
		t.Fatal("expected email unconfirmed by default")
	}
	if _, err := repo.GetByEmail(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	if _, err := svc.Create(context.Background(), userInput("ana@example.com")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), userInput("ana@example.com"))
	assertStatus(t, err, http.StatusConflict)
}

func TestUserCreate_UnknownRole(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	input := userInput("ana@example.com")
	input.RoleID = 99
	_, err := svc.Create(context.Background(), input)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestUserUpdate_EmailCollision(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	ana, err := svc.Create(ctx, userInput("ana@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, userInput("bea@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(ctx, ana.ID, UserUpdateInput{
		FullName: ana.FullName,
		Email:    "bea@example.com",
		RoleID:   ana.RoleID,
	})
	assertStatus(t, err, http.StatusConflict)

	// Keeping the current email is not a collision.
	if _, err := svc.Update(ctx, ana.ID, UserUpdateInput{
		FullName: "Ana M. Lopez",
		Email:    "ana@example.com",
		RoleID:   ana.RoleID,
	}); err != nil {
		t.Fatalf("update with own email: %v", err)
	}
}

func TestUserUpdate_PatchSemantics(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	ctx := context.Background()

	input := userInput("ana@example.com")
	input.Photo = []byte{0x01}
	user, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Blank credential and nil photo leave stored values untouched.
	if _, err := svc.Update(ctx, user.ID, UserUpdateInput{
		FullName: user.FullName,
		Email:    user.Email,
		RoleID:   user.RoleID,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, _ := repo.GetByID(ctx, user.ID)
	if stored.Credential != "secreta" {
		t.Fatalf("credential overwritten: %q", stored.Credential)
	}
	if len(stored.Photo) != 1 {
		t.Fatalf("photo overwritten: %v", stored.Photo)
	}

	if _, err := svc.Update(ctx, user.ID, UserUpdateInput{
		FullName:   user.FullName,
		Email:      user.Email,
		RoleID:     user.RoleID,
		Credential: "nueva",
		Photo:      []byte{0x02, 0x03},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, _ = repo.GetByID(ctx, user.ID)
	if stored.Credential != "nueva" {
		t.Fatalf("credential not replaced: %q", stored.Credential)
	}
	if len(stored.Photo) != 2 {
		t.Fatalf("photo not replaced: %v", stored.Photo)
	}
}

func TestUserUpdate_NotFound(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.Update(context.Background(), 42, UserUpdateInput{Email: "x@example.com"})
	assertStatus(t, err, http.StatusNotFound)
}

func TestUserDelete(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, userInput("ana@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected user removed, got %d", len(repo.users))
	}
	assertStatus(t, svc.Delete(ctx, user.ID), http.StatusNotFound)
}

func TestUserAuthenticate(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, userInput("ana@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Unconfirmed email is rejected even with the right credential.
	_, _, _, err = svc.Authenticate(ctx, "ana@example.com", "secreta")
	assertStatus(t, err, http.StatusUnauthorized)

	if err := svc.ConfirmEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	_, _, _, err = svc.Authenticate(ctx, "ana@example.com", "equivocada")
	assertStatus(t, err, http.StatusUnauthorized)

	_, _, _, err = svc.Authenticate(ctx, "nadie@example.com", "secreta")
	assertStatus(t, err, http.StatusUnauthorized)

	got, token, exp, err := svc.Authenticate(ctx, "ana@example.com", "secreta")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, got.ID)
	}
	if token == "" || exp.IsZero() {
		t.Fatal("expected a signed token with expiry")
	}
}

func TestUserConfirmEmail(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, userInput("ana@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.ConfirmEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	stored, _ := repo.GetByID(ctx, user.ID)
	if !stored.EmailConfirmed {
		t.Fatal("expected email confirmed")
	}
	// Confirming twice is a no-op.
	if err := svc.ConfirmEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	assertStatus(t, svc.ConfirmEmail(ctx, "nadie@example.com"), http.StatusNotFound)
}

func TestUserUpdateCredential(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, userInput("ana@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.ConfirmEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := svc.UpdateCredential(ctx, "ana@example.com", "renovada"); err != nil {
		t.Fatalf("update credential: %v", err)
	}

	if _, _, _, err := svc.Authenticate(ctx, "ana@example.com", "secreta"); err == nil {
		t.Fatal("expected old credential rejected")
	}
	if _, _, _, err := svc.Authenticate(ctx, "ana@example.com", "renovada"); err != nil {
		t.Fatalf("authenticate with new credential: %v", err)
	}

	assertStatus(t, svc.UpdateCredential(ctx, "nadie@example.com", "x"), http.StatusNotFound)
}

// Full signup flow: register, fail login unconfirmed, confirm, log in.
func TestUserSignupScenario(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, userInput("cliente@example.com")); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, _, _, err := svc.Authenticate(ctx, "cliente@example.com", "secreta"); err == nil {
		t.Fatal("expected login rejected before confirmation")
	}
	if err := svc.ConfirmEmail(ctx, "cliente@example.com"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, _, _, err := svc.Authenticate(ctx, "cliente@example.com", "secreta"); err != nil {
		t.Fatalf("login after confirmation: %v", err)
	}
}
