package services

import (
  "context"
  "errors"
  "testing"
  "time"

  "gorm.io/gorm"

  apperrors "github.com/clausewise/clausewise-backend/internal/pkg/errors"
  "github.com/clausewise/clausewise-backend/internal/repos"
  "github.com/clausewise/clausewise-backend/internal/requestdata"
  "github.com/clausewise/clausewise-backend/internal/types"
)

func newAuthFixture(t *testing.T) (AuthService, *gorm.DB) {
  t.Helper()
  db := newTestDB(t)
  log := newTestLogger(t)
  userRepo := repos.NewUserRepo(db, log)
  return NewAuthService(db, log, userRepo, "test-secret", time.Hour), db
}

func TestRegisterAndLogin(t *testing.T) {
  svc, _ := newAuthFixture(t)

  user, token, err := svc.RegisterUser(context.Background(), &types.User{
    Email:     "Jane@Example.com",
    Password:  "s3cret-password",
    FirstName: "Jane",
    LastName:  "Doe",
  })
  if err != nil {
    t.Fatalf("register: %v", err)
  }
  if token == "" {
    t.Fatalf("register must return a token")
  }
  if user.Email != "jane@example.com" {
    t.Fatalf("email not normalized: %q", user.Email)
  }
  if user.Password == "s3cret-password" {
    t.Fatalf("password stored in plaintext")
  }

  logged, token, err := svc.LoginUser(context.Background(), "jane@example.com", "s3cret-password")
  if err != nil {
    t.Fatalf("login: %v", err)
  }
  if logged.ID != user.ID {
    t.Fatalf("login returned wrong user")
  }

  ctx, err := svc.SetContextFromToken(context.Background(), token)
  if err != nil {
    t.Fatalf("set context from token: %v", err)
  }
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID != user.ID {
    t.Fatalf("request data not populated from token")
  }

  current, err := svc.CurrentUser(ctx)
  if err != nil {
    t.Fatalf("current user: %v", err)
  }
  if current.ID != user.ID {
    t.Fatalf("current user mismatch")
  }
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
  svc, _ := newAuthFixture(t)

  seed := types.User{Email: "jane@example.com", Password: "s3cret-password", FirstName: "Jane"}
  first := seed
  if _, _, err := svc.RegisterUser(context.Background(), &first); err != nil {
    t.Fatalf("register: %v", err)
  }
  second := seed
  _, _, err := svc.RegisterUser(context.Background(), &second)
  if !errors.Is(err, apperrors.ErrConflict) {
    t.Fatalf("expected conflict, got %v", err)
  }
}

func TestRegisterValidation(t *testing.T) {
  svc, _ := newAuthFixture(t)

  cases := []types.User{
    {Email: "not-an-email", Password: "s3cret-password", FirstName: "Jane"},
    {Email: "jane@example.com", Password: "short", FirstName: "Jane"},
    {Email: "jane@example.com", Password: "s3cret-password", FirstName: "  "},
  }
  for _, c := range cases {
    u := c
    if _, _, err := svc.RegisterUser(context.Background(), &u); !errors.Is(err, apperrors.ErrInvalidArgument) {
      t.Fatalf("expected invalid argument for %+v, got %v", c, err)
    }
  }
}

func TestLoginRejectsBadCredentials(t *testing.T) {
  svc, _ := newAuthFixture(t)

  u := types.User{Email: "jane@example.com", Password: "s3cret-password", FirstName: "Jane"}
  if _, _, err := svc.RegisterUser(context.Background(), &u); err != nil {
    t.Fatalf("register: %v", err)
  }

  if _, _, err := svc.LoginUser(context.Background(), "jane@example.com", "wrong-password"); !errors.Is(err, apperrors.ErrUnauthorized) {
    t.Fatalf("expected unauthorized for wrong password, got %v", err)
  }
  if _, _, err := svc.LoginUser(context.Background(), "nobody@example.com", "s3cret-password"); !errors.Is(err, apperrors.ErrUnauthorized) {
    t.Fatalf("expected unauthorized for unknown email, got %v", err)
  }
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
  svc, _ := newAuthFixture(t)

  if _, err := svc.SetContextFromToken(context.Background(), ""); !errors.Is(err, apperrors.ErrUnauthorized) {
    t.Fatalf("expected unauthorized for empty token, got %v", err)
  }
  if _, err := svc.SetContextFromToken(context.Background(), "not.a.token"); !errors.Is(err, apperrors.ErrUnauthorized) {
    t.Fatalf("expected unauthorized for malformed token, got %v", err)
  }
}
