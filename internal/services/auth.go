package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/clausewise/clausewise-backend/internal/logger"
  apperrors "github.com/clausewise/clausewise-backend/internal/pkg/errors"
  "github.com/clausewise/clausewise-backend/internal/repos"
  "github.com/clausewise/clausewise-backend/internal/requestdata"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type JWTClaims struct {
  jwt.RegisteredClaims
}

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) (*types.User, string, error)
  LoginUser(ctx context.Context, email, password string) (*types.User, string, error)
  CurrentUser(ctx context.Context) (*types.User, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  jwtSecretKey string
  accessTTL    time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    accessTTL:    accessTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) (*types.User, string, error) {
  user.Email = strings.ToLower(strings.TrimSpace(user.Email))
  user.FirstName = strings.TrimSpace(user.FirstName)
  user.LastName = strings.TrimSpace(user.LastName)

  if user.Email == "" || !strings.Contains(user.Email, "@") {
    return nil, "", fmt.Errorf("valid email required: %w", apperrors.ErrInvalidArgument)
  }
  if len(user.Password) < 8 {
    return nil, "", fmt.Errorf("password must be at least 8 characters: %w", apperrors.ErrInvalidArgument)
  }
  if user.FirstName == "" {
    return nil, "", fmt.Errorf("first name required: %w", apperrors.ErrInvalidArgument)
  }

  exists, exErr := as.userRepo.EmailExists(ctx, nil, user.Email)
  if exErr != nil {
    return nil, "", fmt.Errorf("Failed to check email: %w", exErr)
  }
  if exists {
    return nil, "", fmt.Errorf("email already registered: %w", apperrors.ErrConflict)
  }

  hash, hErr := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if hErr != nil {
    return nil, "", fmt.Errorf("Failed to hash password: %w", hErr)
  }
  user.Password = string(hash)
  user.ID = uuid.New()

  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    _, cErr := as.userRepo.Create(ctx, tx, []*types.User{user})
    return cErr
  }); err != nil {
    return nil, "", fmt.Errorf("Failed to create user: %w", err)
  }

  token, tErr := as.generateAccessToken(user)
  if tErr != nil {
    return nil, "", fmt.Errorf("Failed to generate access token: %w", tErr)
  }
  return user, token, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*types.User, string, error) {
  email = strings.ToLower(strings.TrimSpace(email))
  if email == "" || password == "" {
    return nil, "", fmt.Errorf("email and password required: %w", apperrors.ErrInvalidArgument)
  }

  user, uErr := as.userRepo.GetByEmail(ctx, nil, email)
  if uErr != nil {
    return nil, "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
  }
  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return nil, "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
  }

  token, tErr := as.generateAccessToken(user)
  if tErr != nil {
    return nil, "", fmt.Errorf("Failed to generate access token: %w", tErr)
  }
  return user, token, nil
}

func (as *authService) CurrentUser(ctx context.Context) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("no request data in context: %w", apperrors.ErrUnauthorized)
  }
  user, err := as.userRepo.GetByID(ctx, nil, rd.UserID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  return user, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, fmt.Errorf("empty token: %w", apperrors.ErrUnauthorized)
  }
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("Failed to parse token: %w", apperrors.ErrUnauthorized)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("invalid or expired token: %w", apperrors.ErrUnauthorized)
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("invalid user id in token: %w", apperrors.ErrUnauthorized)
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}
