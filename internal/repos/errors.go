package repos

import (
  "errors"
  "strings"

  "github.com/jackc/pgx/v5/pgconn"
  "gorm.io/gorm"
  apperrors "github.com/clausewise/clausewise-backend/internal/pkg/errors"
)

// MapError normalizes driver failures into the shared sentinel errors so
// services and handlers never inspect pg error codes directly.
func MapError(err error) error {
  if err == nil {
    return nil
  }
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return errors.Join(apperrors.ErrNotFound, err)
  }

  var pgErr *pgconn.PgError
  if errors.As(err, &pgErr) {
    switch strings.TrimSpace(pgErr.Code) {
    case "23505":
      return errors.Join(apperrors.ErrConflict, err) // unique_violation
    case "23503", "23502", "23514":
      return errors.Join(apperrors.ErrInvalidArgument, err)
    }
    return err
  }

  msg := strings.ToLower(err.Error())
  if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") {
    return errors.Join(apperrors.ErrConflict, err)
  }
  return err
}
