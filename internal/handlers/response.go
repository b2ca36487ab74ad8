package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  apperrors "github.com/clausewise/clausewise-backend/internal/pkg/errors"
  "github.com/clausewise/clausewise-backend/internal/risk"
  "github.com/clausewise/clausewise-backend/internal/services"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
  Fields  any    `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  envelope := ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  }
  var vErr *risk.ValidationError
  if errors.As(err, &vErr) {
    envelope.Error.Fields = vErr.Fields
  }
  c.JSON(status, envelope)
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondMapped picks the HTTP status and code from the error chain.
func RespondMapped(c *gin.Context, err error) {
  var selErr *services.SelectionError
  var extErr *services.ExtractionError

  switch {
  case errors.Is(err, apperrors.ErrNotFound):
    RespondError(c, http.StatusNotFound, "not_found", err)
  case errors.Is(err, apperrors.ErrUnauthorized):
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
  case errors.Is(err, apperrors.ErrConflict):
    RespondError(c, http.StatusConflict, "conflict", err)
  case errors.Is(err, apperrors.ErrInvalidArgument):
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
  case errors.As(err, &selErr):
    RespondError(c, http.StatusBadRequest, "invalid_selection", err)
  case errors.As(err, &extErr):
    RespondError(c, http.StatusUnprocessableEntity, "extraction_failed", err)
  default:
    RespondError(c, http.StatusInternalServerError, "internal", err)
  }
}
