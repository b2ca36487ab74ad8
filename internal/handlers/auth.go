package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/clausewise/clausewise-backend/internal/services"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Email        string `json:"email"`
    FirstName    string `json:"first_name"`
    LastName     string `json:"last_name"`
    BusinessName string `json:"business_name"`
    Password     string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  user := types.User{
    Email:        req.Email,
    FirstName:    req.FirstName,
    LastName:     req.LastName,
    BusinessName: req.BusinessName,
    Password:     req.Password,
  }
  created, token, err := ah.authService.RegisterUser(c.Request.Context(), &user)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"user": created, "access_token": token})
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  user, token, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"user": user, "access_token": token})
}

func (ah *AuthHandler) GetMe(c *gin.Context) {
  user, err := ah.authService.CurrentUser(c.Request.Context())
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}
