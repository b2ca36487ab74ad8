package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  apperrors "github.com/clausewise/clausewise-backend/internal/pkg/errors"
  "github.com/clausewise/clausewise-backend/internal/requestdata"
  "github.com/clausewise/clausewise-backend/internal/services"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type ClientHandler struct {
  clientService services.ClientService
}

func NewClientHandler(clientService services.ClientService) *ClientHandler {
  return &ClientHandler{clientService: clientService}
}

func currentUserID(c *gin.Context) (uuid.UUID, error) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    return uuid.Nil, fmt.Errorf("no authenticated user: %w", apperrors.ErrUnauthorized)
  }
  return rd.UserID, nil
}

type clientRequest struct {
  Name           string  `json:"name"`
  Company        string  `json:"company"`
  Email          string  `json:"email"`
  Notes          string  `json:"notes"`
  HealthScore    int     `json:"health_score"`
  SentimentTrend string  `json:"sentiment_trend"`
  TotalRevenue   float64 `json:"total_revenue"`
}

func (ch *ClientHandler) Create(c *gin.Context) {
  userID, err := currentUserID(c)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  var req clientRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  client := types.Client{
    Name:           req.Name,
    Company:        req.Company,
    Email:          req.Email,
    Notes:          req.Notes,
    HealthScore:    req.HealthScore,
    SentimentTrend: req.SentimentTrend,
    TotalRevenue:   req.TotalRevenue,
  }
  created, err := ch.clientService.CreateClient(c.Request.Context(), userID, &client)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"client": created})
}

func (ch *ClientHandler) List(c *gin.Context) {
  userID, err := currentUserID(c)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  clients, err := ch.clientService.ListClients(c.Request.Context(), userID)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"clients": clients})
}

func (ch *ClientHandler) Get(c *gin.Context) {
  userID, err := currentUserID(c)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  clientID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  client, err := ch.clientService.GetClient(c.Request.Context(), userID, clientID)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"client": client})
}

func (ch *ClientHandler) Update(c *gin.Context) {
  userID, err := currentUserID(c)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  clientID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var req clientRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  client := types.Client{
    ID:             clientID,
    Name:           req.Name,
    Company:        req.Company,
    Email:          req.Email,
    Notes:          req.Notes,
    HealthScore:    req.HealthScore,
    SentimentTrend: req.SentimentTrend,
    TotalRevenue:   req.TotalRevenue,
  }
  updated, err := ch.clientService.UpdateClient(c.Request.Context(), userID, &client)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"client": updated})
}

func (ch *ClientHandler) Delete(c *gin.Context) {
  userID, err := currentUserID(c)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  clientID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  if err := ch.clientService.DeleteClient(c.Request.Context(), userID, clientID); err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
