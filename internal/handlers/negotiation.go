package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/clausewise/clausewise-backend/internal/services"
)

type NegotiationHandler struct {
  negotiationService services.NegotiationService
}

func NewNegotiationHandler(negotiationService services.NegotiationService) *NegotiationHandler {
  return &NegotiationHandler{negotiationService: negotiationService}
}

func (nh *NegotiationHandler) Compose(c *gin.Context) {
  userID, err := currentUserID(c)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  contractID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var req struct {
    FindingIDs []string `json:"finding_ids"`
    Tone       string   `json:"tone"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  findingIDs := make([]uuid.UUID, 0, len(req.FindingIDs))
  for _, raw := range req.FindingIDs {
    id, pErr := uuid.Parse(raw)
    if pErr != nil {
      RespondError(c, http.StatusBadRequest, "invalid_finding_id", pErr)
      return
    }
    findingIDs = append(findingIDs, id)
  }
  email, err := nh.negotiationService.ComposeEmail(c.Request.Context(), userID, contractID, findingIDs, req.Tone)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"email": email, "tone": req.Tone})
}
