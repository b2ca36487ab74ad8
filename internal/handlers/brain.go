package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/clausewise/clausewise-backend/internal/services"
)

type BrainHandler struct {
  brainService services.BrainService
}

func NewBrainHandler(brainService services.BrainService) *BrainHandler {
  return &BrainHandler{brainService: brainService}
}

func (bh *BrainHandler) GetInsights(c *gin.Context) {
  userID, err := currentUserID(c)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  insights, degraded, err := bh.brainService.GetInsights(c.Request.Context(), userID)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  status := "ok"
  if degraded {
    status = "unavailable"
  }
  RespondOK(c, gin.H{"insights": insights, "status": status})
}
