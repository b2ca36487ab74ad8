package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/clausewise/clausewise-backend/internal/services"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type ContractHandler struct {
  contractService   services.ContractService
  extractionService services.ExtractionService
}

func NewContractHandler(contractService services.ContractService, extractionService services.ExtractionService) *ContractHandler {
  return &ContractHandler{
    contractService:   contractService,
    extractionService: extractionService,
  }
}

func (ch *ContractHandler) Create(c *gin.Context) {
  userID, err := currentUserID(c)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  var req struct {
    Title        string  `json:"title"`
    ClientID     *string `json:"client_id"`
    FileName     string  `json:"file_name"`
    MimeType     string  `json:"mime_type"`
    DocumentText string  `json:"document_text"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  contract := types.Contract{
    Title:        req.Title,
    FileName:     req.FileName,
    MimeType:     req.MimeType,
    DocumentText: req.DocumentText,
  }
  if req.ClientID != nil && *req.ClientID != "" {
    clientID, pErr := uuid.Parse(*req.ClientID)
    if pErr != nil {
      RespondError(c, http.StatusBadRequest, "invalid_client_id", pErr)
      return
    }
    contract.ClientID = &clientID
  }
  created, err := ch.contractService.CreateContract(c.Request.Context(), userID, &contract)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"contract": created})
}

func (ch *ContractHandler) List(c *gin.Context) {
  userID, err := currentUserID(c)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  contracts, err := ch.contractService.ListContracts(c.Request.Context(), userID)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"contracts": contracts})
}

func (ch *ContractHandler) Get(c *gin.Context) {
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
  contract, err := ch.contractService.GetContract(c.Request.Context(), userID, contractID)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"contract": contract})
}

func (ch *ContractHandler) Delete(c *gin.Context) {
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
  if err := ch.contractService.DeleteContract(c.Request.Context(), userID, contractID); err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

// Analyze runs the extraction engine over the supplied document text. A
// failed extraction persists nothing and leaves the contract untouched.
func (ch *ContractHandler) Analyze(c *gin.Context) {
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
    DocumentText string `json:"document_text"`
    FileName     string `json:"file_name"`
    MimeType     string `json:"mime_type"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  view, err := ch.extractionService.AnalyzeContract(c.Request.Context(), userID, contractID, req.DocumentText, req.FileName, req.MimeType)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"analysis": view})
}

func (ch *ContractHandler) GetAnalysis(c *gin.Context) {
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
  view, err := ch.contractService.GetAnalysis(c.Request.Context(), userID, contractID)
  if err != nil {
    RespondMapped(c, err)
    return
  }
  RespondOK(c, gin.H{"analysis": view})
}
