package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/clausewise/clausewise-backend/internal/clients/openai"
  "github.com/clausewise/clausewise-backend/internal/logger"
  "github.com/clausewise/clausewise-backend/internal/prompts"
  "github.com/clausewise/clausewise-backend/internal/repos"
  "github.com/clausewise/clausewise-backend/internal/types"
)

// Tones accepted by ComposeEmail.
const (
  ToneProfessional = "professional"
  ToneFriendly     = "friendly"
  ToneFirm         = "firm"
)

type negotiationIssue struct {
  Category          string `json:"category"`
  Clause            string `json:"clause"`
  Explanation       string `json:"explanation"`
  Recommendation    string `json:"recommendation"`
  SuggestedRevision string `json:"suggestedRevision,omitempty"`
}

type NegotiationService interface {
  ComposeEmail(ctx context.Context, userID, contractID uuid.UUID, findingIDs []uuid.UUID, tone string) (string, error)
}

type negotiationService struct {
  db              *gorm.DB
  log             *logger.Logger
  ai              openai.Client
  contractService ContractService
  clientRepo      repos.ClientRepo
  userRepo        repos.UserRepo
  callLogRepo     repos.AICallLogRepo
}

func NewNegotiationService(
  db *gorm.DB,
  log *logger.Logger,
  ai openai.Client,
  contractService ContractService,
  clientRepo repos.ClientRepo,
  userRepo repos.UserRepo,
  callLogRepo repos.AICallLogRepo,
) NegotiationService {
  serviceLog := log.With("service", "NegotiationService")
  return &negotiationService{
    db:              db,
    log:             serviceLog,
    ai:              ai,
    contractService: contractService,
    clientRepo:      clientRepo,
    userRepo:        userRepo,
    callLogRepo:     callLogRepo,
  }
}

func (ns *negotiationService) ComposeEmail(ctx context.Context, userID, contractID uuid.UUID, findingIDs []uuid.UUID, tone string) (string, error) {
  tone = strings.ToLower(strings.TrimSpace(tone))
  if tone == "" {
    tone = ToneProfessional
  }
  if tone != ToneProfessional && tone != ToneFriendly && tone != ToneFirm {
    return "", &SelectionError{Reason: fmt.Sprintf("unsupported tone %q", tone)}
  }
  if len(findingIDs) == 0 {
    return "", &SelectionError{Reason: "no findings selected"}
  }

  contract, err := ns.contractService.GetContract(ctx, userID, contractID)
  if err != nil {
    return "", err
  }
  view, err := ns.contractService.GetAnalysis(ctx, userID, contractID)
  if err != nil {
    return "", err
  }

  byID := make(map[uuid.UUID]FindingView, len(view.Findings))
  for _, f := range view.Findings {
    byID[f.ID] = f
  }

  // Selection must resolve entirely before the external call; caller order
  // is preserved in the issue list.
  issues := make([]negotiationIssue, 0, len(findingIDs))
  var missing []string
  for _, id := range findingIDs {
    f, ok := byID[id]
    if !ok {
      missing = append(missing, id.String())
      continue
    }
    issues = append(issues, negotiationIssue{
      Category:          string(f.Category),
      Clause:            f.Clause,
      Explanation:       f.Explanation,
      Recommendation:    f.Recommendation,
      SuggestedRevision: f.SuggestedRevision,
    })
  }
  if len(missing) > 0 {
    return "", &SelectionError{Reason: "findings not part of this analysis", Missing: missing}
  }

  clientName := view.Parties.Client.Name
  if contract.ClientID != nil {
    if clientRow, cErr := ns.clientRepo.GetByID(ctx, nil, *contract.ClientID); cErr == nil && clientRow.UserID == userID {
      clientName = clientRow.Name
    }
  }
  contractorName := view.Parties.Contractor.Name
  if user, uErr := ns.userRepo.GetByID(ctx, nil, userID); uErr == nil {
    contractorName = strings.TrimSpace(user.FirstName + " " + user.LastName)
  }

  issuesJSON, mErr := json.Marshal(issues)
  if mErr != nil {
    return "", fmt.Errorf("Failed to encode issues: %w", mErr)
  }

  prompt, pErr := prompts.Build(prompts.PromptNegotiationEmail, prompts.Input{
    ClientName:     clientName,
    ContractorName: contractorName,
    ContractTitle:  contract.Title,
    Tone:           tone,
    IssuesJSON:     string(issuesJSON),
  })
  if pErr != nil {
    return "", fmt.Errorf("Failed to build negotiation prompt: %w", pErr)
  }

  start := time.Now()
  email, usage, genErr := ns.ai.GenerateText(ctx, prompt.System, prompt.User)
  ns.logCall(ctx, userID, contractID, string(prompts.PromptNegotiationEmail), email, usage, time.Since(start), genErr)
  if genErr != nil {
    return "", fmt.Errorf("Failed to compose negotiation email: %w", genErr)
  }

  return strings.TrimSpace(email), nil
}

func (ns *negotiationService) logCall(ctx context.Context, userID, contractID uuid.UUID, callType, response string, usage openai.Usage, latency time.Duration, callErr error) {
  row := &types.AICallLog{
    ID:         uuid.New(),
    UserID:     &userID,
    ContractID: &contractID,
    CallType:   callType,
    Model:      ns.ai.Model(),
    Response:   response,
    Success:    callErr == nil,
    LatencyMS:  latency.Milliseconds(),
  }
  if callErr != nil {
    row.Error = callErr.Error()
  }
  if raw, err := json.Marshal(usage); err == nil {
    row.Usage = datatypes.JSON(raw)
  }
  if _, err := ns.callLogRepo.Create(ctx, nil, []*types.AICallLog{row}); err != nil {
    ns.log.Warn("Failed to write AI call log", "error", err)
  }
}
