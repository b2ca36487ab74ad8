package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/clausewise/clausewise-backend/internal/clients/openai"
  "github.com/clausewise/clausewise-backend/internal/clients/redis"
  "github.com/clausewise/clausewise-backend/internal/logger"
  "github.com/clausewise/clausewise-backend/internal/prompts"
  "github.com/clausewise/clausewise-backend/internal/repos"
  "github.com/clausewise/clausewise-backend/internal/types"
)

const (
  brainMaxContracts = 5
  brainMaxClients   = 10
  brainCacheTTL     = 60 * time.Second
)

type ForensicInsights struct {
  RiskLevel   string   `json:"riskLevel"`
  Summary     string   `json:"summary"`
  KeyFindings []string `json:"keyFindings"`
  ActionItems []string `json:"actionItems"`
}

type FinancialInsights struct {
  Outlook          string   `json:"outlook"`
  ProjectedRevenue string   `json:"projectedRevenue"`
  OpportunityAreas []string `json:"opportunityAreas"`
}

type BrainInsights struct {
  Forensic  ForensicInsights  `json:"forensic"`
  Financial FinancialInsights `json:"financial"`
}

// FallbackInsights is the exact payload served whenever synthesis fails.
// Callers learn about degradation from the separate boolean, never from
// the payload shape.
func FallbackInsights() BrainInsights {
  return BrainInsights{
    Forensic: ForensicInsights{
      RiskLevel:   "LOW",
      Summary:     "Unable to generate real-time analysis.",
      KeyFindings: []string{"System is currently offline or disconnected."},
      ActionItems: []string{"Check back later."},
    },
    Financial: FinancialInsights{
      Outlook:          "NEUTRAL",
      ProjectedRevenue: "N/A",
      OpportunityAreas: []string{},
    },
  }
}

type BrainService interface {
  GetInsights(ctx context.Context, userID uuid.UUID) (BrainInsights, bool, error)
}

type brainService struct {
  db           *gorm.DB
  log          *logger.Logger
  ai           openai.Client
  analysisRepo repos.ContractAnalysisRepo
  contractRepo repos.ContractRepo
  clientRepo   repos.ClientRepo
  callLogRepo  repos.AICallLogRepo
  cache        redis.Cache
}

func NewBrainService(
  db *gorm.DB,
  log *logger.Logger,
  ai openai.Client,
  analysisRepo repos.ContractAnalysisRepo,
  contractRepo repos.ContractRepo,
  clientRepo repos.ClientRepo,
  callLogRepo repos.AICallLogRepo,
  cache redis.Cache,
) BrainService {
  serviceLog := log.With("service", "BrainService")
  return &brainService{
    db:           db,
    log:          serviceLog,
    ai:           ai,
    analysisRepo: analysisRepo,
    contractRepo: contractRepo,
    clientRepo:   clientRepo,
    callLogRepo:  callLogRepo,
    cache:        cache,
  }
}

// GetInsights serves a short-lived cached copy of a genuine synthesis when
// available. Fallback results are never cached.
func (bs *brainService) GetInsights(ctx context.Context, userID uuid.UUID) (BrainInsights, bool, error) {
  cacheKey := "brain:insights:" + userID.String()

  if bs.cache != nil {
    var cached BrainInsights
    if err := bs.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
      return cached, false, nil
    } else if !errors.Is(err, redis.ErrCacheMiss) {
      bs.log.Warn("Brain cache read failed", "error", err)
    }
  }

  insights, degraded := bs.synthesize(ctx, userID)
  if !degraded && bs.cache != nil {
    if err := bs.cache.SetJSON(ctx, cacheKey, insights, brainCacheTTL); err != nil {
      bs.log.Warn("Brain cache write failed", "error", err)
    }
  }
  return insights, degraded, nil
}

// synthesize makes exactly one external call and recovers every failure to
// the fixed fallback. No retry, no caching at this layer.
func (bs *brainService) synthesize(ctx context.Context, userID uuid.UUID) (BrainInsights, bool) {
  contractsJSON, clientsJSON, err := bs.portfolioContext(ctx, userID)
  if err != nil {
    bs.log.Warn("Brain portfolio context failed", "error", err)
    return FallbackInsights(), true
  }

  prompt, pErr := prompts.Build(prompts.PromptBrainInsights, prompts.Input{
    ContractsJSON: contractsJSON,
    ClientsJSON:   clientsJSON,
  })
  if pErr != nil {
    bs.log.Warn("Brain prompt build failed", "error", pErr)
    return FallbackInsights(), true
  }

  start := time.Now()
  obj, usage, genErr := bs.ai.GenerateJSON(ctx, prompt.System, prompt.User, prompt.SchemaName, prompt.Schema)
  bs.logCall(ctx, userID, string(prompts.PromptBrainInsights), obj, usage, time.Since(start), genErr)
  if genErr != nil {
    bs.log.Warn("Brain synthesis call failed", "error", genErr)
    return FallbackInsights(), true
  }

  raw, mErr := json.Marshal(obj)
  if mErr != nil {
    bs.log.Warn("Brain response encode failed", "error", mErr)
    return FallbackInsights(), true
  }
  var insights BrainInsights
  if uErr := json.Unmarshal(raw, &insights); uErr != nil {
    bs.log.Warn("Brain response decode failed", "error", uErr)
    return FallbackInsights(), true
  }
  if insights.Forensic.Summary == "" || insights.Financial.Outlook == "" {
    bs.log.Warn("Brain response missing required fields")
    return FallbackInsights(), true
  }
  if insights.Forensic.KeyFindings == nil {
    insights.Forensic.KeyFindings = []string{}
  }
  if insights.Forensic.ActionItems == nil {
    insights.Forensic.ActionItems = []string{}
  }
  if insights.Financial.OpportunityAreas == nil {
    insights.Financial.OpportunityAreas = []string{}
  }
  return insights, false
}

type brainContractContext struct {
  Title            string `json:"title"`
  Status           string `json:"status"`
  OverallRiskScore int    `json:"overallRiskScore"`
  Summary          string `json:"summary"`
  RedFlags         any    `json:"redFlags,omitempty"`
}

type brainClientContext struct {
  Name           string  `json:"name"`
  HealthScore    int     `json:"healthScore"`
  SentimentTrend string  `json:"sentimentTrend"`
  TotalRevenue   float64 `json:"totalRevenue"`
}

func (bs *brainService) portfolioContext(ctx context.Context, userID uuid.UUID) (string, string, error) {
  analyses, err := bs.analysisRepo.ListByUser(ctx, nil, userID, brainMaxContracts)
  if err != nil {
    return "", "", fmt.Errorf("Failed to list analyses: %w", err)
  }
  clients, err := bs.clientRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return "", "", fmt.Errorf("Failed to list clients: %w", err)
  }
  if len(clients) > brainMaxClients {
    clients = clients[:brainMaxClients]
  }

  contractCtx := make([]brainContractContext, 0, len(analyses))
  for _, a := range analyses {
    entry := brainContractContext{
      OverallRiskScore: a.OverallRiskScore,
      Summary:          a.Summary,
    }
    if contract, cErr := bs.contractRepo.GetByID(ctx, nil, a.ContractID); cErr == nil {
      entry.Title = contract.Title
      entry.Status = contract.Status
    }
    if len(a.RedFlags) > 0 {
      var flags []string
      if uErr := json.Unmarshal(a.RedFlags, &flags); uErr == nil {
        entry.RedFlags = flags
      }
    }
    contractCtx = append(contractCtx, entry)
  }

  clientCtx := make([]brainClientContext, 0, len(clients))
  for _, c := range clients {
    clientCtx = append(clientCtx, brainClientContext{
      Name:           c.Name,
      HealthScore:    c.HealthScore,
      SentimentTrend: c.SentimentTrend,
      TotalRevenue:   c.TotalRevenue,
    })
  }

  contractsJSON, mErr := json.Marshal(contractCtx)
  if mErr != nil {
    return "", "", mErr
  }
  clientsJSON, mErr := json.Marshal(clientCtx)
  if mErr != nil {
    return "", "", mErr
  }
  return string(contractsJSON), string(clientsJSON), nil
}

func (bs *brainService) logCall(ctx context.Context, userID uuid.UUID, callType string, response any, usage openai.Usage, latency time.Duration, callErr error) {
  row := &types.AICallLog{
    ID:        uuid.New(),
    UserID:    &userID,
    CallType:  callType,
    Model:     bs.ai.Model(),
    Success:   callErr == nil,
    LatencyMS: latency.Milliseconds(),
  }
  if callErr != nil {
    row.Error = callErr.Error()
  }
  if response != nil {
    if raw, err := json.Marshal(response); err == nil {
      row.Response = string(raw)
    }
  }
  if raw, err := json.Marshal(usage); err == nil {
    row.Usage = datatypes.JSON(raw)
  }
  if _, err := bs.callLogRepo.Create(ctx, nil, []*types.AICallLog{row}); err != nil {
    bs.log.Warn("Failed to write AI call log", "error", err)
  }
}
