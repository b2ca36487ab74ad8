package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/singleflight"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/clausewise/clausewise-backend/internal/clients/openai"
  "github.com/clausewise/clausewise-backend/internal/logger"
  apperrors "github.com/clausewise/clausewise-backend/internal/pkg/errors"
  "github.com/clausewise/clausewise-backend/internal/prompts"
  "github.com/clausewise/clausewise-backend/internal/repos"
  "github.com/clausewise/clausewise-backend/internal/risk"
  "github.com/clausewise/clausewise-backend/internal/types"
)

const extractionPromptVersion = 1

type ExtractionService interface {
  AnalyzeContract(ctx context.Context, userID, contractID uuid.UUID, documentText, fileName, mimeType string) (*AnalysisView, error)
}

type extractionService struct {
  db           *gorm.DB
  log          *logger.Logger
  ai           openai.Client
  contractRepo repos.ContractRepo
  analysisRepo repos.ContractAnalysisRepo
  findingRepo  repos.RiskFindingRepo
  callLogRepo  repos.AICallLogRepo
  weights      risk.WeightTable

  // Coalesces concurrent identical extractions by document fingerprint.
  group singleflight.Group
}

func NewExtractionService(
  db *gorm.DB,
  log *logger.Logger,
  ai openai.Client,
  contractRepo repos.ContractRepo,
  analysisRepo repos.ContractAnalysisRepo,
  findingRepo repos.RiskFindingRepo,
  callLogRepo repos.AICallLogRepo,
  weights risk.WeightTable,
) ExtractionService {
  serviceLog := log.With("service", "ExtractionService")
  return &extractionService{
    db:           db,
    log:          serviceLog,
    ai:           ai,
    contractRepo: contractRepo,
    analysisRepo: analysisRepo,
    findingRepo:  findingRepo,
    callLogRepo:  callLogRepo,
    weights:      weights,
  }
}

func (es *extractionService) AnalyzeContract(ctx context.Context, userID, contractID uuid.UUID, documentText, fileName, mimeType string) (*AnalysisView, error) {
  documentText = strings.TrimSpace(documentText)
  if documentText == "" {
    return nil, fmt.Errorf("document text required: %w", apperrors.ErrInvalidArgument)
  }

  contract, err := es.contractRepo.GetByID(ctx, nil, contractID)
  if err != nil {
    return nil, err
  }
  if contract.UserID != userID {
    return nil, fmt.Errorf("contract not owned by user: %w", apperrors.ErrNotFound)
  }

  fingerprint := DocumentFingerprint(documentText)

  analysis, err, _ := es.group.Do(fingerprint, func() (any, error) {
    return es.extract(ctx, userID, documentText, fileName, mimeType)
  })
  if err != nil {
    return nil, err
  }
  validated := analysis.(*risk.Analysis)

  return es.persist(ctx, userID, contract, fingerprint, documentText, validated)
}

// extract runs exactly one structured-generation call and validates the
// candidate. Persistence happens in the caller so coalesced requests each
// write their own contract's rows.
func (es *extractionService) extract(ctx context.Context, userID uuid.UUID, documentText, fileName, mimeType string) (*risk.Analysis, error) {
  prompt, err := prompts.Build(prompts.PromptContractExtraction, prompts.Input{
    DocumentText: documentText,
    FileName:     fileName,
    MimeType:     mimeType,
  })
  if err != nil {
    return nil, &ExtractionError{Stage: "generate", Err: err}
  }

  start := time.Now()
  obj, usage, genErr := es.ai.GenerateJSON(ctx, prompt.System, prompt.User, prompt.SchemaName, prompt.Schema)
  es.logCall(ctx, userID, string(prompts.PromptContractExtraction), obj, usage, time.Since(start), genErr)
  if genErr != nil {
    return nil, &ExtractionError{Stage: "generate", Err: genErr}
  }

  raw, mErr := json.Marshal(obj)
  if mErr != nil {
    return nil, &ExtractionError{Stage: "decode", Err: mErr}
  }
  var candidate risk.Candidate
  if uErr := json.Unmarshal(raw, &candidate); uErr != nil {
    return nil, &ExtractionError{Stage: "decode", Err: uErr}
  }

  validated, vErr := risk.ValidateCandidate(candidate, es.weights)
  if vErr != nil {
    return nil, &ExtractionError{Stage: "validate", Err: vErr}
  }
  return validated, nil
}

func (es *extractionService) persist(ctx context.Context, userID uuid.UUID, contract *types.Contract, fingerprint, documentText string, validated *risk.Analysis) (*AnalysisView, error) {
  parties, _ := json.Marshal(validated.Parties)
  financials, _ := json.Marshal(validated.Financials)
  scope, _ := json.Marshal(validated.Scope)
  dates, _ := json.Marshal(validated.Dates)
  redFlags, _ := json.Marshal(validated.RedFlags)

  analysisRow := &types.ContractAnalysis{
    ID:               uuid.New(),
    ContractID:       contract.ID,
    UserID:           userID,
    Summary:          validated.Summary,
    Parties:          datatypes.JSON(parties),
    Financials:       datatypes.JSON(financials),
    Scope:            datatypes.JSON(scope),
    Dates:            datatypes.JSON(dates),
    RedFlags:         datatypes.JSON(redFlags),
    OverallRiskScore: validated.OverallRiskScore,
    PromptVersion:    extractionPromptVersion,
  }

  findingRows := make([]*types.RiskFinding, 0, len(validated.Risks))
  for i, f := range validated.Risks {
    findingRows = append(findingRows, &types.RiskFinding{
      ID:                uuid.New(),
      AnalysisID:        analysisRow.ID,
      ContractID:        contract.ID,
      Position:          i,
      Clause:            f.Clause,
      Category:          string(f.Category),
      Severity:          string(f.Severity),
      Explanation:       f.Explanation,
      Recommendation:    f.Recommendation,
      SuggestedRevision: f.SuggestedRevision,
    })
  }

  if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    // Re-analysis replaces the previous analysis wholesale.
    if err := es.findingRepo.DeleteByContractID(ctx, tx, contract.ID); err != nil {
      return err
    }
    if err := es.analysisRepo.DeleteByContractID(ctx, tx, contract.ID); err != nil {
      return err
    }
    if _, err := es.analysisRepo.Create(ctx, tx, analysisRow); err != nil {
      return err
    }
    if _, err := es.findingRepo.Create(ctx, tx, findingRows); err != nil {
      return err
    }
    contract.DocumentText = documentText
    contract.DocumentSHA256 = fingerprint
    contract.Status = types.ContractStatusAnalyzed
    if _, err := es.contractRepo.Update(ctx, tx, contract); err != nil {
      return err
    }
    return nil
  }); err != nil {
    return nil, fmt.Errorf("Failed to persist analysis: %w", err)
  }

  return AssembleAnalysisView(analysisRow, findingRows)
}

func (es *extractionService) logCall(ctx context.Context, userID uuid.UUID, callType string, response any, usage openai.Usage, latency time.Duration, callErr error) {
  row := &types.AICallLog{
    ID:        uuid.New(),
    UserID:    &userID,
    CallType:  callType,
    Model:     es.ai.Model(),
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
  if _, err := es.callLogRepo.Create(ctx, nil, []*types.AICallLog{row}); err != nil {
    es.log.Warn("Failed to write AI call log", "error", err)
  }
}
