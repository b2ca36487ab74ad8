package services

import (
  "context"
  "crypto/sha256"
  "encoding/hex"
  "encoding/json"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/clausewise/clausewise-backend/internal/logger"
  apperrors "github.com/clausewise/clausewise-backend/internal/pkg/errors"
  "github.com/clausewise/clausewise-backend/internal/repos"
  "github.com/clausewise/clausewise-backend/internal/risk"
  "github.com/clausewise/clausewise-backend/internal/types"
)

// FindingView is a persisted finding plus its row identity, so callers can
// reference findings when composing negotiation emails.
type FindingView struct {
  ID uuid.UUID `json:"id"`
  risk.Finding
}

// AnalysisView is the assembled read model for a contract's analysis.
type AnalysisView struct {
  AnalysisID       uuid.UUID       `json:"analysisId"`
  ContractID       uuid.UUID       `json:"contractId"`
  Summary          string          `json:"summary"`
  Parties          risk.Parties    `json:"parties"`
  Financials       risk.Financials `json:"financials"`
  Scope            []risk.ScopeItem `json:"scope"`
  Dates            risk.Dates       `json:"dates"`
  Findings         []FindingView    `json:"findings"`
  RedFlags         []string         `json:"redFlags"`
  OverallRiskScore int              `json:"overallRiskScore"`
}

type ContractService interface {
  CreateContract(ctx context.Context, userID uuid.UUID, contract *types.Contract) (*types.Contract, error)
  GetContract(ctx context.Context, userID, contractID uuid.UUID) (*types.Contract, error)
  ListContracts(ctx context.Context, userID uuid.UUID) ([]*types.Contract, error)
  DeleteContract(ctx context.Context, userID, contractID uuid.UUID) error
  GetAnalysis(ctx context.Context, userID, contractID uuid.UUID) (*AnalysisView, error)
}

type contractService struct {
  db           *gorm.DB
  log          *logger.Logger
  contractRepo repos.ContractRepo
  analysisRepo repos.ContractAnalysisRepo
  findingRepo  repos.RiskFindingRepo
}

func NewContractService(
  db *gorm.DB,
  log *logger.Logger,
  contractRepo repos.ContractRepo,
  analysisRepo repos.ContractAnalysisRepo,
  findingRepo repos.RiskFindingRepo,
) ContractService {
  serviceLog := log.With("service", "ContractService")
  return &contractService{
    db:           db,
    log:          serviceLog,
    contractRepo: contractRepo,
    analysisRepo: analysisRepo,
    findingRepo:  findingRepo,
  }
}

func (cs *contractService) CreateContract(ctx context.Context, userID uuid.UUID, contract *types.Contract) (*types.Contract, error) {
  contract.Title = strings.TrimSpace(contract.Title)
  if contract.Title == "" {
    return nil, fmt.Errorf("contract title required: %w", apperrors.ErrInvalidArgument)
  }

  contract.ID = uuid.New()
  contract.UserID = userID
  contract.Status = types.ContractStatusDraft
  if contract.DocumentText != "" {
    contract.DocumentSHA256 = DocumentFingerprint(contract.DocumentText)
  }

  created, err := cs.contractRepo.Create(ctx, nil, []*types.Contract{contract})
  if err != nil {
    return nil, fmt.Errorf("Failed to create contract: %w", err)
  }
  return created[0], nil
}

func (cs *contractService) GetContract(ctx context.Context, userID, contractID uuid.UUID) (*types.Contract, error) {
  contract, err := cs.contractRepo.GetByID(ctx, nil, contractID)
  if err != nil {
    return nil, err
  }
  if contract.UserID != userID {
    return nil, fmt.Errorf("contract not owned by user: %w", apperrors.ErrNotFound)
  }
  return contract, nil
}

func (cs *contractService) ListContracts(ctx context.Context, userID uuid.UUID) ([]*types.Contract, error) {
  return cs.contractRepo.ListByUser(ctx, nil, userID, 0)
}

func (cs *contractService) DeleteContract(ctx context.Context, userID, contractID uuid.UUID) error {
  if _, err := cs.GetContract(ctx, userID, contractID); err != nil {
    return err
  }
  return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := cs.findingRepo.DeleteByContractID(ctx, tx, contractID); err != nil {
      return err
    }
    if err := cs.analysisRepo.DeleteByContractID(ctx, tx, contractID); err != nil {
      return err
    }
    return cs.contractRepo.Delete(ctx, tx, contractID)
  })
}

func (cs *contractService) GetAnalysis(ctx context.Context, userID, contractID uuid.UUID) (*AnalysisView, error) {
  if _, err := cs.GetContract(ctx, userID, contractID); err != nil {
    return nil, err
  }
  analysis, err := cs.analysisRepo.GetByContractID(ctx, nil, contractID)
  if err != nil {
    return nil, err
  }
  findings, err := cs.findingRepo.ListByAnalysisID(ctx, nil, analysis.ID)
  if err != nil {
    return nil, err
  }
  return AssembleAnalysisView(analysis, findings)
}

// AssembleAnalysisView decodes the JSON columns of an analysis row and pairs
// them with the ordered finding rows.
func AssembleAnalysisView(analysis *types.ContractAnalysis, findings []*types.RiskFinding) (*AnalysisView, error) {
  view := &AnalysisView{
    AnalysisID:       analysis.ID,
    ContractID:       analysis.ContractID,
    Summary:          analysis.Summary,
    OverallRiskScore: analysis.OverallRiskScore,
    Scope:            []risk.ScopeItem{},
    RedFlags:         []string{},
    Findings:         make([]FindingView, 0, len(findings)),
  }

  if len(analysis.Parties) > 0 {
    if err := json.Unmarshal(analysis.Parties, &view.Parties); err != nil {
      return nil, fmt.Errorf("Failed to decode parties: %w", err)
    }
  }
  if len(analysis.Financials) > 0 {
    if err := json.Unmarshal(analysis.Financials, &view.Financials); err != nil {
      return nil, fmt.Errorf("Failed to decode financials: %w", err)
    }
  }
  if len(analysis.Scope) > 0 {
    if err := json.Unmarshal(analysis.Scope, &view.Scope); err != nil {
      return nil, fmt.Errorf("Failed to decode scope: %w", err)
    }
  }
  if len(analysis.Dates) > 0 {
    if err := json.Unmarshal(analysis.Dates, &view.Dates); err != nil {
      return nil, fmt.Errorf("Failed to decode dates: %w", err)
    }
  }
  if len(analysis.RedFlags) > 0 {
    if err := json.Unmarshal(analysis.RedFlags, &view.RedFlags); err != nil {
      return nil, fmt.Errorf("Failed to decode red flags: %w", err)
    }
  }

  for _, f := range findings {
    view.Findings = append(view.Findings, FindingView{
      ID: f.ID,
      Finding: risk.Finding{
        Clause:            f.Clause,
        Category:          risk.RiskCategory(f.Category),
        Severity:          risk.Severity(f.Severity),
        Explanation:       f.Explanation,
        Recommendation:    f.Recommendation,
        SuggestedRevision: f.SuggestedRevision,
      },
    })
  }

  return view, nil
}

// DocumentFingerprint keys extraction dedup on the exact document text.
func DocumentFingerprint(documentText string) string {
  sum := sha256.Sum256([]byte(documentText))
  return hex.EncodeToString(sum[:])
}
