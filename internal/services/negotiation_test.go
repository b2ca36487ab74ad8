package services

import (
  "context"
  "encoding/json"
  "errors"
  "strings"
  "testing"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/clausewise/clausewise-backend/internal/repos"
  "github.com/clausewise/clausewise-backend/internal/risk"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type negotiationFixture struct {
  db         *gorm.DB
  ai         *fakeAI
  svc        NegotiationService
  userID     uuid.UUID
  contract   *types.Contract
  findingIDs []uuid.UUID
}

// newNegotiationFixture seeds a user, a linked client, an analyzed contract
// and three ordered findings.
func newNegotiationFixture(t *testing.T, ai *fakeAI) *negotiationFixture {
  t.Helper()
  db := newTestDB(t)
  log := newTestLogger(t)

  userRepo := repos.NewUserRepo(db, log)
  clientRepo := repos.NewClientRepo(db, log)
  contractRepo := repos.NewContractRepo(db, log)
  analysisRepo := repos.NewContractAnalysisRepo(db, log)
  findingRepo := repos.NewRiskFindingRepo(db, log)
  callLogRepo := repos.NewAICallLogRepo(db, log)

  user := &types.User{
    ID:        uuid.New(),
    Email:     "jane@example.com",
    Password:  "hashed",
    FirstName: "Jane",
    LastName:  "Doe",
  }
  if _, err := userRepo.Create(context.Background(), nil, []*types.User{user}); err != nil {
    t.Fatalf("seed user: %v", err)
  }

  client := &types.Client{
    ID:     uuid.New(),
    UserID: user.ID,
    Name:   "Acme Corp",
  }
  if _, err := clientRepo.Create(context.Background(), nil, []*types.Client{client}); err != nil {
    t.Fatalf("seed client: %v", err)
  }

  contract := &types.Contract{
    ID:       uuid.New(),
    UserID:   user.ID,
    ClientID: &client.ID,
    Title:    "Website Redesign",
    Status:   types.ContractStatusAnalyzed,
  }
  if _, err := contractRepo.Create(context.Background(), nil, []*types.Contract{contract}); err != nil {
    t.Fatalf("seed contract: %v", err)
  }

  parties, _ := json.Marshal(risk.Parties{})
  analysis := &types.ContractAnalysis{
    ID:               uuid.New(),
    ContractID:       contract.ID,
    UserID:           user.ID,
    Summary:          "Twelve week website build.",
    Parties:          datatypes.JSON(parties),
    OverallRiskScore: 60,
    PromptVersion:    1,
  }
  if _, err := analysisRepo.Create(context.Background(), nil, analysis); err != nil {
    t.Fatalf("seed analysis: %v", err)
  }

  categories := []string{"IP_OWNERSHIP", "PAYMENT_TERMS", "LIABILITY"}
  findings := make([]*types.RiskFinding, 0, len(categories))
  findingIDs := make([]uuid.UUID, 0, len(categories))
  for i, category := range categories {
    f := &types.RiskFinding{
      ID:             uuid.New(),
      AnalysisID:     analysis.ID,
      ContractID:     contract.ID,
      Position:       i,
      Clause:         "Clause about " + category,
      Category:       category,
      Severity:       "HIGH",
      Explanation:    "Explanation for " + category,
      Recommendation: "Recommendation for " + category,
    }
    findings = append(findings, f)
    findingIDs = append(findingIDs, f.ID)
  }
  if _, err := findingRepo.Create(context.Background(), nil, findings); err != nil {
    t.Fatalf("seed findings: %v", err)
  }

  contractService := NewContractService(db, log, contractRepo, analysisRepo, findingRepo)
  svc := NewNegotiationService(db, log, ai, contractService, clientRepo, userRepo, callLogRepo)
  return &negotiationFixture{
    db:         db,
    ai:         ai,
    svc:        svc,
    userID:     user.ID,
    contract:   contract,
    findingIDs: findingIDs,
  }
}

func TestComposeEmailRejectsUnsupportedTone(t *testing.T) {
  ai := &fakeAI{}
  fx := newNegotiationFixture(t, ai)

  _, err := fx.svc.ComposeEmail(context.Background(), fx.userID, fx.contract.ID, fx.findingIDs, "aggressive")
  var selErr *SelectionError
  if !errors.As(err, &selErr) {
    t.Fatalf("expected *SelectionError, got %v", err)
  }
  if ai.textCalls != 0 {
    t.Fatalf("AI must not be called for unsupported tone")
  }
}

func TestComposeEmailRejectsEmptySelection(t *testing.T) {
  ai := &fakeAI{}
  fx := newNegotiationFixture(t, ai)

  _, err := fx.svc.ComposeEmail(context.Background(), fx.userID, fx.contract.ID, nil, "professional")
  var selErr *SelectionError
  if !errors.As(err, &selErr) {
    t.Fatalf("expected *SelectionError, got %v", err)
  }
  if ai.textCalls != 0 {
    t.Fatalf("AI must not be called for empty selection")
  }
}

func TestComposeEmailRejectsUnknownFindings(t *testing.T) {
  ai := &fakeAI{}
  fx := newNegotiationFixture(t, ai)

  stranger := uuid.New()
  selection := []uuid.UUID{fx.findingIDs[0], stranger}
  _, err := fx.svc.ComposeEmail(context.Background(), fx.userID, fx.contract.ID, selection, "professional")
  var selErr *SelectionError
  if !errors.As(err, &selErr) {
    t.Fatalf("expected *SelectionError, got %v", err)
  }
  if len(selErr.Missing) != 1 || selErr.Missing[0] != stranger.String() {
    t.Fatalf("missing IDs: got %v, want [%s]", selErr.Missing, stranger)
  }
  if ai.textCalls != 0 {
    t.Fatalf("AI must not be called when selection does not resolve")
  }
}

func TestComposeEmailPreservesSelectionOrder(t *testing.T) {
  ai := &fakeAI{textResp: "  Hi Acme,\n\nLet's revisit a few terms.\n\nBest,\nJane  "}
  fx := newNegotiationFixture(t, ai)

  // Reverse of stored position: LIABILITY, then IP_OWNERSHIP.
  selection := []uuid.UUID{fx.findingIDs[2], fx.findingIDs[0]}
  email, err := fx.svc.ComposeEmail(context.Background(), fx.userID, fx.contract.ID, selection, "friendly")
  if err != nil {
    t.Fatalf("compose: %v", err)
  }
  if email != "Hi Acme,\n\nLet's revisit a few terms.\n\nBest,\nJane" {
    t.Fatalf("email not trimmed: %q", email)
  }
  if ai.textCalls != 1 {
    t.Fatalf("expected exactly one AI call, got %d", ai.textCalls)
  }

  liability := strings.Index(ai.lastUser, "LIABILITY")
  ip := strings.Index(ai.lastUser, "IP_OWNERSHIP")
  if liability == -1 || ip == -1 {
    t.Fatalf("selected issues missing from prompt:\n%s", ai.lastUser)
  }
  if liability > ip {
    t.Fatalf("caller order not preserved in prompt:\n%s", ai.lastUser)
  }
  if strings.Contains(ai.lastUser, "PAYMENT_TERMS") {
    t.Fatalf("unselected finding leaked into prompt:\n%s", ai.lastUser)
  }

  if !strings.Contains(ai.lastUser, "Acme Corp") {
    t.Fatalf("client name missing from prompt")
  }
  if !strings.Contains(ai.lastUser, "Jane Doe") {
    t.Fatalf("contractor name missing from prompt")
  }
}

func TestComposeEmailRejectsForeignContract(t *testing.T) {
  ai := &fakeAI{}
  fx := newNegotiationFixture(t, ai)

  _, err := fx.svc.ComposeEmail(context.Background(), uuid.New(), fx.contract.ID, fx.findingIDs, "professional")
  if err == nil {
    t.Fatalf("expected error for foreign user")
  }
  if ai.textCalls != 0 {
    t.Fatalf("AI must not be called for foreign contract")
  }
}
