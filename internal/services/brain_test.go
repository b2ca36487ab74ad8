package services

import (
  "context"
  "encoding/json"
  "fmt"
  "reflect"
  "strings"
  "testing"

  "github.com/google/uuid"
  "gorm.io/datatypes"

  "github.com/clausewise/clausewise-backend/internal/repos"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type brainFixture struct {
  ai     *fakeAI
  cache  *fakeCache
  svc    BrainService
  userID uuid.UUID
}

func newBrainFixture(t *testing.T, ai *fakeAI) *brainFixture {
  t.Helper()
  db := newTestDB(t)
  log := newTestLogger(t)

  clientRepo := repos.NewClientRepo(db, log)
  contractRepo := repos.NewContractRepo(db, log)
  analysisRepo := repos.NewContractAnalysisRepo(db, log)
  callLogRepo := repos.NewAICallLogRepo(db, log)

  userID := uuid.New()
  contract := &types.Contract{
    ID:     uuid.New(),
    UserID: userID,
    Title:  "Website Redesign",
    Status: types.ContractStatusAnalyzed,
  }
  if _, err := contractRepo.Create(context.Background(), nil, []*types.Contract{contract}); err != nil {
    t.Fatalf("seed contract: %v", err)
  }
  redFlags, _ := json.Marshal([]string{"IP assigned before payment"})
  analysis := &types.ContractAnalysis{
    ID:               uuid.New(),
    ContractID:       contract.ID,
    UserID:           userID,
    Summary:          "Twelve week website build.",
    RedFlags:         datatypes.JSON(redFlags),
    OverallRiskScore: 55,
    PromptVersion:    1,
  }
  if _, err := analysisRepo.Create(context.Background(), nil, analysis); err != nil {
    t.Fatalf("seed analysis: %v", err)
  }
  client := &types.Client{
    ID:             uuid.New(),
    UserID:         userID,
    Name:           "Acme Corp",
    HealthScore:    80,
    SentimentTrend: "STABLE",
    TotalRevenue:   12000,
  }
  if _, err := clientRepo.Create(context.Background(), nil, []*types.Client{client}); err != nil {
    t.Fatalf("seed client: %v", err)
  }

  cache := newFakeCache()
  svc := NewBrainService(db, log, ai, analysisRepo, contractRepo, clientRepo, callLogRepo, cache)
  return &brainFixture{ai: ai, cache: cache, svc: svc, userID: userID}
}

func validInsightsResponse() map[string]any {
  return map[string]any{
    "forensic": map[string]any{
      "riskLevel":   "HIGH",
      "summary":     "Portfolio carries concentrated IP risk.",
      "keyFindings": []any{"IP assignment before payment"},
      "actionItems": []any{"Renegotiate assignment timing"},
    },
    "financial": map[string]any{
      "outlook":          "NEUTRAL",
      "projectedRevenue": "Stable but dependent on a single client.",
      "opportunityAreas": []any{"Diversify client base"},
    },
  }
}

func TestGetInsightsSynthesizesAndCaches(t *testing.T) {
  ai := &fakeAI{jsonResp: validInsightsResponse()}
  fx := newBrainFixture(t, ai)

  insights, degraded, err := fx.svc.GetInsights(context.Background(), fx.userID)
  if err != nil {
    t.Fatalf("get insights: %v", err)
  }
  if degraded {
    t.Fatalf("genuine synthesis must not be degraded")
  }
  if insights.Forensic.Summary != "Portfolio carries concentrated IP risk." {
    t.Fatalf("summary: %q", insights.Forensic.Summary)
  }
  if fx.cache.sets != 1 {
    t.Fatalf("genuine synthesis must be cached once, got %d sets", fx.cache.sets)
  }

  // Portfolio context must reach the prompt.
  if !strings.Contains(ai.lastUser, "Website Redesign") {
    t.Fatalf("contract context missing from prompt:\n%s", ai.lastUser)
  }
  if !strings.Contains(ai.lastUser, "Acme Corp") {
    t.Fatalf("client context missing from prompt:\n%s", ai.lastUser)
  }

  // Second call within the TTL is served from cache.
  again, degraded, err := fx.svc.GetInsights(context.Background(), fx.userID)
  if err != nil {
    t.Fatalf("cached get: %v", err)
  }
  if degraded {
    t.Fatalf("cached result must not be degraded")
  }
  if ai.jsonCalls != 1 {
    t.Fatalf("cache hit must not call AI again, got %d calls", ai.jsonCalls)
  }
  if !reflect.DeepEqual(insights, again) {
    t.Fatalf("cached payload differs:\nfirst:  %+v\nsecond: %+v", insights, again)
  }
}

func TestBrainInsightsWireShape(t *testing.T) {
  raw, err := json.Marshal(FallbackInsights())
  if err != nil {
    t.Fatalf("marshal: %v", err)
  }
  var decoded map[string]map[string]any
  if err := json.Unmarshal(raw, &decoded); err != nil {
    t.Fatalf("unmarshal: %v", err)
  }
  for _, key := range []string{"riskLevel", "summary", "keyFindings", "actionItems"} {
    if _, ok := decoded["forensic"][key]; !ok {
      t.Fatalf("forensic payload missing %q: %s", key, raw)
    }
  }
  for _, key := range []string{"outlook", "projectedRevenue", "opportunityAreas"} {
    if _, ok := decoded["financial"][key]; !ok {
      t.Fatalf("financial payload missing %q: %s", key, raw)
    }
  }
}

func TestGetInsightsFallsBackOnGenerationFailure(t *testing.T) {
  ai := &fakeAI{jsonErr: fmt.Errorf("upstream unavailable")}
  fx := newBrainFixture(t, ai)

  insights, degraded, err := fx.svc.GetInsights(context.Background(), fx.userID)
  if err != nil {
    t.Fatalf("fallback must not surface an error: %v", err)
  }
  if !degraded {
    t.Fatalf("failed synthesis must be flagged degraded")
  }
  if !reflect.DeepEqual(insights, FallbackInsights()) {
    t.Fatalf("payload must be the exact fallback:\ngot:  %+v\nwant: %+v", insights, FallbackInsights())
  }
  if fx.cache.sets != 0 {
    t.Fatalf("fallback must never be cached, got %d sets", fx.cache.sets)
  }
}

func TestGetInsightsFallsBackOnMissingRequiredFields(t *testing.T) {
  resp := validInsightsResponse()
  resp["forensic"].(map[string]any)["summary"] = ""
  ai := &fakeAI{jsonResp: resp}
  fx := newBrainFixture(t, ai)

  insights, degraded, err := fx.svc.GetInsights(context.Background(), fx.userID)
  if err != nil {
    t.Fatalf("fallback must not surface an error: %v", err)
  }
  if !degraded {
    t.Fatalf("incomplete synthesis must be flagged degraded")
  }
  if !reflect.DeepEqual(insights, FallbackInsights()) {
    t.Fatalf("payload must be the exact fallback, got %+v", insights)
  }
  if fx.cache.sets != 0 {
    t.Fatalf("fallback must never be cached")
  }
}

func TestGetInsightsNormalizesNilSlices(t *testing.T) {
  resp := validInsightsResponse()
  delete(resp["forensic"].(map[string]any), "keyFindings")
  delete(resp["financial"].(map[string]any), "opportunityAreas")
  ai := &fakeAI{jsonResp: resp}
  fx := newBrainFixture(t, ai)

  insights, degraded, err := fx.svc.GetInsights(context.Background(), fx.userID)
  if err != nil {
    t.Fatalf("get insights: %v", err)
  }
  if degraded {
    t.Fatalf("missing optional slices must not degrade")
  }
  if insights.Forensic.KeyFindings == nil || insights.Financial.OpportunityAreas == nil {
    t.Fatalf("slices must be normalized to empty, got %+v", insights)
  }
}

func TestGetInsightsEmptyPortfolio(t *testing.T) {
  ai := &fakeAI{jsonResp: validInsightsResponse()}
  fx := newBrainFixture(t, ai)

  // A user with no contracts or clients still gets a genuine synthesis.
  _, degraded, err := fx.svc.GetInsights(context.Background(), uuid.New())
  if err != nil {
    t.Fatalf("get insights: %v", err)
  }
  if degraded {
    t.Fatalf("empty portfolio must not degrade")
  }
}
