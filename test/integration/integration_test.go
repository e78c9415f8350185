//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/caselens/verdict/internal/config"
	"github.com/caselens/verdict/internal/core/model"
	"github.com/caselens/verdict/internal/server"
	"github.com/joho/godotenv"
)

// newRouter wires the full service in-process. No LLM provider is needed:
// without one the counsel engine reports offline and every strategy
// degrades to its rule-based form.
func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	_ = godotenv.Load("../../.env")
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load("../../config/config.toml")
	require.NoError(t, err)

	srv, err := server.New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	return srv.SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type processResponse struct {
	RequestID string                `json:"request_id"`
	Result    model.ConsensusResult `json:"result"`
}

func processDocument(t *testing.T, r *gin.Engine, payload any) processResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/process", payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body processResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const disputeText = `Before Mr Justice Holt. The claimant, Mr David Chen, entered into a supply agreement with Northgate Logistics Ltd pursuant to heads of terms agreed in January 2021. Clause 12 of the agreement provides that the supplier shall deliver within 30 days, notwithstanding any shortage of materials. The claimant alleges breach of contract and relies on Hadley v Baxendale, applied in Victoria Laundry Ltd v Newman Industries Ltd [1949] 2 KB 528. Counsel for the defendant, Miss Patel, cited section 51 of the Sale of Goods Act 1979 and Smith v Hughes [2020] UKSC 11. The agreement was signed on 14 February 2021 and the hearing took place on 3 March 2022.`

func TestFullFlow(t *testing.T) {
	r := newRouter(t)

	// 1. Health check
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health struct {
		Status  string            `json:"status"`
		Engines map[string]string `json:"engines"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Engines["parties"])

	// 2. Process a contract dispute document
	body := processDocument(t, r, gin.H{"text": disputeText})

	_, err := uuid.Parse(body.RequestID)
	require.NoError(t, err)

	res := body.Result
	assert.Equal(t, "balanced-consensus", res.Transparency.Strategy)
	assert.Equal(t, []string{"parties", "citations", "chronology", "issues", "provisions"}, res.EnginesUsed)
	assert.Greater(t, res.ConsensusConfidence, 0.7)

	// 3. Verify entities across all four categories
	assert.True(t, hasPerson(res.Entities.Persons, "Mr Justice Holt"), "expected the judge to be extracted")
	assert.True(t, hasPerson(res.Entities.Persons, "David Chen"), "expected the claimant to be extracted")
	assert.True(t, hasAuthority(res.Entities.Authorities, "Sale of Goods Act 1979"))
	assert.True(t, hasAuthority(res.Entities.Authorities, "[2020] UKSC 11"))
	assert.True(t, hasEvent(res.Entities.Events, "2021-02-14"))
	assert.True(t, hasEvent(res.Entities.Events, "2022-03-03"))
	assert.True(t, hasIssue(res.Entities.Issues, "breach of contract"))

	// 4. Engine catalog
	w = doJSON(t, r, http.MethodGet, "/engines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var engines []model.EngineHealth
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &engines))
	assert.Len(t, engines, 6)

	// 5. Stats reflect the processed document
	w = doJSON(t, r, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats model.ServiceStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.DocumentsProcessed)
	assert.Equal(t, int64(1), stats.EngineUsage["provisions"])

	// 6. Service info
	w = doJSON(t, r, http.MethodGet, "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func hasPerson(persons []model.Person, name string) bool {
	for _, p := range persons {
		if p.Name == name {
			return true
		}
	}
	return false
}

func hasAuthority(authorities []model.Authority, fragment string) bool {
	for _, a := range authorities {
		if strings.Contains(a.Citation, fragment) {
			return true
		}
	}
	return false
}

func hasEvent(events []model.ChronologyEvent, date string) bool {
	for _, e := range events {
		if e.Date == date {
			return true
		}
	}
	return false
}

func hasIssue(issues []model.Issue, description string) bool {
	for _, i := range issues {
		if strings.EqualFold(i.Description, description) {
			return true
		}
	}
	return false
}
