package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LetterSpin_Go/internal/admin"
	"github.com/osse101/LetterSpin_Go/internal/catalog"
	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/engine"
	"github.com/osse101/LetterSpin_Go/internal/logger"
	"github.com/osse101/LetterSpin_Go/internal/memstore"
	"github.com/osse101/LetterSpin_Go/internal/utils"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memstore.NewStore()
	require.NoError(t, catalog.Defaults().Apply(context.Background(), store))
	cache := catalog.New(store, catalog.DefaultCacheSize, time.Minute)

	return NewRouter(Dependencies{
		Engine: engine.NewService(store, cache, nil, engine.Options{
			DailyLoginSpins:        1,
			FirstDepositBonusSpins: 1,
			Random:                 utils.SequenceRandom(1),
		}),
		Admin:   admin.NewService(store, cache),
		Health:  store,
		Service: "letterspin",
		Version: "test",
	})
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RewardFlow(t *testing.T) {
	router := newTestRouter(t)
	base := "/api/v1/users/player-1"

	rec := do(t, router, http.MethodPost, base+"/spin", "")
	require.Equal(t, http.StatusConflict, rec.Code, "New users have no spins")

	rec = do(t, router, http.MethodPost, base+"/daily-login", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available_spins":1`)

	rec = do(t, router, http.MethodPost, base+"/daily-login", "")
	require.Equal(t, http.StatusConflict, rec.Code, "Daily login pays once per day")

	rec = do(t, router, http.MethodPost, base+"/spin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var spin domain.SpinResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spin))
	assert.Equal(t, 0, spin.RemainingSpins)
	assert.Equal(t, domain.RewardKindCash, spin.OutcomeKind)

	rec = do(t, router, http.MethodPost, base+"/deposits", `{"amount":"75.00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var deposit domain.DepositResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deposit))
	assert.Equal(t, []int{1}, deposit.UnlockedTierIDs)
	assert.Equal(t, 1, deposit.BonusSpins)

	rec = do(t, router, http.MethodPost, base+"/missions/1/claim", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodPost, base+"/missions/1/claim", "")
	require.Equal(t, http.StatusConflict, rec.Code, "Bronze allows one claim")

	rec = do(t, router, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary domain.AccountSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Account.AvailableSpins)
	assert.True(t, summary.Account.FirstDepositBonusGranted)

	rec = do(t, router, http.MethodGet, base+"/ledger?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ledger struct {
		Entries []domain.LedgerEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ledger))
	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, domain.LedgerKindMissionSpin, ledger.Entries[0].Kind, "Newest entry first")

	rec = do(t, router, http.MethodGet, base+"/words/1/eligibility", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"eligible":false`)

	rec = do(t, router, http.MethodPost, base+"/words/1/claim", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_AdminWriteInvalidatesCatalog(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/v1/words", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"GO"`)

	rec = do(t, router, http.MethodPost, "/api/v1/admin/words", `{"word":"go","reward_amount":"2.50","active":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/words", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"word":"GO"`)

	rec = do(t, router, http.MethodPost, "/api/v1/admin/tiers", `{"name":"Broken","min_amount":"10","max_amount":"5","spins_granted":1,"max_claims_per_user":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		rec := do(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := do(t, router, http.MethodGet, "/api/v1/tiers", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get(HeaderContentType))
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	rec = do(t, router, http.MethodGet, "/api/v1/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserLogContext(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Use(userLogContext)
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			got, _ = logger.UserIDFromContext(req.Context())
		})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/player-7/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "player-7", got)
}
