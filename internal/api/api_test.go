package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhensel/fahrgeld/internal/auth"
	"github.com/jhensel/fahrgeld/internal/models"
	"github.com/jhensel/fahrgeld/internal/service"
	"github.com/jhensel/fahrgeld/internal/storage/sqlite"
)

type testClient struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "fahrgeld-api-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-key-for-tests", time.Hour)
	srv := NewServer(
		service.NewLedgerService(store),
		service.NewSettlementService(store),
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager),
		jwtManager,
	)

	server := httptest.NewServer(srv.Router())
	t.Cleanup(server.Close)

	return &testClient{t: t, server: server}
}

// do sends a JSON request and decodes the JSON response into out (if non-nil).
func (c *testClient) do(method, path string, body interface{}, out interface{}) *http.Response {
	c.t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequest(method, c.server.URL+path, &reqBody)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (c *testClient) loginAsAdmin() {
	c.t.Helper()
	var authResp struct {
		Token string `json:"token"`
	}
	resp := c.do("POST", "/api/v1/auth/register", map[string]string{
		"email":        "admin@example.com",
		"display_name": "Admin",
		"password":     "correct horse battery",
	}, &authResp)
	require.Equal(c.t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(c.t, authResp.Token)
	c.token = authResp.Token
}

func (c *testClient) createMember(name string) models.Member {
	c.t.Helper()
	var member models.Member
	resp := c.do("POST", "/api/v1/members", map[string]string{"name": name}, &member)
	require.Equal(c.t, http.StatusCreated, resp.StatusCode)
	return member
}

func TestAuthFlow(t *testing.T) {
	c := newTestClient(t)

	t.Run("mutations require a token", func(t *testing.T) {
		resp := c.do("POST", "/api/v1/members", map[string]string{"name": "Anna"}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("register and use token", func(t *testing.T) {
		c.loginAsAdmin()
		resp := c.do("POST", "/api/v1/members", map[string]string{"name": "Anna"}, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		resp := c.do("POST", "/api/v1/auth/register", map[string]string{
			"email":        "admin@example.com",
			"display_name": "Other",
			"password":     "another password",
		}, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("login with wrong password rejected", func(t *testing.T) {
		resp := c.do("POST", "/api/v1/auth/login", map[string]string{
			"email":    "admin@example.com",
			"password": "wrong",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSettlementFlow(t *testing.T) {
	c := newTestClient(t)
	c.loginAsAdmin()

	anna := c.createMember("Anna")
	ben := c.createMember("Ben")
	clara := c.createMember("Clara")

	// Fee was 80 until Feb 1, 100 from then on.
	resp := c.do("PUT", "/api/v1/fees", map[string]interface{}{
		"mode": "uniform",
		"fee":  80,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var schedule models.DailyFeeSchedule
	resp = c.do("PUT", "/api/v1/fees", map[string]interface{}{
		"mode":           "scheduled",
		"fee":            100,
		"effective_date": "2024-02-01",
	}, &schedule)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, schedule.PreviousFee)
	assert.Equal(t, 80.0, *schedule.PreviousFee)

	trips := []map[string]interface{}{
		{
			"date":            "2024-01-15",
			"driver_id":       anna.ID,
			"participant_ids": []string{anna.ID, ben.ID, clara.ID},
			"type":            "full",
		},
		{
			"date":            "2024-02-10",
			"driver_id":       ben.ID,
			"participant_ids": []string{ben.ID, clara.ID},
			"type":            "full",
		},
	}
	for _, trip := range trips {
		resp := c.do("PUT", fmt.Sprintf("/api/v1/trips/%s", trip["date"]), trip, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	rowFor := func(comp service.Computation, memberID string) models.SettlementResult {
		for _, r := range comp.Results {
			if r.MemberID == memberID {
				return r
			}
		}
		t.Fatalf("no result row for member %s", memberID)
		return models.SettlementResult{}
	}

	t.Run("auto settlement spans the fee change", func(t *testing.T) {
		var comp service.Computation
		resp := c.do("GET", "/api/v1/settlements/auto?month=2024-01", nil, &comp)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		a := rowFor(comp, anna.ID)
		assert.Equal(t, 1, a.DriverDays)
		assert.InDelta(t, 160, a.Credit, 0.001) // 2 riders × 80 (old fee)
		assert.InDelta(t, 160, a.Net, 0.001)

		resp = c.do("GET", "/api/v1/settlements/auto?month=2024-02", nil, &comp)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		b := rowFor(comp, ben.ID)
		assert.InDelta(t, 100, b.Credit, 0.001) // 1 rider × 100 (new fee)
		cRow := rowFor(comp, clara.ID)
		assert.InDelta(t, 100, cRow.Debt, 0.001)
	})

	t.Run("manual settlement with warnings", func(t *testing.T) {
		var comp service.Computation
		resp := c.do("POST", "/api/v1/settlements/manual", service.ManualRequest{
			Period:           "2024-Q1",
			TotalWorkingDays: 10,
			DriverDays:       map[string]int{anna.ID: 6},
			ActiveDays:       map[string]int{anna.ID: 10, ben.ID: 8},
		}, &comp)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		a := rowFor(comp, anna.ID)
		assert.Equal(t, 4, a.PassengerDays)
		assert.InDelta(t, 6*2*100, a.Credit, 0.001)
		assert.NotEmpty(t, comp.Warnings) // driver days don't cover the period
	})

	t.Run("snapshot lifecycle", func(t *testing.T) {
		var snapshot models.SettlementSnapshot
		resp := c.do("POST", "/api/v1/settlements/snapshots", map[string]interface{}{
			"title": "January settlement",
			"mode":  "auto",
			"month": "2024-01",
		}, &snapshot)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NotEmpty(t, snapshot.ID)
		assert.Len(t, snapshot.Results, 3)

		// Duplicate title rejected before any write.
		resp = c.do("POST", "/api/v1/settlements/snapshots", map[string]interface{}{
			"title": "January settlement",
			"mode":  "auto",
			"month": "2024-03",
		}, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		// Same period under a new title rejected too.
		resp = c.do("POST", "/api/v1/settlements/snapshots", map[string]interface{}{
			"title": "January again",
			"mode":  "auto",
			"month": "2024-01",
		}, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		// Editing the ledger afterwards leaves the snapshot untouched.
		resp = c.do("PUT", "/api/v1/trips/2024-01-15", map[string]interface{}{
			"date":            "2024-01-15",
			"driver_id":       clara.ID,
			"participant_ids": []string{anna.ID, ben.ID},
			"type":            "morning",
		}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var saved models.SettlementSnapshot
		resp = c.do("GET", "/api/v1/settlements/snapshots/"+snapshot.ID, nil, &saved)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, snapshot.Results, saved.Results)

		var list []models.SettlementSnapshot
		resp = c.do("GET", "/api/v1/settlements/snapshots", nil, &list)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, list, 1)

		resp = c.do("DELETE", "/api/v1/settlements/snapshots/"+snapshot.ID, nil, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = c.do("GET", "/api/v1/settlements/snapshots/"+snapshot.ID, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid month rejected", func(t *testing.T) {
		resp := c.do("GET", "/api/v1/settlements/auto?month=January", nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTripUpsertReplacesDay(t *testing.T) {
	c := newTestClient(t)
	c.loginAsAdmin()

	anna := c.createMember("Anna")
	ben := c.createMember("Ben")

	put := func(driverID string, tripType string) {
		resp := c.do("PUT", "/api/v1/trips/2024-03-04", map[string]interface{}{
			"driver_id":       driverID,
			"participant_ids": []string{anna.ID, ben.ID},
			"type":            tripType,
		}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	put(anna.ID, "full")
	put(ben.ID, "evening")

	var trips []models.TripRecord
	resp := c.do("GET", "/api/v1/trips?month=2024-03", nil, &trips)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, trips, 1)
	assert.Equal(t, ben.ID, trips[0].DriverID)
	assert.Equal(t, models.TripEvening, trips[0].Type)
}
