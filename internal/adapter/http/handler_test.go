package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-recruitment/internal/adapter/memory"
	"club-recruitment/internal/adapter/usecase"
	"club-recruitment/internal/core/domain"
)

var testNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

type testServer struct {
	t     *testing.T
	store *memory.Store
	srv   *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	clock := func() time.Time { return testNow }
	svc := usecase.NewRecruitmentUseCase(store.Campaigns(), store.Applications(),
		usecase.NewMembershipProvisioner(store.Memberships(), logger), store.Clubs(), nil, logger,
		usecase.WithClock(clock))
	h := NewHandler(svc, store.Clubs(), logger)
	h.now = clock

	_, _, err := store.Memberships().Provision(context.Background(), domain.Membership{
		ID: "m-org", ClubID: "club-1", UserID: "organizer", Role: domain.RoleOrganizer, JoinedAt: testNow,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return &testServer{t: t, store: store, srv: srv}
}

func (s *testServer) do(method, path, user string, body any) (*http.Response, map[string]any) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(s.t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	require.NoError(s.t, err)
	if user != "" {
		req.Header.Set(HeaderUserID, user)
		req.Header.Set(HeaderUserEmail, user+"@example.com")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	if len(raw) > 0 {
		require.NoError(s.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func campaignBody() map[string]any {
	return map[string]any{
		"title":       "January intake",
		"description": "Come build things",
		"questions": []map[string]any{
			{"id": "why", "prompt": "Why?", "type": "text", "required": true},
			{"id": "days", "prompt": "Days", "type": "checkbox", "options": []string{"mon", "fri"}},
		},
		"start_date":       "2025-01-01T00:00:00Z",
		"end_date":         "2025-01-31T00:00:00Z",
		"max_applications": 1,
	}
}

func (s *testServer) publishedCampaign() string {
	s.t.Helper()
	resp, body := s.do(http.MethodPost, "/api/v1/clubs/club-1/campaigns", "organizer", campaignBody())
	require.Equal(s.t, http.StatusCreated, resp.StatusCode, body)
	id := body["id"].(string)
	resp, body = s.do(http.MethodPost, "/api/v1/campaigns/"+id+"/publish", "organizer", nil)
	require.Equal(s.t, http.StatusOK, resp.StatusCode, body)
	return id
}

func (s *testServer) apply(campaignID, user string) string {
	s.t.Helper()
	resp, body := s.do(http.MethodPost, "/api/v1/campaigns/"+campaignID+"/applications", user, map[string]any{
		"answers": []map[string]any{
			{"question_id": "why", "answer": "fun"},
			{"question_id": "days", "answer": []string{"mon", "fri"}},
		},
	})
	require.Equal(s.t, http.StatusCreated, resp.StatusCode, body)
	return body["id"].(string)
}

func TestIdentityRequired(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(http.MethodGet, "/api/v1/campaigns", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "missing user identity", body["error"])
}

func TestCampaignEndpoints(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(http.MethodPost, "/api/v1/clubs/club-1/campaigns", "stranger", campaignBody())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "forbidden", body["code"])

	bad := campaignBody()
	bad["end_date"] = "31/01/2025"
	resp, body = s.do(http.MethodPost, "/api/v1/clubs/club-1/campaigns", "organizer", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []any{"end_date"}, body["fields"])

	bad = campaignBody()
	bad["end_date"] = "2024-12-01T00:00:00Z"
	resp, _ = s.do(http.MethodPost, "/api/v1/clubs/club-1/campaigns", "organizer", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = s.do(http.MethodPost, "/api/v1/clubs/club-1/campaigns", "organizer", campaignBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)
	assert.Equal(t, "draft", body["status"])
	assert.Equal(t, false, body["expired"])

	resp, _ = s.do(http.MethodGet, "/api/v1/campaigns/"+id, "stranger", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "drafts are hidden from applicants")

	resp, body = s.do(http.MethodPatch, "/api/v1/campaigns/"+id, "organizer", map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed", body["title"])

	resp, body = s.do(http.MethodPost, "/api/v1/campaigns/"+id+"/publish", "organizer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "published", body["status"])

	resp, body = s.do(http.MethodPost, "/api/v1/campaigns/"+id+"/publish", "organizer", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "invalid_transition", body["code"])

	resp, _ = s.do(http.MethodPost, "/api/v1/campaigns/"+id+"/archive", "organizer", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.do(http.MethodGet, "/api/v1/campaigns/"+id, "stranger", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["application_questions"], 2)

	resp, body = s.do(http.MethodGet, "/api/v1/campaigns?club_id=club-1", "stranger", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)
	assert.Equal(t, float64(1), body["pagination"].(map[string]any)["total_items"])

	resp, _ = s.do(http.MethodGet, "/api/v1/clubs/club-1/campaigns?status=draft,published&sort=title", "organizer", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, "/api/v1/clubs/club-1/campaigns?page=zero", "organizer", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, "/api/v1/clubs/club-1/campaigns", "stranger", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/v1/campaigns/missing", "stranger", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCampaign(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(http.MethodPost, "/api/v1/clubs/club-1/campaigns", "organizer", campaignBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	draft := body["id"].(string)

	resp, _ = s.do(http.MethodDelete, "/api/v1/campaigns/"+draft, "organizer", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, "/api/v1/campaigns/"+draft, "organizer", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	id := s.publishedCampaign()
	s.apply(id, "alice")
	resp, _ = s.do(http.MethodDelete, "/api/v1/campaigns/"+id, "organizer", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestApplicationFlow(t *testing.T) {
	s := newTestServer(t)
	id := s.publishedCampaign()

	alice := s.apply(id, "alice")
	resp, body := s.do(http.MethodPost, "/api/v1/campaigns/"+id+"/applications", "alice", map[string]any{
		"answers": []map[string]any{{"question_id": "why", "answer": "again"}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "duplicate_application", body["code"])

	resp, body = s.do(http.MethodPost, "/api/v1/campaigns/"+id+"/applications", "bob", map[string]any{"answers": []any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []any{"why"}, body["fields"])

	resp, _ = s.do(http.MethodPost, "/api/v1/campaigns/"+id+"/applications", "bob", `{"answers": [{"question_id": "why", "answer": 7}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	bob := s.apply(id, "bob")

	resp, body = s.do(http.MethodGet, "/api/v1/applications/"+alice, "alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "alice@example.com", body["user_email"])
	resp, _ = s.do(http.MethodGet, "/api/v1/applications/"+alice, "bob", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = s.do(http.MethodPut, "/api/v1/applications/"+alice, "alice", map[string]any{
		"answers": []map[string]any{{"question_id": "why", "answer": "changed"}},
		"message": "hello",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", body["application_message"])

	resp, _ = s.do(http.MethodPost, "/api/v1/applications/"+alice+"/review", "alice", map[string]any{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "applicants cannot review")

	resp, body = s.do(http.MethodPost, "/api/v1/applications/"+alice+"/start-review", "organizer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "under_review", body["status"])

	resp, body = s.do(http.MethodPost, "/api/v1/applications/"+alice+"/review", "organizer", map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, true, body["membership_created"])
	assert.Equal(t, "member", body["assigned_role"])

	resp, body = s.do(http.MethodPost, "/api/v1/applications/"+bob+"/review", "organizer", map[string]any{"status": "approved"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "capacity_exceeded", body["code"])

	resp, body = s.do(http.MethodPost, "/api/v1/applications/"+bob+"/review", "organizer", map[string]any{"status": "rejected"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []any{"rejection_reason"}, body["fields"])

	resp, body = s.do(http.MethodPost, "/api/v1/applications/"+bob+"/review", "organizer", map[string]any{
		"status": "rejected", "rejection_reason": "Not enough experience",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rejected", body["status"])

	resp, body = s.do(http.MethodPost, "/api/v1/applications/"+bob+"/reopen", "organizer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])

	resp, body = s.do(http.MethodDelete, "/api/v1/applications/"+bob, "bob", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "withdrawn", body["status"])

	resp, body = s.do(http.MethodGet, "/api/v1/campaigns/"+id+"/statistics", "organizer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total_applications"])
	assert.Equal(t, float64(1), body["approved_applications"])
	assert.Equal(t, float64(1), body["withdrawn_applications"])

	resp, body = s.do(http.MethodGet, "/api/v1/campaigns/"+id+"/applications?status=approved", "organizer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)

	resp, body = s.do(http.MethodGet, "/api/v1/applications/mine", "bob", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)

	m, err := s.store.Memberships().Get(context.Background(), "club-1", "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, m.Role)
}

func TestPaginationBounds(t *testing.T) {
	s := newTestServer(t)
	id := s.publishedCampaign()
	s.apply(id, "alice")

	resp, body := s.do(http.MethodGet, "/api/v1/applications/mine?page=9223372036854775807&limit=10", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []any{"page"}, body["fields"])

	resp, body = s.do(http.MethodGet, "/api/v1/campaigns?page=0", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []any{"page"}, body["fields"])

	resp, body = s.do(http.MethodGet, "/api/v1/applications/mine?page=1000000&limit=100", "alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Empty(t, body["items"])
	assert.Equal(t, float64(1), body["pagination"].(map[string]any)["total_items"])

	resp, body = s.do(http.MethodGet, "/api/v1/campaigns/"+id+"/applications?page=1000000", "organizer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Empty(t, body["items"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(domain.KindProvisioning))
	assert.Equal(t, http.StatusConflict, statusFor(domain.KindNotAccepting))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	h := &Handler{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	rec := httptest.NewRecorder()
	h.writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
