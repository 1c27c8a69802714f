package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pharmalytics/nexus-go/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *MemorySessionStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := NewMemorySessionStore()
	c, err := New(srv.URL+"/api/v1", WithSessionStore(store))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return c, store
}

func TestLoginPersistsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Username != "alice" || req.Password != "secret123" {
			t.Errorf("login request = %+v, want alice/secret123", req)
		}
		json.NewEncoder(w).Encode(model.AuthResponse{
			Token: "tok-1",
			User:  model.UserInfo{ID: 7, Username: "alice", Role: "doctor"},
		})
	})

	c, store := newTestClient(t, mux)

	user, err := c.Login(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Login() user = %+v, want alice", user)
	}
	if c.Token() != "tok-1" {
		t.Errorf("Token() = %q, want tok-1", c.Token())
	}

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("store.Load() unexpected error: %v", err)
	}
	if sess.Token != "tok-1" || sess.User == nil || sess.User.ID != 7 {
		t.Errorf("persisted session = %+v, want tok-1 for user 7", sess)
	}
}

func TestFailedLoginLeavesSessionEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})

	c, store := newTestClient(t, mux)

	_, err := c.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatal("Login() expected error for rejected credentials")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Login() error type = %T, want *APIError", err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Errorf("APIError.Message = %q, want server error text", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("APIError.StatusCode = %d, want 401", apiErr.StatusCode)
	}

	if c.Authenticated() {
		t.Error("Authenticated() = true after failed login")
	}
	if sess, _ := store.Load(); sess.Token != "" {
		t.Errorf("persisted token = %q after failed login, want empty", sess.Token)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	c, _ := newTestClient(t, mux)

	_, err := c.SearchMedications(context.Background(), "warfarin")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Message != "network error" {
		t.Errorf("APIError.Message = %q, want generic fallback", apiErr.Message)
	}
}

func TestAuthHeaderAddedAndCleared(t *testing.T) {
	var gotAuth []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/drugs/interaction-history/", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]model.InteractionCheck{})
	})

	c, store := newTestClient(t, mux)
	if err := store.Save(Session{Token: "tok-9"}); err != nil {
		t.Fatal(err)
	}
	// Reload so the client picks up the stored token.
	c, err := New(c.baseURL, WithSessionStore(store))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if _, err := c.GetInteractionHistory(context.Background()); err != nil {
		t.Fatalf("GetInteractionHistory() unexpected error: %v", err)
	}
	if err := c.Logout(); err != nil {
		t.Fatalf("Logout() unexpected error: %v", err)
	}
	if _, err := c.GetInteractionHistory(context.Background()); err != nil {
		t.Fatalf("GetInteractionHistory() after logout unexpected error: %v", err)
	}

	if len(gotAuth) != 2 {
		t.Fatalf("server saw %d requests, want 2", len(gotAuth))
	}
	if gotAuth[0] != "Token tok-9" {
		t.Errorf("first Authorization = %q, want Token tok-9", gotAuth[0])
	}
	if gotAuth[1] != "" {
		t.Errorf("Authorization after logout = %q, want empty", gotAuth[1])
	}
}

func TestExtraHeadersMerged(t *testing.T) {
	var gotRequestID string
	var gotAccept []string
	var gotContentType string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/drugs/check-interactions/", func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
		gotAccept = r.Header.Values("Accept")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(model.CheckInteractionsResponse{})
	})

	c, _ := newTestClient(t, mux)

	extra := http.Header{}
	extra.Set("X-Request-Id", "req-42")
	extra.Add("Accept", "application/json")
	extra.Add("Accept", "text/plain")

	req := model.CheckInteractionsRequest{
		Medications: []model.MedicationRef{{Name: "warfarin"}, {Name: "aspirin"}},
	}
	var resp model.CheckInteractionsResponse
	if err := c.do(context.Background(), http.MethodPost, "/drugs/check-interactions/", req, &resp, extra); err != nil {
		t.Fatalf("do() unexpected error: %v", err)
	}

	if gotRequestID != "req-42" {
		t.Errorf("X-Request-Id = %q, want req-42", gotRequestID)
	}
	if len(gotAccept) != 2 || gotAccept[0] != "application/json" || gotAccept[1] != "text/plain" {
		t.Errorf("Accept = %v, want both supplied values", gotAccept)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, extra headers must not displace the standard ones", gotContentType)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	c, _ := newTestClient(t, http.NewServeMux())

	if err := c.Logout(); err != nil {
		t.Errorf("Logout() with no session unexpected error: %v", err)
	}
	if err := c.Logout(); err != nil {
		t.Errorf("second Logout() unexpected error: %v", err)
	}
}

func TestSessionSurvivesClientRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileSessionStore(path)
	if err := store.Save(Session{
		Token: "tok-persist",
		User:  &model.UserInfo{ID: 3, Username: "bob", Role: "patient"},
	}); err != nil {
		t.Fatal(err)
	}

	c, err := New("http://localhost:1", WithSessionStore(NewFileSessionStore(path)))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if c.Token() != "tok-persist" {
		t.Errorf("Token() = %q, want tok-persist", c.Token())
	}
	if u := c.User(); u == nil || u.Username != "bob" {
		t.Errorf("User() = %+v, want bob", u)
	}
}

func TestCheckDrugInteractionsPassthrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/drugs/check-interactions/", func(w http.ResponseWriter, r *http.Request) {
		var req model.CheckInteractionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Medications) != 2 {
			t.Errorf("request medications = %d, want 2", len(req.Medications))
		}
		if req.PatientAge == nil || *req.PatientAge != 70 {
			t.Errorf("request patient_age = %v, want 70", req.PatientAge)
		}
		json.NewEncoder(w).Encode(model.CheckInteractionsResponse{
			Interactions: []model.InteractionFinding{
				{Drug1: "Warfarin", Drug2: "Aspirin", Severity: "high"},
			},
			OverallRiskScore:       3,
			TotalInteractionsFound: 1,
			SeverityBreakdown:      model.SeverityBreakdown{High: 1},
		})
	})

	c, _ := newTestClient(t, mux)

	age := 70
	resp, err := c.CheckDrugInteractions(context.Background(), []model.MedicationRef{
		{Name: "warfarin"}, {Name: "aspirin"},
	}, &age)
	if err != nil {
		t.Fatalf("CheckDrugInteractions() unexpected error: %v", err)
	}
	if resp.OverallRiskScore != 3 {
		t.Errorf("OverallRiskScore = %d, want 3", resp.OverallRiskScore)
	}
	if resp.TotalInteractionsFound != 1 || len(resp.Interactions) != 1 {
		t.Errorf("findings = %+v, want exactly one", resp.Interactions)
	}
}

func TestSearchMedicationsEncodesQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/drugs/search/", func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "warfarin 5mg" {
			t.Errorf("query = %q, want %q", q, "warfarin 5mg")
		}
		json.NewEncoder(w).Encode(model.SearchResponse{
			Results: []model.SearchResult{{Name: "Warfarin", DrugID: "DB00682"}},
		})
	})

	c, _ := newTestClient(t, mux)

	resp, err := c.SearchMedications(context.Background(), "warfarin 5mg")
	if err != nil {
		t.Fatalf("SearchMedications() unexpected error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].DrugID != "DB00682" {
		t.Errorf("results = %+v, want DB00682", resp.Results)
	}
}

func TestRegisterPersistsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.AuthResponse{
			Token: "tok-new",
			User:  model.UserInfo{ID: 11, Username: "carol", Role: "pharmacist"},
		})
	})

	c, _ := newTestClient(t, mux)

	user, err := c.Register(context.Background(), model.RegisterRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "password123",
		Role:     "pharmacist",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if user.ID != 11 {
		t.Errorf("Register() user ID = %d, want 11", user.ID)
	}
	if !c.Authenticated() {
		t.Error("Authenticated() = false after register")
	}
}
