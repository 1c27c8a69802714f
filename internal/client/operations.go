package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pharmalytics/nexus-go/internal/model"
)

// Login authenticates with the server and persists the resulting session.
// Subsequent requests from this client carry the returned token.
func (c *Client) Login(ctx context.Context, username, password string) (*model.UserInfo, error) {
	req := model.LoginRequest{Username: username, Password: password}

	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", req, &resp, nil); err != nil {
		return nil, err
	}

	user := resp.User
	if err := c.setSession(resp.Token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new account, logs it in and persists the session.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.UserInfo, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/", req, &resp, nil); err != nil {
		return nil, err
	}

	user := resp.User
	if err := c.setSession(resp.Token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout discards the local session. No server call is made; the operation
// succeeds even when no session exists.
func (c *Client) Logout() error {
	return c.clearSession()
}

// GetProfile fetches the full profile of the authenticated user.
func (c *Client) GetProfile(ctx context.Context) (*model.Profile, error) {
	var resp model.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, &resp, nil); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ListDrugs retrieves the drug catalog, optionally filtered by a search term.
func (c *Client) ListDrugs(ctx context.Context, search string) ([]model.Drug, error) {
	path := "/drugs/"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	var drugs []model.Drug
	if err := c.do(ctx, http.MethodGet, path, nil, &drugs, nil); err != nil {
		return nil, err
	}
	return drugs, nil
}

// GetDrug retrieves one drug by its catalog identifier.
func (c *Client) GetDrug(ctx context.Context, drugID string) (*model.Drug, error) {
	var drug model.Drug
	if err := c.do(ctx, http.MethodGet, "/drugs/"+url.PathEscape(drugID)+"/", nil, &drug, nil); err != nil {
		return nil, err
	}
	return &drug, nil
}

// SearchMedications searches the catalog by name or generic name.
func (c *Client) SearchMedications(ctx context.Context, query string) (*model.SearchResponse, error) {
	path := "/drugs/search/?q=" + url.QueryEscape(query)

	var resp model.SearchResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckDrugInteractions runs an interaction check over a medication list.
// patientAge may be nil when unknown.
func (c *Client) CheckDrugInteractions(ctx context.Context, medications []model.MedicationRef, patientAge *int) (*model.CheckInteractionsResponse, error) {
	req := model.CheckInteractionsRequest{Medications: medications, PatientAge: patientAge}

	var resp model.CheckInteractionsResponse
	if err := c.do(ctx, http.MethodPost, "/drugs/check-interactions/", req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetInteractionHistory retrieves the authenticated user's recent checks.
func (c *Client) GetInteractionHistory(ctx context.Context) ([]model.InteractionCheck, error) {
	var checks []model.InteractionCheck
	if err := c.do(ctx, http.MethodGet, "/drugs/interaction-history/", nil, &checks, nil); err != nil {
		return nil, err
	}
	return checks, nil
}

// AnalyzeInteraction runs the detailed pairwise interaction analyzer.
func (c *Client) AnalyzeInteraction(ctx context.Context, req model.AnalyzeInteractionRequest) (*model.AnalyzeInteractionResponse, error) {
	var resp model.AnalyzeInteractionResponse
	if err := c.do(ctx, http.MethodPost, "/ai/analyze-interaction/", req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetDosageRecommendation requests a patient-adjusted dosage recommendation.
func (c *Client) GetDosageRecommendation(ctx context.Context, req model.DosageRequest) (*model.DosageResponse, error) {
	var resp model.DosageResponse
	if err := c.do(ctx, http.MethodPost, "/ai/dosage-recommendation/", req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyzeSideEffects predicts side effect risks for a medication list.
func (c *Client) AnalyzeSideEffects(ctx context.Context, req model.SideEffectRequest) (*model.SideEffectResponse, error) {
	var resp model.SideEffectResponse
	if err := c.do(ctx, http.MethodPost, "/ai/analyze-side-effects/", req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExtractFromText extracts medication mentions from free-form clinical text.
func (c *Client) ExtractFromText(ctx context.Context, text string) (*model.ExtractResponse, error) {
	req := model.ExtractRequest{Text: text}

	var resp model.ExtractResponse
	if err := c.do(ctx, http.MethodPost, "/ai/extract-from-text/", req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetImportStatus lists recent dataset import runs.
func (c *Client) GetImportStatus(ctx context.Context) (*model.ImportStatusResponse, error) {
	var resp model.ImportStatusResponse
	if err := c.do(ctx, http.MethodGet, "/datasets/import-status/", nil, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartImport begins a background import of the named dataset source.
func (c *Client) StartImport(ctx context.Context, source string) (*model.StartImportResponse, error) {
	req := model.StartImportRequest{Source: source}

	var resp model.StartImportResponse
	if err := c.do(ctx, http.MethodPost, "/datasets/start-import/", req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}
