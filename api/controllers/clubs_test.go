package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/internal/clubs"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
)

type testClubsService struct {
	listFn              func(ctx context.Context, params clubs.PublicListParams) (*clubs.ListResult, error)
	getBySlugFn         func(ctx context.Context, slug string) (*clubs.ClubDTO, error)
	submitFn            func(ctx context.Context, userID uuid.UUID, input clubs.CreateClubInput) (*clubs.ClubDTO, error)
	listSubmissionsFn   func(ctx context.Context, params clubs.SubmissionListParams) (*clubs.ListResult, error)
	resolveSubmissionFn func(ctx context.Context, clubID uuid.UUID, decision enums.ModerationDecision) (*clubs.ClubDTO, error)
	adminUpdateFn       func(ctx context.Context, clubID uuid.UUID, input clubs.UpdateClubInput) (*clubs.ClubDTO, error)
	adminDeleteFn       func(ctx context.Context, clubID uuid.UUID) error
}

func (s *testClubsService) List(ctx context.Context, params clubs.PublicListParams) (*clubs.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &clubs.ListResult{}, nil
}

func (s *testClubsService) GetBySlug(ctx context.Context, slug string) (*clubs.ClubDTO, error) {
	if s.getBySlugFn != nil {
		return s.getBySlugFn(ctx, slug)
	}
	return &clubs.ClubDTO{}, nil
}

func (s *testClubsService) Submit(ctx context.Context, userID uuid.UUID, input clubs.CreateClubInput) (*clubs.ClubDTO, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, userID, input)
	}
	return &clubs.ClubDTO{}, nil
}

func (s *testClubsService) ListSubmissions(ctx context.Context, params clubs.SubmissionListParams) (*clubs.ListResult, error) {
	if s.listSubmissionsFn != nil {
		return s.listSubmissionsFn(ctx, params)
	}
	return &clubs.ListResult{}, nil
}

func (s *testClubsService) ResolveSubmission(ctx context.Context, clubID uuid.UUID, decision enums.ModerationDecision) (*clubs.ClubDTO, error) {
	if s.resolveSubmissionFn != nil {
		return s.resolveSubmissionFn(ctx, clubID, decision)
	}
	return &clubs.ClubDTO{}, nil
}

func (s *testClubsService) AdminUpdate(ctx context.Context, clubID uuid.UUID, input clubs.UpdateClubInput) (*clubs.ClubDTO, error) {
	if s.adminUpdateFn != nil {
		return s.adminUpdateFn(ctx, clubID, input)
	}
	return &clubs.ClubDTO{}, nil
}

func (s *testClubsService) AdminDelete(ctx context.Context, clubID uuid.UUID) error {
	if s.adminDeleteFn != nil {
		return s.adminDeleteFn(ctx, clubID)
	}
	return nil
}

func TestClubsListPassesFilters(t *testing.T) {
	var got clubs.PublicListParams
	svc := &testClubsService{
		listFn: func(ctx context.Context, params clubs.PublicListParams) (*clubs.ListResult, error) {
			got = params
			return &clubs.ListResult{Items: []clubs.ClubDTO{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clubs?state=CA&city=Oakland&q=riders&limit=10&cursor=abc", nil)
	resp := httptest.NewRecorder()
	ClubsList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if got.State != "CA" || got.City != "Oakland" || got.Query != "riders" {
		t.Fatalf("unexpected filters %+v", got)
	}
	if got.Limit != 10 || got.Cursor != "abc" {
		t.Fatalf("unexpected paging %+v", got)
	}
}

func TestClubsListRejectsBadLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clubs?limit=zero", nil)
	resp := httptest.NewRecorder()
	ClubsList(&testClubsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestClubsGetBySlugPassesSlug(t *testing.T) {
	svc := &testClubsService{
		getBySlugFn: func(ctx context.Context, slug string) (*clubs.ClubDTO, error) {
			if slug != "iron-horsemen" {
				t.Fatalf("unexpected slug %q", slug)
			}
			return &clubs.ClubDTO{Slug: "iron-horsemen"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clubs/iron-horsemen", nil)
	req = addRouteParam(req, "slug", "iron-horsemen")
	resp := httptest.NewRecorder()
	ClubsGetBySlug(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestClubsSubmitRequiresUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clubs", strings.NewReader(`{"name":"x"}`))
	resp := httptest.NewRecorder()
	ClubsSubmit(&testClubsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestClubsSubmitCreatesListing(t *testing.T) {
	userID := uuid.New()
	svc := &testClubsService{
		submitFn: func(ctx context.Context, uid uuid.UUID, input clubs.CreateClubInput) (*clubs.ClubDTO, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if input.Name != "Iron Horsemen" || input.State != "CA" {
				t.Fatalf("unexpected input %+v", input)
			}
			return &clubs.ClubDTO{Name: input.Name}, nil
		},
	}

	body := `{"name":"Iron Horsemen","description":"Vintage touring club","city":"Oakland","state":"CA","tags":["touring"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clubs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = asUser(req, userID.String())
	resp := httptest.NewRecorder()
	ClubsSubmit(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data clubs.ClubDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Name != "Iron Horsemen" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}
