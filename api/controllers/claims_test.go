package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/internal/claims"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
)

type testClaimsService struct {
	submitFn   func(ctx context.Context, userID, clubID uuid.UUID, input claims.SubmitClaimInput) (*claims.ClaimDTO, error)
	listFn     func(ctx context.Context, params claims.ListParams) (*claims.ListResult, error)
	listMineFn func(ctx context.Context, userID uuid.UUID) ([]claims.ClaimDTO, error)
	resolveFn  func(ctx context.Context, claimID uuid.UUID, decision enums.ModerationDecision) (*claims.ClaimDTO, error)
}

func (s *testClaimsService) SubmitClaim(ctx context.Context, userID, clubID uuid.UUID, input claims.SubmitClaimInput) (*claims.ClaimDTO, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, userID, clubID, input)
	}
	return &claims.ClaimDTO{}, nil
}

func (s *testClaimsService) ListClaims(ctx context.Context, params claims.ListParams) (*claims.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &claims.ListResult{}, nil
}

func (s *testClaimsService) ListMine(ctx context.Context, userID uuid.UUID) ([]claims.ClaimDTO, error) {
	if s.listMineFn != nil {
		return s.listMineFn(ctx, userID)
	}
	return nil, nil
}

func (s *testClaimsService) ResolveClaim(ctx context.Context, claimID uuid.UUID, decision enums.ModerationDecision) (*claims.ClaimDTO, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, claimID, decision)
	}
	return &claims.ClaimDTO{}, nil
}

func TestClaimsSubmitCreatesClaim(t *testing.T) {
	userID := uuid.New()
	clubID := uuid.New()
	svc := &testClaimsService{
		submitFn: func(ctx context.Context, uid, cid uuid.UUID, input claims.SubmitClaimInput) (*claims.ClaimDTO, error) {
			if uid != userID || cid != clubID {
				t.Fatalf("unexpected ids %s %s", uid, cid)
			}
			if input.BusinessEmail == nil || *input.BusinessEmail != "owner@ironhorsemen.com" {
				t.Fatalf("unexpected input %+v", input)
			}
			return &claims.ClaimDTO{ID: uuid.New(), Status: enums.ClaimStatusPending}, nil
		},
	}

	body := `{"business_email":"owner@ironhorsemen.com","message":"I run this club"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clubs/"+clubID.String()+"/claims", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = asUser(req, userID.String())
	req = addRouteParam(req, "clubID", clubID.String())
	resp := httptest.NewRecorder()
	ClaimsSubmit(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestClaimsSubmitRejectsBadClubID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clubs/nope/claims", strings.NewReader(`{}`))
	req = asUser(req, uuid.NewString())
	req = addRouteParam(req, "clubID", "nope")
	resp := httptest.NewRecorder()
	ClaimsSubmit(&testClaimsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestClaimsListMineScopesToCaller(t *testing.T) {
	userID := uuid.New()
	svc := &testClaimsService{
		listMineFn: func(ctx context.Context, uid uuid.UUID) ([]claims.ClaimDTO, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			return []claims.ClaimDTO{{ID: uuid.New()}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims/mine", nil)
	req = asUser(req, userID.String())
	resp := httptest.NewRecorder()
	ClaimsListMine(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
