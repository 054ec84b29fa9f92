package controllers

import (
	"net/http"
	"strings"

	"github.com/jmcalloway/motoclubs-backend/api/responses"
	"github.com/jmcalloway/motoclubs-backend/api/validators"
	"github.com/jmcalloway/motoclubs-backend/internal/claims"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
)

// AdminClaimsList serves the ownership-claim queue.
func AdminClaimsList(svc claims.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "claims service unavailable"))
			return
		}

		limit, err := parseLimit(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		params := claims.ListParams{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseClaimStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			params.Status = &status
		}

		resp, err := svc.ListClaims(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// AdminClaimsResolve approves or rejects a pending ownership claim.
func AdminClaimsResolve(svc claims.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "claims service unavailable"))
			return
		}

		claimID, err := parseIDParam(r, "claimID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload resolvePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		decision, err := enums.ParseModerationDecision(payload.Decision)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid decision"))
			return
		}

		resp, err := svc.ResolveClaim(ctx, claimID, decision)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
