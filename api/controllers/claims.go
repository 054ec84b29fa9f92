package controllers

import (
	"net/http"

	"github.com/jmcalloway/motoclubs-backend/api/responses"
	"github.com/jmcalloway/motoclubs-backend/api/validators"
	"github.com/jmcalloway/motoclubs-backend/internal/claims"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
)

type submitClaimPayload struct {
	BusinessEmail *string `json:"business_email" validate:"omitempty,email"`
	Message       *string `json:"message"`
}

// ClaimsSubmit opens an ownership claim against an unclaimed club.
func ClaimsSubmit(svc claims.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "claims service unavailable"))
			return
		}

		userID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		clubID, err := parseIDParam(r, "clubID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload submitClaimPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.SubmitClaim(ctx, userID, clubID, claims.SubmitClaimInput{
			BusinessEmail: payload.BusinessEmail,
			Message:       payload.Message,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// ClaimsListMine returns every claim the caller has opened, newest first.
func ClaimsListMine(svc claims.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "claims service unavailable"))
			return
		}

		userID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.ListMine(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
