package controllers

import (
	"net/http"
	"strings"

	"github.com/jmcalloway/motoclubs-backend/api/responses"
	"github.com/jmcalloway/motoclubs-backend/api/validators"
	"github.com/jmcalloway/motoclubs-backend/internal/reviews"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
)

// AdminReviewsQueue serves the review moderation queue.
func AdminReviewsQueue(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		limit, err := parseLimit(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		params := reviews.QueueParams{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseReviewStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			params.Status = &status
		}

		resp, err := svc.ListQueue(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// AdminReviewsResolve approves or rejects a pending review. Approval folds
// the review into the club's public rating.
func AdminReviewsResolve(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		reviewID, err := parseIDParam(r, "reviewID")
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

		resp, err := svc.ResolveReview(ctx, reviewID, decision)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
