package controllers

import (
	"net/http"
	"strings"

	"github.com/jmcalloway/motoclubs-backend/api/responses"
	"github.com/jmcalloway/motoclubs-backend/api/validators"
	"github.com/jmcalloway/motoclubs-backend/internal/clubs"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
)

type resolvePayload struct {
	Decision string `json:"decision" validate:"required"`
}

type adminUpdateClubPayload struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	Website     *string  `json:"website"`
	Phone       *string  `json:"phone"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Tags        []string `json:"tags"`
}

// AdminSubmissionsList serves the moderation queue of submitted listings.
func AdminSubmissionsList(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "clubs service unavailable"))
			return
		}

		limit, err := parseLimit(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		params := clubs.SubmissionListParams{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseClubStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			params.Status = &status
		}

		resp, err := svc.ListSubmissions(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// AdminSubmissionsResolve approves or rejects a pending listing.
func AdminSubmissionsResolve(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "clubs service unavailable"))
			return
		}

		clubID, err := parseIDParam(r, "clubID")
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

		resp, err := svc.ResolveSubmission(ctx, clubID, decision)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// AdminClubsUpdate edits the descriptive fields of any club.
func AdminClubsUpdate(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "clubs service unavailable"))
			return
		}

		clubID, err := parseIDParam(r, "clubID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload adminUpdateClubPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.AdminUpdate(ctx, clubID, clubs.UpdateClubInput{
			Name:        payload.Name,
			Description: payload.Description,
			City:        payload.City,
			State:       payload.State,
			Website:     payload.Website,
			Phone:       payload.Phone,
			Email:       payload.Email,
			Tags:        payload.Tags,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// AdminClubsDelete removes a club and its dependent records.
func AdminClubsDelete(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "clubs service unavailable"))
			return
		}

		clubID, err := parseIDParam(r, "clubID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.AdminDelete(ctx, clubID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
