package controllers

import (
	"net/http"
	"strings"

	"github.com/jmcalloway/motoclubs-backend/api/responses"
	"github.com/jmcalloway/motoclubs-backend/internal/contact"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
)

// AdminContactList serves the contact-form queue for the back office.
func AdminContactList(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		limit, err := parseLimit(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.List(ctx, contact.ListParams{
			UnresolvedOnly: parseBoolQuery(r, "unresolved"),
			Limit:          limit,
			Cursor:         strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// AdminContactResolve stamps a contact submission as handled.
func AdminContactResolve(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		submissionID, err := parseIDParam(r, "submissionID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Resolve(ctx, submissionID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "resolved"})
	}
}
