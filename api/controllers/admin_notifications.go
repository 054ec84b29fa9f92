package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/api/responses"
	"github.com/jmcalloway/motoclubs-backend/api/validators"
	"github.com/jmcalloway/motoclubs-backend/internal/messages"
	"github.com/jmcalloway/motoclubs-backend/internal/notifications"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
)

type broadcastPayload struct {
	Title string  `json:"title" validate:"required"`
	Body  string  `json:"body" validate:"required"`
	Link  *string `json:"link"`
}

type staffMessagePayload struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
	Subject     string `json:"subject" validate:"required"`
	Body        string `json:"body" validate:"required"`
}

// AdminNotificationsBroadcast publishes a site-wide announcement visible to
// every member's notification feed.
func AdminNotificationsBroadcast(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		var payload broadcastPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Broadcast(ctx, notifications.BroadcastInput{
			Title: payload.Title,
			Body:  payload.Body,
			Link:  payload.Link,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// AdminMessagesSend delivers a staff message to a member. The message shows
// no sender so replies cannot target an individual admin.
func AdminMessagesSend(svc messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "messages service unavailable"))
			return
		}

		var payload staffMessagePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		recipientID, err := uuid.Parse(payload.RecipientID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid recipient id"))
			return
		}

		resp, err := svc.SendFromStaff(ctx, messages.SendMessageInput{
			RecipientID: recipientID,
			Subject:     payload.Subject,
			Body:        payload.Body,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}
