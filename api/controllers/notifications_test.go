package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/internal/notifications"
	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
)

type testNotificationsService struct {
	listFn        func(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error)
	markReadFn    func(ctx context.Context, userID, notificationID uuid.UUID) error
	markAllReadFn func(ctx context.Context, userID uuid.UUID) (int64, error)
	broadcastFn   func(ctx context.Context, input notifications.BroadcastInput) (*models.Notification, error)
}

func (s *testNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &notifications.ListResult{}, nil
}

func (s *testNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (s *testNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func (s *testNotificationsService) Broadcast(ctx context.Context, input notifications.BroadcastInput) (*models.Notification, error) {
	if s.broadcastFn != nil {
		return s.broadcastFn(ctx, input)
	}
	return &models.Notification{}, nil
}

func TestNotificationsListScopesToCaller(t *testing.T) {
	userID := uuid.New()
	svc := &testNotificationsService{
		listFn: func(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
			if params.UserID != userID {
				t.Fatalf("unexpected user %s", params.UserID)
			}
			return &notifications.ListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req = asUser(req, userID.String())
	resp := httptest.NewRecorder()
	NotificationsList(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestNotificationsListRequiresUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	resp := httptest.NewRecorder()
	NotificationsList(&testNotificationsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestNotificationsMarkAllReadReportsCount(t *testing.T) {
	userID := uuid.New()
	svc := &testNotificationsService{
		markAllReadFn: func(ctx context.Context, uid uuid.UUID) (int64, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			return 4, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil)
	req = asUser(req, userID.String())
	resp := httptest.NewRecorder()
	NotificationsMarkAllRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["updated"] != 4 {
		t.Fatalf("unexpected count %d", envelope.Data["updated"])
	}
}

func TestAdminBroadcastPublishesAnnouncement(t *testing.T) {
	svc := &testNotificationsService{
		broadcastFn: func(ctx context.Context, input notifications.BroadcastInput) (*models.Notification, error) {
			if input.Title != "Site maintenance" {
				t.Fatalf("unexpected title %q", input.Title)
			}
			return &models.Notification{Title: input.Title}, nil
		},
	}

	body := `{"title":"Site maintenance","body":"Saturday 2am to 4am."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/notifications/broadcast", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	AdminNotificationsBroadcast(svc, testLogger())(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminBroadcastRejectsMissingTitle(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/notifications/broadcast", strings.NewReader(`{"body":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	AdminNotificationsBroadcast(&testNotificationsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
