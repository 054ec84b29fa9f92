package enums

import "fmt"

// NotificationType maps to the notification_type enum in Postgres.
type NotificationType string

const (
	NotificationTypeSystemAnnouncement NotificationType = "system_announcement"
	NotificationTypeClaimUpdate        NotificationType = "claim_update"
	NotificationTypeReviewUpdate       NotificationType = "review_update"
	NotificationTypeSubmissionUpdate   NotificationType = "submission_update"
	NotificationTypeMessage            NotificationType = "message"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeSystemAnnouncement,
	NotificationTypeClaimUpdate,
	NotificationTypeReviewUpdate,
	NotificationTypeSubmissionUpdate,
	NotificationTypeMessage,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}

// NotificationAudience distinguishes per-user notifications from site-wide
// broadcasts that carry no addressed user.
type NotificationAudience string

const (
	NotificationAudiencePersonal  NotificationAudience = "personal"
	NotificationAudienceBroadcast NotificationAudience = "broadcast"
)

// IsValid checks whether the audience is a supported variant.
func (a NotificationAudience) IsValid() bool {
	return a == NotificationAudiencePersonal || a == NotificationAudienceBroadcast
}
