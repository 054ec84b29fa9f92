package enums

import "fmt"

// ClubStatus tracks a listing through the submission workflow.
type ClubStatus string

const (
	ClubStatusPending  ClubStatus = "pending"
	ClubStatusActive   ClubStatus = "active"
	ClubStatusRejected ClubStatus = "rejected"
)

var validClubStatuses = []ClubStatus{
	ClubStatusPending,
	ClubStatusActive,
	ClubStatusRejected,
}

// String implements fmt.Stringer.
func (s ClubStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches the canonical enum.
func (s ClubStatus) IsValid() bool {
	for _, candidate := range validClubStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the submission workflow has finished for this status.
func (s ClubStatus) IsTerminal() bool {
	return s == ClubStatusActive || s == ClubStatusRejected
}

// ParseClubStatus converts raw input into a ClubStatus.
func ParseClubStatus(value string) (ClubStatus, error) {
	for _, candidate := range validClubStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid club status %q", value)
}
