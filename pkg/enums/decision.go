package enums

import "fmt"

// ModerationDecision is the action an admin takes on a pending record.
type ModerationDecision string

const (
	// ModerationDecisionApprove accepts the pending record.
	ModerationDecisionApprove ModerationDecision = "approve"
	// ModerationDecisionReject declines the pending record.
	ModerationDecisionReject ModerationDecision = "reject"
)

// IsValid reports whether the decision is one of the supported values.
func (d ModerationDecision) IsValid() bool {
	return d == ModerationDecisionApprove || d == ModerationDecisionReject
}

// ParseModerationDecision converts raw input into a ModerationDecision.
func ParseModerationDecision(value string) (ModerationDecision, error) {
	switch ModerationDecision(value) {
	case ModerationDecisionApprove:
		return ModerationDecisionApprove, nil
	case ModerationDecisionReject:
		return ModerationDecisionReject, nil
	}
	return "", fmt.Errorf("invalid moderation decision %q", value)
}
