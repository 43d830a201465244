package services

import "strings"

// Signature request lifecycle. A request is decided exactly once.
const (
	SignatureStatusPending  = "pending"
	SignatureStatusSigned   = "signed"
	SignatureStatusDeclined = "declined"
)

const (
	SignatureDecisionSign    = "sign"
	SignatureDecisionDecline = "decline"
)

// ResolveSignatureDecision maps a signer's decision onto the next status.
// Declining requires a reason so the requester knows what to fix.
func ResolveSignatureDecision(current, decision, reason string) (string, error) {
	if current != SignatureStatusPending {
		return "", StateConflictError("signature request is already %s", current)
	}
	switch strings.ToLower(strings.TrimSpace(decision)) {
	case SignatureDecisionSign:
		return SignatureStatusSigned, nil
	case SignatureDecisionDecline:
		if strings.TrimSpace(reason) == "" {
			return "", ValidationError("a reason is required when declining")
		}
		return SignatureStatusDeclined, nil
	default:
		return "", ValidationError("decision must be 'sign' or 'decline'")
	}
}
