package services

import (
	"errors"
	"testing"
)

func TestResolveSignatureDecision(t *testing.T) {
	cases := []struct {
		name     string
		current  string
		decision string
		reason   string
		want     string
		wantKind string
	}{
		{"sign a pending request", SignatureStatusPending, "sign", "", SignatureStatusSigned, ""},
		{"decline with a reason", SignatureStatusPending, "decline", "wrong budget figure", SignatureStatusDeclined, ""},
		{"decision is case-insensitive", SignatureStatusPending, " Sign ", "", SignatureStatusSigned, ""},
		{"decline without a reason", SignatureStatusPending, "decline", "   ", "", ErrKindValidation},
		{"unknown decision", SignatureStatusPending, "forward", "", "", ErrKindValidation},
		{"already signed", SignatureStatusSigned, "sign", "", "", ErrKindStateConflict},
		{"already declined", SignatureStatusDeclined, "sign", "", "", ErrKindStateConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveSignatureDecision(tc.current, tc.decision, tc.reason)
			if tc.wantKind == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Fatalf("got %q, want %q", got, tc.want)
				}
				return
			}
			var we *WorkflowError
			if !errors.As(err, &we) || we.Kind != tc.wantKind {
				t.Fatalf("got %v, want %s error", err, tc.wantKind)
			}
		})
	}
}
