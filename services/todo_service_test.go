package services

import "testing"

func TestCompletionEventRoundTrip(t *testing.T) {
	events := []CompletionEvent{
		{Domain: RequestTypeProposal, Stage: StatusSupervisorReview, RequestID: 1},
		{Domain: RequestTypeFinalThesis, Stage: StatusDrcReview, RequestID: 4021},
		{Domain: RequestTypeChangeOfTitle, Stage: StatusDraft, RequestID: 7},
	}

	for _, event := range events {
		parsed, err := ParseCompletionEvent(event.String())
		if err != nil {
			t.Fatalf("round trip of %q failed: %v", event.String(), err)
		}
		if parsed != event {
			t.Fatalf("round trip of %q: got %+v, want %+v", event.String(), parsed, event)
		}
	}
}

func TestCompletionEventWireFormat(t *testing.T) {
	event := CompletionEvent{Domain: "proposal", Stage: StatusDacReview, RequestID: 12}
	if got := event.String(); got != "proposal:dac_review:12" {
		t.Fatalf("got %q, want proposal:dac_review:12", got)
	}
}

func TestEventPrefixMatchesString(t *testing.T) {
	event := CompletionEvent{Domain: "proposal", Stage: StatusDrcReview, RequestID: 33}
	prefix := EventPrefix("proposal", StatusDrcReview)
	if got := event.String(); got[:len(prefix)] != prefix {
		t.Fatalf("event %q does not start with prefix %q", got, prefix)
	}
}

func TestParseCompletionEvent_Malformed(t *testing.T) {
	for _, raw := range []string{"", "proposal", "proposal:draft", "proposal:draft:x", "a:b:c:d"} {
		if _, err := ParseCompletionEvent(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
