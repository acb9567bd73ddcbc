package models_test

import (
	"testing"

	"github.com/scoutline/scoutline-api/internal/models"
)

// ── ParseMessageStatus ─────────────────────────────────────────────────────

func TestParseMessageStatus_ValidValues(t *testing.T) {
	valid := []string{"sent", "read", "replied"}
	for _, s := range valid {
		got, err := models.ParseMessageStatus(s)
		if err != nil {
			t.Errorf("ParseMessageStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseMessageStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseMessageStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"delivered", "SENT", ""} {
		if _, err := models.ParseMessageStatus(s); err == nil {
			t.Errorf("ParseMessageStatus(%q) expected error, got nil", s)
		}
	}
}

// ── ParseMessageType ───────────────────────────────────────────────────────

func TestParseMessageType_ValidValues(t *testing.T) {
	valid := []string{"scout", "application", "general"}
	for _, s := range valid {
		got, err := models.ParseMessageType(s)
		if err != nil {
			t.Errorf("ParseMessageType(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseMessageType(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseMessageType_InvalidValue(t *testing.T) {
	for _, s := range []string{"offer", "", "General"} {
		if _, err := models.ParseMessageType(s); err == nil {
			t.Errorf("ParseMessageType(%q) expected error, got nil", s)
		}
	}
}

// ── IsStatusTransitionAllowed (forward only) ───────────────────────────────

func TestIsStatusTransitionAllowed_Forward(t *testing.T) {
	cases := []struct {
		from models.MessageStatus
		to   models.MessageStatus
	}{
		{models.StatusSent, models.StatusRead},
		{models.StatusSent, models.StatusReplied},
		{models.StatusRead, models.StatusReplied},
	}
	for _, c := range cases {
		if !models.IsStatusTransitionAllowed(c.from, c.to) {
			t.Errorf("IsStatusTransitionAllowed(%s → %s) should be true", c.from, c.to)
		}
	}
}

func TestIsStatusTransitionAllowed_NeverBackwards(t *testing.T) {
	cases := []struct {
		from models.MessageStatus
		to   models.MessageStatus
	}{
		{models.StatusRead, models.StatusSent},
		{models.StatusReplied, models.StatusRead},
		{models.StatusReplied, models.StatusSent},
	}
	for _, c := range cases {
		if models.IsStatusTransitionAllowed(c.from, c.to) {
			t.Errorf("IsStatusTransitionAllowed(%s → %s) should be false (backwards)", c.from, c.to)
		}
	}
}

func TestIsStatusTransitionAllowed_Self(t *testing.T) {
	all := []models.MessageStatus{models.StatusSent, models.StatusRead, models.StatusReplied}
	for _, s := range all {
		if models.IsStatusTransitionAllowed(s, s) {
			t.Errorf("IsStatusTransitionAllowed(%s → %s) should be false (self)", s, s)
		}
	}
}

func TestIsStatusTransitionAllowed_UnknownStatus(t *testing.T) {
	if models.IsStatusTransitionAllowed("bogus", models.StatusRead) {
		t.Error("unknown from-status should never be allowed")
	}
	if models.IsStatusTransitionAllowed(models.StatusSent, "bogus") {
		t.Error("unknown to-status should never be allowed")
	}
}

// ── Counterpart ────────────────────────────────────────────────────────────

func TestCounterpart(t *testing.T) {
	if models.SenderCandidate.Counterpart() != models.SenderCompany {
		t.Error("candidate counterpart should be company")
	}
	if models.SenderCompany.Counterpart() != models.SenderCandidate {
		t.Error("company counterpart should be candidate")
	}
}
