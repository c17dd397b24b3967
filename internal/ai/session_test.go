package ai

import (
	"testing"

	"github.com/nzoschke/healthmate/internal/model"
)

func TestSession_AppendAndClear(t *testing.T) {
	s := NewSession()
	s.Append(
		model.ChatMessage{ID: "1", Role: model.ChatRoleUser, Text: "hi"},
		model.ChatMessage{ID: "2", Role: model.ChatRoleModel, Text: "hello"},
	)

	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	h := s.History()
	if h[0].Role != RoleUser || h[1].Role != RoleModel || h[1].Text != "hello" {
		t.Errorf("history = %+v", h)
	}

	msgs := s.Messages()
	msgs[0].Text = "changed"
	if s.Messages()[0].Text != "hi" {
		t.Error("Messages returned shared slice")
	}

	s.Clear()
	if s.Len() != 0 || len(s.History()) != 0 {
		t.Errorf("len after clear = %d", s.Len())
	}
}
