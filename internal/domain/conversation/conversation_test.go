package conversation

import (
	"testing"
	"time"
)

func TestRole_IsValid(t *testing.T) {
	if !RoleUser.IsValid() || !RoleAssistant.IsValid() {
		t.Error("user and assistant must be valid")
	}
	if Role("system").IsValid() || Role("").IsValid() {
		t.Error("only user and assistant are logged")
	}
}

func TestNewTurn_Timestamp(t *testing.T) {
	turn := NewTurn(RoleUser, "안녕하세요")

	if turn.Role != RoleUser || turn.Content != "안녕하세요" {
		t.Errorf("unexpected turn: %+v", turn)
	}
	if _, err := time.Parse(time.RFC3339, turn.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", turn.Timestamp, err)
	}
}
