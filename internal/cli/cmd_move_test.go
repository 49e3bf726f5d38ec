package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestMoveCommand_InvalidStatus(t *testing.T) {
	cmd := newMoveCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"4f8a9c2e", "doing"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for invalid status")
	}
	if !strings.Contains(err.Error(), "invalid status") {
		t.Errorf("error = %v, want mention of invalid status", err)
	}
}

func TestMoveCommand_InvalidIndex(t *testing.T) {
	cmd := newMoveCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"4f8a9c2e", "in_progress", "second"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for non-numeric index")
	}
	if !strings.Contains(err.Error(), "invalid index") {
		t.Errorf("error = %v, want mention of invalid index", err)
	}
}

func TestMoveCommand_UnknownTask(t *testing.T) {
	withBoardDir(t)

	cmd := newMoveCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"ghost", "in_progress"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown task")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not found", err)
	}
}
