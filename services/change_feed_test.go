package services

import (
	"testing"
)

func TestApplyChangeReplacesWholesale(t *testing.T) {
	state := ClientState{
		"user_profiles": map[string]any{"name": "Old", "age": 30},
	}

	next := ApplyChange(state, ChangeEvent{
		Table:  "user_profiles",
		Action: ChangeUpdate,
		Row:    map[string]any{"name": "New"},
	})

	row, ok := next["user_profiles"].(map[string]any)
	if !ok {
		t.Fatal("expected a row for user_profiles")
	}
	if row["name"] != "New" {
		t.Fatalf("expected replaced row, got %v", row)
	}
	if _, has := row["age"]; has {
		t.Fatal("old fields merged into the new row; replace must be wholesale")
	}
}

func TestApplyChangeLastWriteWins(t *testing.T) {
	state := ClientState{}
	state = ApplyChange(state, ChangeEvent{Table: "user_goals", Action: ChangeInsert, Row: "first"})
	state = ApplyChange(state, ChangeEvent{Table: "user_goals", Action: ChangeUpdate, Row: "second"})

	if state["user_goals"] != "second" {
		t.Fatalf("expected the later notification to win, got %v", state["user_goals"])
	}
}

func TestApplyChangeDeleteRemovesRow(t *testing.T) {
	state := ClientState{"meal_logs": "row"}
	next := ApplyChange(state, ChangeEvent{Table: "meal_logs", Action: ChangeDelete})
	if _, has := next["meal_logs"]; has {
		t.Fatal("delete must drop the table entry")
	}
}

func TestApplyChangeDoesNotMutateInput(t *testing.T) {
	state := ClientState{"user_profiles": "original"}
	_ = ApplyChange(state, ChangeEvent{Table: "user_profiles", Action: ChangeUpdate, Row: "changed"})

	if state["user_profiles"] != "original" {
		t.Fatal("input state was mutated")
	}
}
