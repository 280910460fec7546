package domain

import "testing"

func TestAssigneeCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to TaskStatus
		want     bool
	}{
		{TaskOpen, TaskInProgress, true},
		{TaskOpen, TaskOpen, true},
		{TaskInProgress, TaskInProgress, true},
		{TaskResolved, TaskResolved, true},
		{TaskOpen, TaskResolved, false},
		{TaskInProgress, TaskResolved, false},
		{TaskInProgress, TaskOpen, false},
		{TaskResolved, TaskOpen, false},
		{TaskResolved, TaskInProgress, false},
	}
	for _, tc := range cases {
		if got := tc.from.AssigneeCanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidTaskStatus(t *testing.T) {
	for _, valid := range []string{"open", "in-progress", "resolved"} {
		if !ValidTaskStatus(valid) {
			t.Errorf("%q should be valid", valid)
		}
	}
	for _, invalid := range []string{"", "done", "OPEN", "in_progress"} {
		if ValidTaskStatus(invalid) {
			t.Errorf("%q should be invalid", invalid)
		}
	}
}

func TestIsAssignedTo(t *testing.T) {
	task := &Task{AssignedTo: "u1"}
	if !task.IsAssignedTo("u1") {
		t.Errorf("expected u1 to be assignee")
	}
	if task.IsAssignedTo("u2") {
		t.Errorf("u2 is not the assignee")
	}

	unassigned := &Task{}
	if unassigned.IsAssignedTo("") {
		t.Errorf("empty user id must never match an unassigned task")
	}
}
