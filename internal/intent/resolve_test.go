package intent

import "testing"

func TestCleanCommand(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"delete buy groceries", "buy groceries"},
		{"Update The Report", "the report"},
		{"mark done finish it", "it"},
		{"delete", ""},
	}
	for _, tt := range tests {
		if got := CleanCommand(tt.command); got != tt.want {
			t.Errorf("CleanCommand(%q) = %q, want %q", tt.command, got, tt.want)
		}
	}
}

func TestScore_Containment(t *testing.T) {
	// Either direction of containment scores the longer length.
	if got := Score("Buy groceries", "buy groceries for the week"); got != 26 {
		t.Errorf("command-contains-title score = %d, want 26", got)
	}
	if got := Score("Buy groceries for the week", "groceries"); got != 26 {
		t.Errorf("title-contains-command score = %d, want 26", got)
	}
}

func TestScore_TokenOverlap(t *testing.T) {
	if got := Score("Write report draft", "the report pages"); got != 1 {
		t.Errorf("token overlap score = %d, want 1", got)
	}
	if got := Score("Walk the dog", "xyz"); got != 0 {
		t.Errorf("no-match score = %d, want 0", got)
	}
}

func TestScore_EmptyCleanedMatchesEverything(t *testing.T) {
	// An empty cleaned command is contained in every title, so the score
	// is the title length. Pinned behavior of the original matcher.
	if got := Score("Anything", ""); got != len("anything") {
		t.Errorf("empty-cleaned score = %d, want %d", got, len("anything"))
	}
}

func TestResolveTask(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Title: "Buy groceries"},
		{ID: 2, Title: "Walk the dog"},
		{ID: 3, Title: "Write report draft"},
	}

	id, ok := ResolveTask(candidates, "delete buy groceries")
	if !ok || id != 1 {
		t.Fatalf("ResolveTask = (%d, %v), want (1, true)", id, ok)
	}

	id, ok = ResolveTask(candidates, "update the report draft")
	if !ok || id != 3 {
		t.Fatalf("ResolveTask = (%d, %v), want (3, true)", id, ok)
	}
}

func TestResolveTask_NotFound(t *testing.T) {
	candidates := []Candidate{{ID: 1, Title: "Walk the dog"}}
	if id, ok := ResolveTask(candidates, "delete xyz"); ok || id != 0 {
		t.Fatalf("ResolveTask = (%d, %v), want (0, false)", id, ok)
	}
	if id, ok := ResolveTask(nil, "delete anything"); ok || id != 0 {
		t.Fatalf("ResolveTask(nil) = (%d, %v), want (0, false)", id, ok)
	}
}

func TestResolveTask_TieKeepsFirst(t *testing.T) {
	candidates := []Candidate{
		{ID: 7, Title: "laundry"},
		{ID: 9, Title: "laundry"},
	}
	id, ok := ResolveTask(candidates, "delete laundry")
	if !ok || id != 7 {
		t.Fatalf("tie should keep first candidate, got (%d, %v)", id, ok)
	}
}
