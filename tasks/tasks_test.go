package tasks

import "testing"

func TestCreateAddsAnIncompleteTask(t *testing.T) {
	s := NewStore()
	task := s.Create("write docs")

	if task.Complete {
		t.Fatal("new task should start incomplete")
	}

	got, found := s.GetOne(ByID(task.ID))
	if !found {
		t.Fatal("expected newly created task to be found")
	}
	if got.Name != "write docs" {
		t.Fatalf("Name = %q, want %q", got.Name, "write docs")
	}
}

// TestCompleteMatchesSpecScenarioSix mirrors spec 8's scenario 6 literally:
// Complete on a missing task, an open task, then an already-complete task.
func TestCompleteMatchesSpecScenarioSix(t *testing.T) {
	s := NewStore()

	if desc, ok := s.Complete("missing"); ok || desc != "Task Not Found" {
		t.Fatalf("Complete(missing) = (%q, %v), want (Task Not Found, false)", desc, ok)
	}

	task := s.Create("ship release")
	if desc, ok := s.Complete(task.ID); !ok || desc != "" {
		t.Fatalf("Complete(open task) = (%q, %v), want (\"\", true)", desc, ok)
	}

	if desc, ok := s.Complete(task.ID); ok || desc != "Task Already Complete" {
		t.Fatalf("Complete(already complete) = (%q, %v), want (Task Already Complete, false)", desc, ok)
	}
}

func TestGetFiltersByQuery(t *testing.T) {
	s := NewStore()
	a := s.Create("buy milk")
	b := s.Create("buy bread")
	s.Complete(a.ID)

	open := s.Get(ByDone(false))
	if len(open) != 1 || open[0].ID != b.ID {
		t.Fatalf("Get(ByDone(false)) = %+v, want just %+v", open, b)
	}

	both := s.Get(NameContains("buy"))
	if len(both) != 2 {
		t.Fatalf("Get(NameContains(buy)) returned %d tasks, want 2", len(both))
	}

	compound := s.Get(And(NameContains("buy"), ByDone(true)))
	if len(compound) != 1 || compound[0].ID != a.ID {
		t.Fatalf("Get(And(...)) = %+v, want just %+v", compound, a)
	}
}

func TestGetOneReturnsFalseWhenNothingMatches(t *testing.T) {
	s := NewStore()
	s.Create("alpha")

	_, found := s.GetOne(NameIs("beta"))
	if found {
		t.Fatal("expected no match for NameIs(beta)")
	}
}

func TestAllQueryMatchesEveryTask(t *testing.T) {
	s := NewStore()
	s.Create("alpha")
	s.Create("beta")
	s.Complete(s.Create("gamma").ID)

	all := s.Get(All())
	if len(all) != 3 {
		t.Fatalf("Get(All()) returned %d tasks, want 3", len(all))
	}
}

func TestOrQueryMatchesEitherBranch(t *testing.T) {
	s := NewStore()
	a := s.Create("alpha")
	b := s.Create("beta")

	matches := s.Get(Or(ByID(a.ID), ByID(b.ID)))
	if len(matches) != 2 {
		t.Fatalf("Get(Or(...)) returned %d tasks, want 2", len(matches))
	}
}
