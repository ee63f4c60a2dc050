package model

import "testing"

func TestQueueAddAndPair(t *testing.T) {
	q := NewQueue()

	if _, _, ok := q.NextPair(); ok {
		t.Error("empty queue should not produce a pair")
	}

	if err := q.AddPlayer(Player{ID: "a"}); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if err := q.AddPlayer(Player{ID: "a"}); err == nil {
		t.Error("adding the same player twice should fail")
	}
	if _, _, ok := q.NextPair(); ok {
		t.Error("a single queued player should not produce a pair")
	}

	if err := q.AddPlayer(Player{ID: "b"}); err != nil {
		t.Fatalf("add b: %v", err)
	}
	if err := q.AddPlayer(Player{ID: "c"}); err != nil {
		t.Fatalf("add c: %v", err)
	}

	first, second, ok := q.NextPair()
	if !ok {
		t.Fatal("expected a pair")
	}
	if first.ID != "a" || second.ID != "b" {
		t.Errorf("paired (%s, %s), want longest waiting (a, b)", first.ID, second.ID)
	}
	if q.Size() != 1 {
		t.Errorf("queue size = %d, want 1", q.Size())
	}
}

func TestQueueRemovePlayer(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c"} {
		if err := q.AddPlayer(Player{ID: id}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	q.RemovePlayer("b")
	q.RemovePlayer("missing") // no-op

	first, second, ok := q.NextPair()
	if !ok {
		t.Fatal("expected a pair")
	}
	if first.ID != "a" || second.ID != "c" {
		t.Errorf("paired (%s, %s), want (a, c)", first.ID, second.ID)
	}
}
