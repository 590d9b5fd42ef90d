package router

import "testing"

func TestArcWorkQueueOrdersByPriorityDescending(t *testing.T) {
	q := NewArcWorkQueue()
	low := Arc{Net: 1, User: 0}
	high := Arc{Net: 2, User: 0}
	mid := Arc{Net: 3, User: 0}

	q.Insert(low, 5)
	q.Insert(high, 50)
	q.Insert(mid, 20)

	want := []Arc{high, mid, low}
	for i, expect := range want {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("pop %d: queue emptied early", i)
		}
		if got != expect {
			t.Errorf("pop %d = %v, want %v", i, got, expect)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("queue should be empty")
	}
}

func TestArcWorkQueueRejectsDuplicateMembership(t *testing.T) {
	q := NewArcWorkQueue()
	a := Arc{Net: 1, User: 0}

	if !q.Insert(a, 10) {
		t.Fatal("first insert should succeed")
	}
	if q.Insert(a, 999) {
		t.Error("second insert of the same arc should be a no-op")
	}
	if q.Len() != 1 {
		t.Errorf("queue length = %d, want 1", q.Len())
	}

	if _, ok := q.Pop(); !ok {
		t.Fatal("expected one entry to pop")
	}
	if q.Contains(a) {
		t.Error("arc should no longer be queued after Pop")
	}
}
