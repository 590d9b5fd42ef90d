package router

import "testing"

func TestArcIndexMutualInverse(t *testing.T) {
	ix := NewArcIndex()
	a1 := Arc{Net: 1, User: 0}
	a2 := Arc{Net: 1, User: 1}

	ix.Attach(a1, 10)
	ix.Attach(a1, 11)
	ix.Attach(a2, 11)

	t.Run("forward and inverse agree", func(t *testing.T) {
		for _, w := range ix.WiresOf(a1) {
			found := false
			for _, a := range ix.ArcsOf(w) {
				if a == a1 {
					found = true
				}
			}
			if !found {
				t.Errorf("wire %d does not list arc %v as an occupant", w, a1)
			}
		}
	})

	t.Run("detach reports emptied only when last occupant leaves", func(t *testing.T) {
		if emptied := ix.Detach(a1, 10); !emptied {
			t.Error("wire 10 had only a1; detaching it should report emptied")
		}
		if emptied := ix.Detach(a1, 11); emptied {
			t.Error("wire 11 still has a2; detaching a1 from it must not report emptied")
		}
		if emptied := ix.Detach(a2, 11); !emptied {
			t.Error("wire 11 had only a2 left; detaching it should report emptied")
		}
	})
}

func TestArcIndexDropArc(t *testing.T) {
	ix := NewArcIndex()
	a := Arc{Net: 2, User: 0}
	ix.Attach(a, 1)
	ix.Attach(a, 2)
	ix.Attach(a, 3)

	emptied := ix.DropArc(a)
	if len(emptied) != 3 {
		t.Fatalf("expected 3 emptied wires, got %d", len(emptied))
	}
	if len(ix.WiresOf(a)) != 0 {
		t.Error("arc should occupy no wires after DropArc")
	}
	for _, w := range []Wire{1, 2, 3} {
		if ix.HasWire(w) {
			t.Errorf("wire %d should have no occupants after DropArc", w)
		}
	}
}

func TestArcIndexNetOf(t *testing.T) {
	ix := NewArcIndex()
	a := Arc{Net: 5, User: 0}
	if _, ok := ix.NetOf(99); ok {
		t.Error("NetOf on an unoccupied wire should report ok=false")
	}
	ix.Attach(a, 99)
	net, ok := ix.NetOf(99)
	if !ok || net != 5 {
		t.Errorf("NetOf(99) = (%d, %v), want (5, true)", net, ok)
	}
}
