package order

import "testing"

type item struct {
	idx int
}

func (i item) Index() int { return i.idx }

func TestDrainReleasesInOrder(t *testing.T) {
	b := NewBuffer[item]()

	b.Submit(item{idx: 2})
	if got := b.Drain(); len(got) != 0 {
		t.Fatalf("expected nothing releasable yet, got %v", got)
	}

	b.Submit(item{idx: 0})
	got := b.Drain()
	if len(got) != 1 || got[0].idx != 0 {
		t.Fatalf("expected only index 0 releasable, got %v", got)
	}

	b.Submit(item{idx: 1})
	got = b.Drain()
	if len(got) != 2 || got[0].idx != 1 || got[1].idx != 2 {
		t.Fatalf("expected indices 1,2 released in order, got %v", got)
	}
}

func TestPendingAndNext(t *testing.T) {
	b := NewBuffer[item]()
	b.Submit(item{idx: 3})
	b.Submit(item{idx: 5})
	if b.Pending() != 2 {
		t.Errorf("expected 2 pending, got %d", b.Pending())
	}
	if b.Next() != 0 {
		t.Errorf("expected next=0, got %d", b.Next())
	}
	b.Submit(item{idx: 0})
	b.Submit(item{idx: 1})
	b.Submit(item{idx: 2})
	b.Submit(item{idx: 4})
	got := b.Drain()
	if len(got) != 6 {
		t.Fatalf("expected all 6 released, got %d", len(got))
	}
	if b.Pending() != 0 {
		t.Errorf("expected 0 pending after full drain, got %d", b.Pending())
	}
	if b.Next() != 6 {
		t.Errorf("expected next=6, got %d", b.Next())
	}
}

func TestDrainEmptyBuffer(t *testing.T) {
	b := NewBuffer[item]()
	if got := b.Drain(); got != nil {
		t.Errorf("expected nil drain on empty buffer, got %v", got)
	}
}
