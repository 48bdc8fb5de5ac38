package session

import (
	"errors"
	"sync"
	"testing"

	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	"github.com/tulamia/orderdesk/internal/domain/model"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager()

	s := m.Create()
	if s.ID == "" {
		t.Fatal("expected assigned session id")
	}
	if !s.Cart().Empty() {
		t.Fatal("expected empty cart")
	}

	got, ok := m.Get(s.ID)
	if !ok || got != s {
		t.Fatal("expected to resolve the same session")
	}
}

func TestGetOrCreate(t *testing.T) {
	m := NewManager()

	s := m.GetOrCreate("")
	if s == nil {
		t.Fatal("expected fresh session")
	}
	if same := m.GetOrCreate(s.ID); same != s {
		t.Fatal("expected the existing session back")
	}
	if other := m.GetOrCreate("unknown-id"); other == s {
		t.Fatal("unknown id must open a fresh session")
	}
	if m.Len() != 2 {
		t.Fatalf("unexpected session count %d", m.Len())
	}
}

func TestMutateAndSnapshot(t *testing.T) {
	m := NewManager()
	s := m.Create()

	s.Mutate(func(c *model.Cart) {
		c.Add("bruschetta")
		c.Update("tagliatelle", 2)
	})

	snapshot := s.Cart()
	if snapshot.Quantity("bruschetta") != 1 || snapshot.Quantity("tagliatelle") != 2 {
		t.Fatalf("unexpected quantities %v", snapshot.Quantities())
	}

	// A snapshot is a copy; mutating it must not touch the session.
	snapshot.Clear()
	if s.Cart().Empty() {
		t.Fatal("session cart mutated through a snapshot")
	}
}

func TestSubmissionLatch(t *testing.T) {
	m := NewManager()
	s := m.Create()

	if err := s.BeginSubmission(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.BeginSubmission(); !errors.Is(err, domainErrors.ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}
	s.EndSubmission()
	if err := s.BeginSubmission(); err != nil {
		t.Fatalf("latch did not release: %v", err)
	}
}

func TestSubmissionLatchUnderContention(t *testing.T) {
	m := NewManager()
	s := m.Create()

	const attempts = 32
	var wg sync.WaitGroup
	acquired := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.BeginSubmission(); err == nil {
				acquired <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(acquired)

	var count int
	for range acquired {
		count++
	}
	if count != 1 {
		t.Fatalf("expected exactly one acquired slot, got %d", count)
	}
}

func TestClearCart(t *testing.T) {
	m := NewManager()
	s := m.Create()

	s.Mutate(func(c *model.Cart) { c.Add("bruschetta") })
	s.ClearCart()
	if !s.Cart().Empty() {
		t.Fatal("expected empty cart after clear")
	}
}

func TestDrop(t *testing.T) {
	m := NewManager()
	s := m.Create()

	m.Drop(s.ID)
	if _, ok := m.Get(s.ID); ok {
		t.Fatal("expected session to be gone")
	}
}
