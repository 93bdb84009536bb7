package coro

import (
	"errors"
	"testing"
)

func TestStartReturnsImmediatelyWithoutYield(t *testing.T) {
	s := Spawn(nil, "marker")
	msg := s.Start(func() (any, error) {
		return 42, nil
	})

	if msg.Kind != KindDone {
		t.Fatalf("expected KindDone, got %v", msg.Kind)
	}
	if msg.Result != 42 {
		t.Fatalf("expected result 42, got %v", msg.Result)
	}
	if !s.Finished() {
		t.Fatalf("expected Finished() true")
	}
}

func TestYieldAndResumeRoundTrip(t *testing.T) {
	s := Spawn(nil, nil)
	msg := s.Start(func() (any, error) {
		v, err := s.Yield(func() (any, error) { return "from driver", nil })
		if err != nil {
			return nil, err
		}
		return v.(string) + "!", nil
	})

	if msg.Kind != KindYield {
		t.Fatalf("expected KindYield, got %v", msg.Kind)
	}
	v, err := msg.Yield()
	if err != nil {
		t.Fatalf("unexpected error from yield func: %v", err)
	}

	msg = s.Resume(v, nil)
	if msg.Kind != KindDone {
		t.Fatalf("expected KindDone, got %v", msg.Kind)
	}
	if msg.Result != "from driver!" {
		t.Fatalf("expected %q, got %v", "from driver!", msg.Result)
	}
}

func TestResumeDeliversErrorAtYieldSite(t *testing.T) {
	s := Spawn(nil, nil)
	sentinel := errors.New("boom")

	msg := s.Start(func() (any, error) {
		_, err := s.Yield(func() (any, error) { return nil, sentinel })
		if err == nil {
			return nil, errors.New("expected an error at the yield site")
		}
		return "caught:" + err.Error(), nil
	})

	if msg.Kind != KindYield {
		t.Fatalf("expected KindYield, got %v", msg.Kind)
	}
	_, yieldErr := msg.Yield()
	msg = s.Resume(nil, yieldErr)

	if msg.Kind != KindDone {
		t.Fatalf("expected KindDone, got %v", msg.Kind)
	}
	if msg.Result != "caught:boom" {
		t.Fatalf("unexpected result: %v", msg.Result)
	}
}

func TestPanicIsRecoveredAndReported(t *testing.T) {
	s := Spawn(nil, nil)
	msg := s.Start(func() (any, error) {
		panic("kaboom")
	})

	if msg.Kind != KindPanic {
		t.Fatalf("expected KindPanic, got %v", msg.Kind)
	}
	if msg.Panic != "kaboom" {
		t.Fatalf("expected panic value %q, got %v", "kaboom", msg.Panic)
	}
	if !s.Finished() {
		t.Fatalf("expected Finished() true after panic")
	}
}

func TestMultipleYields(t *testing.T) {
	s := Spawn(nil, nil)
	var calls int

	msg := s.Start(func() (any, error) {
		a, _ := s.Yield(func() (any, error) { return 1, nil })
		b, _ := s.Yield(func() (any, error) { return 2, nil })
		return a.(int) + b.(int), nil
	})

	for msg.Kind == KindYield {
		calls++
		v, err := msg.Yield()
		msg = s.Resume(v, err)
	}

	if calls != 2 {
		t.Fatalf("expected 2 round-trips, got %d", calls)
	}
	if msg.Result != 3 {
		t.Fatalf("expected 3, got %v", msg.Result)
	}
}

func TestCurrentIsScopedToOwningGoroutine(t *testing.T) {
	if _, ok := Current(); ok {
		t.Fatalf("expected no current stack on the test goroutine")
	}

	s := Spawn(nil, nil)
	seen := make(chan bool, 1)
	msg := s.Start(func() (any, error) {
		cur, ok := Current()
		seen <- ok && cur == s
		return nil, nil
	})
	if msg.Kind != KindDone {
		t.Fatalf("expected KindDone, got %v", msg.Kind)
	}
	if !<-seen {
		t.Fatalf("expected Current() to resolve to the owning Stack from inside it")
	}

	if _, ok := Current(); ok {
		t.Fatalf("expected still no current stack on the test goroutine after the child finished")
	}
}

func TestParentAndMarker(t *testing.T) {
	root := Spawn(nil, "root-marker")
	child := Spawn(root, "child-marker")

	if child.Parent() != root {
		t.Fatalf("expected child.Parent() == root")
	}
	if child.Marker() != "child-marker" {
		t.Fatalf("unexpected marker: %v", child.Marker())
	}
	if root.Parent() != nil {
		t.Fatalf("expected root.Parent() == nil")
	}
}
