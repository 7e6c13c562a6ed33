package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"medquiz/internal/domain/models/catalog"
)

// mockMover records moves and can be told to fail on a specific item.
type mockMover struct {
	mu     sync.Mutex
	moves  []catalog.ItemRef
	failOn string // composite key; empty means never fail
}

func (m *mockMover) MoveItem(_ context.Context, item catalog.ItemRef, _ Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != "" && item.Key() == m.failOn {
		return errors.New("mock persistence failure")
	}
	m.moves = append(m.moves, item)
	return nil
}

func (m *mockMover) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.moves)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrchestrator() (*Orchestrator, *mockMover) {
	mover := &mockMover{}
	return NewOrchestrator(mover, testLogger()), mover
}

func TestResolveMoveRequest_SingleItem(t *testing.T) {
	// Dragging an unselected quiz onto a folder moves just that quiz.
	o, mover := newTestOrchestrator()
	containers := testContainers()
	quiz := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q1"}

	result, err := o.ResolveMoveRequest(context.Background(),
		quiz,
		Target{Type: catalog.TypeFolder, ID: "f2"},
		Target{Type: catalog.TypeFolder, ID: "f1"},
		containers)
	if err != nil {
		t.Fatalf("ResolveMoveRequest: %v", err)
	}
	if len(result.Moved) != 1 || result.Moved[0] != quiz {
		t.Errorf("Moved = %v, want [%v]", result.Moved, quiz)
	}
	if mover.callCount() != 1 {
		t.Errorf("mover called %d times, want 1", mover.callCount())
	}
}

func TestResolveMoveRequest_BatchSemantics(t *testing.T) {
	containers := testContainers()

	t.Run("dragging a selected item moves the whole selection", func(t *testing.T) {
		o, mover := newTestOrchestrator()
		q1 := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q1"}
		q2 := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q2"}
		q3 := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q3"}
		o.ToggleSelect(q1)
		o.ToggleSelect(q2)
		o.ToggleSelect(q3)

		result, err := o.ResolveMoveRequest(context.Background(),
			q2,
			Target{Type: catalog.TypeFolder, ID: "f2"},
			Target{Type: catalog.TypeFolder, ID: "f1"},
			containers)
		if err != nil {
			t.Fatalf("ResolveMoveRequest: %v", err)
		}
		if len(result.Moved) != 3 {
			t.Fatalf("Moved = %v, want 3 items", result.Moved)
		}
		// Selection order, not drag order.
		want := []catalog.ItemRef{q1, q2, q3}
		for i := range want {
			if result.Moved[i] != want[i] {
				t.Errorf("Moved[%d] = %v, want %v", i, result.Moved[i], want[i])
			}
		}
		if mover.callCount() != 3 {
			t.Errorf("mover called %d times, want 3", mover.callCount())
		}
		if len(o.SelectedItems()) != 0 {
			t.Error("selection not cleared after successful batch")
		}
	})

	t.Run("dragging an unselected item ignores the selection", func(t *testing.T) {
		o, mover := newTestOrchestrator()
		o.ToggleSelect(catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q1"})
		loose := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q9"}

		result, err := o.ResolveMoveRequest(context.Background(),
			loose,
			Target{Type: catalog.TypeFolder, ID: "f2"},
			Target{Type: catalog.TypeFolder, ID: "f1"},
			containers)
		if err != nil {
			t.Fatalf("ResolveMoveRequest: %v", err)
		}
		if len(result.Moved) != 1 || result.Moved[0] != loose {
			t.Errorf("Moved = %v, want [%v]", result.Moved, loose)
		}
		if mover.callCount() != 1 {
			t.Errorf("mover called %d times, want 1", mover.callCount())
		}
		if len(o.SelectedItems()) != 1 {
			t.Error("unrelated selection should survive a single-item move")
		}
	})
}

func TestResolveMoveRequest_AllOrNothing(t *testing.T) {
	// One illegal item rejects the whole batch before any write.
	o, mover := newTestOrchestrator()
	containers := testContainers()
	subject := catalog.ItemRef{Type: catalog.TypeSubject, ID: "s2"}
	quiz := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q1"}
	o.ToggleSelect(subject)
	o.ToggleSelect(quiz)

	_, err := o.ResolveMoveRequest(context.Background(),
		quiz,
		Target{Type: catalog.TypeFolder, ID: "f2"},
		Target{Type: catalog.TypeFolder, ID: "f1"},
		containers)

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.Item != subject {
		t.Errorf("rejected item = %v, want %v", rejected.Item, subject)
	}
	if mover.callCount() != 0 {
		t.Errorf("mover called %d times, want 0", mover.callCount())
	}
	if len(o.SelectedItems()) != 2 {
		t.Error("selection should be unchanged after rejection")
	}
}

func TestResolveMoveRequest_NoOp(t *testing.T) {
	o, mover := newTestOrchestrator()
	containers := testContainers()
	quiz := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q1"}
	o.ToggleSelect(quiz)

	same := Target{Type: catalog.TypeFolder, ID: "f1"}
	result, err := o.ResolveMoveRequest(context.Background(), quiz, same, same, containers)
	if err != nil {
		t.Fatalf("ResolveMoveRequest: %v", err)
	}
	if !result.NoOp {
		t.Error("expected NoOp result")
	}
	if mover.callCount() != 0 {
		t.Errorf("mover called %d times, want 0", mover.callCount())
	}
	if len(o.SelectedItems()) != 1 {
		t.Error("selection should be unchanged by a no-op")
	}
}

func TestResolveMoveRequest_RootDrop(t *testing.T) {
	containers := testContainers()

	t.Run("folder onto root is rejected", func(t *testing.T) {
		o, mover := newTestOrchestrator()
		folder := catalog.ItemRef{Type: catalog.TypeFolder, ID: "f1"}

		_, err := o.ResolveMoveRequest(context.Background(),
			folder,
			Target{Type: catalog.TypeSubject, ID: "s1"},
			Target{}, // root
			containers)
		var rejected *RejectedError
		if !errors.As(err, &rejected) {
			t.Fatalf("expected RejectedError, got %v", err)
		}
		if rejected.TargetType != catalog.TypeRoot {
			t.Errorf("rejected target type = %q, want root", rejected.TargetType)
		}
		if mover.callCount() != 0 {
			t.Error("no writes expected for a rejected drop")
		}
	})

	t.Run("course onto root succeeds without a write", func(t *testing.T) {
		o, mover := newTestOrchestrator()
		course := catalog.ItemRef{Type: catalog.TypeCourse, ID: "c1"}

		result, err := o.ResolveMoveRequest(context.Background(),
			course,
			Target{Type: catalog.TypeCourse, ID: "c1"},
			Target{},
			containers)
		if err != nil {
			t.Fatalf("ResolveMoveRequest: %v", err)
		}
		if len(result.Moved) != 1 {
			t.Errorf("Moved = %v, want the course", result.Moved)
		}
		if mover.callCount() != 0 {
			t.Errorf("mover called %d times, want 0 (courses have no parent column)", mover.callCount())
		}
	})
}

func TestResolveMoveRequest_FolderIntoOwnSubtree(t *testing.T) {
	o, mover := newTestOrchestrator()
	containers := testContainers() // f2 is inside f1
	folder := catalog.ItemRef{Type: catalog.TypeFolder, ID: "f1"}

	_, err := o.ResolveMoveRequest(context.Background(),
		folder,
		Target{Type: catalog.TypeSubject, ID: "s1"},
		Target{Type: catalog.TypeFolder, ID: "f2"},
		containers)
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if mover.callCount() != 0 {
		t.Error("no writes expected when destination is inside the moved folder")
	}
}

func TestResolveMoveRequest_StaleTargetType(t *testing.T) {
	// The request claims the destination is a folder, but the snapshot
	// knows s1 is a subject. The snapshot wins: quiz into subject is
	// illegal.
	o, mover := newTestOrchestrator()
	containers := testContainers()
	quiz := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q1"}

	_, err := o.ResolveMoveRequest(context.Background(),
		quiz,
		Target{Type: catalog.TypeFolder, ID: "f1"},
		Target{Type: catalog.TypeFolder, ID: "s1"},
		containers)
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.TargetType != catalog.TypeSubject {
		t.Errorf("target type = %q, want subject from snapshot", rejected.TargetType)
	}
	if mover.callCount() != 0 {
		t.Error("no writes expected")
	}
}

func TestResolveMoveRequest_PartialFailure(t *testing.T) {
	// The second write fails: the first write stands, the selection is
	// kept so the user can retry.
	o, _ := newTestOrchestrator()
	mover := &mockMover{failOn: "quiz:q2"}
	o.mover = mover
	containers := testContainers()
	q1 := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q1"}
	q2 := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q2"}
	o.ToggleSelect(q1)
	o.ToggleSelect(q2)

	result, err := o.ResolveMoveRequest(context.Background(),
		q1,
		Target{Type: catalog.TypeFolder, ID: "f2"},
		Target{Type: catalog.TypeFolder, ID: "f1"},
		containers)
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if len(result.Moved) != 1 || result.Moved[0] != q1 {
		t.Errorf("Moved = %v, want [q1] (no rollback)", result.Moved)
	}
	if len(o.SelectedItems()) != 2 {
		t.Error("selection should survive a partial failure")
	}
}

func TestResolveTransferRequest(t *testing.T) {
	containers := testContainers()

	t.Run("mixed batch rejected at first offender", func(t *testing.T) {
		// subject s1 alone would be legal under course c2, but the
		// folder in the same selection cannot go directly under a
		// course, so the whole transfer is rejected.
		o, mover := newTestOrchestrator()
		subject := catalog.ItemRef{Type: catalog.TypeSubject, ID: "s1"}
		folder := catalog.ItemRef{Type: catalog.TypeFolder, ID: "f1"}
		o.ToggleSelect(subject)
		o.ToggleSelect(folder)

		_, err := o.ResolveTransferRequest(context.Background(),
			Target{Type: catalog.TypeCourse, ID: "c2"},
			containers)
		var rejected *RejectedError
		if !errors.As(err, &rejected) {
			t.Fatalf("expected RejectedError, got %v", err)
		}
		if rejected.Item != folder {
			t.Errorf("rejected item = %v, want %v", rejected.Item, folder)
		}
		if mover.callCount() != 0 {
			t.Error("no writes expected for a rejected transfer")
		}
	})

	t.Run("legal transfer moves selection and clears it", func(t *testing.T) {
		o, mover := newTestOrchestrator()
		subject := catalog.ItemRef{Type: catalog.TypeSubject, ID: "s1"}
		o.ToggleSelect(subject)

		result, err := o.ResolveTransferRequest(context.Background(),
			Target{Type: catalog.TypeCourse, ID: "c2"},
			containers)
		if err != nil {
			t.Fatalf("ResolveTransferRequest: %v", err)
		}
		if len(result.Moved) != 1 || result.Moved[0] != subject {
			t.Errorf("Moved = %v", result.Moved)
		}
		if mover.callCount() != 1 {
			t.Errorf("mover called %d times, want 1", mover.callCount())
		}
		if len(o.SelectedItems()) != 0 {
			t.Error("selection not cleared after successful transfer")
		}
	})

	t.Run("empty selection is a no-op", func(t *testing.T) {
		o, mover := newTestOrchestrator()
		result, err := o.ResolveTransferRequest(context.Background(),
			Target{Type: catalog.TypeCourse, ID: "c2"},
			containers)
		if err != nil {
			t.Fatalf("ResolveTransferRequest: %v", err)
		}
		if !result.NoOp {
			t.Error("expected NoOp result")
		}
		if mover.callCount() != 0 {
			t.Error("no writes expected")
		}
	})
}

// blockingMover lets a test hold a move open to observe the in-flight
// guard.
type blockingMover struct {
	entered   chan struct{}
	release   chan struct{}
	enterOnce sync.Once
}

func (m *blockingMover) MoveItem(_ context.Context, _ catalog.ItemRef, _ Target) error {
	m.enterOnce.Do(func() { close(m.entered) })
	<-m.release
	return nil
}

func TestResolveMoveRequest_InFlightGuard(t *testing.T) {
	mover := &blockingMover{entered: make(chan struct{}), release: make(chan struct{})}
	o := NewOrchestrator(mover, testLogger())
	containers := testContainers()
	quiz := catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q1"}

	done := make(chan error, 1)
	go func() {
		_, err := o.ResolveMoveRequest(context.Background(),
			quiz,
			Target{Type: catalog.TypeFolder, ID: "f2"},
			Target{Type: catalog.TypeFolder, ID: "f1"},
			containers)
		done <- err
	}()

	<-mover.entered

	_, err := o.ResolveMoveRequest(context.Background(),
		catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q2"},
		Target{Type: catalog.TypeFolder, ID: "f2"},
		Target{Type: catalog.TypeFolder, ID: "f1"},
		containers)
	if !errors.Is(err, ErrMoveInFlight) {
		t.Errorf("expected ErrMoveInFlight, got %v", err)
	}

	close(mover.release)
	if err := <-done; err != nil {
		t.Errorf("first move failed: %v", err)
	}

	// Idle again: a new move is accepted.
	_, err = o.ResolveMoveRequest(context.Background(),
		catalog.ItemRef{Type: catalog.TypeQuiz, ID: "q3"},
		Target{Type: catalog.TypeFolder, ID: "f2"},
		Target{Type: catalog.TypeFolder, ID: "f1"},
		containers)
	if errors.Is(err, ErrMoveInFlight) {
		t.Error("orchestrator stuck in applying state after completion")
	}
}
