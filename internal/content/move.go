package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"medquiz/internal/domain/models/catalog"
)

// ErrMoveInFlight is returned when a move arrives while a previous
// batch is still being applied. Only one batch may be in flight.
var ErrMoveInFlight = errors.New("a move is already in progress")

// RejectedError reports the first item of a batch that may not be
// placed under the requested target. Validation is all-or-nothing, so
// one rejected item rejects the whole batch before any write.
type RejectedError struct {
	Item       catalog.ItemRef
	TargetType catalog.ItemType
	Reason     string
}

func (e *RejectedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot move %s: %s", e.Item.Key(), e.Reason)
	}
	target := string(e.TargetType)
	if e.TargetType == catalog.TypeRoot {
		target = "root"
	}
	return fmt.Sprintf("cannot move %s into %s", e.Item.Key(), target)
}

// Target identifies a drop destination. The zero value is the root.
type Target struct {
	Type catalog.ItemType
	ID   string
}

// IsRoot reports whether the target is the top level of the tree.
func (t Target) IsRoot() bool {
	return t.ID == ""
}

// ItemMover persists a single reparent. Implementations write the
// type-appropriate parent column and nothing else.
type ItemMover interface {
	MoveItem(ctx context.Context, item catalog.ItemRef, dest Target) error
}

// MoveResult reports what a resolved request did.
type MoveResult struct {
	Moved []catalog.ItemRef
	NoOp  bool
}

type orchestratorState int

const (
	stateIdle orchestratorState = iota
	stateApplying
)

// Orchestrator owns the multi-select state and serializes batch moves.
// All validation happens against a snapshot of the containers before
// the first write; writes then proceed in selection order and stop at
// the first persistence failure with no rollback of earlier writes.
type Orchestrator struct {
	mover  ItemMover
	logger *slog.Logger

	mu        sync.Mutex
	state     orchestratorState
	selection *Selection
	expansion *ExpansionSet
}

// NewOrchestrator creates an idle orchestrator with an empty selection.
func NewOrchestrator(mover ItemMover, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		mover:     mover,
		logger:    logger,
		selection: NewSelection(),
		expansion: NewExpansionSet(),
	}
}

// ToggleSelect flips an item in or out of the selection.
func (o *Orchestrator) ToggleSelect(item catalog.ItemRef) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selection.Toggle(item)
}

// IsSelected reports whether an item is currently selected.
func (o *Orchestrator) IsSelected(item catalog.ItemRef) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selection.Contains(item)
}

// ClearSelection empties the selection.
func (o *Orchestrator) ClearSelection() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selection.Clear()
}

// SelectedItems returns the selection in insertion order.
func (o *Orchestrator) SelectedItems() []catalog.ItemRef {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selection.Items()
}

// ToggleExpand flips a container's expanded state.
func (o *Orchestrator) ToggleExpand(item catalog.ItemRef) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.expansion.Toggle(item)
}

// IsExpanded reports whether a container is expanded.
func (o *Orchestrator) IsExpanded(item catalog.ItemRef) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.expansion.IsExpanded(item)
}

// ResolveMoveRequest handles a drag-drop. When the dragged item is part
// of the current selection the whole selection moves as one batch;
// otherwise only the dragged item moves. Dropping an item onto the
// container it came from is a no-op. The selection is cleared only when
// every item in the batch was persisted.
func (o *Orchestrator) ResolveMoveRequest(ctx context.Context, dragged catalog.ItemRef, source, dest Target, containers []catalog.Container) (*MoveResult, error) {
	o.mu.Lock()
	if o.state == stateApplying {
		o.mu.Unlock()
		return nil, ErrMoveInFlight
	}

	var batch []catalog.ItemRef
	if o.selection.Contains(dragged) {
		batch = o.selection.Items()
	} else {
		batch = []catalog.ItemRef{dragged}
	}

	if source == dest {
		o.mu.Unlock()
		return &MoveResult{NoOp: true}, nil
	}

	targetType := resolveTargetType(dest, containers)
	dest.Type = targetType

	if err := validateBatch(batch, dest, targetType, containers); err != nil {
		o.mu.Unlock()
		return nil, err
	}

	o.state = stateApplying
	o.mu.Unlock()

	result, err := o.apply(ctx, batch, dest)

	o.mu.Lock()
	o.state = stateIdle
	if err == nil {
		o.selection.Clear()
	}
	o.mu.Unlock()

	return result, err
}

// ResolveTransferRequest moves the entire current selection to a
// destination chosen in the transfer dialog. An empty selection is a
// no-op.
func (o *Orchestrator) ResolveTransferRequest(ctx context.Context, dest Target, containers []catalog.Container) (*MoveResult, error) {
	o.mu.Lock()
	if o.state == stateApplying {
		o.mu.Unlock()
		return nil, ErrMoveInFlight
	}

	batch := o.selection.Items()
	if len(batch) == 0 {
		o.mu.Unlock()
		return &MoveResult{NoOp: true}, nil
	}

	targetType := resolveTargetType(dest, containers)
	dest.Type = targetType

	if err := validateBatch(batch, dest, targetType, containers); err != nil {
		o.mu.Unlock()
		return nil, err
	}

	o.state = stateApplying
	o.mu.Unlock()

	result, err := o.apply(ctx, batch, dest)

	o.mu.Lock()
	o.state = stateIdle
	if err == nil {
		o.selection.Clear()
	}
	o.mu.Unlock()

	return result, err
}

// resolveTargetType prefers the container's true type from the
// snapshot; a stale request type cannot widen what the rules allow.
func resolveTargetType(dest Target, containers []catalog.Container) catalog.ItemType {
	if dest.IsRoot() {
		return catalog.TypeRoot
	}
	for i := range containers {
		if containers[i].ID == dest.ID {
			return containers[i].Type
		}
	}
	return dest.Type
}

// validateBatch rejects the whole batch on the first offender.
func validateBatch(batch []catalog.ItemRef, dest Target, targetType catalog.ItemType, containers []catalog.Container) error {
	for _, item := range batch {
		if !CanMoveItemToTarget(item.Type, targetType) {
			return &RejectedError{Item: item, TargetType: targetType}
		}
		if item.Type == catalog.TypeFolder && !dest.IsRoot() {
			if item.ID == dest.ID || isDescendant(containers, item.ID, dest.ID) {
				return &RejectedError{Item: item, TargetType: targetType, Reason: "destination is inside the folder being moved"}
			}
		}
	}
	return nil
}

func (o *Orchestrator) apply(ctx context.Context, batch []catalog.ItemRef, dest Target) (*MoveResult, error) {
	result := &MoveResult{}
	for _, item := range batch {
		// A course dropped on root is already at root level; there is
		// no parent column to write.
		if item.Type == catalog.TypeCourse && dest.IsRoot() {
			result.Moved = append(result.Moved, item)
			continue
		}
		if err := o.mover.MoveItem(ctx, item, dest); err != nil {
			o.logger.Error("batch move aborted",
				"item", item.Key(),
				"dest", dest.ID,
				"moved", len(result.Moved),
				"error", err)
			return result, fmt.Errorf("moving %s: %w", item.Key(), err)
		}
		result.Moved = append(result.Moved, item)
	}
	o.logger.Info("batch move applied", "count", len(result.Moved), "dest", dest.ID)
	return result, nil
}
