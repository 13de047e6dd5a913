package booking

import (
	"context"
	"sync"

	apperrors "courtledger/internal/shared/errors"
)

// DefaultUndoDepth bounds how many booking mutations stay reversible.
const DefaultUndoDepth = 20

// UndoAction is a captured inverse operation: running Revert puts the store
// back in the state it had before the mutation that pushed it.
type UndoAction struct {
	Label  string
	Revert func(ctx context.Context) error
}

// UndoLog is a bounded stack of inverse operations. When the stack is full
// the oldest entry is dropped, so only the newest mutations stay reversible.
type UndoLog struct {
	mu      sync.Mutex
	actions []UndoAction
	depth   int
}

func NewUndoLog(depth int) *UndoLog {
	if depth <= 0 {
		depth = DefaultUndoDepth
	}
	return &UndoLog{depth: depth}
}

func (u *UndoLog) Push(action UndoAction) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.actions) >= u.depth {
		u.actions = u.actions[1:]
	}
	u.actions = append(u.actions, action)
}

// Undo pops and runs the newest inverse operation, returning its label.
// A revert failure keeps the action popped; replaying a half-applied
// inverse would be worse than losing it.
func (u *UndoLog) Undo(ctx context.Context) (string, error) {
	u.mu.Lock()
	if len(u.actions) == 0 {
		u.mu.Unlock()
		return "", apperrors.NewNotFoundError("nothing to undo")
	}
	action := u.actions[len(u.actions)-1]
	u.actions = u.actions[:len(u.actions)-1]
	u.mu.Unlock()

	if err := action.Revert(ctx); err != nil {
		return action.Label, err
	}
	return action.Label, nil
}

func (u *UndoLog) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.actions)
}
