package collection

import "fmt"

// ChangeKind identifies the kind of change notification
type ChangeKind int

const (
	// Insert announces a single item appended at Index
	Insert ChangeKind = iota
	// Reset means the whole sequence may have changed and must be re-read
	Reset
)

func (k ChangeKind) String() string {
	switch k {
	case Insert:
		return "Insert"
	case Reset:
		return "Reset"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change is a notification delivered to observers of a Batched collection.
// Index and Item are only meaningful for Insert.
type Change[T any] struct {
	Kind  ChangeKind
	Index int
	Item  T
}

func (c Change[T]) String() string {
	if c.Kind == Insert {
		return fmt.Sprintf("Insert(%d, %v)", c.Index, c.Item)
	}
	return c.Kind.String() + "()"
}

// Observer receives change notifications synchronously.
// It must not mutate the collection that is notifying it.
type Observer[T any] func(Change[T])
