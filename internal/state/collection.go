// Package state holds the pure reducers behind the domain containers.
// Reducers never mutate their input and perform no I/O.
package state

import "slices"

// Keyed is implemented by every entity stored in a Collection.
type Keyed interface {
	Key() string
}

type Collection[T Keyed] struct {
	Items     []T    `json:"items"`
	IsLoading bool   `json:"isLoading"`
	Error     string `json:"error,omitempty"`
}

// NewCollection returns the initial state: empty, loading, no error.
func NewCollection[T Keyed]() Collection[T] {
	return Collection[T]{Items: []T{}, IsLoading: true}
}

// Clone returns a copy that shares no storage with c, down to the slices held
// by each item.
func (c Collection[T]) Clone() Collection[T] {
	c.Items = cloneItems(c.Items)
	return c
}

type ActionType int

const (
	ActionSetLoading ActionType = iota
	ActionSetError
	ActionSetAll
	ActionAdd
	ActionUpdate
	ActionDelete
)

func (t ActionType) String() string {
	switch t {
	case ActionSetLoading:
		return "SET_LOADING"
	case ActionSetError:
		return "SET_ERROR"
	case ActionSetAll:
		return "SET_ALL"
	case ActionAdd:
		return "ADD"
	case ActionUpdate:
		return "UPDATE"
	case ActionDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

type Action[T Keyed] struct {
	Type    ActionType
	Loading bool
	Error   string
	Items   []T
	Item    T
	ID      string
}

func SetLoading[T Keyed](loading bool) Action[T] {
	return Action[T]{Type: ActionSetLoading, Loading: loading}
}

func SetError[T Keyed](msg string) Action[T] {
	return Action[T]{Type: ActionSetError, Error: msg}
}

func SetAll[T Keyed](items []T) Action[T] {
	return Action[T]{Type: ActionSetAll, Items: items}
}

func Add[T Keyed](item T) Action[T] {
	return Action[T]{Type: ActionAdd, Item: item}
}

func Update[T Keyed](item T) Action[T] {
	return Action[T]{Type: ActionUpdate, Item: item}
}

func Delete[T Keyed](id string) Action[T] {
	return Action[T]{Type: ActionDelete, ID: id}
}

// Reduce computes the next state. The boolean is false only when an Update or
// Delete targets an id that is not in the collection; the state is then
// returned unchanged.
func Reduce[T Keyed](s Collection[T], a Action[T]) (Collection[T], bool) {
	switch a.Type {
	case ActionSetLoading:
		s.IsLoading = a.Loading
		return s, true
	case ActionSetError:
		s.Error = a.Error
		return s, true
	case ActionSetAll:
		return Collection[T]{Items: cloneItems(a.Items)}, true
	case ActionAdd:
		items := make([]T, 0, len(s.Items)+1)
		items = append(items, s.Items...)
		s.Items = append(items, cloneItem(a.Item))
		return s, true
	case ActionUpdate:
		idx := indexOf(s.Items, a.Item.Key())
		if idx < 0 {
			return s, false
		}
		items := slices.Clone(s.Items)
		items[idx] = cloneItem(a.Item)
		s.Items = items
		return s, true
	case ActionDelete:
		idx := indexOf(s.Items, a.ID)
		if idx < 0 {
			return s, false
		}
		items := make([]T, 0, len(s.Items)-1)
		items = append(items, s.Items[:idx]...)
		s.Items = append(items, s.Items[idx+1:]...)
		return s, true
	default:
		return s, true
	}
}

// Find returns the item with the given id.
func Find[T Keyed](items []T, id string) (T, bool) {
	idx := indexOf(items, id)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return items[idx], true
}

func indexOf[T Keyed](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool { return item.Key() == id })
}

// cloner is implemented by items that hold slices of their own.
type cloner[T any] interface {
	Clone() T
}

func cloneItems[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = cloneItem(item)
	}
	return out
}

func cloneItem[T any](item T) T {
	if c, ok := any(item).(cloner[T]); ok {
		return c.Clone()
	}
	return item
}
