// Package list implements a generic doubly linked list with O(1) append.
package list

// Element is an entry in a List.
type Element[V any] struct {
	Value V

	next, prev *Element[V]
}

// Next returns the following element or nil.
func (e *Element[V]) Next() *Element[V] { return e.next }

// Prev returns the preceding element or nil.
func (e *Element[V]) Prev() *Element[V] { return e.prev }

// List is a doubly linked list. The zero value is an empty list ready to use.
type List[V any] struct {
	head, tail *Element[V]
	size       int
}

// Len returns the number of elements.
func (l *List[V]) Len() int { return l.size }

// Front returns the first element or nil.
func (l *List[V]) Front() *Element[V] { return l.head }

// Back returns the last element or nil.
func (l *List[V]) Back() *Element[V] { return l.tail }

// PushBack appends v and returns its element.
func (l *List[V]) PushBack(v V) *Element[V] {
	e := &Element[V]{Value: v}
	if l.tail == nil {
		l.head = e
	} else {
		l.tail.next = e
		e.prev = l.tail
	}
	l.tail = e
	l.size++
	return e
}

// Find returns the first element, walking from the front, whose value satisfies pred.
func (l *List[V]) Find(pred func(V) bool) (*Element[V], bool) {
	for e := l.head; e != nil; e = e.next {
		if pred(e.Value) {
			return e, true
		}
	}
	return nil, false
}

// Each calls fn on every value from front to back.
func (l *List[V]) Each(fn func(V)) {
	for e := l.head; e != nil; e = e.next {
		fn(e.Value)
	}
}
