// Package linkedlist implements a singly linked list of integers along
// with a handful of classic list exercises.
package linkedlist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned by Parse when the input is not a list rendering
var ErrMalformed = errors.New("malformed list rendering")

type node struct {
	data int
	next *node
}

// List is a singly linked list. The zero value is an empty list.
type List struct {
	head *node
}

// `New` returns an empty list
func New() *List {
	return &List{}
}

// `FromValues` builds a list holding vs in order
func FromValues(vs ...int) *List {
	l := New()
	for _, v := range vs {
		l.AppendValue(v)
	}
	return l
}

// AppendValue adds value as the new tail of the list.
func (l *List) AppendValue(value int) {
	if l.head == nil {
		l.head = &node{data: value}
		return
	}
	runner := l.head
	for runner.next != nil {
		runner = runner.next
	}
	runner.next = &node{data: value}
}

// PrependValue places value at the front of the list.
func (l *List) PrependValue(value int) {
	l.head = &node{data: value, next: l.head}
}

func (l *List) IsEmpty() bool {
	return l.head == nil
}

// `Len` walks the list and counts its nodes
func (l *List) Len() int {
	n := 0
	for runner := l.head; runner != nil; runner = runner.next {
		n++
	}
	return n
}

// `Values` returns the values from head to tail
func (l *List) Values() []int {
	out := []int{}
	for runner := l.head; runner != nil; runner = runner.next {
		out = append(out, runner.data)
	}
	return out
}

// Clone returns a deep copy of l. No node is shared with the original.
func (l *List) Clone() *List {
	dst := New()
	var tail *node
	for runner := l.head; runner != nil; runner = runner.next {
		n := &node{data: runner.data}
		if tail == nil {
			dst.head = n
		} else {
			tail.next = n
		}
		tail = n
	}
	return dst
}

// RemoveDuplicates drops every node whose value already occurred earlier
// in the list. First occurrences keep their relative order.
// No auxiliary set is used: O(1) space, O(n^2) time.
func (l *List) RemoveDuplicates() {
	anchor := l.head
	for anchor != nil && anchor.next != nil {
		runner := anchor
		for runner.next != nil {
			// unlink next if it duplicates the anchor
			if runner.next.data == anchor.data {
				runner.next = runner.next.next
			} else {
				runner = runner.next
			}
		}
		anchor = anchor.next
	}
}

// PartitionAroundVal rebuilds the list so that values less than pivot
// come before values greater than or equal to it. Smaller values are
// prepended to the new list and so end up in reverse order; the rest
// are appended and keep their order. Runs in O(n^2) time.
func (l *List) PartitionAroundVal(pivot int) {
	partitioned := New()
	for runner := l.head; runner != nil; runner = runner.next {
		if runner.data < pivot {
			partitioned.PrependValue(runner.data)
		} else {
			partitioned.AppendValue(runner.data)
		}
	}
	l.head = partitioned.head
}

// PartitionAroundValInPlace partitions the list around pivot by relinking
// the existing nodes in O(n) time.
//
// Only the node after the cursor is ever tested; when it is less than
// pivot it is spliced out and becomes the new head. The node that was
// the head when the call started is never tested or moved.
func (l *List) PartitionAroundValInPlace(pivot int) {
	if l.IsEmpty() {
		return
	}
	runner := l.head
	for runner.next != nil {
		if runner.next.data < pivot {
			moved := runner.next
			runner.next = moved.next
			moved.next = l.head
			l.head = moved
		} else {
			runner = runner.next
		}
	}
}

// String renders the list as [v1->v2->...->vn], or [] when empty.
func (l *List) String() string {
	if l.head == nil {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for runner := l.head; runner != nil; runner = runner.next {
		sb.WriteString(strconv.Itoa(runner.data))
		if runner.next != nil {
			sb.WriteString("->")
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// SumLinkedListNums adds two numbers stored one base-10 digit per node,
// least significant digit first, and returns the sum in the same form.
//
// When one operand is empty (or nil) the result is a copy of the other,
// never the operand itself. Neither input is modified.
func SumLinkedListNums(a, b *List) *List {
	if a == nil || a.IsEmpty() {
		if b == nil {
			return New()
		}
		return b.Clone()
	}
	if b == nil || b.IsEmpty() {
		return a.Clone()
	}

	sum := New()
	var tail *node
	carry := 0
	for d1, d2 := a.head, b.head; d1 != nil || d2 != nil; {
		digit := carry
		if d1 != nil {
			digit += d1.data
			d1 = d1.next
		}
		if d2 != nil {
			digit += d2.data
			d2 = d2.next
		}
		// keep a tail pointer so building the result stays linear
		n := &node{data: digit % 10}
		if tail == nil {
			sum.head = n
		} else {
			tail.next = n
		}
		tail = n
		carry = digit / 10
	}
	if carry != 0 {
		tail.next = &node{data: carry}
	}
	return sum
}

// Parse reads a rendering produced by String back into a list. Only
// surrounding whitespace is tolerated; anything else String could not
// have written is rejected.
func Parse(s string) (*List, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: %q is not bracketed", ErrMalformed, s)
	}
	body := s[1 : len(s)-1]
	l := New()
	if body == "" {
		return l, nil
	}
	var tail *node
	for _, tok := range strings.Split(body, "->") {
		// only the canonical form String writes
		v, err := strconv.Atoi(tok)
		if err != nil || strconv.Itoa(v) != tok {
			return nil, fmt.Errorf("%w: bad value %q", ErrMalformed, tok)
		}
		n := &node{data: v}
		if tail == nil {
			l.head = n
		} else {
			tail.next = n
		}
		tail = n
	}
	return l, nil
}
