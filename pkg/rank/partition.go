package rank

// Disclosure is a ranked list split into an always-visible head and an overflow tail
// that stays collapsed until the consumer opens it.
type Disclosure[T any] struct {
	Visible  []T
	Overflow []T
	Open     bool
}

// HasOverflow reports whether there is anything to disclose. When false, no
// "more" affordance should be offered.
func (d Disclosure[T]) HasOverflow() bool {
	return len(d.Overflow) > 0
}

// Len is the number of items across both parts.
func (d Disclosure[T]) Len() int {
	return len(d.Visible) + len(d.Overflow)
}

// Shown returns the items currently on display: the head, plus the tail when open.
func (d Disclosure[T]) Shown() []T {
	if !d.Open {
		return d.Visible
	}
	out := make([]T, 0, d.Len())
	out = append(out, d.Visible...)
	return append(out, d.Overflow...)
}

// Partition splits items after the first limit entries, keeping their order.
// The overflow starts collapsed. A negative limit is rejected.
func Partition[T any](items []T, limit int) (Disclosure[T], error) {
	if limit < 0 {
		return Disclosure[T]{}, newContractViolation("partition", "negative limit %d", limit)
	}

	cut := min(limit, len(items))
	visible := make([]T, cut)
	copy(visible, items[:cut])
	overflow := make([]T, len(items)-cut)
	copy(overflow, items[cut:])

	return Disclosure[T]{Visible: visible, Overflow: overflow}, nil
}

// SetOverflowOpen returns d with its overflow state replaced. d itself is not modified.
func SetOverflowOpen[T any](d Disclosure[T], open bool) Disclosure[T] {
	d.Open = open
	return d
}
