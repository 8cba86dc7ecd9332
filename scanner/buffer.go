package scanner

// rowBuffer is a reusable row plus a pointer to each of its cells, the
// destination shape of Scan-style APIs. The row is overwritten by every scan.
type rowBuffer struct {
	values []any
	ptrs   []any
}

// dest returns pointers to a row of n cells, reallocating only when n changes.
func (b *rowBuffer) dest(n int) []any {
	if len(b.values) != n {
		b.values = make([]any, n)
		b.ptrs = make([]any, n)
		for i := range b.values {
			b.ptrs[i] = &b.values[i]
		}
	}
	return b.ptrs
}
