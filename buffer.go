package swiftcsv

// scalarBuffer is a LIFO pushback stack of Unicode scalars, pre-pended
// ahead of the decoder. It is owned exclusively by a single Reader and
// never calls the decoder itself: next reports absence rather than
// reaching for more input, leaving the caller to decide whether to pull
// from the decoder.
//
// The source implementation keeps matcher closures that alias the buffer
// non-owningly. This rewrite instead passes *scalarBuffer by reference
// into plain matcher functions (see matcher.go), so the buffer's lifetime
// is simply the reader's lifetime with no hidden aliasing.
type scalarBuffer struct {
	stack []rune
}

// newScalarBuffer returns an empty buffer.
func newScalarBuffer() *scalarBuffer {
	return &scalarBuffer{stack: make([]rune, 0, 16)}
}

// next pops the most recently pushed scalar, reporting ok=false when the
// buffer is empty.
func (b *scalarBuffer) next() (r rune, ok bool) {
	n := len(b.stack)
	if n == 0 {
		return 0, false
	}
	r = b.stack[n-1]
	b.stack = b.stack[:n-1]
	return r, true
}

// push prepends a single scalar so it is the next one returned by next.
func (b *scalarBuffer) push(r rune) {
	b.stack = append(b.stack, r)
}

// pushAll prepends scalars such that the first element of scalars is the
// first one returned by subsequent next() calls, i.e. original order is
// preserved on the way back out.
func (b *scalarBuffer) pushAll(scalars []rune) {
	for i := len(scalars) - 1; i >= 0; i-- {
		b.push(scalars[i])
	}
}

// empty reports whether the buffer currently holds no scalars.
func (b *scalarBuffer) empty() bool { return len(b.stack) == 0 }

// len reports the number of scalars currently buffered.
func (b *scalarBuffer) len() int { return len(b.stack) }
