package swiftcsv

// A delimiterMatcher answers, given the scalar already pulled from the
// stream, whether a particular Delimiter begins at that scalar. It
// consumes additional lookahead scalars from the buffer/source as needed
// and is side-effect-free on a false result: every scalar it pulled beyond
// the first is restored to the buffer in original order before returning,
// and the first scalar itself is left for the caller to dispose of.
//
// The source implementation ties this behavior to a closure that aliases
// the buffer. Here it is a plain function taking the buffer by reference,
// per the design note in §9: closures hiding a non-owning alias to a
// buffer are an anti-pattern once the buffer's lifetime is just the
// reader's lifetime.
func matchDelimiter(d Delimiter, first rune, buf *scalarBuffer, src ScalarSource) (bool, error) {
	scalars := d.Scalars()
	if scalars[0] != first {
		return false, nil
	}
	if len(scalars) == 1 {
		return true, nil
	}

	extras := make([]rune, 0, len(scalars)-1)
	for i := 1; i < len(scalars); i++ {
		r, ok, err := pull(buf, src)
		if err != nil {
			buf.pushAll(extras)
			return false, err
		}
		if !ok {
			buf.pushAll(extras)
			return false, nil
		}
		if r != scalars[i] {
			extras = append(extras, r)
			buf.pushAll(extras)
			return false, nil
		}
		extras = append(extras, r)
	}
	return true, nil
}

// matchRowDelimiterSet tries each candidate in the set, longest-first, and
// reports the first one that fully matches at first. On overall mismatch
// the buffer is left exactly as it was (every candidate's lookahead is its
// own restored on failure before the next candidate is tried).
func matchRowDelimiterSet(set RowDelimiterSet, first rune, buf *scalarBuffer, src ScalarSource) (bool, Delimiter, error) {
	for _, d := range set.Members() {
		if d.Scalars()[0] != first {
			continue
		}
		matched, err := matchDelimiter(d, first, buf, src)
		if err != nil {
			return false, Delimiter{}, err
		}
		if matched {
			return true, d, nil
		}
	}
	return false, Delimiter{}, nil
}
