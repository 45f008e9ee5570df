package swiftcsv

import (
	"bufio"
	"io"
)

// ScalarSource is the abstract lazy source of Unicode scalars the core
// consumes: a function returning the next scalar, or io.EOF when
// exhausted. Byte-encoding detection (UTF-8/16/32, BOM handling) is an
// external collaborator's job — see the decode package — not the core's;
// a ScalarSource is simply whatever already knows how to hand back runes.
type ScalarSource func() (rune, error)

// pull draws the next scalar, preferring the buffer over the source so
// previously pushed-back lookahead is replayed before new input is
// decoded.
func pull(buf *scalarBuffer, src ScalarSource) (rune, bool, error) {
	if r, ok := buf.next(); ok {
		return r, true, nil
	}
	r, err := src()
	if err != nil {
		if err == io.EOF {
			return 0, false, nil
		}
		return 0, false, wrapStream(err)
	}
	return r, true, nil
}

// FromRuneReader adapts an io.RuneReader into a ScalarSource.
func FromRuneReader(r io.RuneReader) ScalarSource {
	return func() (rune, error) {
		ru, _, err := r.ReadRune()
		return ru, err
	}
}

// FromReader adapts a plain io.Reader, treating its bytes as UTF-8, into a
// ScalarSource. Callers needing other encodings or BOM sniffing should use
// the decode package instead.
func FromReader(r io.Reader) ScalarSource {
	br, ok := r.(io.RuneReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return FromRuneReader(br)
}

// FromString adapts a string into a ScalarSource, primarily useful for
// tests and the inferrer's speculative re-tokenization.
func FromString(s string) ScalarSource {
	runes := []rune(s)
	i := 0
	return func() (rune, error) {
		if i >= len(runes) {
			return 0, io.EOF
		}
		r := runes[i]
		i++
		return r, nil
	}
}
