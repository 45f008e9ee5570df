package swiftcsv

import "testing"

func TestScalarBufferPushNext(t *testing.T) {
	t.Parallel()

	buf := newScalarBuffer()
	if !buf.empty() {
		t.Fatal("expected fresh buffer to be empty")
	}

	buf.push('b')
	buf.push('a')
	r, ok := buf.next()
	if !ok || r != 'a' {
		t.Fatalf("next() = %q, %v; want 'a', true", r, ok)
	}
	r, ok = buf.next()
	if !ok || r != 'b' {
		t.Fatalf("next() = %q, %v; want 'b', true", r, ok)
	}
	if !buf.empty() {
		t.Fatal("expected buffer to be empty after draining")
	}
}

func TestScalarBufferNextOnEmpty(t *testing.T) {
	t.Parallel()

	buf := newScalarBuffer()
	if _, ok := buf.next(); ok {
		t.Fatal("expected next() on empty buffer to report ok=false")
	}
}

func TestScalarBufferPushAllPreservesOrder(t *testing.T) {
	t.Parallel()

	buf := newScalarBuffer()
	buf.pushAll([]rune{'x', 'y', 'z'})
	if buf.len() != 3 {
		t.Fatalf("len() = %d, want 3", buf.len())
	}

	var got []rune
	for !buf.empty() {
		r, _ := buf.next()
		got = append(got, r)
	}
	want := []rune{'x', 'y', 'z'}
	for i, r := range want {
		if got[i] != r {
			t.Fatalf("got %q, want %q", string(got), string(want))
		}
	}
}

func TestScalarBufferMixedPushAndPushAll(t *testing.T) {
	t.Parallel()

	buf := newScalarBuffer()
	buf.push('c')
	buf.pushAll([]rune{'a', 'b'})

	var got []rune
	for !buf.empty() {
		r, _ := buf.next()
		got = append(got, r)
	}
	want := "abc"
	if string(got) != want {
		t.Fatalf("got %q, want %q", string(got), want)
	}
}
