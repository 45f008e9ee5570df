package swiftcsv

import (
	"io"
	"testing"
)

func FuzzReaderConsistency(f *testing.F) {
	seeds := []string{
		"",
		"a,b,c\n",
		"a,\"b,b\",c\n",
		"a,\"b\nc\",d\n",
		"\"unterminated\n",
		"a\"b,c\n",
		"one\r\ntwo\r\n",
		"trailing,newline\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 1<<12 {
			t.Skip()
		}

		rowsSequential, errSequential := readRowsSequential(input)
		rowsAll, errAll := readRowsAll(input)
		rowsIter, errIter := readRowsIter(input)

		if !sameReaderError(errSequential, errAll) {
			t.Fatalf("ReadAll mismatch: sequential=%v all=%v input=%q", errSequential, errAll, truncateForMessage(input))
		}
		if !sameReaderError(errSequential, errIter) {
			t.Fatalf("Rows mismatch: sequential=%v iter=%v input=%q", errSequential, errIter, truncateForMessage(input))
		}

		if errSequential == nil {
			if !rowsEqual(rowsSequential, rowsAll) {
				t.Fatalf("rows mismatch with ReadAll:\nsequential=%v\nall=%v\ninput=%q", rowsSequential, rowsAll, truncateForMessage(input))
			}
			if !rowsEqual(rowsSequential, rowsIter) {
				t.Fatalf("rows mismatch with Rows:\nsequential=%v\niter=%v\ninput=%q", rowsSequential, rowsIter, truncateForMessage(input))
			}
		}
	})
}

func readRowsSequential(input string) ([][]string, error) {
	r, err := NewReader(FromString(input), DefaultConfig())
	if err != nil {
		return nil, err
	}

	var out [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, cloneStrings(row))
	}
}

func readRowsAll(input string) ([][]string, error) {
	r, err := NewReader(FromString(input), DefaultConfig())
	if err != nil {
		return nil, err
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = cloneStrings(row)
	}
	return copied, nil
}

func readRowsIter(input string) ([][]string, error) {
	r, err := NewReader(FromString(input), DefaultConfig())
	if err != nil {
		return nil, err
	}

	var out [][]string
	var iterErr error
	for row, err := range r.Rows() {
		if err != nil {
			iterErr = err
			break
		}
		out = append(out, cloneStrings(row))
	}
	return out, iterErr
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func sameReaderError(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	swA, okA := a.(*Error)
	swB, okB := b.(*Error)
	if okA && okB {
		return swA.Kind == swB.Kind
	}
	return a.Error() == b.Error()
}

func rowsEqual(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func truncateForMessage(s string) string {
	const max = 256
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
