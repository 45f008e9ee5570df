package swiftcsv

import (
	"io"
	"reflect"
	"testing"
)

func readAllRows(t *testing.T, input string, cfg Config) ([][]string, error) {
	t.Helper()
	r, err := NewReader(FromString(input), cfg)
	if err != nil {
		return nil, err
	}
	return r.ReadAll()
}

func TestReaderDefaultDialect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "basicRows",
			input: "a,b,c\nd,e,f\n",
			want: [][]string{
				{"a", "b", "c"},
				{"d", "e", "f"},
			},
		},
		{
			name:  "finalRowWithoutTerminator",
			input: "alpha,beta,gamma",
			want: [][]string{
				{"alpha", "beta", "gamma"},
			},
		},
		{
			name:  "windowsLineEndings",
			input: "a,b\r\nc,d\r\n",
			want: [][]string{
				{"a", "b"},
				{"c", "d"},
			},
		},
		{
			name:  "quotedComma",
			input: "a,\"b,c\",d\n",
			want: [][]string{
				{"a", "b,c", "d"},
			},
		},
		{
			name:  "escapedQuote",
			input: "a,\"he said \"\"hi\"\"\",b\n",
			want: [][]string{
				{"a", "he said \"hi\"", "b"},
			},
		},
		{
			name:  "embeddedNewline",
			input: "a,\"b\nc\",d\n",
			want: [][]string{
				{"a", "b\nc", "d"},
			},
		},
		{
			name:  "emptyFields",
			input: ",,\n",
			want: [][]string{
				{"", "", ""},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := readAllRows(t, tt.input, DefaultConfig())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReaderRowWidthInvariant(t *testing.T) {
	t.Parallel()

	r, err := NewReader(FromString("a,b\nc\n"), DefaultConfig())
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	first, err := r.Read()
	if err != nil {
		t.Fatalf("first Read: %v", err)
	}
	if !reflect.DeepEqual(first, []string{"a", "b"}) {
		t.Fatalf("first row = %#v", first)
	}

	_, err = r.Read()
	swErr, ok := err.(*Error)
	if !ok || swErr.Kind != ErrInvalidInput {
		t.Fatalf("expected invalidInput error, got %v", err)
	}

	// Sticky failure: the same error is returned on every subsequent call.
	for i := 0; i < 3; i++ {
		_, again := r.Read()
		if again != err {
			t.Fatalf("sticky failure violated on call %d: got %v, want %v", i, again, err)
		}
	}
	if r.Status() != StatusFailed {
		t.Fatalf("status = %v, want StatusFailed", r.Status())
	}
}

func TestReaderPrefixDisjointnessRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		row   string
	}{
		{"identicalDelimiters", "--", "--"},
		{"fieldPrefixesRow", "**", "**~"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Config{
				FieldDelimiter: UseFieldDelimiter(NewDelimiter(tt.field)),
				RowDelimiter:   UseRowDelimiter(NewRowDelimiterSet(NewDelimiter(tt.row))),
			}
			_, err := NewReader(FromString("x"), cfg)
			swErr, ok := err.(*Error)
			if !ok || swErr.Kind != ErrInvalidConfiguration {
				t.Fatalf("expected invalidConfiguration, got %v", err)
			}
		})
	}
}

func TestReaderTrimming(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Trim = StandardWhitespaceTrim()

	got, err := readAllRows(t, "  a , b  ,c\n", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a", "b", "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestReaderHeaderFirstLine(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Header = HeaderFirstLine

	r, err := NewReader(FromString("name,age\nann,30\n"), cfg)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if !reflect.DeepEqual(r.Header(), []string{"name", "age"}) {
		t.Fatalf("Header() = %#v", r.Header())
	}

	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(row, []string{"ann", "30"}) {
		t.Fatalf("row = %#v", row)
	}
	if r.RowIndex() != 1 {
		t.Fatalf("RowIndex() = %d, want 1", r.RowIndex())
	}
}

func TestReaderUnterminatedEscape(t *testing.T) {
	t.Parallel()

	_, err := readAllRows(t, "a,\"unterminated\n", DefaultConfig())
	swErr, ok := err.(*Error)
	if !ok || swErr.Kind != ErrInvalidInput {
		t.Fatalf("expected invalidInput, got %v", err)
	}
}

func TestReaderEscapeMidFieldIsLiteral(t *testing.T) {
	t.Parallel()

	got, err := readAllRows(t, "a\"b,c\n", DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a\"b", "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestReaderMultiScalarDelimiters(t *testing.T) {
	t.Parallel()

	cfg := Config{
		FieldDelimiter: UseFieldDelimiter(NewDelimiter("::")),
		RowDelimiter:   UseRowDelimiter(NewRowDelimiterSet(NewDelimiter(";;"))),
	}
	got, err := readAllRows(t, "a::b::c;;d::e::f;;", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{
		{"a", "b", "c"},
		{"d", "e", "f"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestReaderRows(t *testing.T) {
	t.Parallel()

	r, err := NewReader(FromString("a,b\nc,d\n"), DefaultConfig())
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	var got [][]string
	for row, err := range r.Rows() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, row)
	}
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestReaderTrailingCommaAtEOF(t *testing.T) {
	t.Parallel()

	r, err := NewReader(FromString("a,b,"), DefaultConfig())
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(row, []string{"a", "b"}) {
		t.Fatalf("row = %#v", row)
	}
	if _, err := r.Read(); err != io.EOF {
		t.Fatalf("second Read error = %v, want io.EOF", err)
	}
}
