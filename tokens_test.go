package cordar_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	cordar "github.com/cordar-format/cordar-go"
)

type lineToken struct {
	Line  int
	Kind  cordar.TokenKind
	Value string
}

func collect(input string, opts ...cordar.ParseOption) []lineToken {
	var out []lineToken
	for lno, token := range cordar.Tokens(input, opts...) {
		out = append(out, lineToken{lno, token.Kind, token.Content})
	}
	return out
}

func TestTokens(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		opts  []cordar.ParseOption
		want  []lineToken
	}{
		{
			name:  "key value",
			input: "name: Alice",
			want:  []lineToken{{1, cordar.Key, "name"}, {1, cordar.Value, "Alice"}},
		},
		{
			name:  "value with colon",
			input: "time: 10:30",
			want:  []lineToken{{1, cordar.Key, "time"}, {1, cordar.Value, "10:30"}},
		},
		{
			name:  "category",
			input: "address:\n{\n   street: Main St\n}",
			want: []lineToken{
				{1, cordar.Key, "address"}, {1, cordar.NoValue, ""},
				{2, cordar.Open, ""},
				{3, cordar.Key, "street"}, {3, cordar.Value, "Main St"},
				{4, cordar.Close, ""},
			},
		},
		{
			name:  "text and comments",
			input: "# one\n\n  hello there  \n\t# two",
			want: []lineToken{
				{1, cordar.Comment, " one"},
				{3, cordar.Text, "hello there"},
				{4, cordar.Comment, " two"},
			},
		},
		{
			name:  "escaped key",
			input: `a\: b: c\}`,
			want:  []lineToken{{1, cordar.Key, "a: b"}, {1, cordar.Value, "c}"}},
		},
		{
			name:  "escaped text",
			input: `\# not a comment \{`,
			want:  []lineToken{{1, cordar.Text, "# not a comment {"}},
		},
		{
			name:  "brace before colon",
			input: "{:",
			want:  []lineToken{{1, cordar.Open, ""}},
		},
		{
			name:  "missing key",
			input: ": name",
			want: []lineToken{
				{1, cordar.Error, "missing key"},
				{1, cordar.Key, "name"}, {1, cordar.NoValue, ""},
			},
		},
		{
			name:  "bare colon",
			input: "a\n :",
			want:  []lineToken{{1, cordar.Text, "a"}, {2, cordar.Error, "missing key"}},
		},
		{
			name:  "invalid utf8",
			input: "a: \xff\nb: 1",
			want: []lineToken{
				{1, cordar.Error, "invalid UTF-8"},
				{2, cordar.Key, "b"}, {2, cordar.Value, "1"},
			},
		},
		{
			name:  "line endings",
			input: "a: 1\r\nb: 2\rc: 3\n",
			want: []lineToken{
				{1, cordar.Key, "a"}, {1, cordar.Value, "1"},
				{2, cordar.Key, "b"}, {2, cordar.Value, "2"},
				{3, cordar.Key, "c"}, {3, cordar.Value, "3"},
			},
		},
		{
			name:  "markers",
			input: "a;!;!;b: x;![!;y;!]!;",
			opts:  []cordar.ParseOption{cordar.WithEscaping(cordar.Markers)},
			want:  []lineToken{{1, cordar.Key, "a:b"}, {1, cordar.Value, "x{y}"}},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := collect(test.input, test.opts...)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokensStop(t *testing.T) {
	count := 0
	for range cordar.Tokens("a: 1\nb: 2\nc: 3") {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Fatalf("expected to stop after 3 tokens, got %d", count)
	}
}

func TestTokenKindString(t *testing.T) {
	if got := cordar.NoValue.String(); got != "NoValue" {
		t.Errorf("expected NoValue, got %q", got)
	}
	if got := cordar.Open.GoString(); got != "Open" {
		t.Errorf("expected Open, got %q", got)
	}
}
