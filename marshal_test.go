package cordar_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	cordar "github.com/cordar-format/cordar-go"
)

func TestMarshal(t *testing.T) {
	str := "a"

	for _, test := range []struct {
		name string
		in   any
		out  string
	}{
		{
			name: "map",
			in: map[string]any{
				"a": 1,
				"b": 2,
			},
			out: "a: 1\nb: 2\n",
		},
		{
			name: "mixed",
			in: map[string]any{
				"a": []int{1, 2},
				"b": "wow:there",
			},
			out: `
				a: 
				{
				   1
				}
				{
				   2
				}
				b: wow\:there
			`,
		},
		{
			name: "iface",
			in: struct {
				A any
				B *string
				C *string
			}{
				A: any("wow"),
				B: &str,
			},
			out: `
				A: wow
				B: a
				C: 
			`,
		},
		{
			name: "struct",
			in: struct {
				A int  `cordar:"a"`
				B bool `cordar:"b,omitempty"`
				c string
				D []int `cordar:"-"`
				E bool  `json:",omitempty"`
				F []byte
				G struct {
					H string
				}
			}{
				A: 1,
				B: false,
				c: "hi",
				D: []int{1},
				E: true,
				F: []byte{1, 2, 3},
				G: struct{ H string }{H: "h"},
			},
			out: `
				E: true
				F: AQID
				G: 
				{
				   H: h
				}
				a: 1
			`,
		},
		{
			name: "node",
			in: map[string]*cordar.Node{
				"raw": func() *cordar.Node {
					n := cordar.New()
					n.SetProperty("x", "1")
					return n
				}(),
			},
			out: `
				raw: 
				{
				   x: 1
				}
			`,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			bytes, err := cordar.Marshal(test.in)
			if err != nil {
				t.Fatalf("failed to marshal: %v", err)
			}
			out := strings.Trim(strings.ReplaceAll(test.out, "\n\t\t\t\t", "\n"), "\n\t") + "\n"
			if string(bytes) != out {
				t.Fatalf("expected\n%q\ngot\n%q", out, string(bytes))
			}
		})
	}
}

func TestMarshalUnsupported(t *testing.T) {
	if _, err := cordar.Marshal(map[string]any{"ch": make(chan int)}); err == nil {
		t.Fatal("expected an error for a channel")
	}
}

type server struct {
	Host    string   `cordar:"host"`
	Port    int      `cordar:"port"`
	Aliases []string `cordar:"aliases,omitempty"`
}

type config struct {
	Name     string            `cordar:"name"`
	Servers  []server          `cordar:"servers"`
	Labels   map[string]string `cordar:"labels"`
	Debug    bool
	MaxConns int
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		target   any
		expected any
		wantErr  bool
	}{
		{
			name:     "basic string map",
			input:    "name: John\nage: 30\n",
			target:   &map[string]string{},
			expected: map[string]string{"name": "John", "age": "30"},
		},
		{
			name: "nested map",
			input: `
user:
{
   name: John
   age: 30
}
settings:
{
   theme: dark
}
`,
			target: &map[string]map[string]string{},
			expected: map[string]map[string]string{
				"user":     {"name": "John", "age": "30"},
				"settings": {"theme": "dark"},
			},
		},
		{
			name: "simple list",
			input: `
colors:
{
   red
}
{
   green
}
`,
			target:   &struct{ Colors []string }{},
			expected: struct{ Colors []string }{Colors: []string{"red", "green"}},
		},
		{
			name:     "single element list",
			input:    "colors: red\n",
			target:   &struct{ Colors []string }{},
			expected: struct{ Colors []string }{Colors: []string{"red"}},
		},
		{
			name: "config",
			input: `
name: prod
debug: true
max_conns: 10
servers:
{
   host: a
   port: 80
}
{
   host: b
   port: 8080
   aliases:
   {
      bee
   }
}
labels:
{
   team: core
}
`,
			target: &config{},
			expected: config{
				Name: "prod",
				Servers: []server{
					{Host: "a", Port: 80},
					{Host: "b", Port: 8080, Aliases: []string{"bee"}},
				},
				Labels:   map[string]string{"team": "core"},
				Debug:    true,
				MaxConns: 10,
			},
		},
		{
			name:     "empty value",
			input:    "name:\n",
			target:   &config{Name: "kept"},
			expected: config{Name: "kept"},
		},
		{
			name: "interface",
			input: `
name: John
roles:
{
   admin
}
{
   user
}
`,
			target: &map[string]any{},
			expected: map[string]any{
				"name":  "John",
				"roles": []any{"admin", "user"},
			},
		},
		{
			name:     "array",
			input:    "v:\n{\n   1\n}\n{\n   2\n}\n",
			target:   &struct{ V [3]int }{},
			expected: struct{ V [3]int }{V: [3]int{1, 2, 0}},
		},
		{
			name:    "array too short",
			input:   "v:\n{\n   1\n}\n{\n   2\n}\n",
			target:  &struct{ V [1]int }{},
			wantErr: true,
		},
		{
			name:    "invalid number",
			input:   "port: not a number\n",
			target:  &server{},
			wantErr: true,
		},
		{
			name:    "record for two elements",
			input:   "labels:\n{\n   a: 1\n}\n{\n   b: 2\n}\n",
			target:  &config{},
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   ": oops\n",
			target:  &map[string]string{},
			wantErr: true,
		},
		{
			name:    "nil pointer",
			input:   "test: value",
			target:  nil,
			wantErr: true,
		},
		{
			name:   "escaped strings",
			input:  "message: Hello \\{World\\}\npath: C\\:\\\\Program Files\n",
			target: &map[string]string{},
			expected: map[string]string{
				"message": "Hello {World}",
				"path":    `C:\Program Files`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cordar.Unmarshal([]byte(tt.input), tt.target)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			actual := reflect.ValueOf(tt.target).Elem().Interface()
			if !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("got %+v, want %+v", actual, tt.expected)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	input := config{
		Name: "prod",
		Servers: []server{
			{Host: "a:1", Port: 80},
			{Host: "b", Port: 8080, Aliases: []string{"bee", "buzz"}},
		},
		Labels: map[string]string{"team": "core", "tier": "{1}"},
		Debug:  true,
	}
	bytes, err := cordar.Marshal(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var output config
	if err := cordar.Unmarshal(bytes, &output); err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, bytes)
	}
	if !reflect.DeepEqual(input, output) {
		t.Errorf("got %+v, want %+v", output, input)
	}
}

type script struct {
	s string
}

func (s script) MarshalText() ([]byte, error) {
	return []byte(strings.TrimSpace(s.s)), nil
}

func (s *script) UnmarshalText(b []byte) error {
	s.s = string(b) + "\n"
	return nil
}

func TestTextMarshal(t *testing.T) {
	type Test struct {
		Time   time.Time `cordar:"time"`
		Script script    `cordar:"script"`
	}

	input := Test{
		Time:   time.Date(2024, time.November, 1, 16, 0, 0, 0, time.UTC),
		Script: script{s: "echo hello\n"},
	}
	bytes, err := cordar.Marshal(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "script: echo hello\ntime: 2024-11-01T16\\:00\\:00Z\n"
	if string(bytes) != expected {
		t.Errorf("expected %#v, got %#v", expected, string(bytes))
	}

	output := Test{}
	if err := cordar.Unmarshal(bytes, &output); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(input, output) {
		t.Errorf("got %+v, want %+v", output, input)
	}

	output = Test{}
	if err := cordar.Unmarshal([]byte("tyme: 2024"), &output); err == nil {
		t.Errorf("expected error for unknown key, got nil")
	} else if err.Error() != "1: unknown field tyme" {
		t.Errorf("expected error message 'unknown field tyme', got %v", err)
	}
}

func TestBytes(t *testing.T) {
	type Test struct {
		Secret []byte `cordar:"secret"`
	}

	input := Test{Secret: []byte("secret data")}
	bytes, err := cordar.Marshal(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "secret: c2VjcmV0IGRhdGE\n"
	if expected != string(bytes) {
		t.Errorf("expected %#v, got %#v", expected, string(bytes))
	}

	output := Test{}
	if err := cordar.Unmarshal(bytes, &output); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(input, output) {
		t.Errorf("got %+v, want %+v", output, input)
	}
}

func TestDecodeNode(t *testing.T) {
	n := mustParse(t, "host: a\nport: 80\n")

	var s server
	if err := n.Decode(&s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(s, server{Host: "a", Port: 80}) {
		t.Errorf("got %+v", s)
	}

	var holder struct {
		Host  string `cordar:"host"`
		Port  int    `cordar:"port"`
		Extra *cordar.Node
	}
	n.Get("Extra").SetProperty("k", "v")
	if err := n.Decode(&holder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if holder.Extra.Property("k") != "v" {
		t.Errorf("expected the raw node to be kept, got %s", cordar.Format(holder.Extra))
	}

	if err := n.Decode(holder); err == nil {
		t.Error("expected an error for a non-pointer target")
	}
}
