package cordar

import "strings"

// Escaping converts keys and values to and from the form they take in a
// document, where ':', '{' and '}' are structural.
type Escaping interface {
	// Escape returns s with every structural character replaced.
	Escape(s string) string
	// Unescape reverses Escape.
	Unescape(s string) string
	// Index returns the byte offset of the first unescaped c in s, or -1.
	Index(s string, c byte) int
}

var (
	// Backslash is the default escaping. Unescape(Escape(s)) == s holds
	// for every string, including strings that contain backslashes.
	Backslash Escaping = backslash{}

	// Markers reads and writes the marker sequences used by older Cordar
	// files. Data that already contains a marker cannot be told apart from
	// an escaped character.
	Markers Escaping = markers{}
)

type backslash struct{}

func (backslash) Escape(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', ':', '{', '}', '#':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case ' ':
			// lines are trimmed when read
			if i == 0 || i == len(s)-1 {
				b.WriteString(`\s`)
			} else {
				b.WriteByte(' ')
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (backslash) Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 's':
			b.WriteByte(' ')
		case '\\', ':', '{', '}', '#':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func (backslash) Index(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == c {
			return i
		}
	}
	return -1
}

const (
	colonMarker      = ";!;!;"
	openCurlyMarker  = ";![!;"
	closeCurlyMarker = ";!]!;"
)

var (
	markerEscaper   = strings.NewReplacer(":", colonMarker, "{", openCurlyMarker, "}", closeCurlyMarker)
	markerUnescaper = strings.NewReplacer(colonMarker, ":", openCurlyMarker, "{", closeCurlyMarker, "}")
)

type markers struct{}

func (markers) Escape(s string) string {
	return markerEscaper.Replace(s)
}

func (markers) Unescape(s string) string {
	return markerUnescaper.Replace(s)
}

func (markers) Index(s string, c byte) int {
	return strings.IndexByte(s, c)
}
