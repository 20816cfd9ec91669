package cordar

import (
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"
)

// TokenKind represents the possible kinds of token in a Cordar document.
type TokenKind int8

// These tokens are yielded from [Tokens].
const (
	endOfFile = TokenKind(iota)
	Comment   = TokenKind(iota)
	Key
	Value
	NoValue
	Open
	Close
	Text
	Error
)

func (k TokenKind) String() string {
	switch k {
	case Comment:
		return "Comment"
	case Key:
		return "Key"
	case Value:
		return "Value"
	case NoValue:
		return "NoValue"
	case Open:
		return "Open"
	case Close:
		return "Close"
	case Text:
		return "Text"
	case Error:
		return "Error"
	case endOfFile:
		return "EndOfFile"
	default:
		panic("Unknown TokenKind")
	}
}

func (k TokenKind) GoString() string {
	return k.String()
}

type Token struct {
	Kind    TokenKind
	Content string
}

var lineRegexp = regexp.MustCompile("\r\n|\r|\n")

func lines(input string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		lno := 1
		for match := lineRegexp.FindStringIndex(input); match != nil; match = lineRegexp.FindStringIndex(input) {
			if !yield(lno, input[:match[0]]) {
				return
			}
			input = input[match[1]:]
			lno++
		}
		yield(lno, input)
	}
}

func trim(s string) string {
	return strings.Trim(s, " \t")
}

// Tokens iterates over tokens in the input string with their associated
// (1-based) line number. Keys, values and text are yielded unescaped.
//
// Every [Key] is followed by a [Value] or a [NoValue]. A line that opens
// a category but has nothing before the ':' yields an [Error] followed by
// the tokens the line is read as: ": name" opens the category "name".
// Parsers can choose to stop at the first error or keep going knowing that
// the resulting document may not be what was meant.
func Tokens(input string, opts ...ParseOption) iter.Seq2[int, Token] {
	o := newParseOpts(opts)
	esc := o.escaping

	return func(yield func(int, Token) bool) {
		single := func(lno int, segment string) bool {
			switch segment {
			case "{":
				return yield(lno, Token{Kind: Open})
			case "}":
				return yield(lno, Token{Kind: Close})
			}
			return yield(lno, Token{Kind: Key, Content: esc.Unescape(segment)}) &&
				yield(lno, Token{Kind: NoValue})
		}

		for lno, content := range lines(input) {
			rest := trim(content)
			if rest == "" {
				continue
			}

			if !utf8.ValidString(rest) {
				if !yield(lno, Token{Kind: Error, Content: "invalid UTF-8"}) {
					return
				}
				continue
			}

			if comment, found := strings.CutPrefix(rest, "#"); found {
				if !yield(lno, Token{Kind: Comment, Content: comment}) {
					return
				}
				continue
			}

			i := esc.Index(rest, ':')
			if i < 0 {
				var ok bool
				switch rest {
				case "{":
					ok = yield(lno, Token{Kind: Open})
				case "}":
					ok = yield(lno, Token{Kind: Close})
				default:
					ok = yield(lno, Token{Kind: Text, Content: esc.Unescape(rest)})
				}
				if !ok {
					return
				}
				continue
			}

			key, value := trim(rest[:i]), trim(rest[i+1:])
			var ok bool
			switch {
			case key != "" && value != "":
				ok = yield(lno, Token{Kind: Key, Content: esc.Unescape(key)}) &&
					yield(lno, Token{Kind: Value, Content: esc.Unescape(value)})
			case key != "":
				ok = single(lno, key)
			case value != "":
				ok = yield(lno, Token{Kind: Error, Content: "missing key"}) && single(lno, value)
			default:
				ok = yield(lno, Token{Kind: Error, Content: "missing key"})
			}
			if !ok {
				return
			}
		}
	}
}
