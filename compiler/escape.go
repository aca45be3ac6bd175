package compiler

import "strings"

var escapes = map[byte]byte{
	'\\': '\\',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// decodeEscapes replaces \\ \a \b \f \n \r \t. Other backslash pairs are kept.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		if r, ok := escapes[s[i+1]]; ok {
			sb.WriteByte(r)
		} else {
			sb.WriteByte(s[i])
			sb.WriteByte(s[i+1])
		}
		i++
	}
	return sb.String()
}

// decodeOctal replaces the \0ddd character codes of legacy patterns with the
// character they name. Escaped backslashes are left alone.
func decodeOctal(pattern string) string {
	if !strings.Contains(pattern, `\0`) {
		return pattern
	}
	var sb strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '\\' || i+1 == len(pattern) {
			sb.WriteByte(c)
			continue
		}
		if pattern[i+1] == '0' && i+4 < len(pattern) && isOctal(pattern[i+2:i+5]) {
			code := (int(pattern[i+2]-'0') << 6) | (int(pattern[i+3]-'0') << 3) | int(pattern[i+4]-'0')
			sb.WriteRune(rune(code))
			i += 4
			continue
		}
		sb.WriteByte(c)
		sb.WriteByte(pattern[i+1])
		i++
	}
	return sb.String()
}

func isOctal(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return true
}

// regexpHints reports whether a pattern is anchored at a word start (\b) or a
// line start (^), ignoring leading group parentheses. A line anchor in front
// of \b does not hide the word start.
func regexpHints(pattern string) (wordStart, lineStart bool) {
	trimmed := strings.TrimLeft(pattern, "(")
	lineStart = strings.HasPrefix(trimmed, "^")
	wordStart = strings.HasPrefix(strings.TrimLeft(trimmed, "(^"), `\b`)
	return wordStart, lineStart
}
