package parsers

import (
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractDocComment returns the doc comment of a module or block: the value
// of the first statement when it is a bare string literal, implicitly
// concatenated parts included. Returns "" otherwise.
func extractDocComment(body *sitter.Node, source []byte) string {
	statements := namedChildren(body)
	if len(statements) == 0 {
		return ""
	}

	first := statements[0]
	if first.Kind() != "expression_statement" {
		return ""
	}
	exprs := namedChildren(first)
	if len(exprs) != 1 {
		return ""
	}

	var parts []*sitter.Node
	switch exprs[0].Kind() {
	case "string":
		parts = []*sitter.Node{exprs[0]}
	case "concatenated_string":
		parts = namedChildren(exprs[0])
	default:
		return ""
	}

	var sb strings.Builder
	for _, part := range parts {
		if part.Kind() != "string" {
			return ""
		}
		value, ok := stringLiteralValue(extractNodeText(part, source))
		if !ok {
			return ""
		}
		sb.WriteString(value)
	}
	return cleanDoc(sb.String())
}

// stringLiteralValue returns the value of one Python string literal. Escapes
// are decoded unless the literal is raw.
func stringLiteralValue(raw string) (string, bool) {
	prefix := raw[:len(raw)-len(strings.TrimLeft(raw, "rRuUbBfF"))]
	body, ok := stripStringLiteral(raw)
	if !ok {
		return "", false
	}
	if strings.ContainsAny(prefix, "rR") {
		return body, true
	}
	return decodeEscapes(body), true
}

// stripStringLiteral removes the prefix and quotes of a Python string literal.
// Byte strings and f-strings are not doc comments.
func stripStringLiteral(raw string) (string, bool) {
	i := 0
	for i < len(raw) && strings.ContainsRune("rRuUbBfF", rune(raw[i])) {
		if raw[i] == 'b' || raw[i] == 'B' || raw[i] == 'f' || raw[i] == 'F' {
			return "", false
		}
		i++
	}
	s := raw[i:]

	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(s) >= 2*len(q) && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return s[len(q) : len(s)-len(q)], true
		}
	}
	return "", false
}

var simpleEscapes = map[byte]string{
	'\\': "\\",
	'\'': "'",
	'"':  "\"",
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'v':  "\v",
}

var hexEscapeWidth = map[byte]int{'x': 2, 'u': 4, 'U': 8}

// decodeEscapes resolves the backslash escapes of a non-raw string body.
// Unknown or malformed escapes, and named \N{...} escapes, stay as written.
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

		c := s[i+1]
		if rep, ok := simpleEscapes[c]; ok {
			sb.WriteString(rep)
			i++
			continue
		}

		switch {
		case c == '\n':
			// Line continuation.
			i++
		case c == '\r':
			i++
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case c >= '0' && c <= '7':
			n := 1
			for n < 3 && i+1+n < len(s) && s[i+1+n] >= '0' && s[i+1+n] <= '7' {
				n++
			}
			v, _ := strconv.ParseUint(s[i+1:i+1+n], 8, 32)
			sb.WriteRune(rune(v))
			i += n
		case hexEscapeWidth[c] > 0:
			end := i + 2 + hexEscapeWidth[c]
			if end > len(s) {
				sb.WriteByte(s[i])
				continue
			}
			v, err := strconv.ParseUint(s[i+2:end], 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				sb.WriteByte(s[i])
				continue
			}
			sb.WriteRune(rune(v))
			i = end - 1
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// cleanDoc normalizes doc comment indentation: tabs expand to the next
// multiple of 8 columns, the first line is left-trimmed, the common
// indentation of the remaining lines is removed, and leading/trailing blank
// lines are dropped.
func cleanDoc(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = expandTabs(line)
	}

	margin := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeft(line, " ")
		if content == "" {
			continue
		}
		indent := len(line) - len(content)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
		}
	}

	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \r")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			pad := 8 - col%8
			sb.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}
