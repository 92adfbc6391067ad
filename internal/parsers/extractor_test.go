package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Extractor and doc comment helpers:
// - .py files route to the Python extractor
// - Non-code assets produce a content-only unit
// - DetectLanguage is case-insensitive on the extension
// - stripStringLiteral handles quotes and prefixes, rejects bytes/f-strings
// - stringLiteralValue decodes escapes in non-raw literals and keeps unknown
//   escapes as written
// - cleanDoc removes common indentation and blank edges, expanding tabs to
//   8-column stops

func TestExtractor_RoutesPython(t *testing.T) {
	t.Parallel()

	path, source := readFixture(t, "simple.py")
	unit, err := NewExtractor().Extract(context.Background(), path, source)

	require.NoError(t, err)
	assert.Equal(t, "python", unit.Language)
	assert.True(t, unit.HasDeclarations())
}

func TestExtractor_DegradedForAssets(t *testing.T) {
	t.Parallel()

	path, source := readFixture(t, "notes.txt")
	unit, err := NewExtractor().Extract(context.Background(), path, source)

	require.NoError(t, err)
	assert.Equal(t, "", unit.Language)
	assert.Equal(t, "Plain text asset.\n", unit.Content)
	assert.Empty(t, unit.Functions)
	assert.Empty(t, unit.Classes)
	assert.False(t, unit.HasDeclarations())
}

func TestExtractor_ParseErrorPropagates(t *testing.T) {
	t.Parallel()

	path, source := readFixture(t, "invalid.py")
	_, err := NewExtractor().Extract(context.Background(), path, source)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "python", DetectLanguage("a/b/c.py"))
	assert.Equal(t, "python", DetectLanguage("STUBS.PYI"))
	assert.Equal(t, "", DetectLanguage("README.md"))
	assert.Equal(t, "", DetectLanguage("Makefile"))
}

func TestStripStringLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`"""doc"""`, "doc", true},
		{`'''doc'''`, "doc", true},
		{`"doc"`, "doc", true},
		{`'doc'`, "doc", true},
		{`r"""raw\n"""`, `raw\n`, true},
		{`u'text'`, "text", true},
		{`""`, "", true},
		{`b"bytes"`, "", false},
		{`f"{x}"`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := stripStringLiteral(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanDoc(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Summary line.", cleanDoc("Summary line."))
	assert.Equal(t, "First.\n\nDetail\n  indented", cleanDoc("First.\n\n    Detail\n      indented\n    "))
	assert.Equal(t, "Body", cleanDoc("\n    Body\n    "))
	assert.Equal(t, "", cleanDoc("   "))
}

func TestStringLiteralValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`"""Don\'t\tstop"""`, "Don't\tstop", true},
		{`'a\\b'`, `a\b`, true},
		{`"say \"hi\""`, `say "hi"`, true},
		{`"line\nnext"`, "line\nnext", true},
		{"\"joined \\\nline\"", "joined line", true},
		{`"\101\x42C\U00000044"`, "ABCD", true},
		{`"\0"`, "\x00", true},
		{`"\N{BULLET} \q \x4"`, `\N{BULLET} \q \x4`, true},
		{`r"keep\tescapes"`, `keep\tescapes`, true},
		{`Rb"no"`, "", false},
		{`f"no"`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := stringLiteralValue(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanDoc_ExpandsTabsByColumn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Don't   stop", cleanDoc("Don't\tstop"))
	assert.Equal(t, "First\n\nTab", cleanDoc("First\n\t\n\tTab"))
}
