package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func choiceList(words ...string) string {
	var b strings.Builder
	b.WriteByte(byte(len(words)))
	for _, w := range words {
		b.WriteByte(byte(len(w)))
	}
	for _, w := range words {
		b.WriteString(w)
	}
	return b.String()
}

func TestParseChoice(t *testing.T) {
	list := choiceList("car", "cars", "carz")

	for form, expected := range []string{"car", "cars", "carz", ""} {
		r := newTemplateReader(list + "!")
		var b strings.Builder
		parseChoice(r, form, &b)
		assert.Equal(t, expected, b.String())
		// The whole list is consumed whatever the form.
		assert.Equal(t, "!", r.rest())
	}
}

func TestSkipChoice(t *testing.T) {
	r := newTemplateReader(choiceList("a", "bb") + "tail")
	skipChoice(r)
	assert.Equal(t, "tail", r.rest())
}

func TestSwitchCase(t *testing.T) {
	var b strings.Builder
	b.WriteByte(2)
	b.WriteByte(1)
	writeUint16(&b, 3)
	b.WriteString("one")
	b.WriteByte(2)
	writeUint16(&b, 3)
	b.WriteString("two")
	writeUint16(&b, 3)
	b.WriteString("def")
	table := b.String()

	tests := []struct {
		caseIndex int
		expected  string
	}{
		{0, "def"},
		{1, "one"},
		{2, "two"},
		{7, "def"},
	}

	for _, tt := range tests {
		r := newTemplateReader(table + "x")
		assert.Equal(t, tt.expected, switchCase(r, tt.caseIndex))
		assert.Equal(t, "x", r.rest())
	}
}

func TestTemplateReader_Truncated(t *testing.T) {
	r := newTemplateReader("a")
	assert.Equal(t, uint32(0), r.readUint32())
	assert.False(t, r.more())
	assert.Equal(t, byte(0), r.readByte())
	assert.Equal(t, uint16(0), r.readUint16())
	assert.Equal(t, "", r.read(5))
}
