package internal

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"
)

// templateReader walks compiled template bytes. Reads past the end return
// zero values instead of failing, so a truncated template degrades to
// missing output.
type templateReader struct {
	s   string
	pos int
}

func newTemplateReader(s string) *templateReader {
	return &templateReader{s: s}
}

func (r *templateReader) more() bool {
	return r.pos < len(r.s)
}

func (r *templateReader) readRune() rune {
	c, size := utf8.DecodeRuneInString(r.s[r.pos:])
	r.pos += size
	return c
}

func (r *templateReader) readByte() byte {
	if r.pos >= len(r.s) {
		return 0
	}
	c := r.s[r.pos]
	r.pos++
	return c
}

func (r *templateReader) readUint16() uint16 {
	if len(r.s)-r.pos < 2 {
		r.pos = len(r.s)
		return 0
	}
	v := binary.LittleEndian.Uint16([]byte(r.s[r.pos : r.pos+2]))
	r.pos += 2
	return v
}

func (r *templateReader) readUint32() uint32 {
	if len(r.s)-r.pos < 4 {
		r.pos = len(r.s)
		return 0
	}
	v := binary.LittleEndian.Uint32([]byte(r.s[r.pos : r.pos+4]))
	r.pos += 4
	return v
}

func (r *templateReader) read(n int) string {
	end := r.pos + n
	if end > len(r.s) {
		end = len(r.s)
	}
	out := r.s[r.pos:end]
	r.pos = end
	return out
}

func (r *templateReader) skip(n int) {
	r.read(n)
}

// rest consumes and returns everything left.
func (r *templateReader) rest() string {
	return r.read(len(r.s) - r.pos)
}

// parseChoice copies choice form of an inline choice list to b. The list
// is a count byte, one length byte per choice, then the choice texts.
// An out-of-range form writes nothing.
func parseChoice(r *templateReader, form int, b *strings.Builder) {
	n := int(r.readByte())
	var pre, length, post int
	for i := 0; i < n; i++ {
		l := int(r.readByte())
		switch {
		case i < form:
			pre += l
		case i > form:
			post += l
		default:
			length = l
		}
	}
	r.skip(pre)
	b.WriteString(r.read(length))
	r.skip(post)
}

// skipChoice steps over an inline choice list.
func skipChoice(r *templateReader) {
	n := int(r.readByte())
	total := 0
	for i := 0; i < n; i++ {
		total += int(r.readByte())
	}
	r.skip(total)
}

// switchCase reads a case table and returns the text for caseIndex, or
// the default text. The table is a count byte, then per case an index
// byte, a little-endian uint16 length and the text, then the default
// length and text.
func switchCase(r *templateReader, caseIndex int) string {
	n := int(r.readByte())
	found, ok := "", false
	for i := 0; i < n; i++ {
		idx := int(r.readByte())
		l := int(r.readUint16())
		text := r.read(l)
		if idx == caseIndex {
			found, ok = text, true
		}
	}
	l := int(r.readUint16())
	def := r.read(l)
	if !ok {
		found = def
	}
	return found
}
