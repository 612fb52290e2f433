package internal

import "fmt"

// ParamKind is the kind of value a Parameter holds.
type ParamKind uint8

const (
	ParamEmpty ParamKind = iota
	ParamNum
	ParamString
)

// String returns the kind name.
func (k ParamKind) String() string {
	switch k {
	case ParamNum:
		return "num"
	case ParamString:
		return "string"
	default:
		return "empty"
	}
}

// Parameter is one formatting argument. Signed values are stored as their
// two's complement bit pattern.
type Parameter struct {
	Kind ParamKind
	Num  uint64
	Str  string

	// tag is the control code that first consumed this parameter.
	tag rune
}

// IntParam returns a numeric parameter holding a signed value.
func IntParam(v int64) Parameter {
	return Parameter{Kind: ParamNum, Num: uint64(v)}
}

// UintParam returns a numeric parameter holding an unsigned value.
func UintParam(v uint64) Parameter {
	return Parameter{Kind: ParamNum, Num: v}
}

// StringParam returns a text parameter.
func StringParam(s string) Parameter {
	return Parameter{Kind: ParamString, Str: s}
}

// Tag returns the control code that consumed the parameter, or 0.
func (p Parameter) Tag() rune {
	return p.tag
}

// String returns a debug representation.
func (p Parameter) String() string {
	switch p.Kind {
	case ParamNum:
		return fmt.Sprintf("num(%d)", p.Num)
	case ParamString:
		return fmt.Sprintf("string(%q)", p.Str)
	default:
		return "empty"
	}
}

// Cursor walks a parameter list. Views created from a cursor share the
// backing parameters, so type tags stamped through a view are visible to
// the cursor it came from.
type Cursor struct {
	params   []Parameter
	offset   int
	nextType rune
}

// NewCursor wraps params without copying them.
func NewCursor(params []Parameter) *Cursor {
	return &Cursor{params: params}
}

// Len is the number of parameters in the view.
func (c *Cursor) Len() int {
	return len(c.params)
}

// Offset is the index of the next parameter to read.
func (c *Cursor) Offset() int {
	return c.offset
}

// Remaining is the number of parameters left after the offset.
func (c *Cursor) Remaining() int {
	if c.offset >= len(c.params) {
		return 0
	}
	return len(c.params) - c.offset
}

// Seek moves the offset. Out-of-range offsets only fail on the next read.
func (c *Cursor) Seek(offset int) {
	c.offset = offset
}

// Advance moves the offset forward by n.
func (c *Cursor) Advance(n int) {
	c.offset += n
}

// SetNextType sets the tag stamped onto the next parameter read.
func (c *Cursor) SetNextType(tag rune) {
	c.nextType = tag
}

// TypeAt returns the tag of the parameter at offset, or 0.
func (c *Cursor) TypeAt(offset int) rune {
	if offset < 0 || offset >= len(c.params) {
		return 0
	}
	return c.params[offset].tag
}

// ParamAt returns the parameter at offset without consuming it.
func (c *Cursor) ParamAt(offset int) (Parameter, bool) {
	if offset < 0 || offset >= len(c.params) {
		return Parameter{}, false
	}
	return c.params[offset], true
}

// Reference returns the parameter a plural or gender list points back to.
func (c *Cursor) Reference(offset int) (Parameter, error) {
	if offset < 0 || offset >= len(c.params) {
		return Parameter{}, &ParamError{Kind: ParamErrBackReference, Offset: offset, Length: len(c.params)}
	}
	return c.params[offset], nil
}

// next consumes one parameter, stamping the pending type tag.
func (c *Cursor) next() (*Parameter, error) {
	if c.offset < 0 || c.offset >= len(c.params) {
		return nil, &ParamError{Kind: ParamErrUnderrun, Offset: c.offset, Length: len(c.params)}
	}
	p := &c.params[c.offset]
	if p.tag != 0 && p.tag != c.nextType {
		// A rejected slot is still consumed so later reads stay aligned.
		err := &ParamError{Kind: ParamErrTypeMismatch, Offset: c.offset, Length: len(c.params), Expected: p.tag, Actual: c.nextType}
		c.nextType = 0
		c.offset++
		return nil, err
	}
	p.tag = c.nextType
	c.nextType = 0
	c.offset++
	return p, nil
}

// NextUint reads a numeric parameter as unsigned.
func (c *Cursor) NextUint() (uint64, error) {
	offset := c.offset
	p, err := c.next()
	if err != nil {
		return 0, err
	}
	if p.Kind != ParamNum {
		return 0, &ParamError{Kind: ParamErrKindMismatch, Offset: offset, Length: len(c.params)}
	}
	return p.Num, nil
}

// NextInt reads a numeric parameter as signed.
func (c *Cursor) NextInt() (int64, error) {
	v, err := c.NextUint()
	return int64(v), err
}

// NextString reads a text parameter.
func (c *Cursor) NextString() (string, error) {
	offset := c.offset
	p, err := c.next()
	if err != nil {
		return "", err
	}
	if p.Kind != ParamString {
		return "", &ParamError{Kind: ParamErrKindMismatch, Offset: offset, Length: len(c.params)}
	}
	return p.Str, nil
}

// NextStringID reads a numeric parameter as a string identifier.
func (c *Cursor) NextStringID() (StringID, error) {
	v, err := c.NextUint()
	return StringID(v), err
}

// View returns a cursor over the next count parameters without moving the
// offset.
func (c *Cursor) View(count int) (*Cursor, error) {
	if count < 0 || count > c.Remaining() {
		return nil, &ParamError{Kind: ParamErrUnderrun, Offset: c.offset + count, Length: len(c.params)}
	}
	start := c.offset
	if count == 0 {
		return NewCursor(nil), nil
	}
	return NewCursor(c.params[start : start+count : start+count]), nil
}

// SubView returns a cursor over the next count parameters and advances
// past them.
func (c *Cursor) SubView(count int) (*Cursor, error) {
	v, err := c.View(count)
	if err != nil {
		return nil, err
	}
	c.offset += count
	return v, nil
}

// RemainingFrom returns a view of every parameter from offset onwards.
func (c *Cursor) RemainingFrom(offset int) *Cursor {
	if offset < 0 || offset >= len(c.params) {
		return NewCursor(nil)
	}
	return NewCursor(c.params[offset:])
}
