package internal

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// InterpreterConfig holds the collaborators and limits of an Interpreter.
type InterpreterConfig struct {
	MaxDepth int
	Names    NameProvider
	Towns    TownNameGenerator
	Revision string
}

// DefaultInterpreterConfig returns the default configuration.
func DefaultInterpreterConfig() InterpreterConfig {
	return InterpreterConfig{
		MaxDepth: DefaultMaxDepth,
		Towns:    SyllableTownNames{},
	}
}

// Interpreter formats templates. It holds no per-call state and is safe
// for concurrent use as long as the collaborators are.
type Interpreter struct {
	config InterpreterConfig
	logger *zap.Logger
}

// NewInterpreter creates an interpreter.
func NewInterpreter(config InterpreterConfig, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	if config.Towns == nil {
		config.Towns = SyllableTownNames{}
	}
	return &Interpreter{config: config, logger: logger}
}

// errFrameLimit is raised when pushing a frame would exceed MaxDepth.
var errFrameLimit = errors.New("frame stack limit exceeded")

// run is the state of one top-level format call.
type run struct {
	in         *Interpreter
	snap       *Snapshot
	logger     *zap.Logger
	depth      int
	scanGender bool
}

// frame is one template being walked, with the parameter offset that
// back-references resolve against and the case it was selected with.
type frame struct {
	tmpl      *templateReader
	refOffset int
	caseIndex int
}

func (in *Interpreter) newRun(snap *Snapshot) *run {
	return &run{in: in, snap: snap, logger: in.logger}
}

// copyParams returns params with their type tags cleared, so a call never
// observes or leaks tags from another call.
func copyParams(params []Parameter) []Parameter {
	out := make([]Parameter, len(params))
	for i, p := range params {
		p.tag = 0
		out[i] = p
	}
	return out
}

// Format resolves id with params against snap.
func (in *Interpreter) Format(snap *Snapshot, id StringID, params []Parameter) string {
	in.logger.Debug(LogMsgFormatStart, zap.Stringer(LogFieldStringID, id), zap.Int(LogFieldLength, len(params)))
	var b strings.Builder
	in.newRun(snap).getString(&b, id, NewCursor(copyParams(params)), 0, false, false)
	in.logger.Debug(LogMsgFormatDone, zap.Stringer(LogFieldStringID, id), zap.Int(LogFieldLength, b.Len()))
	return b.String()
}

// FormatTemplate formats a compiled template that is not part of any table.
func (in *Interpreter) FormatTemplate(snap *Snapshot, tmpl string, params []Parameter) string {
	var b strings.Builder
	in.newRun(snap).formatString(&b, tmpl, NewCursor(copyParams(params)), 0, false, false)
	return b.String()
}

// FormatEncoded strictly decodes an encoded string and formats it.
func (in *Interpreter) FormatEncoded(snap *Snapshot, text string) (string, error) {
	id, params, err := DecodeString(text)
	if err != nil {
		in.logger.Debug(LogMsgEncodedDecodeFail, zap.Error(err))
		return "", err
	}
	return in.Format(snap, id, params), nil
}

// template returns the raw text for id, falling back to the undefined
// template.
func (r *run) template(id StringID) string {
	var src TemplateSource
	switch id.Table() {
	case TableScript:
		src = r.snap.Script
	case TableMod:
		src = r.snap.Mods
	default:
		src = r.snap.Strings
	}
	if tmpl, ok := lookup(src, id); ok {
		return tmpl
	}
	r.logger.Debug(LogMsgUndefinedString, zap.Stringer(LogFieldStringID, id))
	return r.undefined()
}

func (r *run) undefined() string {
	if tmpl, ok := lookup(r.snap.Strings, SysID(SysUndefined)); ok {
		return tmpl
	}
	return DiagUndefinedString
}

// sysTemplate returns the text of a system template, or "" when the pack
// does not define it.
func (r *run) sysTemplate(index uint16) string {
	tmpl, _ := lookup(r.snap.Strings, SysID(index))
	return tmpl
}

// getString formats the template identified by id.
func (r *run) getString(b *strings.Builder, id StringID, args *Cursor, caseIndex int, script, dry bool) {
	if id == InvalidStringID {
		r.getString(b, SysID(SysUndefined), args, 0, false, dry)
		return
	}

	switch id.Table() {
	case TableSpecial:
		if !script {
			handled, err := r.specialName(b, id.Index(), args, dry)
			if err != nil {
				r.logger.Warn(LogMsgParameterFailure, zap.Stringer(LogFieldStringID, id), zap.Error(err))
				b.WriteString(DiagInvalidString)
				return
			}
			if handled {
				return
			}
		}
	case TableScript:
		r.formatString(b, r.template(id), args, caseIndex, true, dry)
		return
	}

	r.formatString(b, r.template(id), args, caseIndex, false, dry)
}

// formatString walks tmpl, writing output to b. Unless dry is set, a dry
// pass runs first so that every parameter the template consumes carries
// its type tag before any gender probe looks at it.
func (r *run) formatString(b *strings.Builder, tmpl string, args *Cursor, caseIndex int, script, dry bool) {
	if r.depth >= r.in.config.MaxDepth {
		r.logger.Warn(LogMsgRecursionLimit, zap.Int(LogFieldDepth, r.depth))
		b.WriteString(DiagRecursionLimit)
		return
	}
	r.depth++
	defer func() { r.depth-- }()

	origOffset := args.Offset()
	if !dry {
		var discard strings.Builder
		r.formatString(&discard, tmpl, args, caseIndex, script, true)
		args.Seek(origOffset)
	}

	nextCase := 0
	stack := []*frame{{tmpl: newTemplateReader(tmpl), refOffset: origOffset, caseIndex: caseIndex}}
	for {
		for len(stack) > 0 && !stack[len(stack)-1].tmpl.more() {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return
		}

		if err := r.step(b, &stack, args, &nextCase, script, dry); err != nil {
			if errors.Is(err, errFrameLimit) {
				r.logger.Warn(LogMsgRecursionLimit, zap.Int(LogFieldDepth, len(stack)))
				b.WriteString(DiagRecursionLimit)
				continue
			}
			if !dry {
				r.logger.Warn(LogMsgParameterFailure, zap.Error(err), zap.Int(LogFieldOffset, args.Offset()))
			}
			b.WriteString(DiagInvalidParameter)
		}
	}
}

func (r *run) push(stack *[]*frame, f *frame) error {
	if len(*stack) >= r.in.config.MaxDepth {
		return errFrameLimit
	}
	*stack = append(*stack, f)
	return nil
}

// step executes one code of the top frame.
func (r *run) step(b *strings.Builder, stack *[]*frame, args *Cursor, nextCase *int, script, dry bool) error {
	top := (*stack)[len(*stack)-1]
	t := top.tmpl
	code := t.readRune()

	if code < SCCControlStart || code > SCCControlEnd {
		b.WriteRune(code)
		return nil
	}

	args.SetNextType(code)
	switch code {
	case SCCEncoded, SCCEncodedInternal:
		r.decodeEncoded(b, t.rest(), code == SCCEncoded, dry)

	case SCCStringInline:
		id := StringID(t.readUint32())
		f := &frame{tmpl: newTemplateReader(r.template(id)), refOffset: args.Offset(), caseIndex: *nextCase}
		*nextCase = 0
		return r.push(stack, f)

	case SCCStringID:
		id, err := args.NextStringID()
		if err != nil {
			*nextCase = 0
			return err
		}
		f := &frame{tmpl: newTemplateReader(r.template(id)), refOffset: args.Offset(), caseIndex: *nextCase}
		*nextCase = 0
		return r.push(stack, f)

	case SCCGenderList:
		r.genderList(b, top, args, dry)

	case SCCGenderIndex:
		gender := t.readByte()
		if r.scanGender {
			b.WriteRune(SCCGenderIndex)
			b.WriteByte(gender)
		}

	case SCCPluralList:
		form := int(t.readByte())
		offset := top.refOffset + int(t.readByte())
		p, err := args.Reference(offset)
		if err == nil && p.Kind != ParamNum {
			err = &ParamError{Kind: ParamErrKindMismatch, Offset: offset, Length: args.Len()}
		}
		if err != nil {
			r.logger.Debug(LogMsgBadReference, zap.Error(err))
			skipChoice(t)
			b.WriteString(DiagInvalidPlural)
		} else {
			parseChoice(t, PluralForm(int64(p.Num), form), b)
		}

	case SCCArgIndex:
		args.Seek(top.refOffset + int(t.readByte()))

	case SCCSetCase:
		*nextCase = int(t.readByte())

	case SCCSwitchCase:
		text := switchCase(t, top.caseIndex)
		return r.push(stack, &frame{tmpl: newTemplateReader(text), refOffset: top.refOffset, caseIndex: top.caseIndex})

	case SCCRevision:
		b.WriteString(r.in.config.Revision)

	case SCCRawString:
		s, err := args.NextString()
		if err != nil {
			return err
		}
		r.formatString(b, s, args, 0, false, dry)

	case SCCString:
		id, err := args.NextStringID()
		if err != nil {
			*nextCase = 0
			return err
		}
		if script && id.Table() != TableScript {
			break
		}
		// The included string may not consume parameters of its own.
		sub := NewCursor(nil)
		if script {
			sub = args.RemainingFrom(args.Offset())
		}
		r.getString(b, id, sub, *nextCase, script, dry)
		*nextCase = 0

	case SCCString1, SCCString2, SCCString3, SCCString4, SCCString5, SCCString6, SCCString7:
		id, err := args.NextStringID()
		if err != nil {
			*nextCase = 0
			return err
		}
		if script && id.Table() != TableScript {
			break
		}
		size := int(code-SCCString1) + 1
		if size > args.Remaining() {
			b.WriteString(DiagTooManyParameters)
		} else {
			var sub *Cursor
			if script {
				sub = args.RemainingFrom(args.Offset())
				args.Advance(size)
			} else {
				sub, _ = args.SubView(size)
			}
			r.getString(b, id, sub, *nextCase, script, dry)
		}
		*nextCase = 0

	default:
		handled, err := r.formatValue(b, code, args, nextCase, dry)
		if err != nil {
			return err
		}
		if !handled {
			b.WriteRune(code)
		}
	}
	return nil
}

// genderList selects one of an inline list of gendered alternatives by
// the gender of a back-referenced parameter.
func (r *run) genderList(b *strings.Builder, top *frame, args *Cursor, dry bool) {
	t := top.tmpl
	offset := top.refOffset + int(t.readByte())
	gender := 0
	if _, err := args.Reference(offset); err != nil {
		r.logger.Debug(LogMsgBadReference, zap.Error(err))
		b.WriteString(DiagInvalidGender)
	} else if !dry && args.TypeAt(offset) != 0 {
		gender = r.probeGender(args, offset)
	}
	parseChoice(t, gender, b)
}

// probeGender re-runs the code that consumed the parameter at offset in
// gender-scan mode and reads the leading gender marker of its output.
func (r *run) probeGender(args *Cursor, offset int) int {
	code := args.TypeAt(offset)
	r.logger.Debug(LogMsgGenderProbe, zap.Int(LogFieldOffset, offset), zap.String(LogFieldCode, fmt.Sprintf("%#x", code)))

	saved := r.scanGender
	r.scanGender = true
	var buf strings.Builder
	r.formatString(&buf, string(code), args.RemainingFrom(offset), 0, false, false)
	r.scanGender = saved

	out := buf.String()
	marker := string(SCCGenderIndex)
	if strings.HasPrefix(out, marker) && len(out) > len(marker) {
		return int(out[len(marker)])
	}
	return 0
}

// decodeEncoded formats an encoded string embedded in a template. It
// consumes the rest of the frame.
func (r *run) decodeEncoded(b *strings.Builder, body string, script, dry bool) {
	id, params, err := decodeBody(body, script, false)
	if err != nil {
		r.logger.Debug(LogMsgEncodedDecodeFail, zap.Error(err))
		var ce *CodecError
		switch {
		case errors.As(err, &ce) && ce.Message == ErrMsgCodecIdentifierRange && ce.Record < 0:
			b.WriteString(DiagInvalidStringID)
		case errors.As(err, &ce) && ce.Message == ErrMsgCodecIdentifierRange:
			b.WriteString(DiagInvalidSubStringID)
		default:
			b.WriteString(DiagInvalidEncoded)
		}
		return
	}
	r.getString(b, id, NewCursor(params), 0, script, dry)
}

// specialName renders synthesized names from TableSpecial.
func (r *run) specialName(b *strings.Builder, index uint16, args *Cursor, dry bool) (bool, error) {
	switch {
	case index == SpecialSillyName:
		v, err := args.NextUint()
		if err != nil {
			return true, err
		}
		b.WriteString(SillyCompanyName(v))
		return true, nil

	case index == SpecialAndCoName:
		seed, err := args.NextUint()
		if err != nil {
			return true, err
		}
		AndCoName(b, uint32(seed), r.snap.Toyland)
		return true, nil

	case index == SpecialPresidentName:
		seed, err := args.NextUint()
		if err != nil {
			return true, err
		}
		PresidentName(b, uint32(seed), r.snap.Toyland)
		return true, nil

	case index <= SpecialTownNameEnd:
		seed, err := args.NextUint()
		if err != nil {
			return true, err
		}
		return true, r.townName(b, index-SpecialTownNameStart, uint32(seed), dry)

	case index >= SpecialCompanyNameStart && index <= SpecialCompanyNameEnd:
		seed, err := args.NextUint()
		if err != nil {
			return true, err
		}
		if err := r.townName(b, index-SpecialCompanyNameStart, uint32(seed), dry); err != nil {
			return true, err
		}
		b.WriteString(" Transport")
		return true, nil
	}
	return false, nil
}

func (r *run) townName(b *strings.Builder, style uint16, seed uint32, dry bool) error {
	if dry {
		return nil
	}
	name, err := r.in.config.Towns.TownName(style, seed)
	if err != nil {
		r.logger.Warn(LogMsgTownNameFailure, zap.Error(err))
		return err
	}
	b.WriteString(name)
	return nil
}
