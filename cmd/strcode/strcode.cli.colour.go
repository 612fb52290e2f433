package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/itsatony/go-strcode/internal"
)

// ANSI escape sequences
const (
	ansiReset  = "\x1b[0m"
	ansiPrefix = "\x1b["
	ansiSuffix = "m"
)

// ansiColours maps the text colour codes to SGR foreground values.
var ansiColours = map[rune]string{
	internal.SCCBlue:       "34",
	internal.SCCSilver:     "37",
	internal.SCCGold:       "33",
	internal.SCCRed:        "31",
	internal.SCCPurple:     "35",
	internal.SCCLightBrown: "33",
	internal.SCCOrange:     "33",
	internal.SCCGreen:      "32",
	internal.SCCYellow:     "93",
	internal.SCCDarkGreen:  "32",
	internal.SCCCream:      "97",
	internal.SCCBrown:      "33",
	internal.SCCWhite:      "97",
	internal.SCCLightBlue:  "94",
	internal.SCCGray:       "90",
	internal.SCCDarkBlue:   "34",
	internal.SCCBlack:      "30",
}

// spriteLabels replaces the vehicle sprite codes in terminal output.
var spriteLabels = map[rune]string{
	internal.SCCTrain: "[train]",
	internal.SCCLorry: "[lorry]",
	internal.SCCBus:   "[bus]",
	internal.SCCPlane: "[plane]",
	internal.SCCShip:  "[ship]",
}

// useANSI decides whether colour codes become escape sequences.
func useANSI(mode string, out io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// renderTerminal turns the control codes left in formatted text into
// something a terminal can show. Colours become escape sequences when
// ansi is set and are dropped otherwise. Other control codes are removed.
func renderTerminal(text string, ansi bool) string {
	var b strings.Builder
	var stack []rune
	coloured := false

	setColour := func(c rune) {
		if !ansi {
			return
		}
		if seq, ok := ansiColours[c]; ok {
			b.WriteString(ansiPrefix + seq + ansiSuffix)
			coloured = true
		}
	}

	var current rune
	for _, r := range text {
		if r < internal.SCCControlStart || r > internal.SCCControlEnd {
			b.WriteRune(r)
			continue
		}
		if label, ok := spriteLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == internal.SCCPushColour:
			stack = append(stack, current)
		case r == internal.SCCPopColour:
			if len(stack) == 0 {
				continue
			}
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if current == 0 {
				if ansi && coloured {
					b.WriteString(ansiReset)
					coloured = false
				}
				continue
			}
			setColour(current)
		case r >= internal.SCCBlue && r <= internal.SCCBlack:
			current = r
			setColour(r)
		}
	}
	if coloured {
		b.WriteString(ansiReset)
	}
	return b.String()
}
