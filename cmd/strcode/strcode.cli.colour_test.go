package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itsatony/go-strcode/internal"
)

func TestRenderTerminal(t *testing.T) {
	red := string(internal.SCCRed)
	push := string(internal.SCCPushColour)
	pop := string(internal.SCCPopColour)

	tests := []struct {
		name     string
		text     string
		ansi     bool
		expected string
	}{
		{"plain text", "hello", true, "hello"},
		{"colour with ansi", red + "x", true, "\x1b[31mx\x1b[0m"},
		{"colour without ansi", red + "x", false, "x"},
		{"push and pop restore no colour", push + red + "-5" + pop + " left", true, "\x1b[31m-5\x1b[0m left"},
		{"pop restores outer colour", string(internal.SCCGreen) + push + red + "a" + pop + "b", true, "\x1b[32m\x1b[31ma\x1b[32mb\x1b[0m"},
		{"unbalanced pop is ignored", pop + "a", true, "a"},
		{"sprites become labels", string(internal.SCCTrain) + string(internal.SCCShip), false, "[train][ship]"},
		{"other control codes are dropped", "a" + string(internal.SCCEncoded) + "b", false, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderTerminal(tt.text, tt.ansi))
		})
	}
}

func TestUseANSI(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.True(t, useANSI(ColorAlways, buf))
	assert.False(t, useANSI(ColorNever, buf))
	assert.False(t, useANSI(ColorAuto, buf))
}
