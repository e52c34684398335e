// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"PROGRAM_BASE": fmt.Sprintf("%#x", PROGRAM_BASE),
	"FONT_BASE":    fmt.Sprintf("%#x", FONT_BASE),
	"ADDRESS_MASK": fmt.Sprintf("%#x", ADDRESS_MASK),
	"MEMORY_SIZE":  fmt.Sprintf("%#x", MEMORY_SIZE),
	"STACK_LIMIT":  fmt.Sprintf("%v", STACK_LIMIT),
}

// Assembler is a single pass macro assembler for CHIP-8 programs.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Origin  uint16   // Load address of the program; PROGRAM_BASE if zero.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var (
	reRegister   = regexp.MustCompile(`^[vV][0-9a-fA-F]$`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// keywords are the literal operands; they are never values or labels.
var keywords = map[string]bool{
	"I":   true,
	"[I]": true,
	"DT":  true,
	"ST":  true,
	"K":   true,
	"F":   true,
	"B":   true,
}

// registerOf returns the register index of a word, if it names one.
func registerOf(word string) (x uint8, ok bool) {
	if !reRegister.MatchString(word) {
		return
	}

	v, err := strconv.ParseUint(word[1:], 16, 8)
	if err != nil {
		return
	}

	x = uint8(v)
	ok = true
	return
}

// isKeyword returns true if the word is a literal operand.
func isKeyword(word string) bool {
	return keywords[strings.ToUpper(word)]
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	invert := false
	if len(word) > 0 && word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	if invert {
		value = ^value
	}

	return
}

// rangedValueOf returns the value of a word, checked against [lo, hi].
func (asm *Assembler) rangedValueOf(word string, lo, hi int) (value int, err error) {
	value, err = asm.valueOf(word)
	if err != nil {
		return
	}

	if value < lo || value > hi {
		err = ErrOperandRange
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value int
		value, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(value)
	}
	for key, addr := range asm.Label {
		if _, ok := pred[key]; !ok {
			pred[key] = starlark.MakeInt(addr)
		}
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// splitWords splits a line on spaces, tabs, and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique to each expansion.
		local := fmt.Sprintf("%v_%v_", name, lineno)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// origin returns the load address.
func (asm *Assembler) origin() int {
	if asm.Origin == 0 {
		return PROGRAM_BASE
	}
	return int(asm.Origin)
}

// currentAddr gets the address of the next opcode.
func (asm *Assembler) currentAddr() int {
	if len(asm.Opcode) == 0 {
		return asm.origin()
	}

	last := &asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + last.Size()
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = splitWords(strings.Join(words[2:], " "))
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of address labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		if addr > ADDRESS_MASK {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrOperandRange
			return
		}
		if len(op.Codes) < 1 {
			log.Fatalf("Unable to link label '%s' to line %d: %v", label, op.LineNo, op.Words)
		}
		linked := &op.Codes[len(op.Codes)-1]
		*linked = MakeCode(linked.Op, linked.Operand|uint16(addr))
	}

	prog = &Program{
		Origin:  uint16(asm.origin()),
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// matchPattern attempts to encode the operand words with a pattern.
// A mismatch is not an error; err is only set for operands that can
// only belong to this pattern, but are malformed.
func (asm *Assembler) matchPattern(pat Pattern, args []string) (code Code, label string, ok bool, err error) {
	if len(args) != len(pat.Args) {
		return
	}

	var operand uint16
	for n, kind := range pat.Args {
		word := args[n]
		reg, is_reg := registerOf(word)
		is_value := !is_reg && !isKeyword(word)

		var value int
		switch kind {
		case ARG_VX:
			if !is_reg {
				return
			}
			operand |= OperandX(reg)
		case ARG_VY:
			if !is_reg {
				return
			}
			operand |= OperandXY(0, reg)
		case ARG_BYTE:
			if !is_value {
				return
			}
			value, err = asm.rangedValueOf(word, -0x80, 0xff)
			if err != nil {
				return
			}
			operand |= uint16(uint8(value))
		case ARG_NIBBLE:
			if !is_value {
				return
			}
			value, err = asm.rangedValueOf(word, 0, 0xf)
			if err != nil {
				return
			}
			operand |= uint16(value)
		case ARG_ADDR:
			if !is_value {
				return
			}
			if reLabel.MatchString(word) {
				label = word
				break
			}
			value, err = asm.rangedValueOf(word, 0, ADDRESS_MASK)
			if err != nil {
				return
			}
			operand |= uint16(value)
		default:
			if !strings.EqualFold(word, kind) {
				return
			}
		}
	}

	code = MakeCode(pat.Op, operand)
	ok = true
	return
}

// parseData encodes .byte and .word directive values.
func (asm *Assembler) parseData(directive string, args []string) (data []byte, err error) {
	if len(args) == 0 {
		err = ErrDataMissing
		return
	}

	for _, word := range args {
		var value int
		switch directive {
		case ".byte":
			value, err = asm.rangedValueOf(word, -0x80, 0xff)
			if err != nil {
				return
			}
			data = append(data, byte(value))
		case ".word":
			value, err = asm.rangedValueOf(word, -0x8000, 0xffff)
			if err != nil {
				return
			}
			data = append(data, byte(value>>8), byte(value))
		}
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Code
	var data []byte
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if len(codes) == 0 && len(data) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Addr: asm.currentAddr(), Words: initial_words, Codes: codes, Data: data, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	mnemonic := strings.ToUpper(words[0])
	args := words[1:]

	switch mnemonic {
	case ".BYTE", ".WORD":
		data, err = asm.parseData(strings.ToLower(mnemonic), args)
		return
	case "SHR", "SHL":
		// SHR Vx => SHR Vx, Vx
		if len(args) == 1 {
			args = []string{args[0], args[0]}
		}
	}

	known := false
	for _, pat := range patterns {
		if pat.Mnemonic != mnemonic {
			continue
		}
		known = true

		var code Code
		var ok bool
		code, label, ok, err = asm.matchPattern(pat, args)
		if err != nil {
			return
		}
		if ok {
			codes = append(codes, code)
			return
		}
	}

	if known && len(args) == 0 {
		err = ErrOperandMissing
		return
	}

	err = ErrInstructionInvalid
	return
}
