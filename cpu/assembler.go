// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = func() map[string]string {
	layout, _ := MakeLayout(MEMORY_SIZE)
	equ := layout.Defines()
	equ["LINENO"] = "0"
	return equ
}()

var (
	labelRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*)\s*:(.*)$`)
	parenRe = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a two pass assembler for the MEPA instruction language.
type Assembler struct {
	Verbose        bool     // If set, verbosely logs the assembler actions.
	NoExperimental bool     // If set, rejects experimental instructions.
	Warnings       []string // Warnings of the last Parse.

	predefine map[string]string // Predefines
	defined   map[string]bool   // Labels defined anywhere in the source.
	Label     map[string]int    // Map of jump labels to instruction indexes.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// item is a label definition or an instruction line, in source order.
type item struct {
	lineNo int
	line   string // Source text, without comment.
	label  string // Label defined here, if any.
	text   string // Instruction text, if any.
}

// linked is an assembled instruction waiting for its labels.
type linked struct {
	Instruction
	links map[int]string // Argument index to label name.
}

// valueOf returns the value of a decimal word.
func valueOf(word string) (value Word, ok bool) {
	v64, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		return
	}

	return Word(v64), true
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value Word, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		equ, ok := valueOf(str)
		if !ok {
			// Ignore non-integer equates. They may be labels.
			continue
		}
		pred[key] = starlark.MakeInt64(int64(equ))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
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
	value = Word(st_int64)
	return
}

// expand replaces $(...) expressions with their decimal value.
func (asm *Assembler) expand(text string) (line string, err error) {
	line = parenRe.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
			return str
		}
		return fmt.Sprintf("%d", int64(value))
	})

	return
}

// scan performs the first pass: comments are removed, and each line is
// split into label definitions and instruction text.
func (asm *Assembler) scan(input io.Reader) (items []item, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	var line string

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	defined := map[string]bool{}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		text, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(text)
		text = line

		for {
			match := labelRe.FindStringSubmatch(text)
			if match == nil {
				break
			}
			label := match[1]
			if defined[label] {
				err = ErrLabelDuplicate
				return
			}
			defined[label] = true
			items = append(items, item{lineNo: lineno, line: line, label: label})
			text = strings.TrimSpace(match[2])
		}

		if fields := strings.Fields(text); len(fields) != 0 && strings.Contains(fields[0], ":") {
			err = ErrLabelSyntax
			return
		}

		if len(text) != 0 {
			items = append(items, item{lineNo: lineno, line: line, text: text})
		}
	}

	err = scanner.Err()

	return
}

// warn records a warning, once per message.
func (asm *Assembler) warn(message string) {
	for _, seen := range asm.Warnings {
		if seen == message {
			return
		}
	}

	log.Printf("asm: warning: %v", message)
	asm.Warnings = append(asm.Warnings, message)
}

// equate handles the .equ NAME VALUE directive.
func (asm *Assembler) equate(args []string) (err error) {
	if len(args) != 2 {
		err = ErrEquateSyntax
		return
	}

	_, ok := asm.Equate[args[0]]
	if ok {
		err = ErrEquateDuplicate
		return
	}

	value := args[1]
	if equ, is_equ := asm.Equate[value]; is_equ && !asm.defined[value] {
		value = equ
	}

	asm.Equate[args[0]] = value

	return
}

// lower performs the second pass on one line of instruction text.
func (asm *Assembler) lower(it item) (ins linked, ok bool, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%d", it.lineNo)

	text, err := asm.expand(it.text)
	if err != nil {
		return
	}

	mnemonic, rest := text, ""
	if space := strings.IndexFunc(text, unicode.IsSpace); space >= 0 {
		mnemonic, rest = text[:space], strings.TrimSpace(text[space:])
	}

	if mnemonic == ".equ" {
		err = asm.equate(strings.Fields(rest))
		return
	}

	op, err := LookupOpcode(mnemonic)
	if err != nil {
		return
	}

	if op.Experimental() {
		if asm.NoExperimental {
			err = ErrMnemonic{Mnemonic: mnemonic, Err: ErrInstructionExperimental}
			return
		}
		asm.warn(f("instruction %v is experimental", op.Mnemonic()))
	}
	if op.Extension() {
		asm.warn(f("instruction %v is a MEPA extension", op.Mnemonic()))
	}

	var words []string
	if len(rest) != 0 {
		words = strings.Split(rest, ",")
	}

	if len(words) > op.Info().Args {
		err = ErrOpcodeExtraArgs
		return
	}

	ins = linked{
		Instruction: Instruction{
			opcode: op,
			args:   make([]Word, len(words)),
			lineNo: it.lineNo,
			line:   it.line,
		},
	}

	for n, word := range words {
		word = strings.TrimSpace(word)
		if len(word) == 0 {
			err = ErrOpcodeValueMissing
			return
		}

		// A label defined in the source shadows an equate of the same name.
		equate, is_equ := asm.Equate[word]
		if is_equ && !asm.defined[word] {
			word = equate
		}

		value, is_value := valueOf(word)
		if is_value {
			ins.args[n] = value
			continue
		}

		if ins.links == nil {
			ins.links = map[int]string{}
		}
		ins.links[n] = word
	}

	ok = true
	return
}

// Parse assembles an input stream into a linked Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.Label = map[string]int{}
	asm.Warnings = nil
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	// Pass 1: labels and instruction text.
	items, err := asm.scan(input)
	if err != nil {
		return
	}

	asm.defined = map[string]bool{}
	for _, it := range items {
		if len(it.label) != 0 {
			asm.defined[it.label] = true
		}
	}

	// Pass 2: bind labels, decode instructions.
	var code []linked
	for _, it := range items {
		if len(it.label) != 0 {
			asm.Label[it.label] = len(code)
			continue
		}

		var ins linked
		var ok bool
		ins, ok, err = asm.lower(it)
		if err != nil {
			err = ErrSyntax{LineNo: it.lineNo, Line: it.line, Err: err}
			return
		}
		if ok {
			code = append(code, ins)
		}
	}

	// Pass 3: link labels.
	instructions := make([]Instruction, len(code))
	for pc, ins := range code {
		for n := range ins.args {
			label, is_link := ins.links[n]
			if !is_link {
				continue
			}
			target, ok := asm.Label[label]
			if !ok {
				err = ErrSyntax{LineNo: ins.lineNo, Line: ins.line, Err: ErrLabelMissing(label)}
				return
			}
			ins.args[n] = Word(target)
		}
		instructions[pc] = ins.Instruction
	}

	prog = &Program{
		instructions: instructions,
		labels:       maps.Clone(asm.Label),
	}

	if asm.Verbose {
		log.Printf("asm: %d instructions, %d labels", len(instructions), len(asm.Label))
	}

	return
}
