// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package transform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rich-iannone/sweet-data/internal/frame"
)

// =============================================================================
// VERB GRAMMAR
// =============================================================================

// ErrEmptyExpr is returned when an expression contains no verb at all.
var ErrEmptyExpr = errors.New("empty expression")

// filterOps are the comparison operators the filter verb accepts.
var filterOps = map[string]bool{
	"==": true, "!=": true, ">": true, ">=": true, "<": true, "<=": true,
	"contains": true,
}

// arithOps are the operators the withcol verb accepts.
var arithOps = map[string]bool{"+": true, "-": true, "*": true, "/": true}

// Verbs lists the grammar for help text, one line per verb.
func Verbs() []string {
	return []string{
		"filter <col> <op> <value>      op: == != > >= < <= contains",
		"select <col>[,<col>...]",
		"drop <col>[,<col>...]",
		"rename <old> <new>",
		"sort <col> [desc]",
		"head <n>",
		"tail <n>",
		"distinct [<col>...]",
		"withcol <name> = <col> <op> <col|number>   op: + - * /",
	}
}

// Op is one parsed verb invocation, ready to run against a frame.
type Op struct {
	verb string
	args []string
	cols []string
	run  func(*frame.Frame) (*frame.Frame, error)
	desc string
}

// Run applies the operation to f, returning a new frame.
func (o *Op) Run(f *frame.Frame) (*frame.Frame, error) {
	return o.run(f)
}

// Canonical renders the operation back to its normalized expression text.
func (o *Op) Canonical() string {
	parts := make([]string, 0, len(o.args)+1)
	parts = append(parts, o.verb)
	for _, a := range o.args {
		parts = append(parts, quoteToken(a))
	}
	return strings.Join(parts, " ")
}

// Describe returns the human sentence shown in step lists.
func (o *Op) Describe() string {
	return o.desc
}

// columns returns the column names the operation references, for validation.
func (o *Op) columns() []string {
	return o.cols
}

// =============================================================================
// PARSER
// =============================================================================

// Parse turns one expression line into an executable Op. Errors name the verb
// and the offending token.
func Parse(expr string) (*Op, error) {
	tokens := tokenize(expr)
	if len(tokens) == 0 {
		return nil, ErrEmptyExpr
	}
	verb := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch verb {
	case "filter":
		return parseFilter(args)
	case "select", "drop":
		return parseColumnList(verb, args)
	case "rename":
		return parseRename(args)
	case "sort":
		return parseSort(args)
	case "head", "tail":
		return parseHeadTail(verb, args)
	case "distinct":
		return parseDistinct(args)
	case "withcol":
		return parseWithCol(args)
	}
	return nil, fmt.Errorf("unknown verb %q", verb)
}

func parseFilter(args []string) (*Op, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("filter: want <col> <op> <value>, got %d arguments", len(args))
	}
	col, op, value := args[0], args[1], args[2]
	if !filterOps[op] {
		return nil, fmt.Errorf("filter: unknown operator %q", op)
	}
	return &Op{
		verb: "filter",
		args: []string{col, op, value},
		cols: []string{col},
		desc: fmt.Sprintf("keep rows where %s %s %s", col, op, value),
		run: func(f *frame.Frame) (*frame.Frame, error) {
			return f.Filter(col, op, value)
		},
	}, nil
}

func parseColumnList(verb string, args []string) (*Op, error) {
	cols := splitColumns(args)
	if len(cols) == 0 {
		return nil, fmt.Errorf("%s: want at least one column", verb)
	}
	desc := fmt.Sprintf("keep columns %s", strings.Join(cols, ", "))
	run := func(f *frame.Frame) (*frame.Frame, error) { return f.Select(cols...) }
	if verb == "drop" {
		desc = fmt.Sprintf("drop columns %s", strings.Join(cols, ", "))
		run = func(f *frame.Frame) (*frame.Frame, error) { return f.Drop(cols...) }
	}
	return &Op{verb: verb, args: cols, cols: cols, desc: desc, run: run}, nil
}

func parseRename(args []string) (*Op, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("rename: want <old> <new>, got %d arguments", len(args))
	}
	from, to := args[0], args[1]
	return &Op{
		verb: "rename",
		args: []string{from, to},
		cols: []string{from},
		desc: fmt.Sprintf("rename %s to %s", from, to),
		run: func(f *frame.Frame) (*frame.Frame, error) {
			return f.Rename(from, to)
		},
	}, nil
}

func parseSort(args []string) (*Op, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("sort: want <col> [desc]")
	}
	col := args[0]
	desc := false
	canonical := []string{col}
	if len(args) == 2 {
		switch strings.ToLower(args[1]) {
		case "desc":
			desc = true
			canonical = append(canonical, "desc")
		case "asc":
		default:
			return nil, fmt.Errorf("sort: unknown direction %q", args[1])
		}
	}
	word := "ascending"
	if desc {
		word = "descending"
	}
	return &Op{
		verb: "sort",
		args: canonical,
		cols: []string{col},
		desc: fmt.Sprintf("sort by %s %s", col, word),
		run: func(f *frame.Frame) (*frame.Frame, error) {
			return f.SortBy(col, desc)
		},
	}, nil
}

func parseHeadTail(verb string, args []string) (*Op, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s: want <n>", verb)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%s: %q is not a row count", verb, args[0])
	}
	desc := fmt.Sprintf("keep first %d rows", n)
	run := func(f *frame.Frame) (*frame.Frame, error) { return f.Head(n), nil }
	if verb == "tail" {
		desc = fmt.Sprintf("keep last %d rows", n)
		run = func(f *frame.Frame) (*frame.Frame, error) { return f.Tail(n), nil }
	}
	return &Op{verb: verb, args: []string{strconv.Itoa(n)}, desc: desc, run: run}, nil
}

func parseDistinct(args []string) (*Op, error) {
	cols := splitColumns(args)
	desc := "drop duplicate rows"
	if len(cols) > 0 {
		desc = fmt.Sprintf("drop duplicate rows by %s", strings.Join(cols, ", "))
	}
	return &Op{
		verb: "distinct",
		args: cols,
		cols: cols,
		desc: desc,
		run: func(f *frame.Frame) (*frame.Frame, error) {
			return f.Distinct(cols...)
		},
	}, nil
}

func parseWithCol(args []string) (*Op, error) {
	if len(args) != 5 || args[1] != "=" {
		return nil, fmt.Errorf("withcol: want <name> = <col> <op> <col|number>")
	}
	name, left, op, right := args[0], args[2], args[3], args[4]
	if !arithOps[op] {
		return nil, fmt.Errorf("withcol: unknown operator %q", op)
	}
	cols := []string{left}
	if _, err := strconv.ParseFloat(right, 64); err != nil {
		cols = append(cols, right)
	}
	return &Op{
		verb: "withcol",
		args: []string{name, "=", left, op, right},
		cols: cols,
		desc: fmt.Sprintf("add column %s = %s %s %s", name, left, op, right),
		run: func(f *frame.Frame) (*frame.Frame, error) {
			return f.WithColumn(name, left, op, right)
		},
	}, nil
}

// =============================================================================
// TOKENIZING
// =============================================================================

// tokenize splits an expression on whitespace, honoring single and double
// quotes so filter values may contain spaces.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	var quote rune
	inToken := false

	flush := func() {
		if inToken {
			tokens = append(tokens, cur.String())
			cur.Reset()
			inToken = false
		}
	}

	for _, ch := range s {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				cur.WriteRune(ch)
			}
		case ch == '"' || ch == '\'':
			quote = ch
			inToken = true
		case ch == ' ' || ch == '\t':
			flush()
		default:
			cur.WriteRune(ch)
			inToken = true
		}
	}
	flush()
	return tokens
}

// splitColumns flattens "a,b c" style argument lists into column names.
func splitColumns(args []string) []string {
	var cols []string
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				cols = append(cols, part)
			}
		}
	}
	return cols
}

// quoteToken re-quotes a token that contains whitespace.
func quoteToken(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}
