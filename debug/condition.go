package debug

import (
	"fmt"
	"strconv"
	"strings"
)

var registerNames = map[string]Register{
	"A": RegA, "X": RegX, "Y": RegY, "P": RegP, "SP": RegSP, "PC": RegPC,
}

var opNames = map[string]Op{
	"==": OpEQ, "!=": OpNE, "<": OpLT, "<=": OpLE, ">": OpGT, ">=": OpGE,
}

// ParseCondition parses a three-token condition expression of the form
// "<register> <op> <register-or-constant>", e.g. "X == 10", "PC >= $C000",
// "A != Y". Constants accept decimal, or $-prefixed/0x-prefixed hex.
func ParseCondition(expr string) (*Condition, error) {
	tokens := tokenize(expr)
	if len(tokens) != 3 {
		return nil, fmt.Errorf("debug: condition %q must have exactly 3 tokens, got %d", expr, len(tokens))
	}
	lhs, ok := registerNames[strings.ToUpper(tokens[0])]
	if !ok {
		return nil, fmt.Errorf("debug: condition %q: unknown register %q", expr, tokens[0])
	}
	op, ok := opNames[tokens[1]]
	if !ok {
		return nil, fmt.Errorf("debug: condition %q: unknown operator %q", expr, tokens[1])
	}
	c := &Condition{Lhs: lhs, Op: op}
	if reg, ok := registerNames[strings.ToUpper(tokens[2])]; ok {
		c.RhsIsReg = true
		c.RhsReg = reg
		return c, nil
	}
	v, err := parseConst(tokens[2])
	if err != nil {
		return nil, fmt.Errorf("debug: condition %q: bad constant %q: %v", expr, tokens[2], err)
	}
	c.RhsConst = v
	return c, nil
}

func parseConst(tok string) (uint16, error) {
	switch {
	case strings.HasPrefix(tok, "$"):
		v, err := strconv.ParseUint(tok[1:], 16, 16)
		return uint16(v), err
	case strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X"):
		v, err := strconv.ParseUint(tok[2:], 16, 16)
		return uint16(v), err
	default:
		v, err := strconv.ParseUint(tok, 10, 16)
		return uint16(v), err
	}
}

// tokenize splits a condition expression on whitespace, treating a run
// of operator characters (=!<>) as its own token even when not
// surrounded by spaces - e.g. "X==10" tokenizes the same as "X == 10".
func tokenize(expr string) []string {
	var tokens []string
	var cur strings.Builder
	isOpChar := func(r rune) bool { return strings.ContainsRune("=!<>", r) }

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	var lastWasOp bool
	for _, r := range expr {
		switch {
		case r == ' ' || r == '\t':
			flush()
			lastWasOp = false
		case isOpChar(r):
			if cur.Len() > 0 && !lastWasOp {
				flush()
			}
			cur.WriteRune(r)
			lastWasOp = true
		default:
			if lastWasOp {
				flush()
			}
			cur.WriteRune(r)
			lastWasOp = false
		}
	}
	flush()
	return tokens
}
