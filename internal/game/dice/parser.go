package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxCount bounds the number of dice in a single expression.
	MaxCount = 1000
	// MaxSides bounds the faces of a single die.
	MaxSides = 1000
)

// ErrEmptyExpression is returned by Parse for blank input.
var ErrEmptyExpression = errors.New("dice: empty expression")

// Expression is a parsed dice formula ready to be rolled.
//
// Invariant: 1 <= Count <= MaxCount, 2 <= Sides <= MaxSides, and at most one of
// KeepHighest/KeepLowest is non-zero, in which case it is in [1, Count).
type Expression struct {
	Raw         string // original input string
	Count       int    // number of dice
	Sides       int    // faces per die
	Modifier    int    // flat modifier (may be negative)
	KeepHighest int    // if > 0, keep only the N highest dice (4d6kh3)
	KeepLowest  int    // if > 0, keep only the N lowest dice (2d20kl1)
}

// kept returns how many dice contribute to the total.
func (e Expression) kept() int {
	switch {
	case e.KeepHighest > 0:
		return e.KeepHighest
	case e.KeepLowest > 0:
		return e.KeepLowest
	default:
		return e.Count
	}
}

// Min returns the smallest total the expression can produce.
func (e Expression) Min() int { return e.kept() + e.Modifier }

// Max returns the largest total the expression can produce.
func (e Expression) Max() int { return e.kept()*e.Sides + e.Modifier }

// Parse parses a dice formula into an Expression.
// Supported forms: "d20", "2d6", "2d6+3", "4d8-2", "4d6kh3", "2d20kl1+5".
//
// Postcondition: Returns an Expression satisfying its invariant or a descriptive error.
func Parse(expr string) (Expression, error) {
	raw := strings.TrimSpace(expr)
	if raw == "" {
		return Expression{}, ErrEmptyExpression
	}
	s := strings.ToLower(strings.ReplaceAll(raw, " ", ""))

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", raw)
	}

	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
		}
		count = n
	}
	if count < 1 || count > MaxCount {
		return Expression{}, fmt.Errorf("dice: die count in %q must be 1-%d", raw, MaxCount)
	}

	// Split what follows 'd' into sides, optional keep clause and optional modifier.
	rest := s[dIdx+1:]
	modStr := ""
	if i := strings.IndexAny(rest, "+-"); i >= 0 {
		modStr = rest[i:]
		rest = rest[:i]
	}

	keepHighest, keepLowest := 0, 0
	sidesStr := rest
	if i := strings.Index(rest, "k"); i >= 0 {
		sidesStr = rest[:i]
		clause := rest[i:]
		if len(clause) < 3 || (clause[1] != 'h' && clause[1] != 'l') {
			return Expression{}, fmt.Errorf("dice: invalid keep clause %q in %q", clause, raw)
		}
		n, err := strconv.Atoi(clause[2:])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid keep value in %q: %w", raw, err)
		}
		if n <= 0 || n >= count {
			return Expression{}, fmt.Errorf("dice: keep value %d must be > 0 and < count %d in %q", n, count, raw)
		}
		if clause[1] == 'h' {
			keepHighest = n
		} else {
			keepLowest = n
		}
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
	}
	if sides < 2 || sides > MaxSides {
		return Expression{}, fmt.Errorf("dice: die sides in %q must be 2-%d", raw, MaxSides)
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", raw, err)
		}
	}

	return Expression{
		Raw:         raw,
		Count:       count,
		Sides:       sides,
		Modifier:    modifier,
		KeepHighest: keepHighest,
		KeepLowest:  keepLowest,
	}, nil
}

// MustParse parses expr and panics on error. Useful for package-level defaults.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
