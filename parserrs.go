package musicexpr

import "strconv"

// OperatorError is a + or * with no expression before it, as in "+C" or
// "C++E". It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator token.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Operator)+" needs an expression before it")
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an unclosed, unopened, or mismatched bracket. It implements
// InputError.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	switch {
	case err.Left == "":
		return errpos(err.Col, err.Right+" closes nothing")
	case err.Right == "":
		return errpos(err.Col, err.Left+" is never closed")
	}
	return errpos(err.Col, err.Left+" closed by "+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma that does not separate two
// sequence elements. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Sep)+" must be between two elements")
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// CountPlacementError is an error indicating a number where an expression was
// expected. Counts may only follow *. It implements InputError.
type CountPlacementError struct {
	// Col is the position of the number.
	Col int
	// Count is the number.
	Count string
}

func (err *CountPlacementError) Error() string {
	return errpos(err.Col, "count "+err.Count+" must follow *")
}

func (err *CountPlacementError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an empty input or group, or an operator with nothing
// after it. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return errpos(err.Col, "expected an expression before "+strconv.Quote(err.End))
	case err.Col <= 1:
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "expected an expression at end")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos prefixes msg with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error in notation. Every error from Parse for invalid
// notation implements InputError.
type InputError interface {
	error
	// Pos is the 1-based rune position of the offending token.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CountPlacementError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*CountError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*SizeError)(nil)
	_ InputError = (*LexError)(nil)
)
