package rangeset

import (
	"errors"
	"fmt"

	"github.com/hupe1980/rangeset/internal/parser"
)

// ErrorKind classifies why a range expression was rejected.
type ErrorKind uint8

const (
	// SyntaxError means a required integer or separator could not be consumed,
	// e.g. a letter where a digit run was expected.
	SyntaxError ErrorKind = iota + 1
	// InvalidRangeError means a range has high < low, e.g. "5-4".
	InvalidRangeError
	// TruncatedRangeError means the input ends right after a dash, e.g. "5-".
	TruncatedRangeError
	// NegativeValueError means an integer token was negative, e.g. "-1".
	NegativeValueError
	// ValueTooLargeError means an integer exceeds the configured maximum.
	ValueTooLargeError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case InvalidRangeError:
		return "InvalidRangeError"
	case TruncatedRangeError:
		return "TruncatedRangeError"
	case NegativeValueError:
		return "NegativeValueError"
	case ValueTooLargeError:
		return "ValueTooLargeError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

var (
	// ErrSyntax matches every ParseError of kind SyntaxError.
	ErrSyntax = errors.New("syntax error")
	// ErrInvalidRange matches every ParseError of kind InvalidRangeError.
	ErrInvalidRange = errors.New("invalid range")
	// ErrTruncatedRange matches every ParseError of kind TruncatedRangeError.
	ErrTruncatedRange = errors.New("truncated range")
	// ErrNegativeValue matches every ParseError of kind NegativeValueError.
	ErrNegativeValue = errors.New("negative value")
	// ErrValueTooLarge matches every ParseError of kind ValueTooLargeError.
	ErrValueTooLarge = errors.New("value too large")

	// ErrNegativeIndex is returned when an index list handed to an update
	// operation contains a negative entry.
	ErrNegativeIndex = errors.New("negative index in list")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case SyntaxError:
		return ErrSyntax
	case InvalidRangeError:
		return ErrInvalidRange
	case TruncatedRangeError:
		return ErrTruncatedRange
	case NegativeValueError:
		return ErrNegativeValue
	case ValueTooLargeError:
		return ErrValueTooLarge
	default:
		return nil
	}
}

// ParseError reports a rejected range expression.
//
// It matches the sentinel of its kind via errors.Is, e.g.
// errors.Is(err, rangeset.ErrInvalidRange). The underlying scanner error can
// be accessed via errors.Unwrap.
type ParseError struct {
	Kind   ErrorKind
	Offset int    // byte offset of the failure point
	Input  string // the complete range expression
	cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rangeset: %v", e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }

// Is reports whether target is the sentinel of e's kind.
func (e *ParseError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var perr *parser.Error
	if errors.As(err, &perr) {
		return &ParseError{
			Kind:   translateKind(perr.Kind),
			Offset: perr.Offset,
			Input:  perr.Input,
			cause:  err,
		}
	}

	return err
}

func translateKind(k parser.Kind) ErrorKind {
	switch k {
	case parser.KindSyntax:
		return SyntaxError
	case parser.KindInvalidRange:
		return InvalidRangeError
	case parser.KindTruncatedRange:
		return TruncatedRangeError
	case parser.KindNegativeValue:
		return NegativeValueError
	case parser.KindValueTooLarge:
		return ValueTooLargeError
	default:
		return SyntaxError
	}
}
