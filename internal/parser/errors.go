package parser

import "fmt"

// Kind classifies a parse failure.
type Kind uint8

const (
	// KindSyntax means a required integer or separator could not be consumed.
	KindSyntax Kind = iota + 1
	// KindInvalidRange means a range has its high bound below its low bound.
	KindInvalidRange
	// KindTruncatedRange means the input ended right after a '-'.
	KindTruncatedRange
	// KindNegativeValue means an integer token carried a negative value.
	KindNegativeValue
	// KindValueTooLarge means an integer exceeded the configured maximum.
	KindValueTooLarge
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindInvalidRange:
		return "invalid range"
	case KindTruncatedRange:
		return "truncated range"
	case KindNegativeValue:
		return "negative value"
	case KindValueTooLarge:
		return "value too large"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// nearLen bounds the excerpt of the input quoted in error messages.
const nearLen = 16

// Error describes where and why a range expression was rejected.
type Error struct {
	Kind   Kind
	Offset int
	Input  string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s at offset %d %s", e.Kind, e.Offset, e.Near())
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Near returns a short, quoted excerpt of the input starting at the failure
// offset, or "at end of input".
func (e *Error) Near() string {
	if e.Offset >= len(e.Input) {
		return "at end of input"
	}
	rest := e.Input[e.Offset:]
	if len(rest) > nearLen {
		rest = rest[:nearLen] + "..."
	}
	return fmt.Sprintf("near %q", rest)
}
