package parser

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Term is a single grammar unit: one integer (Low == High) or an inclusive range.
type Term struct {
	Low    int
	High   int
	Offset int // byte offset of the term's first integer
}

// Len returns the number of integers the term denotes.
func (t Term) Len() int {
	return t.High - t.Low + 1
}

type state uint8

const (
	stateExpectInt state = iota
	stateAfterInt
	stateExpectRangeEnd
	stateAfterRange
)

type scanner struct {
	input    string
	pos      int
	maxValue int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.input) {
		if c := s.input[s.pos]; c != ' ' && c != '\t' {
			return
		}
		s.pos++
	}
}

func (s *scanner) fail(kind Kind, offset int, detail string, err error) *Error {
	return &Error{
		Kind:   kind,
		Offset: offset,
		Input:  s.input,
		Detail: detail,
		Err:    err,
	}
}

// readInt consumes the longest run of an optional sign followed by decimal
// digits at the current position.
func (s *scanner) readInt() (int, error) {
	start := s.pos
	i := start
	if i < len(s.input) && (s.input[i] == '+' || s.input[i] == '-') {
		i++
	}
	digits := i
	for i < len(s.input) && s.input[i] >= '0' && s.input[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, s.fail(KindSyntax, start, "expected integer", nil)
	}

	v, err := strconv.Atoi(s.input[start:i])
	if err != nil {
		switch {
		case s.input[start] == '-':
			return 0, s.fail(KindNegativeValue, start, "", err)
		case errors.Is(err, strconv.ErrRange):
			return 0, s.fail(KindValueTooLarge, start, "", err)
		default:
			return 0, s.fail(KindSyntax, start, "", err)
		}
	}
	if v < 0 {
		return 0, s.fail(KindNegativeValue, start, "", nil)
	}
	if v > s.maxValue {
		return 0, s.fail(KindValueTooLarge, start, fmt.Sprintf("%d exceeds maximum %d", v, s.maxValue), nil)
	}

	s.pos = i
	return v, nil
}

// Scan parses input into its terms, in input order. Ranges are validated but
// not expanded. Values above maxValue are rejected.
//
// On failure the returned slice is nil and the error is an *Error.
func Scan(input string, maxValue int) ([]Term, error) {
	s := &scanner{input: input, maxValue: maxValue}

	s.skipSpace()
	if s.eof() {
		return nil, nil
	}

	var (
		terms []Term
		cur   Term
		st    = stateExpectInt
	)

	for {
		s.skipSpace()

		switch st {
		case stateExpectInt:
			offset := s.pos
			v, err := s.readInt()
			if err != nil {
				return nil, err
			}
			cur = Term{Low: v, High: v, Offset: offset}
			st = stateAfterInt

		case stateAfterInt, stateAfterRange:
			if s.eof() {
				return append(terms, cur), nil
			}
			switch c := s.input[s.pos]; {
			case c == ',':
				terms = append(terms, cur)
				s.pos++
				st = stateExpectInt
			case c == '-' && st == stateAfterInt:
				s.pos++
				st = stateExpectRangeEnd
			case st == stateAfterInt:
				return nil, s.fail(KindSyntax, s.pos, "expected ',' or '-'", nil)
			default:
				return nil, s.fail(KindSyntax, s.pos, "expected ','", nil)
			}

		case stateExpectRangeEnd:
			if s.eof() {
				return nil, s.fail(KindTruncatedRange, s.pos, "missing range end", nil)
			}
			offset := s.pos
			v, err := s.readInt()
			if err != nil {
				return nil, err
			}
			if v < cur.Low {
				return nil, s.fail(KindInvalidRange, offset, fmt.Sprintf("%d-%d is decreasing", cur.Low, v), nil)
			}
			cur.High = v
			st = stateAfterRange
		}
	}
}

// Parse parses input and expands every term into the raw integer sequence.
//
// Ranges expand in increasing order; terms keep their input order, so the
// result may contain duplicates and is not necessarily sorted. Input that
// expands to more than maxValues integers is rejected with KindValueTooLarge.
func Parse(input string, maxValue, maxValues int) ([]int, error) {
	terms, err := Scan(input, maxValue)
	if err != nil {
		return nil, err
	}
	if err := Limit(input, terms, maxValues); err != nil {
		return nil, err
	}
	return Expand(terms), nil
}

// Count returns the number of integers terms denote, saturating at math.MaxInt.
func Count(terms []Term) int {
	n := 0
	for _, t := range terms {
		if t.Len() > math.MaxInt-n {
			return math.MaxInt
		}
		n += t.Len()
	}
	return n
}

// Limit rejects terms denoting more than maxValues integers. The error points
// at the term that crosses the bound.
func Limit(input string, terms []Term, maxValues int) error {
	n := 0
	for _, t := range terms {
		if t.Len() > maxValues-n {
			return &Error{
				Kind:   KindValueTooLarge,
				Offset: t.Offset,
				Input:  input,
				Detail: fmt.Sprintf("expression expands to more than %d values", maxValues),
			}
		}
		n += t.Len()
	}
	return nil
}

// Normalize returns terms sorted by Low with overlapping and adjacent ranges
// merged. A merged term keeps the offset of its lowest member. terms is not
// modified.
func Normalize(terms []Term) []Term {
	if len(terms) == 0 {
		return nil
	}

	sorted := slices.Clone(terms)
	slices.SortFunc(sorted, func(a, b Term) int {
		return cmp.Or(cmp.Compare(a.Low, b.Low), cmp.Compare(a.Offset, b.Offset))
	})

	merged := sorted[:1]
	for _, t := range sorted[1:] {
		last := &merged[len(merged)-1]
		if t.Low-1 <= last.High {
			last.High = max(last.High, t.High)
			continue
		}
		merged = append(merged, t)
	}
	return merged
}

// Expand flattens terms into the integers they denote. Callers bound the
// total with Limit first.
func Expand(terms []Term) []int {
	values := make([]int, 0, Count(terms))
	for _, t := range terms {
		// High may equal maxValue, so the loop must not step past it.
		for v := t.Low; ; v++ {
			values = append(values, v)
			if v == t.High {
				break
			}
		}
	}
	return values
}
