package rangeset

import (
	"fmt"
	"time"

	"github.com/hupe1980/rangeset/boolvec"
	"github.com/hupe1980/rangeset/internal/parser"
	"github.com/hupe1980/rangeset/intvec"
)

// Converter parses range expressions and projects them onto index lists,
// membership masks and selections.
//
// A Converter is immutable after construction and safe for concurrent use,
// as long as concurrent calls do not share a target container.
//
// Every operation parses the complete expression before touching its target:
// a rejected expression leaves the target exactly as it was.
type Converter struct {
	opts options
}

// New creates a Converter.
func New(optFns ...Option) *Converter {
	return &Converter{opts: applyOptions(optFns)}
}

var defaultConverter = New()

// Parse returns the raw integer sequence denoted by rangeString: ranges are
// expanded in increasing order, terms keep their input order and duplicates
// are kept. Expressions expanding to more integers than the WithMaxValues
// bound are rejected.
func (c *Converter) Parse(rangeString string) ([]int, error) {
	terms, err := c.scan(rangeString, func(terms []parser.Term) error {
		return parser.Limit(rangeString, terms, c.opts.maxValues)
	})
	if err != nil {
		return nil, err
	}
	return parser.Expand(terms), nil
}

// scan parses rangeString into terms, applies check and records the outcome.
func (c *Converter) scan(rangeString string, check func([]parser.Term) error) ([]parser.Term, error) {
	start := time.Now()

	terms, err := parser.Scan(rangeString, c.opts.maxValue)
	if err == nil && check != nil {
		err = check(terms)
	}
	err = translateError(err)

	n := 0
	if err == nil {
		n = parser.Count(terms)
	}

	c.opts.metricsCollector.RecordParse(n, time.Since(start), err)
	c.opts.logger.LogParse(rangeString, n, err)

	if err != nil {
		return nil, err
	}
	return terms, nil
}

// scanDistinct parses rangeString into normalized terms bounded by the
// WithMaxValues limit.
func (c *Converter) scanDistinct(rangeString string) ([]parser.Term, error) {
	var merged []parser.Term
	_, err := c.scan(rangeString, func(terms []parser.Term) error {
		merged = parser.Normalize(terms)
		return parser.Limit(rangeString, merged, c.opts.maxValues)
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// scanMerged parses rangeString into normalized terms.
func (c *Converter) scanMerged(rangeString string) ([]parser.Term, error) {
	terms, err := c.scan(rangeString, nil)
	if err != nil {
		return nil, err
	}
	return parser.Normalize(terms), nil
}

func (c *Converter) observe(target Target, reset bool, start time.Time, size int, err error) {
	c.opts.metricsCollector.RecordUpdate(target, time.Since(start), err)
	c.opts.logger.LogUpdate(target, reset, size, err)
}

// InitList replaces the contents of list with the indices selected by
// rangeString, sorted ascending and without duplicates.
func (c *Converter) InitList(rangeString string, list *intvec.Vector) (err error) {
	start := time.Now()
	defer func() { c.observe(TargetList, true, start, list.Len(), err) }()

	terms, err := c.scanDistinct(rangeString)
	if err != nil {
		return err
	}

	list.Reset()
	mergeList(list, terms)
	return nil
}

// UpdateList merges the indices selected by rangeString into list.
// Afterwards list holds the union of its prior entries and the new selection,
// sorted ascending and without duplicates.
//
// list must not contain negative entries; ErrNegativeIndex is returned
// otherwise and list is left untouched.
func (c *Converter) UpdateList(rangeString string, list *intvec.Vector) (err error) {
	start := time.Now()
	defer func() { c.observe(TargetList, false, start, list.Len(), err) }()

	for v := range list.All() {
		if v < 0 {
			return fmt.Errorf("%w: %d", ErrNegativeIndex, v)
		}
	}

	terms, err := c.scanDistinct(rangeString)
	if err != nil {
		return err
	}

	mergeList(list, terms)
	return nil
}

// AllocList returns a new index list initialized from rangeString.
func (c *Converter) AllocList(rangeString string) (*intvec.Vector, error) {
	list := intvec.New(0)
	if err := c.InitList(rangeString, list); err != nil {
		return nil, err
	}
	return list, nil
}

// InitMask resets mask to size 0 and marks the indices selected by
// rangeString. The mask grows to the largest selected index + 1.
func (c *Converter) InitMask(rangeString string, mask *boolvec.Vector) (err error) {
	start := time.Now()
	defer func() { c.observe(TargetMask, true, start, mask.Size(), err) }()

	terms, err := c.scanMerged(rangeString)
	if err != nil {
		return err
	}

	mask.Reset()
	markMask(mask, terms)
	return nil
}

// UpdateMask marks the indices selected by rangeString in mask, growing it as
// needed. Positions are never cleared, so repeated updates are idempotent.
func (c *Converter) UpdateMask(rangeString string, mask *boolvec.Vector) (err error) {
	start := time.Now()
	defer func() { c.observe(TargetMask, false, start, mask.Size(), err) }()

	terms, err := c.scanMerged(rangeString)
	if err != nil {
		return err
	}

	markMask(mask, terms)
	return nil
}

// AllocMask returns a new mask (default false) initialized from rangeString.
func (c *Converter) AllocMask(rangeString string) (*boolvec.Vector, error) {
	mask := boolvec.New(0, false)
	if err := c.InitMask(rangeString, mask); err != nil {
		return nil, err
	}
	return mask, nil
}

// InitSelection replaces the contents of sel with the indices selected by
// rangeString.
func (c *Converter) InitSelection(rangeString string, sel *Selection) (err error) {
	start := time.Now()
	defer func() { c.observe(TargetSelection, true, start, sel.Cardinality(), err) }()

	terms, err := c.scanMerged(rangeString)
	if err != nil {
		return err
	}

	sel.Clear()
	addTerms(sel, terms)
	return nil
}

// UpdateSelection adds the indices selected by rangeString to sel.
func (c *Converter) UpdateSelection(rangeString string, sel *Selection) (err error) {
	start := time.Now()
	defer func() { c.observe(TargetSelection, false, start, sel.Cardinality(), err) }()

	terms, err := c.scanMerged(rangeString)
	if err != nil {
		return err
	}

	addTerms(sel, terms)
	return nil
}

// AllocSelection returns a new selection initialized from rangeString.
func (c *Converter) AllocSelection(rangeString string) (*Selection, error) {
	sel := NewSelection()
	if err := c.InitSelection(rangeString, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// MaskFromList marks every entry of list in mask, growing it as needed.
// It panics if list contains a negative entry.
func MaskFromList(list *intvec.Vector, mask *boolvec.Vector) {
	for v := range list.All() {
		mask.Set(v, true)
	}
}

// ListFromMask rebuilds list from the true positions of mask, in ascending order.
func ListFromMask(mask *boolvec.Vector, list *intvec.Vector) {
	list.Reset()
	for i := range mask.Indices() {
		list.Append(i)
	}
}

// mergeList unions terms into list through a mask sized to the list's
// current maximum, leaving list sorted and deduplicated.
func mergeList(list *intvec.Vector, terms []parser.Term) {
	list.Sort()

	size := 0
	if m, ok := list.Max(); ok {
		size = m + 1
	}
	mask := boolvec.New(size, false)

	MaskFromList(list, mask)
	markMask(mask, terms)
	ListFromMask(mask, list)
}

func markMask(mask *boolvec.Vector, terms []parser.Term) {
	for _, t := range terms {
		mask.SetRange(t.Low, t.High)
	}
}

func addTerms(sel *Selection, terms []parser.Term) {
	for _, t := range terms {
		sel.AddRange(t.Low, t.High)
	}
}

// Parse returns the raw integer sequence denoted by rangeString using the
// default Converter.
func Parse(rangeString string) ([]int, error) {
	return defaultConverter.Parse(rangeString)
}

// InitList initializes list from rangeString using the default Converter.
func InitList(rangeString string, list *intvec.Vector) error {
	return defaultConverter.InitList(rangeString, list)
}

// UpdateList merges rangeString into list using the default Converter.
func UpdateList(rangeString string, list *intvec.Vector) error {
	return defaultConverter.UpdateList(rangeString, list)
}

// AllocList allocates a list from rangeString using the default Converter.
func AllocList(rangeString string) (*intvec.Vector, error) {
	return defaultConverter.AllocList(rangeString)
}

// InitMask initializes mask from rangeString using the default Converter.
func InitMask(rangeString string, mask *boolvec.Vector) error {
	return defaultConverter.InitMask(rangeString, mask)
}

// UpdateMask merges rangeString into mask using the default Converter.
func UpdateMask(rangeString string, mask *boolvec.Vector) error {
	return defaultConverter.UpdateMask(rangeString, mask)
}

// AllocMask allocates a mask from rangeString using the default Converter.
func AllocMask(rangeString string) (*boolvec.Vector, error) {
	return defaultConverter.AllocMask(rangeString)
}

// InitSelection initializes sel from rangeString using the default Converter.
func InitSelection(rangeString string, sel *Selection) error {
	return defaultConverter.InitSelection(rangeString, sel)
}

// UpdateSelection merges rangeString into sel using the default Converter.
func UpdateSelection(rangeString string, sel *Selection) error {
	return defaultConverter.UpdateSelection(rangeString, sel)
}

// AllocSelection allocates a selection from rangeString using the default Converter.
func AllocSelection(rangeString string) (*Selection, error) {
	return defaultConverter.AllocSelection(rangeString)
}
