package rangeset

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/hupe1980/rangeset/boolvec"
	"github.com/hupe1980/rangeset/intvec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referenceExpr = "0,1,8, 10 - 20 , 15,17-21"

func maskIndices(m *boolvec.Vector) []int {
	return slices.Collect(m.Indices())
}

func TestAllocList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"reference example", referenceExpr, []int{0, 1, 8, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}},
		{"empty", "", []int{}},
		{"whitespace only", " \t ", []int{}},
		{"single element range", "5-5", []int{5}},
		{"duplicates collapse", "2-2,2", []int{2}},
		{"order independent a", "1,3-5", []int{1, 3, 4, 5}},
		{"order independent b", "3-5,1", []int{1, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := AllocList(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, list.Values())
		})
	}
}

func TestAllocList_Errors(t *testing.T) {
	tests := []struct {
		input    string
		kind     ErrorKind
		sentinel error
	}{
		{"5-4", InvalidRangeError, ErrInvalidRange},
		{"5-", TruncatedRangeError, ErrTruncatedRange},
		{"a", SyntaxError, ErrSyntax},
		{"1-3-5", SyntaxError, ErrSyntax},
		{"-1", NegativeValueError, ErrNegativeValue},
		{"4294967296", ValueTooLargeError, ErrValueTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			list, err := AllocList(tt.input)
			assert.Nil(t, list)
			require.ErrorIs(t, err, tt.sentinel)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, tt.input, perr.Input)
		})
	}
}

func TestUpdateList_Union(t *testing.T) {
	list := intvec.Of(9, 2, 2, 4)

	require.NoError(t, UpdateList("3-4, 0", list))
	assert.Equal(t, []int{0, 2, 3, 4, 9}, list.Values())

	require.NoError(t, UpdateList("", list))
	assert.Equal(t, []int{0, 2, 3, 4, 9}, list.Values())
}

func TestInitList_Replaces(t *testing.T) {
	list := intvec.Of(100, 200)
	require.NoError(t, InitList("1-2", list))
	assert.Equal(t, []int{1, 2}, list.Values())
}

func TestList_NoMutationOnError(t *testing.T) {
	list := intvec.Of(7, 3)

	require.Error(t, UpdateList("1,2,x", list))
	assert.Equal(t, []int{7, 3}, list.Values(), "update must not sort or merge on error")

	require.Error(t, InitList("9-", list))
	assert.Equal(t, []int{7, 3}, list.Values(), "init must not reset on error")
}

func TestUpdateList_NegativeEntry(t *testing.T) {
	list := intvec.Of(3, -1)
	err := UpdateList("1", list)
	require.ErrorIs(t, err, ErrNegativeIndex)
	assert.Equal(t, []int{3, -1}, list.Values())
}

func TestAllocMask(t *testing.T) {
	mask, err := AllocMask(referenceExpr)
	require.NoError(t, err)
	assert.Equal(t, 22, mask.Size())
	assert.Equal(t, []int{0, 1, 8, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}, maskIndices(mask))

	empty, err := AllocMask("")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Size())
}

func TestUpdateMask_Monotonic(t *testing.T) {
	mask := boolvec.New(30, false)
	mask.Set(25, true)

	require.NoError(t, UpdateMask("1-3", mask))
	assert.Equal(t, []int{1, 2, 3, 25}, maskIndices(mask))
	assert.Equal(t, 30, mask.Size(), "mask already large enough")

	require.NoError(t, UpdateMask("40", mask))
	assert.Equal(t, 41, mask.Size())
	assert.Equal(t, []int{1, 2, 3, 25, 40}, maskIndices(mask))
}

func TestUpdateMask_Idempotent(t *testing.T) {
	once := boolvec.New(0, false)
	twice := boolvec.New(0, false)

	require.NoError(t, UpdateMask(referenceExpr, once))
	require.NoError(t, UpdateMask(referenceExpr, twice))
	require.NoError(t, UpdateMask(referenceExpr, twice))

	assert.True(t, once.Equal(twice))
}

func TestUpdateMask_EmptyKeepsSize(t *testing.T) {
	mask := boolvec.New(12, false)
	require.NoError(t, UpdateMask("  ", mask))
	assert.Equal(t, 12, mask.Size())
}

func TestInitMask_ResetsAndNoMutationOnError(t *testing.T) {
	mask := boolvec.New(0, false)
	mask.Set(50, true)

	require.Error(t, InitMask("3,", mask))
	assert.Equal(t, 51, mask.Size())
	assert.True(t, mask.Get(50))

	require.Error(t, UpdateMask("3,4-2", mask))
	assert.Equal(t, []int{50}, maskIndices(mask))

	require.NoError(t, InitMask("3", mask))
	assert.Equal(t, 4, mask.Size())
	assert.Equal(t, []int{3}, maskIndices(mask))
}

func TestMaskListRoundTrip(t *testing.T) {
	mask, err := AllocMask("0, 5-9, 63-65, 127")
	require.NoError(t, err)

	list := intvec.New(0)
	ListFromMask(mask, list)
	assert.Equal(t, []int{0, 5, 6, 7, 8, 9, 63, 64, 65, 127}, list.Values())

	back := boolvec.New(0, false)
	MaskFromList(list, back)
	assert.True(t, mask.Equal(back))
}

func TestConverter_MaxValue(t *testing.T) {
	c := New(WithMaxValue(100))

	_, err := c.AllocMask("50-101")
	require.ErrorIs(t, err, ErrValueTooLarge)

	mask, err := c.AllocMask("50-100")
	require.NoError(t, err)
	assert.Equal(t, 101, mask.Size())
}

func TestWithMaxValue_Clamps(t *testing.T) {
	assert.Equal(t, DefaultMaxValue, applyOptions([]Option{WithMaxValue(0)}).maxValue)
	assert.Equal(t, DefaultMaxValue, applyOptions([]Option{WithMaxValue(-5)}).maxValue)
	assert.Equal(t, 10, applyOptions([]Option{WithMaxValue(10)}).maxValue)
}

func TestHugeRepeatedRanges(t *testing.T) {
	full := strings.Repeat("0-2147483647,", 20000) + "0"

	_, err := Parse(full)
	require.ErrorIs(t, err, ErrValueTooLarge)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ValueTooLargeError, perr.Kind)
	assert.Equal(t, 0, perr.Offset)

	_, err = AllocList(full)
	require.ErrorIs(t, err, ErrValueTooLarge)

	sel, err := AllocSelection(full)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxValue+1, sel.Cardinality())

	repeated := strings.Repeat("0-1048575, ", 20000) + "7"

	mask := boolvec.New(0, false)
	require.NoError(t, UpdateMask(repeated, mask))
	assert.Equal(t, 1<<20, mask.Size())
	assert.Equal(t, 1<<20, mask.Count())

	list, err := AllocList(repeated)
	require.NoError(t, err)
	assert.Equal(t, 1<<20, list.Len())
	assert.Equal(t, 0, list.Get(0))
	assert.Equal(t, 1<<20-1, list.Get(list.Len()-1))
}

func TestConverter_MaxValues(t *testing.T) {
	c := New(WithMaxValues(5))

	_, err := c.Parse("1-3, 2-4")
	require.ErrorIs(t, err, ErrValueTooLarge)

	list, err := c.AllocList("1-3, 2-4")
	require.NoError(t, err, "list operations bound distinct indices")
	assert.Equal(t, []int{1, 2, 3, 4}, list.Values())

	require.ErrorIs(t, c.UpdateList("10-15", list), ErrValueTooLarge)
	assert.Equal(t, []int{1, 2, 3, 4}, list.Values())

	mask, err := c.AllocMask("0-99")
	require.NoError(t, err)
	assert.Equal(t, 100, mask.Count())

	assert.Equal(t, DefaultMaxValues, applyOptions([]Option{WithMaxValues(0)}).maxValues)
}

func TestParse_RawSequence(t *testing.T) {
	values, err := Parse("3-5,1,4")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5, 1, 4}, values)

	values, err = Parse("1,a")
	assert.Nil(t, values)
	assert.True(t, errors.Is(err, ErrSyntax))
}

func TestConverter_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	c := New(WithMetricsCollector(metrics), WithLogger(nil))

	_, err := c.AllocList("1-3")
	require.NoError(t, err)
	_, err = c.AllocMask("x")
	require.Error(t, err)
	_, err = c.AllocSelection("4,5")
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats.ParseCount)
	assert.Equal(t, int64(1), stats.ParseErrors)
	assert.Equal(t, int64(5), stats.ParsedValues)
	assert.Equal(t, int64(1), stats.ListUpdates)
	assert.Equal(t, int64(1), stats.MaskUpdates)
	assert.Equal(t, int64(1), stats.SelectionUpdates)
	assert.Equal(t, int64(1), stats.UpdateErrors)
}

func BenchmarkUpdateList(b *testing.B) {
	list := intvec.New(0)
	b.ReportAllocs()
	for b.Loop() {
		if err := UpdateList(referenceExpr, list); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUpdateMask(b *testing.B) {
	mask := boolvec.New(0, false)
	b.ReportAllocs()
	for b.Loop() {
		if err := UpdateMask(referenceExpr, mask); err != nil {
			b.Fatal(err)
		}
	}
}
