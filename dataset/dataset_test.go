package dataset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableShape(t *testing.T) {
	t.Parallel()

	table := New(
		Floats("x", 1.5, 2.5, 3.5),
		Strings("tag", "a", "b"),
	)

	assert.Equal(t, []string{"x", "tag"}, table.ColumnNames())
	assert.Equal(t, 3, table.NumRows())

	// The shorter column reads as empty past its end.
	assert.Equal(t, "b", table.CellText(1, 1))
	assert.Equal(t, "", table.CellText(2, 1))
	assert.Equal(t, "", table.CellText(0, 5), "out-of-range column reads empty")
}

func TestFloatPrecision(t *testing.T) {
	t.Parallel()

	table := New(Floats("v", 1.0/3.0))
	assert.Equal(t, "0.3333333333", table.CellText(0, 0), "default is 10 significant digits")

	table.SetPrecision(3)
	assert.Equal(t, "0.333", table.CellText(0, 0))

	table.SetPrecision(0)
	assert.Equal(t, "0.3333333333", table.CellText(0, 0), "precision below 1 falls back to the default")
}

func TestIntColumnsFormatExactly(t *testing.T) {
	t.Parallel()

	table := New(Ints("n", 0, -7, 1234567890123))
	table.SetPrecision(3)

	assert.Equal(t, "0", table.CellText(0, 0))
	assert.Equal(t, "-7", table.CellText(1, 0))
	assert.Equal(t, "1234567890123", table.CellText(2, 0), "integers ignore float precision")
}

func TestEncodeSingleTable(t *testing.T) {
	t.Parallel()

	table := New(
		Ints("x", 1, 2, 3),
		Floats("y", 0.5, 1.5, 2.5),
	)

	got := Encode(";", table)
	want := strings.Join([]string{
		"x;y",
		"1;0.5",
		"2;1.5",
		"3;2.5",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("encoded text mismatch (-want +got):\n%s", diff)
	}

	// N rows encode as N+1 lines, each with (columns-1) separators.
	lines := strings.Split(got, "\n")
	require.Len(t, lines, table.NumRows()+1)
	for _, line := range lines {
		assert.Equal(t, 1, strings.Count(line, ";"))
	}
}

func TestEncodePadsShorterTable(t *testing.T) {
	t.Parallel()

	long := New(Ints("a", 1, 2, 3, 4))
	short := New(Strings("b", "p", "q"))

	got := Encode(",", long, short)
	want := strings.Join([]string{
		"a,b",
		"1,p",
		"2,q",
		"3,",
		"4,",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("encoded text mismatch (-want +got):\n%s", diff)
	}

	header := strings.Split(strings.Split(got, "\n")[0], ",")
	assert.Equal(t, []string{"a", "b"}, header, "header concatenates both column-name lists")
}

func TestEncodeNamedPrefixesHeaders(t *testing.T) {
	t.Parallel()

	got := EncodeNamed(";",
		Named{Key: "run1", Data: New(Ints("x", 1), Ints("y", 2))},
		Named{Key: "run2", Data: New(Ints("x", 3))},
	)

	lines := strings.Split(got, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "run1_x;run1_y;run2_x", lines[0])
	assert.Equal(t, "1;2;3", lines[1])
}

func TestEncodeEmptyInputs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Encode(";"))

	empty := New(Floats("only"))
	assert.Equal(t, "only", Encode(";", empty), "a columns-only table encodes as its header")
}

func TestEncodeSeparatorChoiceDoesNotChangeHeader(t *testing.T) {
	t.Parallel()

	table := New(Ints("p", 1), Ints("q", 2), Ints("r", 3))
	for _, sep := range []string{";", ",", "\t", "|"} {
		lines := strings.Split(Encode(sep, table), "\n")
		assert.Equal(t, []string{"p", "q", "r"}, strings.Split(lines[0], sep), "separator %q", sep)
	}
}
