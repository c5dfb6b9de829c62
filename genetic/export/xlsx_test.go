package export

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	config, pop, points := finishedRun(t)
	dto := FromRun(config, pop, points)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, dto))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetPopulation, SheetTrace}, f.GetSheetList())

	rows, err := f.GetRows(SheetPopulation)
	require.NoError(t, err)
	require.Len(t, rows, 1+len(pop))
	assert.Equal(t, []string{"id", "x", "score"}, rows[0])
	for i, ind := range pop {
		assert.Equal(t, strconv.FormatUint(ind.ID, 10), rows[i+1][0])
	}

	trace, err := f.GetRows(SheetTrace)
	require.NoError(t, err)
	assert.Len(t, trace, 1+len(points))

	seed, err := f.GetCellValue(SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "123", seed)

	id, err := f.GetCellValue(SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, dto.RunID, id)
}

func TestWriteXLSX_NoTrace(t *testing.T) {
	config, pop, _ := finishedRun(t)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, FromRun(config, pop, nil)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetPopulation}, f.GetSheetList())
}
