package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	assert.Equal(t, "25/12/2025", Date("2025-12-25"))
	assert.Equal(t, "25/12/2025", Date("2025-12-25T14:30:25Z"))
	assert.Equal(t, "-", Date(""))
	assert.Equal(t, "-", Date("-"))
	assert.Equal(t, "not a date", Date("not a date"))
}

func TestDateTime(t *testing.T) {
	assert.Equal(t, "25/12/2025 14:30:25", DateTime("2025-12-25T14:30:25Z"))
	assert.Equal(t, "-", DateTime(""))
}

func TestDateISO(t *testing.T) {
	d := time.Date(2026, time.March, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-07", DateISO(d))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-02-28"))
	assert.False(t, ValidDate("2026-02-30"))
	assert.False(t, ValidDate("28/02/2026"))
}

func TestMonthNames(t *testing.T) {
	assert.Equal(t, "Janeiro", MonthName(0))
	assert.Equal(t, "Dezembro", MonthName(11))
	assert.Equal(t, "Mês Inválido", MonthName(12))
	assert.Equal(t, "Mar", MonthShortName(2))
	assert.Equal(t, "---", MonthShortName(-1))
}

func TestLastMonths(t *testing.T) {
	now := time.Date(2026, time.March, 31, 10, 0, 0, 0, time.UTC)

	months := LastMonths(now, 6)
	require.Len(t, months, 6)

	keys := make([]string, len(months))
	for i, m := range months {
		keys[i] = m.Key
	}
	// The 31st must not skip February.
	assert.Equal(t, []string{"2025-10", "2025-11", "2025-12", "2026-01", "2026-02", "2026-03"}, keys)
	assert.Equal(t, "Out/25", months[0].Label)
	assert.Equal(t, "Março/2026", months[5].FullLabel)
	assert.Equal(t, time.February, months[4].Month)
}

func TestLastMonths_Twelve(t *testing.T) {
	now := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	months := LastMonths(now, 12)
	require.Len(t, months, 12)
	assert.Equal(t, "2025-02", months[0].Key)
	assert.Equal(t, "2026-01", months[11].Key)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-10", MonthKey("2026-10-17"))
	assert.Equal(t, "", MonthKey("2026"))
}
