package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		totals     Totals
		wantIssues bool
		wantErrors bool
	}{
		{name: "empty", totals: Totals{}},
		{name: "warnings only", totals: Totals{Issues: 2, Warnings: 2}, wantIssues: true},
		{name: "errors", totals: Totals{Issues: 3, Errors: 1, Warnings: 2}, wantIssues: true, wantErrors: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.wantIssues, testCase.totals.HasIssues())
			assert.Equal(t, testCase.wantErrors, testCase.totals.HasErrors())
		})
	}
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	for _, valid := range []SortField{SortByCount, SortByAlpha, SortBySeverity} {
		assert.True(t, valid.IsValid(), valid)
	}
	assert.False(t, SortField("rules").IsValid())
	assert.False(t, SortField("").IsValid())
}

func TestParseSortField(t *testing.T) {
	t.Parallel()

	field, err := ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByCount, field)

	field, err = ParseSortField("severity")
	require.NoError(t, err)
	assert.Equal(t, SortBySeverity, field)

	_, err = ParseSortField("rules")
	require.Error(t, err)
}
