package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/source"
)

func TestCatalog_IsDenseAndOrdered(t *testing.T) {
	t.Parallel()

	infos := diag.Catalog()
	require.Len(t, infos, int(diag.NumberConstantIsTooLarge))

	seen := make(map[string]bool)
	for i, info := range infos {
		assert.Equal(t, diag.ID(i+1), info.ID)
		assert.Equal(t, diag.DomainASM, info.Domain)
		assert.NotEmpty(t, info.Message)
		assert.False(t, seen[info.Name], "duplicate name %s", info.Name)
		seen[info.Name] = true
	}
}

func TestCatalog_Severities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   diag.ID
		want diag.Severity
	}{
		{diag.InvalidEncoding, diag.SeverityError},
		{diag.UnrecognizedToken, diag.SeverityError},
		{diag.UnterminatedStringLiteral, diag.SeverityWarning},
		{diag.UnknownEscapeSequence, diag.SeverityWarning},
		{diag.NumberConstantIsTooLarge, diag.SeverityError},
	}

	for _, testCase := range tests {
		t.Run(testCase.id.String(), func(t *testing.T) {
			t.Parallel()

			info, ok := diag.Lookup(testCase.id)
			require.True(t, ok)
			assert.Equal(t, testCase.want, info.MinSeverity)
		})
	}
}

func TestLookupAndFind(t *testing.T) {
	t.Parallel()

	_, ok := diag.Lookup(0)
	assert.False(t, ok)
	_, ok = diag.Lookup(99)
	assert.False(t, ok)

	info, ok := diag.Find("asm003")
	require.True(t, ok)
	assert.Equal(t, diag.LeadingZerosAreNotPermitted, info.ID)
	assert.Equal(t, "ASM003/leading-zeros", info.Combined())

	info, ok = diag.Find("unknown-escape")
	require.True(t, ok)
	assert.Equal(t, diag.UnknownEscapeSequence, info.ID)

	_, ok = diag.Find("nope")
	assert.False(t, ok)

	assert.Panics(t, func() { diag.MustLookup(0) })
	assert.Equal(t, "ID(77)", diag.ID(77).String())
}

func TestList_Counters(t *testing.T) {
	t.Parallel()

	var list diag.List
	pos := source.At(0, 0, 0)

	list.Push(diag.New(diag.UnterminatedStringLiteral, pos, pos))
	list.Push(diag.New(diag.InvalidEncoding, pos, pos))
	list.Push(diag.Diagnostic{Info: diag.MustLookup(diag.UnrecognizedToken), Severity: diag.SeverityFatal})
	list.Push(diag.Diagnostic{Info: diag.MustLookup(diag.UnrecognizedToken), Severity: diag.SeverityNote})

	assert.Equal(t, 4, list.Len())
	assert.Equal(t, 1, list.Warnings())
	assert.Equal(t, 2, list.Errors())
	assert.Equal(t, 2, list.Count(diag.UnrecognizedToken))
	assert.True(t, list.Has(diag.InvalidEncoding))
	assert.False(t, list.Has(diag.InvalidBasePrefix))
}

func TestList_SetEnd(t *testing.T) {
	t.Parallel()

	var list diag.List
	idx := list.Push(diag.New(diag.UnrecognizedToken, source.At(1, 0, 10), source.At(1, 0, 10)))
	list.SetEnd(idx, source.At(1, 4, 14))
	list.SetEnd(5, source.At(9, 9, 9))

	assert.Equal(t, source.At(1, 4, 14), list.At(idx).End)
	assert.Equal(t, "2:1: error: unrecognized token [unrecognized-token]", list.At(idx).String())
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    diag.Severity
		wantErr bool
	}{
		{input: "note", want: diag.SeverityNote},
		{input: "Warning", want: diag.SeverityWarning},
		{input: "error", want: diag.SeverityError},
		{input: "fatal", want: diag.SeverityFatal},
		{input: "bogus", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := diag.ParseSeverity(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.Equal(t, testCase.want.String(), got.String())
		})
	}
}
