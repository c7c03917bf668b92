package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/source"
	"github.com/yaklabco/asmlex/pkg/strpool"
	"github.com/yaklabco/asmlex/pkg/token"
)

func TestKind_String(t *testing.T) {
	t.Parallel()

	kinds := token.Kinds()
	require.Len(t, kinds, 31)
	assert.Equal(t, token.Unrecognized, kinds[0])
	assert.Equal(t, token.EOL, kinds[len(kinds)-1])

	for _, kind := range kinds {
		name := kind.String()
		assert.NotEmpty(t, name)

		parsed, ok := token.ParseKind(name)
		require.True(t, ok, name)
		assert.Equal(t, kind, parsed)
	}

	assert.Equal(t, "Kind(200)", token.Kind(200).String())
	_, ok := token.ParseKind("BOGUS")
	assert.False(t, ok)
}

func TestToken_Lexemes(t *testing.T) {
	t.Parallel()

	pool := strpool.New(nil)
	handle, err := pool.InternString("a\"b")
	require.NoError(t, err)

	tests := []struct {
		name       string
		tok        token.Token
		wantNumber bool
		wantHandle bool
		wantText   string
	}{
		{
			name:       "number",
			tok:        token.Token{Kind: token.Number, Lexeme: token.Int(-7)},
			wantNumber: true,
			wantText:   "-7",
		},
		{
			name:       "string",
			tok:        token.Token{Kind: token.String, Lexeme: token.StringRef(handle)},
			wantHandle: true,
			wantText:   `"a\"b"`,
		},
		{
			name:       "symbol",
			tok:        token.Token{Kind: token.Symbol, Lexeme: token.StringRef(handle)},
			wantHandle: true,
			wantText:   `a"b`,
		},
		{
			name: "no lexeme",
			tok:  token.Token{Kind: token.Comma},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, isNumber := testCase.tok.Number()
			_, isHandle := testCase.tok.StringHandle()
			assert.Equal(t, testCase.wantNumber, isNumber)
			assert.Equal(t, testCase.wantHandle, isHandle)
			assert.Equal(t, testCase.wantText, testCase.tok.Text(pool))
		})
	}
}

func TestToken_Len(t *testing.T) {
	t.Parallel()

	tok := token.Token{Start: source.At(0, 2, 2), End: source.At(0, 5, 7)}
	assert.Equal(t, 5, tok.Len())
}
