package reporter_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/reporter"
)

func TestTokensReporter(t *testing.T) {
	t.Parallel()

	result, dir := lexFiles(t, map[string]string{"a.asm": "ld 0x10, \"a\\x41\" ; c\n09\n"})

	var buf bytes.Buffer
	opts := reporter.Options{Writer: &buf, WorkingDir: dir, Color: "never"}

	count, err := reporter.NewTokensReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 9)

	assert.Equal(t, "a.asm", lines[0])
	assert.Equal(t, `  1:1-1:3       SYMBOL         "ld"`, lines[1])
	assert.Equal(t, `  1:4-1:8       NUMBER         "0x10" = 16`, lines[2])
	assert.Equal(t, `  1:8-1:9       COMMA          ","`, lines[3])
	assert.Equal(t, `  1:10-1:17     STRING         "\"a\\x41\"" = "aA"`, lines[4])
	assert.Equal(t, `  1:18-1:21     COMMENT        "; c"`, lines[5])
	assert.Equal(t, `  1:21-2:1      EOL            "\n"`, lines[6])
	assert.Equal(t, `  2:1-2:3       UNRECOGNIZED   "09" = 0`, lines[7])
	assert.Contains(t, lines[9], "a.asm:2:1  error  leading zeros are not permitted")
}
