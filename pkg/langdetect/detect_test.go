package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/asmlex/pkg/langdetect"
)

const gasSample = `	.text
	.globl	main
main:
	movl	$0, %eax
	ret
`

const nasmSample = `section .text
global _start
_start:
    mov eax, 1
    int 0x80
`

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{name: "empty content", path: "x.s", content: "", expected: langdetect.LangText},
		{name: "binary content", path: "x.o", content: "\x7fELF\x00\x00\x01", expected: langdetect.LangBinary},
		{name: "unix assembly by extension", path: "crt0.s", content: gasSample, expected: langdetect.LangAssembly},
		{name: "asm extension", path: "boot.asm", content: nasmSample, expected: langdetect.LangAssembly},
		{name: "nasm without a path", content: nasmSample, expected: langdetect.LangAssembly},
		{name: "gas without a path", content: gasSample, expected: langdetect.LangAssembly},
		{name: "shebang wins", path: "run", content: "#!/bin/sh\necho hi\n", expected: "bash"},
		{name: "python by extension", path: "tool.py", content: "print('x')\n", expected: "python"},
		{name: "c code is not assembly", content: "int main(void) {\n  return 0;\n}\n", expected: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.Detect(testCase.path, []byte(testCase.content))
			if testCase.expected == "" {
				assert.NotEqual(t, langdetect.LangAssembly, got)
				return
			}
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestIsAssembly(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsAssembly("start.S", []byte(gasSample)))
	assert.True(t, langdetect.IsAssembly("", []byte(nasmSample)))
	assert.False(t, langdetect.IsAssembly("README", []byte("just some prose about nothing\n")))
	assert.False(t, langdetect.IsAssembly("", nil))
}
