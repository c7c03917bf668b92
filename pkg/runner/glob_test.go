package runner

import "testing"

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"boot.asm", "*.asm", true},
		{"lib/boot.asm", "*.asm", true},
		{"lib/boot.s", "*.asm", false},
		{"vendor/x/y.asm", "vendor", true},
		{"vendor", "vendor/**", true},
		{"vendor/x/y.asm", "vendor/**", true},
		{"src/vendor/y.asm", "vendor/**", false},
		{"src/vendor/y.asm", "**/vendor/**", true},
		{"a/b/c/d.inc", "a/**/d.inc", true},
		{"a/d.inc", "a/**/d.inc", true},
		{"a/d.inc", "./a/*.inc", true},
		{"a/b/d.inc", "a/*.inc", false},
		{"anything/at/all", "**", true},
		{"x.asm", "[", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.pattern+"~"+testCase.path, func(t *testing.T) {
			t.Parallel()

			if got := matchGlob(testCase.path, testCase.pattern); got != testCase.want {
				t.Errorf("matchGlob(%q, %q) = %v, want %v", testCase.path, testCase.pattern, got, testCase.want)
			}
		})
	}
}
