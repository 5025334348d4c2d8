package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{".", ""},
		{"./a/b.txt", "a/b.txt"},
		{"a\\b\\c.ts", "a/b/c.ts"},
		{"a//b/", "a/b"},
		{"components/ui", "components/ui"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth(""))
	assert.Equal(t, 0, Depth("."))
	assert.Equal(t, 1, Depth("a"))
	assert.Equal(t, 2, Depth("a/x.txt"))
	assert.Equal(t, 3, Depth("app/pets/page.tsx"))
}

func TestOrNoop(t *testing.T) {
	assert.IsType(t, NoopLogger{}, OrNoop(nil))
	var l Logger = NoopLogger{}
	assert.Equal(t, l, OrNoop(l))
}
