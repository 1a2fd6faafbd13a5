package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CleanString(t *testing.T) {
	assert.Equal(t, "hello", CleanString("  hello\t\n"))
	assert.Equal(t, "hello", CleanString(" HeLLo ", true))
	assert.Equal(t, "", CleanString("   "))
}

func Test_FormatByteSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{2 << 20, "2 MB"},
		{5 << 20, "5 MB"},
		{3 << 30, "3 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatByteSize(tt.size))
	}
}
