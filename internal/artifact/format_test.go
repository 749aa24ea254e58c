package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"lefthook_1.7.14_Windows_x86_64.gz", Gz},
		{"just-1.31.0-aarch64-apple-darwin.tar.gz", TarGz},
		{"sentry-cli-linux-i686-2.32.1.tgz", TarGz},
		{"tool.zip", Zip},
		{"tool.tar", Tar},
		{"tool", FormatNone},
		{"tool.exe", FormatNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromFilename(tt.name))
		})
	}
}

func TestSplitFilenameAndExtensions_LeftInverse(t *testing.T) {
	tests := []struct {
		base string
		exts []string
	}{
		{"tool-1.0.0-linux", []string{"tar", "gz"}},
		{"tool-1.0.0-linux", []string{"zip"}},
		{"tool-1.0.0-linux", []string{"tgz"}},
		{"tool-1.0.0-linux", nil},
	}
	for _, tt := range tests {
		joined := tt.base
		for _, e := range tt.exts {
			joined += "." + e
		}
		gotBase, gotExts := SplitFilenameAndExtensions(joined)
		assert.Equal(t, tt.base, gotBase)
		if len(tt.exts) == 0 {
			assert.Empty(t, gotExts)
		} else {
			assert.Equal(t, tt.exts, gotExts)
		}
	}
}

func TestFormatFromExtensions_DependsOnlyOnTrailing(t *testing.T) {
	// A differing prefix must not change the resulting format.
	assert.Equal(t, TarGz, FormatFromFilename("a.tar.gz"))
	assert.Equal(t, TarGz, FormatFromFilename("some-other-name-entirely.tar.gz"))
}
