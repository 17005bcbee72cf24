package shell_test

import (
	"testing"

	"github.com/chipbuild/chipbuild/pkg/shell"
	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain_path_unquoted",
			input:    "/tmp/out/telink-light",
			expected: "/tmp/out/telink-light",
		},
		{
			name:     "empty_string",
			input:    "",
			expected: "''",
		},
		{
			name:     "space_requires_quoting",
			input:    "/tmp/out dir",
			expected: "'/tmp/out dir'",
		},
		{
			name:     "dollar_requires_quoting",
			input:    "$ZEPHYR_BASE",
			expected: "'$ZEPHYR_BASE'",
		},
		{
			name:     "embedded_single_quote",
			input:    "it's",
			expected: `'it'"'"'s'`,
		},
		{
			name:     "glob_requires_quoting",
			input:    "out/*",
			expected: "'out/*'",
		},
		{
			name:     "safe_punctuation_unquoted",
			input:    "a@b%c+d=e:f,g./h_i-j",
			expected: "a@b%c+d=e:f,g./h_i-j",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shell.Quote(tt.input))
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		expected string
	}{
		{
			name:     "ninja_invocation",
			argv:     []string{"ninja", "-C", "/tmp/out/telink-light"},
			expected: "ninja -C /tmp/out/telink-light",
		},
		{
			name:     "argument_with_space",
			argv:     []string{"west", "build", "-d", "/tmp/out dir"},
			expected: "west build -d '/tmp/out dir'",
		},
		{
			name:     "empty_argv",
			argv:     nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shell.Join(tt.argv))
		})
	}
}
