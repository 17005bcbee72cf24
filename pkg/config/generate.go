package config

import (
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/chipbuild/chipbuild/pkg/errors"
)

const generatedHeader = `# chipbuild configuration
#
# Values are commented out and show the defaults. Uncomment to override.
# Config is read from $XDG_CONFIG_HOME/chipbuild/chipbuild.toml, then from
# chipbuild.toml at the checkout root. CHIPBUILD_ environment variables
# override both.

`

// GenerateConfigContent renders the default configuration as TOML with every
// value commented out, ready to write to a config file and edit.
func GenerateConfigContent() (string, error) {
	data, err := toml.Marshal(Default())
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to render default configuration")
	}
	return generatedHeader + commentOutConfigValues(string(data)), nil
}

// commentOutConfigValues takes the TOML content and comments out all
// non-comment, non-blank lines that contain configuration values
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
