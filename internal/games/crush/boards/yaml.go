package boards

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLBoard represents the YAML structure for a board file.
type YAMLBoard struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses and validates a YAML board file.
func ParseYAML(data []byte) (Board, error) {
	var yb YAMLBoard
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return Board{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	rows := make([]string, len(yb.Rows))
	for i, row := range yb.Rows {
		rows[i] = strings.ToLower(strings.TrimSpace(row))
	}

	b := Board{
		ID:       yb.ID,
		Name:     yb.Name,
		Size:     len(rows),
		Rows:     rows,
		Metadata: yb.Metadata,
	}
	if b.Name == "" {
		b.Name = b.ID
	}

	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
