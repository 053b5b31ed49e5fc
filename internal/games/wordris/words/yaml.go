package words

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/wordris/internal/core"
)

// yamlPack is the on-disk layout of a pack file.
type yamlPack struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Words    []string          `yaml:"words"`
	Palette  []string          `yaml:"palette,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses and normalizes a pack file.
func ParseYAML(data []byte) (Pack, error) {
	var yp yamlPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	palette, bad, ok := core.ParseColors(yp.Palette)
	if !ok {
		return Pack{}, fmt.Errorf("pack %s: unknown color %q", yp.ID, bad)
	}

	p := Pack{
		ID:       yp.ID,
		Name:     yp.Name,
		Words:    yp.Words,
		Palette:  palette,
		Metadata: yp.Metadata,
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return Pack{}, err
	}
	return p, nil
}
