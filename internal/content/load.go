package content

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load reads a TOML content file and overlays every non-empty section on top
// of the built-in portfolio. An empty path returns the defaults.
func Load(path string) (*Portfolio, error) {
	base := Default()
	if strings.TrimSpace(path) == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	var override Portfolio
	if err := toml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse content file %s: %w", path, err)
	}
	base.Merge(&override)
	return base, nil
}

// Merge replaces sections of p with the non-empty sections of other.
func (p *Portfolio) Merge(other *Portfolio) {
	if p == nil || other == nil {
		return
	}
	if len(other.About) > 0 {
		p.About = other.About
	}
	if len(other.Contact) > 0 {
		p.Contact = other.Contact
	}
	if len(other.Certifications) > 0 {
		p.Certifications = other.Certifications
	}
	if len(other.Projects) > 0 {
		p.Projects = other.Projects
	}
	if len(other.Skills) > 0 {
		p.Skills = other.Skills
	}
	mergeString(&p.Badge.Name, other.Badge.Name)
	mergeString(&p.Badge.Role, other.Badge.Role)
	mergeString(&p.Badge.Handle, other.Badge.Handle)
	mergeString(&p.Badge.Organization, other.Badge.Organization)
}

func mergeString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
