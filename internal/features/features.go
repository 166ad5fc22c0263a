package features

import "strings"

// Stage describes how settled a feature flag is.
type Stage string

const (
	StageStable       Stage = "stable"
	StageBeta         Stage = "beta"
	StageExperimental Stage = "experimental"
)

// Feature keys understood by the terminal.
const (
	Card        = "card"
	Clock       = "clock"
	Suggestions = "suggestions"
	History     = "history"
	Hyperlinks  = "hyperlinks"
)

// Spec describes a feature flag exposed by the CLI.
type Spec struct {
	Key            string
	Stage          Stage
	DefaultEnabled bool
	Description    string
}

// Specs lists every toggleable part of the terminal.
var Specs = []Spec{
	{Key: Card, Stage: StageStable, DefaultEnabled: true, Description: "draggable ID card on a lanyard"},
	{Key: Clock, Stage: StageStable, DefaultEnabled: true, Description: "header clock"},
	{Key: Suggestions, Stage: StageBeta, DefaultEnabled: true, Description: "command completion popup"},
	{Key: History, Stage: StageStable, DefaultEnabled: true, Description: "persisted prompt history"},
	{Key: Hyperlinks, Stage: StageExperimental, DefaultEnabled: false, Description: "OSC 8 links in output"},
}

var known = func() map[string]Spec {
	m := make(map[string]Spec, len(Specs))
	for _, spec := range Specs {
		m[spec.Key] = spec
	}
	return m
}()

// IsKnown reports whether the feature key is recognized.
func IsKnown(key string) bool {
	_, ok := known[key]
	return ok
}

// StageFor returns the lifecycle stage for a feature, defaulting to experimental.
func StageFor(key string) Stage {
	if spec, ok := known[key]; ok {
		return spec.Stage
	}
	return StageExperimental
}

// DefaultEnabled reports the default value for the given feature key.
func DefaultEnabled(key string) bool {
	if spec, ok := known[key]; ok {
		return spec.DefaultEnabled
	}
	return false
}

// Set resolves feature values against their defaults.
type Set map[string]bool

// Enabled reports whether key is on, falling back to the registry default.
func (s Set) Enabled(key string) bool {
	if v, ok := s[key]; ok {
		return v
	}
	return DefaultEnabled(key)
}

// ParseBool accepts the spellings used by -c overrides and --enable/--disable.
func ParseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "t", "yes", "y", "on":
		return true, true
	case "false", "0", "f", "no", "n", "off":
		return false, true
	}
	return false, false
}
