// Package command maps typed tokens to the fixed set of portfolio commands
// and produces their output markup.
package command

import "strings"

// Kind identifies a command.
type Kind int

const (
	KindUnknown Kind = iota
	KindHelp
	KindAbout
	KindProjects
	KindSkills
	KindContact
	KindCertifications
	KindClear
	// KindWelcome seeds the transcript. Parse never returns it.
	KindWelcome
)

var names = map[Kind]string{
	KindHelp:           "help",
	KindAbout:          "about",
	KindProjects:       "projects",
	KindSkills:         "skills",
	KindContact:        "contact",
	KindCertifications: "certifications",
	KindClear:          "clear",
	KindWelcome:        "welcome",
}

var descriptions = map[Kind]string{
	KindHelp:           "Shows this help message.",
	KindAbout:          "Learn about me.",
	KindProjects:       "View my projects.",
	KindSkills:         "See my technical skills.",
	KindContact:        "How to reach me.",
	KindCertifications: "View my certifications.",
	KindClear:          "Clear the terminal.",
}

// HeaderKinds is the order commands appear in the header bar and in help.
var HeaderKinds = []Kind{
	KindHelp,
	KindAbout,
	KindProjects,
	KindSkills,
	KindContact,
	KindCertifications,
	KindClear,
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(HeaderKinds))
	for _, k := range HeaderKinds {
		m[names[k]] = k
	}
	return m
}()

// String returns the command name, or "unknown".
func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return "unknown"
}

// Description is the one-line help text for k.
func (k Kind) Description() string {
	if d, ok := descriptions[k]; ok {
		return d
	}
	return "No description available."
}

// Command is a parsed submission: its kind and the normalized token.
type Command struct {
	Kind  Kind
	Token string
}

// Normalize trims surrounding whitespace and lowercases.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// Parse resolves free text against the command table.
func Parse(input string) Command {
	token := Normalize(input)
	if k, ok := byName[token]; ok {
		return Command{Kind: k, Token: token}
	}
	return Command{Kind: KindUnknown, Token: token}
}

// Welcome is the internal command used to seed the transcript.
func Welcome() Command {
	return Command{Kind: KindWelcome, Token: names[KindWelcome]}
}

// Recognized reports whether the command maps to a producer.
func (c Command) Recognized() bool {
	return c.Kind != KindUnknown
}

// Name is the canonical command name, or the raw token for unknown commands.
func (c Command) Name() string {
	if c.Kind == KindUnknown {
		return c.Token
	}
	return c.Kind.String()
}

// Entry describes one row of the command catalog.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog lists the user-facing commands in header order.
func Catalog() []Entry {
	out := make([]Entry, 0, len(HeaderKinds))
	for _, k := range HeaderKinds {
		out = append(out, Entry{Name: k.String(), Description: k.Description()})
	}
	return out
}
