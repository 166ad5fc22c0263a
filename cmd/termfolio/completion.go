package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"termfolio/internal/command"
	"termfolio/internal/features"
)

// subcommand 描述一个子命令及其 flag，补全脚本由此生成。
type subcommand struct {
	name  string
	about string
	flags []string
	// words 是额外的位置参数候选
	words func() []string
}

var subcommands = []subcommand{
	{name: "serve", about: "run the HTTP API", flags: []string{"--addr", "--release", "--config", "-c"}},
	{name: "print", about: "render one command to stdout", flags: []string{"--width", "--config", "-c"}, words: commandNames},
	{name: "init-config", about: "write the default config file", flags: []string{"--config", "-c"}},
	{name: "features", about: "list feature flags", flags: []string{"--config", "-c"}},
	{name: "ping", about: "check a running server", flags: []string{"--url", "--timeout", "--config"}},
	{name: "completion", about: "print shell completions", words: func() []string { return []string{"bash", "zsh"} }},
}

var rootFlags = []string{"--config", "--no-alt-screen", "-c", "--enable", "--disable"}

func commandNames() []string {
	var names []string
	for _, e := range command.Catalog() {
		if e.Name != "clear" {
			names = append(names, e.Name)
		}
	}
	return names
}

func featureKeys() []string {
	keys := make([]string, 0, len(features.Specs))
	for _, s := range features.Specs {
		keys = append(keys, s.Key)
	}
	return keys
}

func completionMain(args []string) {
	if err := runCompletion(args, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

func runCompletion(args []string, out io.Writer) error {
	shell := "bash"
	if len(args) > 0 && args[0] != "" {
		shell = args[0]
	}
	switch shell {
	case "bash":
		_, err := io.WriteString(out, bashScript())
		return err
	case "zsh":
		_, err := io.WriteString(out, zshScript())
		return err
	}
	return fmt.Errorf("unsupported shell: %s (use bash or zsh)", shell)
}

func (s subcommand) candidates() []string {
	var out []string
	if s.words != nil {
		out = append(out, s.words()...)
	}
	return append(out, s.flags...)
}

func bashScript() string {
	var b strings.Builder
	b.WriteString("_termfolio_completions()\n{\n")
	b.WriteString("    local cur prev\n    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	fmt.Fprintf(&b, "    if [[ \"$prev\" == --enable || \"$prev\" == --disable ]]; then\n        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n        return 0\n    fi\n",
		strings.Join(featureKeys(), " "))

	top := make([]string, 0, len(subcommands)+len(rootFlags))
	for _, s := range subcommands {
		top = append(top, s.name)
	}
	top = append(top, rootFlags...)
	fmt.Fprintf(&b, "    if [[ ${COMP_CWORD} -eq 1 ]]; then\n        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n        return 0\n    fi\n\n",
		strings.Join(top, " "))

	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")
	for _, s := range subcommands {
		fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n            ;;\n",
			s.name, strings.Join(s.candidates(), " "))
	}
	b.WriteString("    esac\n}\ncomplete -F _termfolio_completions termfolio\n")
	return b.String()
}

func zshScript() string {
	var b strings.Builder
	b.WriteString("#compdef termfolio\n_termfolio() {\n    local -a subcmds\n    subcmds=(\n")
	for _, s := range subcommands {
		fmt.Fprintf(&b, "        '%s:%s'\n", s.name, s.about)
	}
	b.WriteString("    )\n    if (( CURRENT == 2 )); then\n        _describe 'command' subcmds\n        return\n    fi\n")
	b.WriteString("    case \"$words[2]\" in\n")
	for _, s := range subcommands {
		fmt.Fprintf(&b, "        %s)\n            compadd -- %s\n            ;;\n", s.name, strings.Join(s.candidates(), " "))
	}
	b.WriteString("    esac\n}\n_termfolio \"$@\"\n")
	return b.String()
}
