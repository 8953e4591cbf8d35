package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

// WriteUsage lists commands sorted by name; aliases are listed with their command.
func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	seen := make(map[*Command]bool)
	var names []string
	for name, cmd := range commands {
		if cmd == nil || slices.Contains(cmd.Aliases, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		cmd := commands[name]
		if seen[cmd] {
			continue
		}
		seen[cmd] = true
		line := indent + name
		if len(cmd.Aliases) > 0 {
			line += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		if cmd.Description != "" {
			line += "\t" + cmd.Description
		}
		fmt.Fprintln(w, line)
		if len(cmd.Subs) > 0 {
			writeCommands(w, cmd.Subs, depth+1)
		}
	}
}
