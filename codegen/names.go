package codegen

import (
	"strconv"
	"strings"
)

// NameDB maps author names to unique, valid identifiers.
type NameDB struct {
	reserved map[string]bool
	used     map[string]bool
	names    map[string]string
}

func NewNameDB(reserved ...string) *NameDB {
	n := &NameDB{
		reserved: make(map[string]bool),
		used:     make(map[string]bool),
		names:    make(map[string]string),
	}
	for _, word := range reserved {
		n.reserved[word] = true
	}
	return n
}

// Name returns the identifier for name in kind, allocating it on first use.
func (n *NameDB) Name(name, kind string) string {
	key := kind + "\x00" + name
	if ident, ok := n.names[key]; ok {
		return ident
	}
	ident := n.Distinct(name, kind)
	n.names[key] = ident
	return ident
}

// Distinct returns a fresh identifier based on name.
func (n *NameDB) Distinct(name, kind string) string {
	base := safeName(name)
	ident := base
	for i := 2; n.used[ident] || n.reserved[ident]; i++ {
		ident = base + strconv.Itoa(i)
	}
	n.used[ident] = true
	return ident
}

func safeName(name string) string {
	if name == "" {
		return "unnamed"
	}
	name = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' ||
			r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' ||
			r == '_' {
			return r
		}
		return '_'
	}, name)
	if name[0] >= '0' && name[0] <= '9' {
		name = "my_" + name
	}
	return name
}

// Reserved lists identifiers generated code must not bind.
var Reserved = []string{
	// keywords
	"and", "break", "continue", "def", "elif", "else", "for", "if", "in",
	"lambda", "load", "not", "or", "pass", "return", "while",
	// reserved for future use
	"as", "assert", "async", "await", "class", "del", "except", "finally",
	"from", "global", "import", "is", "nonlocal", "raise", "try", "with", "yield",
	// universe
	"None", "True", "False", "abs", "any", "all", "bool", "bytes", "dict", "dir",
	"enumerate", "fail", "float", "getattr", "hasattr", "hash", "int", "len",
	"list", "max", "min", "print", "range", "repr", "reversed", "set", "sorted",
	"str", "tuple", "type", "zip",
}
