package domain

import "strings"

// DefaultSkip lists substrings of module names that are never invoked.
// Some of these have import-time side effects, others have semantics the
// generator deliberately does not support.
var DefaultSkip = []string{
	"idlelib", "curses", "antigravity", "pip", "prompt_toolkit", "IPython",
	".popen_", "django.", ".test.", "execnet.script", "lib2to3.pgen2.conv",
	"tests.", "Cython.", "~", "-", "._", "libcst.codemod.", "modernize",
	"flask.", "sphinx.", "pyasn1", "dbm.ndbm", "doctest",
}

// Denylist is a read-only set of substrings that exclude a module name.
type Denylist struct {
	entries []string
}

// NewDenylist returns DefaultSkip extended with extra. Blank entries are
// dropped since an empty substring would match every name.
func NewDenylist(extra ...string) Denylist {
	entries := make([]string, 0, len(DefaultSkip)+len(extra))
	entries = append(entries, DefaultSkip...)

	for _, entry := range extra {
		if entry == "" {
			continue
		}

		entries = append(entries, entry)
	}

	return Denylist{entries: entries}
}

// Match returns the first entry contained in name.
func (d Denylist) Match(name string) (string, bool) {
	for _, entry := range d.entries {
		if strings.Contains(name, entry) {
			return entry, true
		}
	}

	return "", false
}

// Entries returns a copy of the denylist.
func (d Denylist) Entries() []string {
	return append([]string(nil), d.entries...)
}
