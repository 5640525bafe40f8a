package spa

import (
	"io/fs"
	"net/url"
	"strings"
)

// Resolver maps request targets to files under a static root.
type Resolver struct {
	fsys  fs.FS
	index string
}

func NewResolver(fsys fs.FS, index string) *Resolver {
	return &Resolver{fsys: fsys, index: index}
}

// Resolve returns the root-relative file to serve for target: the named
// file when it is a regular file, the entry document otherwise.
func (r *Resolver) Resolve(target string) string {
	rel, _ := r.Lookup(target)
	return rel
}

// Lookup is Resolve that also reports whether target named a file. Missing
// files, directories and malformed targets all fall back alike.
func (r *Resolver) Lookup(target string) (string, bool) {
	name, ok := candidate(target)
	if !ok {
		return r.index, false
	}
	if name == "" {
		name = r.index
	}

	info, err := fs.Stat(r.fsys, name)
	if err != nil || !info.Mode().IsRegular() {
		return r.index, false
	}
	return name, true
}

// candidate turns a request target into a slash-separated path relative
// to the root. Query and fragment are dropped and escapes are decoded.
// The path is checked as sent: a trailing slash, empty segments and dot
// segments make it invalid rather than being rewritten.
func candidate(target string) (string, bool) {
	target, _, _ = strings.Cut(target, "#")

	u, err := url.ParseRequestURI(target)
	if err != nil {
		u, err = url.Parse(target)
		if err != nil {
			return "", false
		}
	}

	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "", true
	}
	if name == "." || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
