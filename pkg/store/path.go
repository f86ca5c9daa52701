package store

import "strings"

// Path addresses a sub-state within the state tree, and equivalently the
// domain module that owns it. The empty Path is the root.
type Path []string

// ParsePath parses a slash-separated path such as "user/session".
func ParsePath(s string) Path {
	s = strings.Trim(s, "/")
	if s == "" {
		return Path{}
	}
	return Path(strings.Split(s, "/"))
}

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	return strings.Join(p, "/")
}

// Child extends the path by one segment.
func (p Path) Child(name string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, name)
}

// IsRoot reports whether the path addresses the state tree root.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Equal reports segment-wise equality.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether q is an ancestor of p (or equal to it).
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	for i := range q {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Related reports whether p and q lie on the same lineage: one is the other's
// ancestor, descendant, or the same node. Siblings and cousins are unrelated,
// which is what keeps a module's read scope bounded by the mirror.
func (p Path) Related(q Path) bool {
	return p.HasPrefix(q) || q.HasPrefix(p)
}
