package quadtree

import "maze3d/internal/geom"

// Intersecting returns every element whose box intersects box.
func (t *Tree[T]) Intersecting(box geom.Box) []T {
	return t.AppendIntersecting(nil, box)
}

// AppendIntersecting appends to dst every element whose box intersects box.
func (t *Tree[T]) AppendIntersecting(dst []T, box geom.Box) []T {
	return t.appendMatching(dst, t.root, box.Intersects)
}

// IntersectingFrustum returns every element at least partially inside f.
func (t *Tree[T]) IntersectingFrustum(f geom.Frustum) []T {
	return t.AppendIntersectingFrustum(nil, f)
}

// AppendIntersectingFrustum appends to dst every element at least partially inside f.
func (t *Tree[T]) AppendIntersectingFrustum(dst []T, f geom.Frustum) []T {
	return t.appendMatching(dst, t.root, f.IntersectsBox)
}

func (t *Tree[T]) appendMatching(dst []T, idx int, match func(geom.Box) bool) []T {
	n := &t.nodes[idx]
	if !match(n.box) {
		return dst
	}
	for _, e := range n.elems {
		if match(e.Bounds()) {
			dst = append(dst, e)
		}
	}
	if n.kind == branchKind {
		for _, c := range n.children {
			dst = t.appendMatching(dst, c, match)
		}
	}
	return dst
}

// Walk calls fn for every element until fn returns false.
func (t *Tree[T]) Walk(fn func(T) bool) {
	t.walk(t.root, fn)
}

func (t *Tree[T]) walk(idx int, fn func(T) bool) bool {
	n := &t.nodes[idx]
	for _, e := range n.elems {
		if !fn(e) {
			return false
		}
	}
	if n.kind == branchKind {
		for _, c := range n.children {
			if !t.walk(c, fn) {
				return false
			}
		}
	}
	return true
}

// Stats describes the current shape of a tree.
type Stats struct {
	Elements int
	Leaves   int
	Branches int
	Spilled  int // elements held by branches
	Depth    int
}

func (t *Tree[T]) Stats() Stats {
	s := Stats{Elements: t.count}
	t.stats(t.root, &s)
	return s
}

func (t *Tree[T]) stats(idx int, s *Stats) {
	n := &t.nodes[idx]
	s.Depth = max(s.Depth, n.depth)
	if n.kind != branchKind {
		s.Leaves++
		return
	}
	s.Branches++
	s.Spilled += len(n.elems)
	for _, c := range n.children {
		t.stats(c, s)
	}
}
