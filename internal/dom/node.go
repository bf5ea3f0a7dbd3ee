// Package dom implements the unified document object model that every input
// format parses into. A Node is a hierarchical container: its own content (if
// any) is emitted before its children, children order is the traversal and
// output order, and only named nodes may anchor a Link.
package dom

// Node is a node in the content tree produced by a format strategy's Parse.
//
// Content may be empty for pure containers (e.g. a directory header whose
// real content lives entirely in its children). Type is a tag drawn from a
// closed per-format enumeration, plus the universal tags Document, Section,
// Line, and Chunk. Atomic marks content that is pre-optimized and must only
// be tail-truncated, never middle-dropped (a file preview, a fenced code
// block). SourceLine is 1-based and only meaningful for formats that map
// back onto an original file.
type Node struct {
	Content    string
	Type       string
	Name       string // empty means anonymous
	Children   []*Node
	Atomic     bool
	SourceLine int // 0 means "no source line"
}

// Universal node type tags shared by every format.
const (
	TypeDocument = "document"
	TypeSection  = "section"
	TypeLine     = "line"
	TypeChunk    = "chunk"
)

// IsNamed reports whether n can anchor a Link.
func (n *Node) IsNamed() bool {
	return n.Name != ""
}

// AddChild appends child to n's children and returns it, enabling chained
// construction: parent.AddChild(&Node{...}).AddChild(&Node{...}).
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// DepthFirst calls visit for n and then recursively for every descendant, in
// document order. Traversal stops early if visit returns false.
func (n *Node) DepthFirst(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.DepthFirst(visit) {
			return false
		}
	}
	return true
}

// BreadthFirst calls visit for n and then every descendant in breadth-first
// order. Traversal stops early if visit returns false.
func (n *Node) BreadthFirst(visit func(*Node) bool) {
	queue := []*Node{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if !visit(node) {
			return
		}
		queue = append(queue, node.Children...)
	}
}

// FindNamed returns the first node named name found by depth-first search
// under root, or nil if none matches.
func FindNamed(root *Node, name string) *Node {
	var found *Node
	root.DepthFirst(func(n *Node) bool {
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// CollectNamed returns every named node under root, keyed by name. If two
// nodes share a name, the one found last in depth-first order wins.
func CollectNamed(root *Node) map[string]*Node {
	out := make(map[string]*Node)
	root.DepthFirst(func(n *Node) bool {
		if n.Name != "" {
			out[n.Name] = n
		}
		return true
	})
	return out
}
