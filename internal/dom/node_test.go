package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChildChaining(t *testing.T) {
	root := &Node{Type: TypeDocument, Name: "root"}
	child := root.AddChild(&Node{Type: TypeSection, Name: "s1"})
	grandchild := child.AddChild(&Node{Type: TypeLine, Content: "hi"})

	require.Len(t, root.Children, 1)
	require.Len(t, child.Children, 1)
	assert.Equal(t, "hi", grandchild.Content)
}

func TestDepthFirstOrderAndEarlyStop(t *testing.T) {
	root := &Node{Name: "root"}
	a := root.AddChild(&Node{Name: "a"})
	a.AddChild(&Node{Name: "a1"})
	root.AddChild(&Node{Name: "b"})

	var visited []string
	root.DepthFirst(func(n *Node) bool {
		visited = append(visited, n.Name)
		return true
	})
	assert.Equal(t, []string{"root", "a", "a1", "b"}, visited)

	visited = nil
	root.DepthFirst(func(n *Node) bool {
		visited = append(visited, n.Name)
		return n.Name != "a"
	})
	assert.Equal(t, []string{"root", "a"}, visited)
}

func TestBreadthFirstOrder(t *testing.T) {
	root := &Node{Name: "root"}
	a := root.AddChild(&Node{Name: "a"})
	root.AddChild(&Node{Name: "b"})
	a.AddChild(&Node{Name: "a1"})

	var visited []string
	root.BreadthFirst(func(n *Node) bool {
		visited = append(visited, n.Name)
		return true
	})
	assert.Equal(t, []string{"root", "a", "b", "a1"}, visited)
}

func TestFindAndCollectNamed(t *testing.T) {
	root := &Node{Name: "root"}
	root.AddChild(&Node{Content: "anon"})
	named := root.AddChild(&Node{Name: "target"})

	assert.Same(t, named, FindNamed(root, "target"))
	assert.Nil(t, FindNamed(root, "missing"))

	all := CollectNamed(root)
	assert.Len(t, all, 2)
	assert.Same(t, named, all["target"])
}

func TestIsNamed(t *testing.T) {
	assert.True(t, (&Node{Name: "x"}).IsNamed())
	assert.False(t, (&Node{}).IsNamed())
}

func TestNewLinkRejectsAnonymousEndpoints(t *testing.T) {
	named := &Node{Name: "a"}
	anon := &Node{Content: "no name here"}

	_, err := NewLink(anon, named)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invariant-violation")

	_, err = NewLink(named, anon)
	require.Error(t, err)

	link, err := NewLink(named, named)
	require.NoError(t, err)
	assert.Same(t, named, link.Source)
}
