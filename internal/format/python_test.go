package format

import (
	"testing"

	"github.com/hcristescu/nub/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPythonNameAndExtensions(t *testing.T) {
	s := NewPythonStrategy()
	assert.Equal(t, "python", s.Name())
	assert.Equal(t, []string{".py", ".pyw"}, s.Extensions())
	assert.False(t, s.Detect("import os"))
}

func TestPythonParseEmptyContent(t *testing.T) {
	s := NewPythonStrategy()
	root := s.Parse("   \n")
	assert.Empty(t, root.Children)
}

func TestPythonParseCollapsesImportsIntoSummary(t *testing.T) {
	s := NewPythonStrategy()
	root := s.Parse("import os\nimport sys\nfrom collections import OrderedDict\n\ndef main():\n    pass\n")

	require.NotEmpty(t, root.Children)
	summary := root.Children[0]
	assert.Equal(t, "import_summary", summary.Type)
	assert.Contains(t, summary.Content, "3 imports")
}

func TestPythonParseClassWithMethods(t *testing.T) {
	s := NewPythonStrategy()
	src := "class Greeter:\n    def hello(self):\n        return 'hi'\n"
	root := s.Parse(src)

	require.NotEmpty(t, root.Children)
	class := root.Children[0]
	assert.Equal(t, "class", class.Type)
	assert.Equal(t, "Greeter", class.Name)
	require.Len(t, class.Children, 1)
	assert.Equal(t, "method", class.Children[0].Type)
	assert.Equal(t, "hello", class.Children[0].Name)
}

func TestPythonParseTopLevelFunction(t *testing.T) {
	s := NewPythonStrategy()
	root := s.Parse("def add(a, b):\n    return a + b\n")

	require.Len(t, root.Children, 1)
	fn := root.Children[0]
	assert.Equal(t, "function", fn.Type)
	assert.Equal(t, "add", fn.Name)
	assert.Contains(t, fn.Content, "def add")
}

func TestPythonParseUppercaseConstant(t *testing.T) {
	s := NewPythonStrategy()
	root := s.Parse("MAX_RETRIES = 3\n")

	require.Len(t, root.Children, 1)
	assert.Equal(t, "constant", root.Children[0].Type)
	assert.Equal(t, "MAX_RETRIES", root.Children[0].Name)
}

func TestPythonParseLowercaseAssignIsIgnored(t *testing.T) {
	s := NewPythonStrategy()
	root := s.Parse("x = 3\n")
	assert.Empty(t, root.Children)
}

func TestPythonRankScores(t *testing.T) {
	s := NewPythonStrategy()
	assert.Equal(t, 0.9, s.Rank(&dom.Node{Type: "class"}))
	assert.Equal(t, 0.8, s.Rank(&dom.Node{Type: "function"}))
	assert.Equal(t, 0.7, s.Rank(&dom.Node{Type: "method"}))
	assert.Equal(t, 0.6, s.Rank(&dom.Node{Type: "constant"}))
	assert.Equal(t, 0.4, s.Rank(&dom.Node{Type: "import_summary"}))
	assert.Equal(t, 0.3, s.Rank(&dom.Node{Type: "text"}))
}

func TestPythonRenderFunctionFallsBackToName(t *testing.T) {
	s := NewPythonStrategy()
	n := &dom.Node{Type: "function", Name: "compute_all_the_things", Content: "def compute_all_the_things(a, b, c, d):\n    pass"}
	out, ok := s.Render(n, 15)
	require.True(t, ok)
	assert.LessOrEqual(t, len([]rune(out)), 15)
}

func TestPythonRenderFoldsWhenTooSmall(t *testing.T) {
	s := NewPythonStrategy()
	n := &dom.Node{Type: "function", Name: "f", Content: "def f():\n    pass"}
	_, ok := s.Render(n, 0)
	assert.False(t, ok)
}

func TestPythonRenderFullContentFits(t *testing.T) {
	s := NewPythonStrategy()
	n := &dom.Node{Type: "constant", Name: "X", Content: "X = 1"}
	out, ok := s.Render(n, 100)
	require.True(t, ok)
	assert.Equal(t, "X = 1", out)
}
