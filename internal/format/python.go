package format

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hcristescu/nub/internal/dom"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// PythonStrategy parses Python source via tree-sitter, chunking by module
// structure: imports (collapsed into a summary), classes (with methods as
// children), top-level functions, and module-level constants/annotations.
// This replaces the original implementation's use of Python's stdlib `ast`
// module, which has no Go equivalent.
type PythonStrategy struct{}

// NewPythonStrategy builds the Python format strategy.
func NewPythonStrategy() *PythonStrategy {
	return &PythonStrategy{}
}

func (s *PythonStrategy) Name() string         { return "python" }
func (s *PythonStrategy) Extensions() []string { return []string{".py", ".pyw"} }
func (s *PythonStrategy) Detect(string) bool   { return false }

func (s *PythonStrategy) Parse(content string) *dom.Node {
	root := &dom.Node{Content: "", Type: "module", Name: "module"}
	if strings.TrimSpace(content) == "" {
		return root
	}

	source := []byte(content)
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_python.Language())); err != nil {
		root.AddChild(&dom.Node{Content: content, Type: "text", Name: "unparseable"})
		return root
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		root.AddChild(&dom.Node{Content: content, Type: "text", Name: "unparseable"})
		return root
	}
	defer tree.Close()

	module := tree.RootNode()
	if module.HasError() {
		root.AddChild(&dom.Node{Content: content, Type: "text", Name: "unparseable"})
		return root
	}

	importCount := 0
	firstImportLine, lastImportLine := 0, 0

	for i := uint(0); i < module.ChildCount(); i++ {
		child := module.Child(i)
		if child == nil {
			continue
		}
		stmt := unwrapDecorated(child)

		switch stmt.Kind() {
		case "import_statement", "import_from_statement":
			importCount++
			line := int(child.StartPosition().Row) + 1
			endLine := int(child.EndPosition().Row) + 1
			if firstImportLine == 0 {
				firstImportLine = line
			}
			lastImportLine = endLine
		default:
			if converted := s.convertNode(child, source, false); converted != nil {
				root.AddChild(converted)
			}
		}
	}

	if importCount > 0 {
		var summary string
		if firstImportLine > 0 {
			summary = fmt.Sprintf("[%d imports, lines %d-%d]", importCount, firstImportLine, lastImportLine)
		} else {
			summary = fmt.Sprintf("[%d imports]", importCount)
		}
		importNode := &dom.Node{Content: summary, Type: "import_summary", Name: "imports"}
		root.Children = append([]*dom.Node{importNode}, root.Children...)
	}

	return root
}

// unwrapDecorated returns the definition wrapped by a decorated_definition
// node, or node itself if it isn't one.
func unwrapDecorated(node *tree_sitter.Node) *tree_sitter.Node {
	if node.Kind() == "decorated_definition" {
		if def := node.ChildByFieldName("definition"); def != nil {
			return def
		}
	}
	return node
}

func decoratorPrefixes(node *tree_sitter.Node, source []byte) []string {
	if node.Kind() != "decorated_definition" {
		return nil
	}
	var out []string
	for i := uint(0); i < node.ChildCount(); i++ {
		c := node.Child(i)
		if c != nil && c.Kind() == "decorator" {
			out = append(out, "@"+strings.TrimPrefix(nodeText(c, source), "@"))
		}
	}
	return out
}

func (s *PythonStrategy) convertNode(node *tree_sitter.Node, source []byte, isMethod bool) *dom.Node {
	decorated := node
	target := unwrapDecorated(node)

	switch target.Kind() {
	case "class_definition":
		return s.convertClass(decorated, target, source)
	case "function_definition":
		return s.convertFunction(decorated, target, source, isMethod)
	case "expression_statement":
		return s.convertAssignOrAnnotation(target, source)
	default:
		return nil
	}
}

func (s *PythonStrategy) convertClass(decorated, node *tree_sitter.Node, source []byte) *dom.Node {
	var parts []string
	parts = append(parts, decoratorPrefixes(decorated, source)...)

	name := fieldText(node, "name", source)

	header := fmt.Sprintf("class %s:", name)
	if superclasses := node.ChildByFieldName("superclasses"); superclasses != nil {
		bases := strings.Trim(nodeText(superclasses, source), "()")
		if bases != "" {
			header = fmt.Sprintf("class %s(%s):", name, bases)
		}
	}
	parts = append(parts, header)

	if doc := classDocstring(node, source); doc != "" {
		if len([]rune(doc)) > 200 {
			doc = string([]rune(doc)[:200]) + "..."
		}
		parts = append(parts, fmt.Sprintf("    \"\"\"%s\"\"\"", doc))
	}

	classNode := &dom.Node{
		Content:    strings.Join(parts, "\n"),
		Type:       "class",
		Name:       name,
		SourceLine: int(node.StartPosition().Row) + 1,
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			c := body.Child(i)
			if c == nil {
				continue
			}
			fn := unwrapDecorated(c)
			if fn.Kind() == "function_definition" {
				if method := s.convertFunction(c, fn, source, true); method != nil {
					classNode.AddChild(method)
				}
			}
		}
	}

	return classNode
}

func classDocstring(classBody *tree_sitter.Node, source []byte) string {
	body := classBody.ChildByFieldName("body")
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	first := body.Child(0)
	if first == nil || first.Kind() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}
	strNode := first.Child(0)
	if strNode == nil || strNode.Kind() != "string" {
		return ""
	}
	return strings.Trim(nodeText(strNode, source), "\"'")
}

func (s *PythonStrategy) convertFunction(decorated, node *tree_sitter.Node, source []byte, isMethod bool) *dom.Node {
	var parts []string
	parts = append(parts, decoratorPrefixes(decorated, source)...)

	name := fieldText(node, "name", source)
	asyncPrefix := ""
	if node.Child(0) != nil && node.Child(0).Kind() == "async" {
		asyncPrefix = "async "
	}

	params := fieldText(node, "parameters", source)
	returns := ""
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		returns = " -> " + nodeText(ret, source)
	}

	sig := fmt.Sprintf("%sdef %s%s%s:", asyncPrefix, name, params, returns)
	parts = append(parts, sig)

	nodeType := "function"
	if isMethod {
		nodeType = "method"
	}

	return &dom.Node{
		Content:    strings.Join(parts, "\n"),
		Type:       nodeType,
		Name:       name,
		SourceLine: int(node.StartPosition().Row) + 1,
	}
}

func (s *PythonStrategy) convertAssignOrAnnotation(stmt *tree_sitter.Node, source []byte) *dom.Node {
	if stmt.ChildCount() == 0 {
		return nil
	}
	assign := stmt.Child(0)
	if assign == nil {
		return nil
	}

	// Annotated assignment shows up as "assignment" with a "type" field in
	// the python grammar; bare type declarations use the same node kind.
	if t := assign.ChildByFieldName("type"); t != nil {
		left := assign.ChildByFieldName("left")
		if left != nil && left.Kind() == "identifier" {
			name := nodeText(left, source)
			return &dom.Node{Content: nodeText(stmt, source), Type: "annotation", Name: name}
		}
	}

	switch assign.Kind() {
	case "assignment":
		left := assign.ChildByFieldName("left")
		if left == nil || left.Kind() != "identifier" {
			return nil
		}
		name := nodeText(left, source)
		if !isAllCaps(name) {
			return nil
		}
		return &dom.Node{Content: nodeText(stmt, source), Type: "constant", Name: name}
	}

	return nil
}

func isAllCaps(name string) bool {
	hasLetter := false
	for _, r := range name {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func fieldText(node *tree_sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return nodeText(child, source)
}

func nodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

var pythonTypeScores = map[string]float64{
	"class": 0.9, "function": 0.8, "method": 0.7, "constant": 0.6,
	"import": 0.5, "import_summary": 0.4, "annotation": 0.5, "body": 0.4, "text": 0.3,
}

func (s *PythonStrategy) Rank(node *dom.Node) float64 {
	if v, ok := pythonTypeScores[node.Type]; ok {
		return v
	}
	return 0.5
}

func (s *PythonStrategy) Render(node *dom.Node, budget int) (string, bool) {
	if budget <= 0 {
		return "", false
	}

	content := node.Content
	contentRunes := []rune(content)
	if len(contentRunes) <= budget {
		return content, true
	}

	switch node.Type {
	case "function", "method", "class", "constant", "annotation":
		if node.Name != "" {
			nameRunes := []rune(node.Name)
			if len(nameRunes) <= budget {
				return node.Name, true
			}
			if budget >= 4 {
				return string(nameRunes[:budget-3]) + "...", true
			}
		}
	case "import_summary":
		if budget >= 10 {
			return string(contentRunes[:budget-3]) + "...", true
		}
		return "", false
	}

	if budget >= 10 {
		return string(contentRunes[:budget-3]) + "...", true
	}
	return "", false
}
