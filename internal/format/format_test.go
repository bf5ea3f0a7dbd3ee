package format

import (
	"testing"

	"github.com/hcristescu/nub/internal/dom"
	"github.com/stretchr/testify/assert"
)

type stubStrategy struct {
	name       string
	exts       []string
	detectFunc func(string) bool
}

func (s *stubStrategy) Name() string         { return s.name }
func (s *stubStrategy) Extensions() []string { return s.exts }
func (s *stubStrategy) Detect(c string) bool {
	if s.detectFunc == nil {
		return false
	}
	return s.detectFunc(c)
}
func (s *stubStrategy) Parse(string) *dom.Node                 { return &dom.Node{} }
func (s *stubStrategy) Rank(*dom.Node) float64                 { return 0.5 }
func (s *stubStrategy) Render(*dom.Node, int) (string, bool)   { return "", false }

func TestRegisterByNameAndExtension(t *testing.T) {
	r := NewRegistry()
	md := &stubStrategy{name: "markdown", exts: []string{".md"}}
	r.Register(md)

	got, ok := r.ByName("markdown")
	assert.True(t, ok)
	assert.Same(t, md, got)

	got, ok = r.ByExtension("md")
	assert.True(t, ok)
	assert.Same(t, md, got)

	got, ok = r.ByExtension(".MD")
	assert.True(t, ok)
	assert.Same(t, md, got)
}

func TestFirstRegisteredWinsExtensionConflict(t *testing.T) {
	r := NewRegistry()
	first := &stubStrategy{name: "first", exts: []string{".txt"}}
	second := &stubStrategy{name: "second", exts: []string{".txt"}}
	r.Register(first)
	r.Register(second)

	got, ok := r.ByExtension(".txt")
	assert.True(t, ok)
	assert.Same(t, first, got)
}

func TestDetectByExtensionBeatsContentSniff(t *testing.T) {
	r := NewRegistry()
	sniffer := &stubStrategy{name: "sniffer", detectFunc: func(string) bool { return true }}
	byExt := &stubStrategy{name: "byext", exts: []string{".log"}}
	r.Register(sniffer)
	r.Register(byExt)

	match, ok := r.Detect("anything", "file.log")
	assert.True(t, ok)
	assert.Same(t, byExt, match.Strategy)
	assert.Equal(t, 1.0, match.Confidence)
}

func TestDetectFallsBackToContentSniff(t *testing.T) {
	r := NewRegistry()
	sniffer := &stubStrategy{name: "sniffer", detectFunc: func(c string) bool { return c == "magic" }}
	r.Register(sniffer)

	match, ok := r.Detect("magic", "file.unknown")
	assert.True(t, ok)
	assert.Same(t, sniffer, match.Strategy)
	assert.Equal(t, 0.8, match.Confidence)

	_, ok = r.Detect("not magic", "file.unknown")
	assert.False(t, ok)
}

func TestDetectNoMatchReturnsFalse(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Detect("content", "file.xyz")
	assert.False(t, ok)
}

func TestStrategiesReturnsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	a := &stubStrategy{name: "a"}
	b := &stubStrategy{name: "b"}
	r.Register(a)
	r.Register(b)
	assert.Equal(t, []Strategy{a, b}, r.Strategies())
}

func TestDefaultRenderFullContentFits(t *testing.T) {
	n := &dom.Node{Content: "short"}
	out, ok := DefaultRender(n, 100)
	assert.True(t, ok)
	assert.Equal(t, "short", out)
}

func TestDefaultRenderTruncatesWithEllipsis(t *testing.T) {
	n := &dom.Node{Content: "a much longer piece of content than fits"}
	out, ok := DefaultRender(n, 10)
	assert.True(t, ok)
	assert.Equal(t, 10, len([]rune(out)))
	assert.Contains(t, out, "...")
}

func TestDefaultRenderFoldsWhenTooSmall(t *testing.T) {
	n := &dom.Node{Content: "anything at all"}
	_, ok := DefaultRender(n, 2)
	assert.False(t, ok)

	_, ok = DefaultRender(n, 0)
	assert.False(t, ok)
}
