//go:build unit
// +build unit

package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("# Der Sturm\n\nEine *Komödie* in drei Akten.")
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<h1>Der Sturm</h1>")
	assert.Contains(t, out, "<em>Komödie</em>")
}

func TestRender_DropsRawHTML(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("Hallo <script>alert(1)</script>")
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(html), "<script>"))
}

func TestRender_Empty(t *testing.T) {
	html, err := NewRenderer().Render("")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(html)))
}
