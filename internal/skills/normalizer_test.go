package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpath-backend/internal/catalog"
)

func defaultNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	c, err := catalog.LoadDefault()
	require.NoError(t, err)
	return NewNormalizer(c.Aliases())
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(map[string]string{" JS ": "JavaScript", "node": "node.js", "": "x", "y": ""})

	cases := []struct{ raw, want string }{
		{"js", "javascript"},
		{"  JS", "javascript"},
		{"JavaScript", "javascript"},
		{"Node", "node.js"},
		{"Rust", "rust"},
		{"  Go Lang  ", "go lang"},
		{"", ""},
		{"   ", ""},
		{"y", "y"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, n.Normalize(tc.raw), "raw=%q", tc.raw)
	}
}

func TestNormalizeAliasConvergence(t *testing.T) {
	n := defaultNormalizer(t)

	assert.Equal(t, "javascript", n.Normalize("js"))
	assert.Equal(t, n.Normalize("js"), n.Normalize("JavaScript"))
	assert.Equal(t, n.Normalize("JavaScript"), n.Normalize("ECMAScript"))
	assert.Equal(t, "react", n.Normalize("ReactJS"))
	assert.Equal(t, "node.js", n.Normalize("Node"))
	assert.Equal(t, "cloud platforms", n.Normalize("AWS"))
}

func TestNormalizeIdempotent(t *testing.T) {
	n := defaultNormalizer(t)
	c, err := catalog.LoadDefault()
	require.NoError(t, err)

	inputs := []string{"", " ", "JS", "ecmascript", "Go", "K8S", "unknown skill", "  Machine Learning "}
	for alias, canonical := range c.Aliases() {
		inputs = append(inputs, alias, canonical, " "+alias+" ")
	}
	inputs = append(inputs, c.SkillNames()...)

	for _, raw := range inputs {
		once := n.Normalize(raw)
		assert.Equal(t, once, n.Normalize(once), "raw=%q", raw)
	}
}

func TestNilNormalizerOnlyCleans(t *testing.T) {
	var n *Normalizer
	assert.Equal(t, "js", n.Normalize("  JS "))
	assert.Equal(t, []string{"js", "go"}, n.NormalizeAll([]string{"JS", "", "go", "js"}))
}

func TestNormalizeAll(t *testing.T) {
	n := defaultNormalizer(t)

	got := n.NormalizeAll([]string{"React", "reactjs", "", "  ", "JS", "javascript", "Docker"})
	assert.Equal(t, []string{"react", "javascript", "docker"}, got)
	assert.Empty(t, n.NormalizeAll(nil))
}
