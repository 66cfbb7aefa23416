package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsforge/internal/domain"
)

func testContext(t *testing.T) *domain.RenderContext {
	t.Helper()
	ctx, err := domain.NewRenderContext("Churn Analysis")
	require.NoError(t, err)
	return ctx
}

func TestRenderString(t *testing.T) {
	e := New()
	ctx := testContext(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "no placeholders", "no placeholders"},
		{"variable", "# {{project_name}}", "# Churn Analysis"},
		{"spaced variable", "{{ project_slug }}", "churn-analysis"},
		{"module name", "import {{project_module_name}}", "import churn_analysis"},
		{"helper func", `{{slug "Hello World"}}`, "hello-world"},
		{"helper on variable", "{{upper project_slug}}", "CHURN-ANALYSIS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.RenderString(tt.name, tt.text, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderStringUnknownPlaceholder(t *testing.T) {
	e := New()
	_, err := e.RenderString("bad", "{{no_such_variable}}", testContext(t))
	require.Error(t, err, "substitution must be total")
	assert.Contains(t, err.Error(), "bad", "error must name the offending template")
}

func TestRenderPath(t *testing.T) {
	e := New()
	ctx := testContext(t)

	got, err := e.RenderPath("{{project_slug}}/{{project_module_name}}/data/make_dataset.py", ctx)
	require.NoError(t, err)
	assert.Equal(t, "churn-analysis/churn_analysis/data/make_dataset.py", got)
}

func TestRenderPathRejectsEscape(t *testing.T) {
	e := New()
	ctx := testContext(t)

	for _, p := range []string{"../outside", "a/../../b", "/etc/passwd"} {
		_, err := e.RenderPath(p, ctx)
		require.Error(t, err, "path %q must be rejected", p)
		if p != "/etc/passwd" {
			assert.True(t, errors.Is(err, domain.ErrPathEscape), "path %q: got %v", p, err)
		}
	}
}

func TestRenderPathRejectsEmpty(t *testing.T) {
	e := New()
	_, err := e.RenderPath("  ", testContext(t))
	require.Error(t, err)
}

func TestRenderContent(t *testing.T) {
	e := New()
	ctx := testContext(t)

	out, err := e.RenderContent("readme", []byte("# {{project_name}}\n"), ctx)
	require.NoError(t, err)
	assert.Equal(t, "# Churn Analysis\n", string(out))
}

func TestRenderContentBinaryPassthrough(t *testing.T) {
	e := New()
	ctx := testContext(t)

	// Invalid UTF-8 containing bytes that look like a placeholder opener.
	raw := []byte{0xff, 0xfe, '{', '{', 0x00, 0x80}
	out, err := e.RenderContent("blob", raw, ctx)
	require.NoError(t, err)
	assert.Equal(t, raw, out, "binary content must pass through verbatim")
}

func TestRenderContentNoPlaceholderFastPath(t *testing.T) {
	e := New()
	ctx := testContext(t)

	// "{percent}" style braces common in Python format strings must survive.
	src := []byte("print('{} rows'.format(len(df)))\n")
	out, err := e.RenderContent("py", src, ctx)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}
