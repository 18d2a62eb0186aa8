package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikogura/cvforge/pkg/profile"
)

func TestRenderMarkup(t *testing.T) {
	doc := sampleDoc()
	doc.WorkExperiences[0].Company = "Smith & Sons"
	doc.WorkExperiences[0].Description = "Wrote <script>alert(1)</script> and *fast* code"

	got, err := Render(doc, doc.SectionOrder, TargetStyledMarkup)
	require.NoError(t, err)

	assert.Contains(t, got, "<h1>Test User</h1>")
	assert.Contains(t, got, `<p class="contact">test@example.com | 555-0100 | LinkedIn: linkedin.com/in/test</p>`)
	assert.Contains(t, got, "<p>Engineer with <strong>deep</strong> experience.</p>")
	assert.Contains(t, got, "<p><strong>LANGUAGES:</strong> Go (Expert)</p>")
	assert.Contains(t, got, "<p><strong>OTHER:</strong> Git</p>")
	assert.Contains(t, got, "<p><strong>Engineer</strong> | Smith &amp; Sons</p>")
	assert.Contains(t, got, `<p class="meta">2020 - Present</p>`)
	assert.Contains(t, got, "&lt;script&gt;alert(1)&lt;/script&gt; and <em>fast</em> code")
	assert.Contains(t, got, "<li>Shipped it</li>")
	assert.NotContains(t, got, "<script>")

	summary := strings.Index(got, "<h2>PROFESSIONAL SUMMARY</h2>")
	skills := strings.Index(got, "<h2>SKILLS</h2>")
	work := strings.Index(got, "<h2>WORK EXPERIENCE</h2>")
	require.True(t, summary > 0 && skills > 0 && work > 0)
	assert.Less(t, summary, skills)
	assert.Less(t, skills, work)
}

func TestRenderMarkupHonorsHeading(t *testing.T) {
	doc := profile.Document{HonorsAwards: []profile.HonorAward{{Title: "Award"}}}

	got, err := Render(doc, []profile.SectionKey{profile.SectionHonorsAwards}, TargetStyledMarkup)
	require.NoError(t, err)

	assert.Contains(t, got, "<h2>HONORS &amp; AWARDS</h2>")
	assert.NotContains(t, got, "<header>")
}

func TestEmphasize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"**bold** text", "<strong>bold</strong> text"},
		{"__bold__ text", "<strong>bold</strong> text"},
		{"an *italic* word", "an <em>italic</em> word"},
		{"an _italic_ word", "an <em>italic</em> word"},
		{"snake_case_name stays", "snake_case_name stays"},
		{"a < b & c", "a &lt; b &amp; c"},
		{"line one\nline two", "line one<br>line two"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, string(emphasize(tt.input)))
		})
	}
}
