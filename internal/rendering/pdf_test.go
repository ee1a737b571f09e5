package rendering

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/careerforge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sections(blocks []LayoutBlock) []string {
	var out []string
	for _, b := range blocks {
		if len(out) == 0 || out[len(out)-1] != b.Section {
			out = append(out, b.Section)
		}
	}
	return out
}

func assertNoStraddle(t *testing.T, blocks []LayoutBlock) {
	t.Helper()
	for _, b := range blocks {
		assert.Equalf(t, b.StartPage, b.EndPage, "%s entry %q straddles pages", b.Section, b.Label)
		assert.LessOrEqualf(t, b.Bottom, pageHeight-marginBottom, "%s entry %q overflows the page", b.Section, b.Label)
	}
}

func TestRenderPDF_DefaultDocument(t *testing.T) {
	result, err := RenderPDF(types.DefaultResumeDocument())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(result.Data, []byte("%PDF-")))
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, []string{
		SectionHeader,
		SectionEducation,
		SectionSkills,
		SectionProjects,
		SectionCertifications,
		SectionAchievements,
	}, sections(result.Blocks))
}

func TestRenderPDF_Idempotent(t *testing.T) {
	doc := types.DefaultResumeDocument()
	first, err := RenderPDF(doc)
	require.NoError(t, err)
	second, err := RenderPDF(doc)
	require.NoError(t, err)

	assert.Equal(t, first.Pages, second.Pages)
	assert.Equal(t, first.Blocks, second.Blocks)
	assert.True(t, bytes.Equal(first.Data, second.Data), "PDF bytes differ between renders")
}

func TestWritePDF_MatchesRenderPDF(t *testing.T) {
	doc := types.DefaultResumeDocument()
	result, err := RenderPDF(doc)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, doc))
	assert.Equal(t, result.Data, buf.Bytes())
}

func TestRenderPDF_NilDocument(t *testing.T) {
	_, err := RenderPDF(nil)
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestRenderPDF_JaneDoe(t *testing.T) {
	result, err := buildPDF(janeDoe(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{SectionHeader, SectionEducation}, sections(result.Blocks))
	assert.Contains(t, string(result.Data), "(Jane Doe) Tj")
	assert.Contains(t, string(result.Data), "(EDUCATION) Tj")
	assert.Contains(t, string(result.Data), "(CGPA: 9.0) Tj")
	assert.Contains(t, string(result.Data), "(2020 - 2024) Tj")
	assert.Contains(t, string(result.Data), "(+15551234567 | jane@example.com) Tj")
}

func TestRenderPDF_OmitsEmptySections(t *testing.T) {
	doc := types.DefaultResumeDocument()
	doc.TechnicalSkills = types.TechnicalSkills{}
	doc.Certifications = nil

	result, err := buildPDF(doc, false)
	require.NoError(t, err)

	got := sections(result.Blocks)
	assert.NotContains(t, got, SectionSkills)
	assert.NotContains(t, got, SectionCertifications)
	assert.NotContains(t, string(result.Data), "(TECHNICAL SKILLS) Tj")
	assert.NotContains(t, string(result.Data), "(CERTIFICATIONS) Tj")
}

func TestRenderPDF_EmptyDocument(t *testing.T) {
	result, err := RenderPDF(&types.ResumeDocument{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pages)
	assert.Empty(t, result.Blocks)
}

func TestRenderPDF_Links(t *testing.T) {
	doc := types.DefaultResumeDocument()
	doc.Projects[0].Links = "https://example.com/shop"

	result, err := buildPDF(doc, false)
	require.NoError(t, err)
	out := string(result.Data)

	assert.Contains(t, out, "(https://github.com/johndoe)")
	assert.Contains(t, out, "(https://www.linkedin.com/in/johndoe/)")
	assert.Contains(t, out, "(https://example.com/certificate)")
	assert.Contains(t, out, "(https://example.com/shop)")
	assert.Contains(t, out, "( \\(View\\)) Tj")
}

var textOp = regexp.MustCompile(`(?:q ([^B]*?) )?BT \S+ \S+ Td \((.*?)\) Tj ET`)

func TestRenderPDF_LinkColourIsReset(t *testing.T) {
	doc := types.DefaultResumeDocument()
	doc.Projects[0].Links = "https://example.com/shop"

	result, err := buildPDF(doc, false)
	require.NoError(t, err)

	linkLabels := map[string]bool{
		"github.com/johndoe":       true,
		"linkedin.com/in/johndoe":  true,
		"https://example.com/shop": true,
		` \(View\)`:                true,
	}

	ops := textOp.FindAllStringSubmatch(string(result.Data), -1)
	require.NotEmpty(t, ops)

	seen := map[string]bool{}
	for i, op := range ops {
		colour, text := op[1], op[2]
		blue := strings.HasSuffix(colour, "1.000 rg")
		assert.Equalf(t, linkLabels[text], blue, "text op %d %q drawn with colour %q", i, text, colour)
		if blue {
			seen[text] = true
		}
	}
	assert.Len(t, seen, len(linkLabels))
}

func TestRenderPDF_EducationPageBreaks(t *testing.T) {
	doc := &types.ResumeDocument{PersonalInfo: types.PersonalInfo{Name: "Jane Doe"}}
	for i := 0; i < 40; i++ {
		doc.Education = append(doc.Education, types.Education{
			ID:          fmt.Sprintf("e%d", i),
			Institution: fmt.Sprintf("Institute %d", i),
			Degree:      "B.Sc.",
			Field:       "Mathematics",
			Score:       "9.0",
			ScoreType:   types.ScoreCGPA,
			StartYear:   "2020",
			EndYear:     "2024",
		})
	}

	result, err := RenderPDF(doc)
	require.NoError(t, err)

	assert.Greater(t, result.Pages, 1)
	assert.Equal(t, result.Pages, result.Blocks[len(result.Blocks)-1].EndPage)
	assertNoStraddle(t, result.Blocks)
}

func TestRenderPDF_ProjectPageBreaks(t *testing.T) {
	bullet := strings.Repeat("Designed and shipped a distributed ingestion pipeline with careful backpressure. ", 3)
	doc := &types.ResumeDocument{PersonalInfo: types.PersonalInfo{Name: "Jane Doe"}}
	for i := 0; i < 15; i++ {
		doc.Projects = append(doc.Projects, types.Project{
			ID:           fmt.Sprintf("p%d", i),
			Title:        fmt.Sprintf("Project %d", i),
			Technologies: strings.Repeat("Go, PostgreSQL, Redis, Kubernetes, ", 6),
			Year:         "2024",
			Links:        "GitHub | Demo",
			Description:  []string{bullet, bullet, bullet},
		})
	}
	doc.Achievements = []types.Achievement{
		{ID: "a1", Title: "Award", Description: strings.Repeat("Recognised for impact. ", 20), Year: "2023"},
	}

	result, err := RenderPDF(doc)
	require.NoError(t, err)

	assert.Greater(t, result.Pages, 1)
	assertNoStraddle(t, result.Blocks)
}

func TestRenderPDF_EntryTallerThanPage(t *testing.T) {
	var bullets []string
	for i := 0; i < 120; i++ {
		bullets = append(bullets, fmt.Sprintf("Bullet number %d", i))
	}
	doc := &types.ResumeDocument{
		Projects: []types.Project{{ID: "p1", Title: "Huge", Description: bullets}},
	}

	result, err := RenderPDF(doc)
	require.NoError(t, err)

	require.Len(t, result.Blocks, 1)
	assert.Greater(t, result.Blocks[0].EndPage, result.Blocks[0].StartPage)
	assert.Equal(t, result.Pages, result.Blocks[0].EndPage)
}

func TestRenderPDF_NonASCII(t *testing.T) {
	doc := types.DefaultResumeDocument()
	doc.PersonalInfo.Name = "José Müller"
	doc.Achievements[0].Description = "Ranked №1 — résumé “quotes”"

	result, err := RenderPDF(doc)
	require.NoError(t, err)
	assert.Equal(t, "José Müller", result.Blocks[0].Label)
}

func newTestRenderer(t *testing.T) *pdfRenderer {
	t.Helper()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	r := &pdfRenderer{pdf: pdf, enc: pdf.UnicodeTranslatorFromDescriptor(""), y: marginTop}
	r.font("", sizeBody)
	return r
}

func TestWrap(t *testing.T) {
	r := newTestRenderer(t)
	text := strings.Repeat("lorem ipsum dolor sit amet ", 30)

	lines := r.wrap(text, 80)
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, r.width(l), 80.0)
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
}

func TestWrap_BreaksLongWords(t *testing.T) {
	r := newTestRenderer(t)
	word := strings.Repeat("x", 200)

	lines := r.wrap("short "+word+" tail", 40)
	require.Greater(t, len(lines), 2)
	assert.Equal(t, "short", lines[0])
	assert.Equal(t, "short"+word+"tail", strings.ReplaceAll(strings.Join(lines, ""), " ", ""))
	for _, l := range lines {
		assert.LessOrEqual(t, r.width(l), 40.0)
	}
}

func TestWrap_HonoursNewlinesAndBlanks(t *testing.T) {
	r := newTestRenderer(t)
	assert.Equal(t, []string{"first", "second"}, r.wrap("first\n\n  second  ", 100))
	assert.Empty(t, r.wrap("   ", 100))
}

func TestCheckPageBreak(t *testing.T) {
	r := newTestRenderer(t)

	assert.False(t, r.checkPageBreak(10))
	assert.Equal(t, 1, r.pdf.PageNo())

	r.y = pageHeight - marginBottom - 5
	assert.True(t, r.checkPageBreak(10))
	assert.Equal(t, 2, r.pdf.PageNo())
	assert.Equal(t, marginTop, r.y)
}

func TestLinkTarget(t *testing.T) {
	assert.Equal(t, "https://example.com", linkTarget(" https://example.com "))
	assert.Equal(t, "", linkTarget("GitHub | Live Demo"))
	assert.Equal(t, "", linkTarget("example.com"))
}
