// Package rendering projects a resume document into its LaTeX and PDF artifacts.
package rendering

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"text/template"

	"github.com/jonathan/careerforge/internal/types"
)

// Artifact extensions
const (
	ExtLaTeX = "tex"
	ExtPDF   = "pdf"
)

//go:embed templates/resume.tex.tmpl
var resumeTemplate string

var (
	templateOnce   sync.Once
	parsedTemplate *template.Template
	templateErr    error
)

// skillLabels pairs each skills category with its display label, in render order
var skillLabels = []struct {
	Label string
	Value func(types.TechnicalSkills) string
}{
	{"Programming Languages", func(s types.TechnicalSkills) string { return s.ProgrammingLanguages }},
	{"Frameworks / Libraries", func(s types.TechnicalSkills) string { return s.Frameworks }},
	{"Databases / Cloud", func(s types.TechnicalSkills) string { return s.Databases }},
	{"Developer Tools", func(s types.TechnicalSkills) string { return s.DeveloperTools }},
	{"Relevant Coursework", func(s types.TechnicalSkills) string { return s.Coursework }},
}

// SkillLine is a single non-empty skills category
type SkillLine struct {
	Label string
	Value string
}

// SkillLines returns the non-empty skill categories in render order
func SkillLines(s types.TechnicalSkills) []SkillLine {
	var lines []SkillLine
	for _, l := range skillLabels {
		if v := l.Value(s); v != "" {
			lines = append(lines, SkillLine{Label: l.Label, Value: v})
		}
	}
	return lines
}

// TemplateData represents the data structure passed to the LaTeX template.
// Header strings are already escaped; list items are escaped by the template.
type TemplateData struct {
	Author         string
	Header         *HeaderSection
	Education      []types.Education
	Skills         []SkillLine
	Projects       []types.Project
	Certifications []types.Certification
	Achievements   []types.Achievement
}

// HeaderSection is the escaped personal-info block
type HeaderSection struct {
	Name     string
	Primary  string // phone and e-mail links
	Profiles string // GitHub and LinkedIn links
}

// RenderLaTeX renders the complete LaTeX source for doc. The output is a pure
// function of doc: identical documents produce byte-identical sources.
func RenderLaTeX(doc *types.ResumeDocument) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "resume document is nil"}
	}

	tmpl, err := parseTemplate()
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildTemplateData(doc)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate parses the embedded LaTeX template once
func parseTemplate() (*template.Template, error) {
	templateOnce.Do(func() {
		parsedTemplate, templateErr = template.New("resume").
			Delims("<<", ">>").
			Funcs(template.FuncMap{
				"escape": EscapeLaTeX,
				"url":    EscapeURL,
			}).
			Parse(resumeTemplate)
	})
	if templateErr != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   templateErr,
		}
	}
	return parsedTemplate, nil
}

// buildTemplateData constructs the template data structure from the document
func buildTemplateData(doc *types.ResumeDocument) *TemplateData {
	return &TemplateData{
		Author:         EscapeLaTeX(doc.PersonalInfo.Name),
		Header:         buildHeader(doc.PersonalInfo),
		Education:      doc.Education,
		Skills:         SkillLines(doc.TechnicalSkills),
		Projects:       doc.Projects,
		Certifications: doc.Certifications,
		Achievements:   doc.Achievements,
	}
}

// buildHeader returns nil when there is no name to head the document
func buildHeader(info types.PersonalInfo) *HeaderSection {
	if info.Name == "" {
		return nil
	}

	var primary []string
	if info.Phone != "" {
		primary = append(primary, `\faPhone\ +`+EscapeLaTeX(info.Phone))
	}
	for _, email := range []string{info.Email1, info.Email2} {
		if email != "" {
			primary = append(primary, fmt.Sprintf(`\faEnvelope\ \href{mailto:%s}{%s}`, EscapeURL(email), EscapeLaTeX(email)))
		}
	}

	var profiles []string
	if info.GitHub != "" {
		profiles = append(profiles, fmt.Sprintf(`\faGithub\ \href{%s}{%s}`, EscapeURL(GitHubURL(info.GitHub)), EscapeLaTeX(info.GitHub)))
	}
	if info.LinkedIn != "" {
		profiles = append(profiles, fmt.Sprintf(`\faLinkedin\ \href{%s}{%s}`, EscapeURL(LinkedInURL(info.LinkedIn)), EscapeLaTeX(info.LinkedIn)))
	}

	return &HeaderSection{
		Name:     EscapeLaTeX(info.Name),
		Primary:  strings.Join(primary, "\\quad\n  "),
		Profiles: strings.Join(profiles, " \\quad\n  "),
	}
}

// GitHubURL returns the profile URL for a GitHub username
func GitHubURL(username string) string {
	return "https://github.com/" + username
}

// LinkedInURL returns the profile URL for a LinkedIn handle
func LinkedInURL(handle string) string {
	return "https://www.linkedin.com/in/" + handle + "/"
}

var (
	whitespaceRun  = regexp.MustCompile(`[\s\p{Zs}]+`)
	pathSeparators = regexp.MustCompile(`[/\\]`)
)

// ArtifactName returns the download name for an artifact of the given
// extension: whitespace runs in name become underscores, and an empty name
// falls back to "Resume". ArtifactName("Jane Doe", "tex") is "Jane_Doe_Resume.tex".
func ArtifactName(name, ext string) string {
	base := whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
	base = pathSeparators.ReplaceAllString(base, "_")
	if base == "" {
		base = "Resume"
	}
	return base + "_Resume." + ext
}
