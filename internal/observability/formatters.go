// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/careerforge/internal/storage"
	"github.com/jonathan/careerforge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs a human-readable summary of the resume document.
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	info := doc.PersonalInfo
	sb.WriteString(fmt.Sprintf("Name:     %s\n", info.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", info.Email1))
	if info.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", info.Phone))
	}
	sb.WriteString("\n")

	if len(doc.Education) > 0 {
		sb.WriteString("Education:\n")
		writeList(&sb, doc.Education, func(e types.Education) string {
			return fmt.Sprintf("%s, %s (%s-%s)", e.Institution, e.Degree, e.StartYear, e.EndYear)
		})
		sb.WriteString("\n")
	}

	if len(doc.Projects) > 0 {
		sb.WriteString("Projects:\n")
		writeList(&sb, doc.Projects, func(pr types.Project) string {
			return fmt.Sprintf("%s [%d bullets]", pr.Title, len(pr.Description))
		})
		sb.WriteString("\n")
	}

	if len(doc.Certifications) > 0 {
		sb.WriteString("Certifications:\n")
		writeList(&sb, doc.Certifications, func(c types.Certification) string { return c.Title })
		sb.WriteString("\n")
	}

	if len(doc.Achievements) > 0 {
		sb.WriteString("Achievements:\n")
		writeList(&sb, doc.Achievements, func(a types.Achievement) string { return a.Title })
		sb.WriteString("\n")
	}

	if doc.TechnicalSkills.IsEmpty() {
		sb.WriteString("Skills:   (none)")
	} else {
		sb.WriteString(fmt.Sprintf("Skills:   %s", doc.TechnicalSkills.ProgrammingLanguages))
	}

	p.printBox("RESUME", sb.String())
}

func writeList[T any](sb *strings.Builder, items []T, label func(T) string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", label(items[i])))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintStatus outputs the save status of the persisted document.
func (p *Printer) PrintStatus(status string, hasSaved bool, key string) {
	saved := "no"
	if hasSaved {
		saved = "yes"
	}
	p.printBox("SAVE STATUS", fmt.Sprintf("Status:   %s\nStored:   %s\nKey:      %s", status, saved, key))
}

// PrintGenerated outputs generated profile content, wrapped to the box width.
func (p *Printer) PrintGenerated(kind string, content string) {
	var lines []string
	for _, para := range strings.Split(strings.TrimSpace(content), "\n") {
		lines = append(lines, wrap(para, boxWidth-4)...)
	}
	p.printBox("GENERATED "+strings.ToUpper(kind), strings.Join(lines, "\n"))
}

// PrintPublished outputs where each exported artifact was stored.
func (p *Printer) PrintPublished(objects []*storage.Object, pages int) {
	if len(objects) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages:    %d\n\n", pages))
	for i, obj := range objects {
		sb.WriteString(fmt.Sprintf("• %s (%d bytes)\n", obj.Name, obj.Size))
		sb.WriteString(fmt.Sprintf("  %s", obj.Location))
		if i < len(objects)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EXPORTED", sb.String())
}

// wrap breaks text on spaces so no line exceeds width runes; single words
// longer than width are left for printBox to truncate.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		line  string
	)
	for _, w := range words {
		switch {
		case line == "":
			line = w
		case len([]rune(line))+1+len([]rune(w)) <= width:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}
	return append(lines, line)
}
