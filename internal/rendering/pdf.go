package rendering

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jonathan/careerforge/internal/types"
)

// Section names used in the layout trace, in render order
const (
	SectionHeader         = "Header"
	SectionEducation      = "Education"
	SectionSkills         = "Technical Skills"
	SectionProjects       = "Projects"
	SectionCertifications = "Certifications"
	SectionAchievements   = "Achievements"
)

// A4 portrait geometry in millimetres, matching the LaTeX geometry
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 14.0
	marginRight  = 12.0
	marginTop    = 8.0
	marginBottom = 10.0
	contentWidth = pageWidth - marginLeft - marginRight
	usableHeight = pageHeight - marginTop - marginBottom
)

// Font sizes in points
const (
	sizeName       = 18.0
	sizeSection    = 12.0
	sizeSubsection = 10.0
	sizeBody       = 9.0
	sizeSmall      = 8.0
)

// Vertical advances in millimetres
const (
	sectionReserve  = 20.0
	sectionHeight   = 5.5
	lineHeight      = 4.0
	smallLineHeight = 3.5
	bulletIndent    = 2.0
	textIndent      = 6.0
	educationHeight = 10.0
	educationMin    = 15.0
	projectMin      = 20.0
	achievementMin  = 15.0
	itemMin         = 8.0
)

const fontFamily = "helvetica"

// documentDate is stamped on every PDF so identical input gives identical bytes
var documentDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// LayoutBlock records where a rendered entry landed
type LayoutBlock struct {
	Section   string
	Label     string
	StartPage int
	EndPage   int
	Top       float64
	Bottom    float64
}

// PDFResult is a rendered PDF with its layout trace
type PDFResult struct {
	Data   []byte
	Pages  int
	Blocks []LayoutBlock
}

// RenderPDF lays out doc on A4 pages and returns the encoded document
func RenderPDF(doc *types.ResumeDocument) (*PDFResult, error) {
	return buildPDF(doc, true)
}

// WritePDF renders doc and writes the PDF to w. It shares RenderPDF's code
// path, so the downloaded file and the in-memory form are identical.
func WritePDF(w io.Writer, doc *types.ResumeDocument) error {
	result, err := RenderPDF(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(result.Data); err != nil {
		return &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return nil
}

func buildPDF(doc *types.ResumeDocument, compress bool) (*PDFResult, error) {
	if doc == nil {
		return nil, &RenderError{Message: "resume document is nil"}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(compress)
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("careerforge", false)
	if doc.PersonalInfo.Name != "" {
		pdf.SetTitle(doc.PersonalInfo.Name+" - Resume", true)
		pdf.SetAuthor(doc.PersonalInfo.Name, true)
	} else {
		pdf.SetTitle("Resume", false)
	}

	r := &pdfRenderer{
		pdf: pdf,
		enc: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	pdf.AddPage()
	r.y = marginTop

	r.header(doc.PersonalInfo)
	r.education(doc.Education)
	r.skills(doc.TechnicalSkills)
	r.projects(doc.Projects)
	r.certifications(doc.Certifications)
	r.achievements(doc.Achievements)

	if pdf.Err() {
		return nil, &RenderError{Message: "failed to lay out PDF", Cause: pdf.Error()}
	}

	pages := pdf.PageCount()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to encode PDF", Cause: err}
	}

	return &PDFResult{
		Data:   buf.Bytes(),
		Pages:  pages,
		Blocks: r.blocks,
	}, nil
}

// pdfRenderer carries the only layout state: the vertical cursor y
type pdfRenderer struct {
	pdf    *fpdf.Fpdf
	enc    func(string) string
	y      float64
	blocks []LayoutBlock
}

// checkPageBreak starts a new page when required millimetres do not fit
// above the bottom margin
func (r *pdfRenderer) checkPageBreak(required float64) bool {
	if r.y+required > pageHeight-marginBottom {
		r.pdf.AddPage()
		r.y = marginTop
		return true
	}
	return false
}

// reserve checks for a whole entry of the given height. Entries taller than
// a page fall back to floor and rely on per-line checks.
func (r *pdfRenderer) reserve(height, floor float64) {
	required := max(height, floor)
	if required > usableHeight {
		required = floor
	}
	r.checkPageBreak(required)
}

// record runs draw and appends the entry's placement to the layout trace
func (r *pdfRenderer) record(section, label string, draw func()) {
	block := LayoutBlock{Section: section, Label: label, StartPage: r.pdf.PageNo(), Top: r.y}
	draw()
	block.EndPage = r.pdf.PageNo()
	block.Bottom = r.y
	r.blocks = append(r.blocks, block)
}

func (r *pdfRenderer) font(style string, size float64) {
	r.pdf.SetFont(fontFamily, style, size)
}

// width measures an encoded string in the current font
func (r *pdfRenderer) width(s string) float64 {
	return r.pdf.GetStringWidth(s)
}

// text draws an encoded string with its baseline on the cursor
func (r *pdfRenderer) text(x float64, s string) {
	r.pdf.Text(x, r.y, s)
}

// rightText draws s flush against the right edge of the content area
func (r *pdfRenderer) rightText(s string) {
	r.text(marginLeft+contentWidth-r.width(s), s)
}

// link draws s in blue with a clickable region over it, then resets the
// colour to black. It returns the drawn width.
func (r *pdfRenderer) link(x float64, s, url string) float64 {
	w := r.width(s)
	r.pdf.SetTextColor(0, 0, 255)
	r.text(x, s)
	r.pdf.SetTextColor(0, 0, 0)
	if url != "" {
		_, h := r.pdf.GetFontSize()
		r.pdf.LinkString(x, r.y-h*0.8, w, h, url)
	}
	return w
}

// wrap splits raw text into encoded lines no wider than maxWidth in the
// current font. Words wider than a line are broken mid-word.
func (r *pdfRenderer) wrap(raw string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(r.enc(raw), "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for r.width(word) > maxWidth {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				n := r.fit(word, maxWidth)
				lines = append(lines, word[:n])
				word = word[n:]
			}
			if word == "" {
				continue
			}
			if line == "" {
				line = word
				continue
			}
			if candidate := line + " " + word; r.width(candidate) <= maxWidth {
				line = candidate
			} else {
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// fit returns how many leading bytes of s fit in maxWidth, at least one.
// Encoded strings are single-byte, so any byte offset is a character boundary.
func (r *pdfRenderer) fit(s string, maxWidth float64) int {
	n := 1
	for n < len(s) && r.width(s[:n+1]) <= maxWidth {
		n++
	}
	return n
}

// sectionTitle starts a section. firstEntry is the height of the entry that
// follows, so a title is never left alone at the bottom of a page.
func (r *pdfRenderer) sectionTitle(title string, firstEntry float64) {
	r.reserve(sectionHeight+firstEntry, sectionReserve)

	r.font("B", sizeSection)
	r.text(marginLeft, r.enc(strings.ToUpper(title)))
	r.y += 1.5
	r.pdf.SetLineWidth(0.4)
	r.pdf.Line(marginLeft, r.y, marginLeft+contentWidth, r.y)
	r.y += 4
}

func (r *pdfRenderer) header(info types.PersonalInfo) {
	if info.Name == "" {
		return
	}
	r.record(SectionHeader, info.Name, func() {
		r.font("B", sizeName)
		name := r.enc(info.Name)
		r.text((pageWidth-r.width(name))/2, name)
		r.y += 5

		r.font("", sizeSmall)
		var primary []string
		if info.Phone != "" {
			primary = append(primary, "+"+info.Phone)
		}
		if info.Email1 != "" {
			primary = append(primary, info.Email1)
		}
		if info.Email2 != "" {
			primary = append(primary, info.Email2)
		}
		if len(primary) > 0 {
			line := r.enc(strings.Join(primary, " | "))
			r.text((pageWidth-r.width(line))/2, line)
			r.y += smallLineHeight
		}

		type profile struct{ label, url string }
		var profiles []profile
		if info.GitHub != "" {
			profiles = append(profiles, profile{"github.com/" + info.GitHub, GitHubURL(info.GitHub)})
		}
		if info.LinkedIn != "" {
			profiles = append(profiles, profile{"linkedin.com/in/" + info.LinkedIn, LinkedInURL(info.LinkedIn)})
		}
		if len(profiles) > 0 {
			sep := r.enc(" | ")
			total := r.width(sep) * float64(len(profiles)-1)
			for _, p := range profiles {
				total += r.width(r.enc(p.label))
			}
			x := (pageWidth - total) / 2
			for i, p := range profiles {
				if i > 0 {
					r.text(x, sep)
					x += r.width(sep)
				}
				x += r.link(x, r.enc(p.label), p.url)
			}
			r.y += smallLineHeight
		}

		r.y++
	})
}

func (r *pdfRenderer) education(items []types.Education) {
	if len(items) == 0 {
		return
	}
	r.sectionTitle(SectionEducation, educationHeight)

	for _, edu := range items {
		r.reserve(educationHeight, educationMin)
		r.record(SectionEducation, edu.Institution, func() {
			r.font("B", sizeSubsection)
			r.text(marginLeft, r.enc(edu.Institution))
			if edu.Score != "" {
				r.rightText(r.enc(string(edu.ScoreType) + ": " + edu.Score))
			}
			r.y += lineHeight

			r.font("I", sizeBody)
			r.text(marginLeft, r.enc(degreeLine(edu)))
			if years := yearsLine(edu); years != "" {
				r.font("", sizeBody)
				r.rightText(r.enc(years))
			}
			r.y += 6
		})
	}
	r.y += 2
}

// degreeLine is "<degree> in <field>", or whichever half is present
func degreeLine(edu types.Education) string {
	switch {
	case edu.Degree != "" && edu.Field != "":
		return edu.Degree + " in " + edu.Field
	case edu.Degree != "":
		return edu.Degree
	default:
		return edu.Field
	}
}

func yearsLine(edu types.Education) string {
	if edu.StartYear == "" && edu.EndYear == "" {
		return ""
	}
	return edu.StartYear + " - " + edu.EndYear
}

func (r *pdfRenderer) skills(skills types.TechnicalSkills) {
	lines := SkillLines(skills)
	if len(lines) == 0 {
		return
	}
	r.sectionTitle(SectionSkills, itemMin)

	for _, line := range lines {
		r.font("B", sizeBody)
		label := r.enc(line.Label + ": ")
		labelWidth := r.width(label)
		r.font("", sizeBody)
		wrapped := r.wrap(line.Value, contentWidth-labelWidth)

		r.checkPageBreak(min(itemMin, lineHeight*float64(max(len(wrapped), 1))))
		r.record(SectionSkills, line.Label, func() {
			r.font("B", sizeBody)
			r.text(marginLeft, label)

			r.font("", sizeBody)
			if len(wrapped) == 0 {
				r.y += lineHeight
			}
			for i, l := range wrapped {
				if i > 0 {
					r.checkPageBreak(lineHeight)
				}
				r.text(marginLeft+labelWidth, l)
				r.y += lineHeight
			}
		})
	}
	r.y++
}

func (r *pdfRenderer) projectHeight(p types.Project) float64 {
	h := lineHeight
	if p.Technologies != "" {
		r.font("I", sizeSmall)
		h += smallLineHeight * float64(len(r.wrap(p.Technologies, contentWidth)))
	}
	if p.Links != "" {
		h += lineHeight
	}
	r.font("", sizeBody)
	for _, desc := range p.Description {
		if desc != "" {
			h += lineHeight * float64(len(r.wrap(desc, contentWidth-textIndent)))
		}
	}
	return h + 2
}

func (r *pdfRenderer) projects(items []types.Project) {
	if len(items) == 0 {
		return
	}
	r.sectionTitle(SectionProjects, r.projectHeight(items[0]))

	for _, p := range items {
		r.reserve(r.projectHeight(p), projectMin)
		r.record(SectionProjects, p.Title, func() {
			r.font("B", sizeSubsection)
			r.text(marginLeft, r.enc(p.Title))
			if p.Year != "" {
				r.font("I", sizeSmall)
				r.rightText(r.enc(p.Year))
			}
			r.y += lineHeight

			if p.Technologies != "" {
				r.font("I", sizeSmall)
				for _, l := range r.wrap(p.Technologies, contentWidth) {
					r.checkPageBreak(smallLineHeight)
					r.text(marginLeft, l)
					r.y += smallLineHeight
				}
			}

			if p.Links != "" {
				r.checkPageBreak(lineHeight)
				r.font("", sizeSmall)
				r.link(marginLeft, r.enc(p.Links), linkTarget(p.Links))
				r.y += lineHeight
			}

			r.font("", sizeBody)
			for _, desc := range p.Description {
				if desc == "" {
					continue
				}
				wrapped := r.wrap(desc, contentWidth-textIndent)
				r.checkPageBreak(min(itemMin, lineHeight*float64(len(wrapped))))
				r.text(marginLeft+bulletIndent, r.enc("•"))
				for i, l := range wrapped {
					if i > 0 {
						r.checkPageBreak(lineHeight)
					}
					r.text(marginLeft+textIndent, l)
					r.y += lineHeight
				}
			}
			r.y += 2
		})
	}
	r.y++
}

// linkTarget returns links when it is a single absolute URL, otherwise ""
func linkTarget(links string) string {
	links = strings.TrimSpace(links)
	if strings.ContainsAny(links, " \t\n") {
		return ""
	}
	if strings.HasPrefix(links, "https://") || strings.HasPrefix(links, "http://") {
		return links
	}
	return ""
}

func (r *pdfRenderer) certifications(items []types.Certification) {
	if len(items) == 0 {
		return
	}
	r.sectionTitle(SectionCertifications, itemMin)

	r.font("", sizeBody)
	for _, cert := range items {
		r.checkPageBreak(itemMin)
		r.record(SectionCertifications, cert.Title, func() {
			r.text(marginLeft+bulletIndent, r.enc("•"))
			title := r.enc(cert.Title)
			r.text(marginLeft+textIndent, title)
			if cert.Link != "" {
				r.link(marginLeft+textIndent+r.width(title), r.enc(" (View)"), cert.Link)
			}
			r.y += lineHeight
		})
	}
	r.y++
}

func (r *pdfRenderer) achievementHeight(a types.Achievement) float64 {
	h := lineHeight
	if a.Description != "" {
		r.font("", sizeBody)
		h += lineHeight * float64(len(r.wrap(a.Description, contentWidth)))
	}
	return h + 2
}

func (r *pdfRenderer) achievements(items []types.Achievement) {
	if len(items) == 0 {
		return
	}
	r.sectionTitle(SectionAchievements, r.achievementHeight(items[0]))

	for _, a := range items {
		r.reserve(r.achievementHeight(a), achievementMin)
		r.record(SectionAchievements, a.Title, func() {
			r.font("B", sizeSubsection)
			r.text(marginLeft, r.enc(a.Title))
			if a.Year != "" {
				r.font("I", sizeSmall)
				r.rightText(r.enc(a.Year))
			}
			r.y += lineHeight

			if a.Description != "" {
				r.font("", sizeBody)
				for _, l := range r.wrap(a.Description, contentWidth) {
					r.checkPageBreak(lineHeight)
					r.text(marginLeft, l)
					r.y += lineHeight
				}
			}
			r.y += 2
		})
	}
}
