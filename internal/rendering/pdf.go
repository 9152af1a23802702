package rendering

import (
	"bytes"
	"log"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/ats-resume-builder/internal/types"
)

// Page geometry and type sizes in points.
const (
	margin       = 40.0
	lineHeight   = 12.0
	bulletIndent = 5.0
	footerOffset = 20.0

	sizeH1    = 22.0
	sizeH2    = 12.0
	sizeBody  = 10.0
	sizeSmall = 8.0

	fontFamily = "Helvetica"
)

// Section titles in layout order.
const (
	SectionSummary    = "Professional Summary"
	SectionExperience = "Experience"
	SectionEducation  = "Education"
	SectionProjects   = "Projects"
	SectionAdditional = "Additional Information"
	SectionSkills     = "Skills"
)

const (
	contactSeparator = " • "
	skillSeparator   = "  •  "
	bulletPrefix     = "•  "
)

type rgb struct{ r, g, b int }

var (
	colorPrimary = rgb{0x08, 0x91, 0xb2}
	colorText    = rgb{0x33, 0x41, 0x55}
	colorMuted   = rgb{0x64, 0x74, 0x8b}
	colorLine    = rgb{0xcb, 0xd5, 0xe1}
)

// Options controls output details that do not change the layout.
type Options struct {
	// Uncompressed leaves page content streams as plain text.
	Uncompressed bool
	// CreationDate is written to the document info; zero means now.
	CreationDate time.Time
}

// ExportDocument lays out resume under a header built from contact and returns the PDF.
func ExportDocument(resume *types.StructuredResume, contact types.ContactInfo) (*Document, error) {
	return Export(resume, contact, Options{})
}

// Export is ExportDocument with explicit options.
//
// Sections are Summary, Experience, Education, Projects, Additional Information
// (only when present) and Skills. Every block is preceded by a page-break check
// and every page gets a "Name | Page X of N" footer once the page count is known.
func Export(resume *types.StructuredResume, contact types.ContactInfo, opts Options) (*Document, error) {
	if resume == nil {
		return nil, &RenderError{Message: "no resume to export"}
	}

	l := newLayout(opts)
	l.pdf.SetTitle(contact.FullName+" Resume", true)
	l.pdf.SetAuthor(contact.FullName, true)

	l.header(contact)

	l.section(SectionSummary, func() {
		l.block(l.wrap(resume.Summary, l.usableWidth()), margin)
	})

	l.section(SectionExperience, func() {
		for _, exp := range resume.Experience {
			l.experience(exp)
		}
	})

	l.section(SectionEducation, func() {
		for _, edu := range resume.Education {
			l.education(edu)
		}
	})

	l.section(SectionProjects, func() {
		for _, proj := range resume.Projects {
			l.project(proj)
		}
	})

	if resume.AdditionalInformation.Present() {
		l.section(SectionAdditional, func() {
			for _, info := range resume.AdditionalInformation.Items() {
				l.bullet(info)
			}
		})
	}

	l.section(SectionSkills, func() {
		l.block(l.wrap(strings.Join(resume.Skills, skillSeparator), l.usableWidth()), margin)
	})

	footers := l.stampFooters(contact.FullName)
	if len(l.unsupported) > 0 {
		log.Printf("[export] %d character(s) outside the %s code page were printed as '.': %q",
			len(l.unsupported), fontFamily, string(l.unsupported))
	}

	var buf bytes.Buffer
	if err := l.pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to write PDF", Cause: err}
	}

	return &Document{
		Filename:    Filename(contact.FullName),
		Data:        buf.Bytes(),
		Pages:       len(footers),
		Footers:     footers,
		Outline:     l.outline,
		Unsupported: l.unsupported,
	}, nil
}

// layout carries the vertical cursor through a single document.
type layout struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	// unsupported lists, in first-seen order, runes the core font cannot show.
	unsupported []rune
	seen        map[rune]bool
	pageWidth   float64
	pageHeight  float64
	y           float64
	outline     []OutlineEntry
}

func newLayout(opts Options) *layout {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(!opts.Uncompressed)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetCellMargin(0)
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
	}
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	width, height := pdf.GetPageSize()
	return &layout{
		pdf:        pdf,
		translate:  translate,
		pageWidth:  width,
		pageHeight: height,
		y:          margin,
	}
}

func (l *layout) usableWidth() float64 {
	return l.pageWidth - 2*margin
}

func (l *layout) usableHeight() float64 {
	return l.pageHeight - 2*margin
}

// checkPageBreak starts a new page when a block of height h does not fit below y.
func (l *layout) checkPageBreak(h float64) {
	if l.y+h > l.pageHeight-margin {
		l.pdf.AddPage()
		l.y = margin
	}
}

func (l *layout) font(style string, size float64) {
	l.pdf.SetFont(fontFamily, style, size)
}

func (l *layout) color(c rgb) {
	l.pdf.SetTextColor(c.r, c.g, c.b)
}

func (l *layout) text(x, y float64, s string) {
	l.pdf.Text(x, y, l.encode(s))
}

func (l *layout) centered(y float64, s string) {
	encoded := l.encode(s)
	width := l.pdf.GetStringWidth(encoded)
	l.pdf.Text(l.pageWidth/2-width/2, y, encoded)
}

// encode converts s to the font's code page, recording runes it had to drop.
// The translator emits exactly one byte per rune and '.' for unmapped ones.
func (l *layout) encode(s string) string {
	encoded := l.translate(s)
	i := 0
	for _, r := range s {
		if r >= 0x80 && encoded[i] == '.' && !l.seen[r] {
			if l.seen == nil {
				l.seen = make(map[rune]bool)
			}
			l.seen[r] = true
			l.unsupported = append(l.unsupported, r)
		}
		i++
	}
	return encoded
}

// wrap splits s into lines no wider than width in the current font.
// The returned lines are already in the font's code page.
func (l *layout) wrap(s string, width float64) []string {
	raw := l.pdf.SplitLines([]byte(l.encode(s)), width)
	if len(raw) == 0 {
		return []string{""}
	}
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = string(line)
	}
	return lines
}

// block draws pre-wrapped lines starting at y. A block that fits on one page
// is kept together; a taller one breaks between lines.
func (l *layout) block(lines []string, x float64) {
	h := float64(len(lines)) * lineHeight
	if h <= l.usableHeight() {
		l.checkPageBreak(h)
	}
	for _, line := range lines {
		l.checkPageBreak(lineHeight)
		l.pdf.Text(x, l.y, line)
		l.y += lineHeight
	}
}

func (l *layout) bullet(s string) {
	lines := l.wrap(bulletPrefix+s, l.usableWidth()-bulletIndent)
	l.checkPageBreak(float64(len(lines))*lineHeight + 4)
	l.block(lines, margin+bulletIndent)
	l.y += 4
}

func (l *layout) header(contact types.ContactInfo) {
	l.font("B", sizeH1)
	l.color(colorText)
	l.centered(l.y, contact.FullName)
	l.y += 25

	l.font("", sizeBody)
	l.color(colorMuted)
	l.centered(l.y, strings.Join([]string{contact.Email, contact.Phone, contact.LinkedInURL}, contactSeparator))
	l.y += 30
}

func (l *layout) section(title string, body func()) {
	l.checkPageBreak(40)

	l.outline = append(l.outline, OutlineEntry{Title: title, Page: l.pdf.PageNo()})
	l.pdf.Bookmark(l.encode(title), 0, l.y-sizeH2)

	l.font("B", sizeH2)
	l.color(colorPrimary)
	l.text(margin, l.y, strings.ToUpper(title))
	l.pdf.SetDrawColor(colorLine.r, colorLine.g, colorLine.b)
	l.pdf.Line(margin, l.y+3, l.pageWidth-margin, l.y+3)
	l.y += 20

	l.font("", sizeBody)
	l.color(colorText)
	body()
	l.y += 20
}

func (l *layout) experience(exp types.Experience) {
	l.checkPageBreak(60)
	l.font("B", sizeBody)
	l.text(margin, l.y, exp.Role)
	l.font("", sizeBody)
	l.text(margin, l.y+12, exp.Company+" | "+exp.Duration)
	l.y += 28

	for _, achievement := range exp.Achievements {
		l.bullet(achievement)
	}
	l.y += 10
}

func (l *layout) education(edu types.Education) {
	l.checkPageBreak(40)
	l.font("B", sizeBody)
	l.text(margin, l.y, edu.Degree+" - "+edu.Year)
	l.font("", sizeBody)
	l.text(margin, l.y+12, edu.Institution)

	if edu.Details == "" {
		l.y += 24
		return
	}
	l.font("I", sizeBody)
	l.text(margin, l.y+24, edu.Details)
	l.font("", sizeBody)
	l.y += 36
}

func (l *layout) project(proj types.Project) {
	l.checkPageBreak(40)
	l.font("B", sizeBody)
	l.text(margin, l.y, proj.Title)
	l.y += 14

	l.font("", sizeBody)
	l.block(l.wrap(proj.Description, l.usableWidth()), margin)
	l.y += 8
}

// stampFooters revisits every page once the total is known.
func (l *layout) stampFooters(fullName string) []string {
	total := l.pdf.PageCount()
	footers := make([]string, 0, total)

	for page := 1; page <= total; page++ {
		l.pdf.SetPage(page)
		footer := FooterText(fullName, page, total)
		l.font("", sizeSmall)
		l.color(colorMuted)
		l.centered(l.pageHeight-footerOffset, footer)
		footers = append(footers, footer)
	}
	return footers
}
