package report

import (
	"io"

	"github.com/nao1215/markdown"
)

// MarkdownRenderer renders documents as Markdown.
// Paragraph styles map to headings: the bold title becomes H1, centered
// titles become H2 and body text stays plain. Page breaks become
// horizontal rules and spacers are dropped.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render writes doc to w as Markdown.
func (r *MarkdownRenderer) Render(doc *Document, w io.Writer) error {
	md := markdown.NewMarkdown(w)

	for _, e := range doc.Elements() {
		switch el := e.(type) {
		case Paragraph:
			r.writeParagraph(md, el)
		case Grid:
			r.writeGrid(md, el)
		case PageBreak:
			md.HorizontalRule()
			md.PlainText("")
		case Spacer:
			// Vertical space has no Markdown equivalent.
		}
	}

	return md.Build()
}

func (r *MarkdownRenderer) writeParagraph(md *markdown.Markdown, p Paragraph) {
	switch p.Style {
	case StyleTitleBoldCentered:
		md.H1(p.Text)
	case StyleTitleCentered:
		md.H2(p.Text)
	default:
		md.PlainText(p.Text)
	}
	md.PlainText("")
}

func (r *MarkdownRenderer) writeGrid(md *markdown.Markdown, g Grid) {
	if len(g.Rows) == 0 {
		return
	}
	md.Table(markdown.TableSet{
		Header: g.Rows[0],
		Rows:   g.Rows[1:],
	})
	md.PlainText("")
}
