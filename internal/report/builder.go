package report

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/rollcall/internal/attendance"
	"github.com/nao1215/rollcall/internal/config"
)

// Section names of the assembled report.
const (
	SectionCover       = "cover"
	SectionDescription = "description"
	SectionTable       = "table"
)

// DateLayout is the format of the date on the cover page.
const DateLayout = "02/01/2006"

// coverSpacer is the gap between the cover title and subtitle.
const coverSpacer = A4Width/2 - 7

// Builder assembles report documents from attendance tables.
type Builder struct {
	tmpl  config.Template
	now   func() time.Time
	upper cases.Caser
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClock sets the clock used for the cover date.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// NewBuilder creates a Builder that fills the report with tmpl. Empty
// template fields fall back to the built-in texts.
func NewBuilder(tmpl config.Template, opts ...BuilderOption) *Builder {
	b := &Builder{
		tmpl:  tmpl.WithDefaults(),
		now:   time.Now,
		upper: cases.Upper(language.BrazilianPortuguese),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles the cover page, the description page and the table page.
func (b *Builder) Build(table *attendance.Table) *Document {
	return &Document{
		Sections: []Section{
			b.cover(),
			b.description(),
			b.table(table.Records()),
		},
	}
}

func (b *Builder) cover() Section {
	return Section{
		Name: SectionCover,
		Elements: []Element{
			Paragraph{Text: b.tmpl.Institution, Style: StyleTitleBoldCentered},
			Spacer{Height: coverSpacer},
			Paragraph{Text: b.tmpl.Subtitle, Style: StyleTitleCentered},
			Spacer{Height: coverSpacer - 5},
			Paragraph{Text: b.now().Format(DateLayout), Style: StyleTitleCentered},
			PageBreak{},
		},
	}
}

func (b *Builder) description() Section {
	return Section{
		Name: SectionDescription,
		Elements: []Element{
			Paragraph{Text: b.upper.String(b.tmpl.DescriptionHeading), Style: StyleTitleCentered},
			Paragraph{Text: b.tmpl.Description, Style: StyleBody},
			PageBreak{},
		},
	}
}

func (b *Builder) table(records [][]string) Section {
	return Section{
		Name: SectionTable,
		Elements: []Element{
			Paragraph{Text: b.tmpl.TableHeading, Style: StyleBody},
			Spacer{Height: 2 * Centimeter},
			Grid{Rows: records},
			PageBreak{},
		},
	}
}
