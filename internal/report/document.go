package report

// Element is one block of a Document.
type Element interface {
	element()
}

// Paragraph is a block of text laid out with a named style.
type Paragraph struct {
	Text  string
	Style string
}

// Spacer is vertical blank space, in points.
type Spacer struct {
	Height float64
}

// Grid is a table of text cells. The first row is the header.
type Grid struct {
	Rows [][]string
}

// PageBreak ends the current page.
type PageBreak struct{}

func (Paragraph) element() {}
func (Spacer) element()    {}
func (Grid) element()      {}
func (PageBreak) element() {}

// Section is a named, ordered group of elements.
type Section struct {
	Name     string
	Elements []Element
}

// Document is the assembled report.
type Document struct {
	Sections []Section
}

// Elements returns the elements of all sections in order.
func (d *Document) Elements() []Element {
	var out []Element
	for _, s := range d.Sections {
		out = append(out, s.Elements...)
	}
	return out
}

// Section returns the section with the given name.
func (d *Document) Section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Pages returns the number of pages the document breaks into: one per
// page break, plus one when elements follow the last break.
func (d *Document) Pages() int {
	pages := 0
	open := false
	for _, e := range d.Elements() {
		if _, ok := e.(PageBreak); ok {
			pages++
			open = false
			continue
		}
		open = true
	}
	if open {
		pages++
	}
	return pages
}
