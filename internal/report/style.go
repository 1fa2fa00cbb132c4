package report

import (
	"fmt"
)

// Page geometry in points.
const (
	// A4Width and A4Height are the A4 page size (210 x 297 mm).
	A4Width  = 595.2755905511812
	A4Height = 841.8897637795277

	// Centimeter is one centimeter in points.
	Centimeter = 28.346456692913385

	// PageMargin is the margin on every side of the page (one inch).
	PageMargin = 72.0
)

// Style names.
const (
	StyleNormal            = "Normal"
	StyleTitleBoldCentered = "titulo-central-negrito"
	StyleTitleCentered     = "titulo-central"
	StyleBody              = "corpo-do-texto"
)

// Alignment is the horizontal alignment of a paragraph.
type Alignment int

const (
	// AlignLeft aligns text to the left margin.
	AlignLeft Alignment = iota

	// AlignCenter centers text between the margins.
	AlignCenter
)

// pdfAlign returns the fpdf alignment string.
func (a Alignment) pdfAlign() string {
	if a == AlignCenter {
		return "C"
	}
	return "L"
}

// Style describes how a paragraph is set.
type Style struct {
	Name       string
	FontFamily string
	FontSize   float64
	Leading    float64
	Bold       bool
	Alignment  Alignment
}

// StyleSheet is a set of named paragraph styles.
type StyleSheet struct {
	styles map[string]Style
}

// DefaultStyleSheet returns the report styles: Normal is Times 12 pt with
// a leading of 18 pt, and the three named styles derive from it.
func DefaultStyleSheet() *StyleSheet {
	normal := Style{
		Name:       StyleNormal,
		FontFamily: "Times",
		FontSize:   12,
		Leading:    12 * 1.5,
		Alignment:  AlignLeft,
	}

	s := &StyleSheet{styles: map[string]Style{StyleNormal: normal}}
	s.mustDerive(StyleTitleBoldCentered, StyleNormal, func(st *Style) {
		st.Bold = true
		st.Alignment = AlignCenter
	})
	s.mustDerive(StyleTitleCentered, StyleNormal, func(st *Style) {
		st.Alignment = AlignCenter
	})
	s.mustDerive(StyleBody, StyleNormal, func(st *Style) {
		st.Alignment = AlignLeft
	})
	return s
}

// Derive adds a style named name that starts as a copy of parent and is
// then modified by edit.
func (s *StyleSheet) Derive(name, parent string, edit func(*Style)) error {
	if _, exists := s.styles[name]; exists {
		return fmt.Errorf("style %q already defined", name)
	}
	base, ok := s.styles[parent]
	if !ok {
		return fmt.Errorf("unknown parent style %q", parent)
	}
	base.Name = name
	if edit != nil {
		edit(&base)
	}
	s.styles[name] = base
	return nil
}

func (s *StyleSheet) mustDerive(name, parent string, edit func(*Style)) {
	if err := s.Derive(name, parent, edit); err != nil {
		panic(err)
	}
}

// Get returns the named style; unknown names fall back to Normal.
func (s *StyleSheet) Get(name string) Style {
	if st, ok := s.styles[name]; ok {
		return st
	}
	return s.styles[StyleNormal]
}
