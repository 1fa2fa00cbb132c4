package report

import (
	"testing"
	"time"

	"github.com/nao1215/rollcall/internal/attendance"
	"github.com/nao1215/rollcall/internal/config"
)

func sampleTable() *attendance.Table {
	return &attendance.Table{
		Header: []string{"Nome", "Presencas", "Faltas"},
		Rows: []attendance.Row{
			{{Value: "Ana"}, {Value: "18"}, {Value: "2"}},
			{{Value: "Bruno"}, {Value: "20"}, {Value: "0"}},
			{{Value: "Célia"}, {Value: "15"}, {Value: "5"}},
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 7, 10, 30, 0, 0, time.UTC)
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	doc := NewBuilder(config.DefaultTemplate(), WithClock(fixedClock)).Build(sampleTable())

	t.Run("sections in order", func(t *testing.T) {
		t.Parallel()

		want := []string{SectionCover, SectionDescription, SectionTable}
		if len(doc.Sections) != len(want) {
			t.Fatalf("expected %d sections, got %d", len(want), len(doc.Sections))
		}
		for i, name := range want {
			if doc.Sections[i].Name != name {
				t.Errorf("section %d: expected %q, got %q", i, name, doc.Sections[i].Name)
			}
		}
	})

	t.Run("every section ends with a page break", func(t *testing.T) {
		t.Parallel()

		for _, s := range doc.Sections {
			last := s.Elements[len(s.Elements)-1]
			if _, ok := last.(PageBreak); !ok {
				t.Errorf("section %q ends with %T", s.Name, last)
			}
		}
		if doc.Pages() != 3 {
			t.Errorf("expected 3 pages, got %d", doc.Pages())
		}
	})

	t.Run("cover layout", func(t *testing.T) {
		t.Parallel()

		cover, _ := doc.Section(SectionCover)
		if len(cover.Elements) != 6 {
			t.Fatalf("expected 6 cover elements, got %d", len(cover.Elements))
		}

		title := cover.Elements[0].(Paragraph)
		if title.Text != config.DefaultInstitution || title.Style != StyleTitleBoldCentered {
			t.Errorf("unexpected title: %+v", title)
		}

		first := cover.Elements[1].(Spacer)
		second := cover.Elements[3].(Spacer)
		if first.Height != A4Width/2-7 {
			t.Errorf("unexpected first spacer %v", first.Height)
		}
		if second.Height != first.Height-5 {
			t.Errorf("unexpected second spacer %v", second.Height)
		}

		subtitle := cover.Elements[2].(Paragraph)
		if subtitle.Text != config.DefaultSubtitle || subtitle.Style != StyleTitleCentered {
			t.Errorf("unexpected subtitle: %+v", subtitle)
		}
	})

	t.Run("cover date is dd/mm/yyyy", func(t *testing.T) {
		t.Parallel()

		cover, _ := doc.Section(SectionCover)
		date := cover.Elements[4].(Paragraph)
		if date.Text != "07/03/2024" {
			t.Errorf("expected 07/03/2024, got %q", date.Text)
		}
	})

	t.Run("description heading is upper case", func(t *testing.T) {
		t.Parallel()

		desc, _ := doc.Section(SectionDescription)
		heading := desc.Elements[0].(Paragraph)
		if heading.Text != "OBSERVAÇÕES SOBRE A AUTOMAÇÃO E O RELATÓRIO" {
			t.Errorf("unexpected heading %q", heading.Text)
		}
		body := desc.Elements[1].(Paragraph)
		if body.Style != StyleBody || body.Text != config.DefaultDescription {
			t.Errorf("unexpected body: %+v", body)
		}
	})

	t.Run("grid has header plus one row per record", func(t *testing.T) {
		t.Parallel()

		tbl, _ := doc.Section(SectionTable)
		heading := tbl.Elements[0].(Paragraph)
		if heading.Text != "Frequencia dos alunos" {
			t.Errorf("unexpected table heading %q", heading.Text)
		}
		if sp := tbl.Elements[1].(Spacer); sp.Height != 2*Centimeter {
			t.Errorf("expected 2 cm spacer, got %v", sp.Height)
		}

		grid := tbl.Elements[2].(Grid)
		if len(grid.Rows) != sampleTable().Len()+1 {
			t.Fatalf("expected %d rows, got %d", sampleTable().Len()+1, len(grid.Rows))
		}
		if grid.Rows[0][0] != "Nome" || grid.Rows[3][0] != "Célia" {
			t.Errorf("unexpected grid rows: %v", grid.Rows)
		}
	})
}

func TestBuilder_TemplateOverrides(t *testing.T) {
	t.Parallel()

	tmpl := config.Template{Institution: "ESCOLA MODELO", TableHeading: "Presença"}
	doc := NewBuilder(tmpl, WithClock(fixedClock)).Build(sampleTable())

	cover, _ := doc.Section(SectionCover)
	if got := cover.Elements[0].(Paragraph).Text; got != "ESCOLA MODELO" {
		t.Errorf("expected institution override, got %q", got)
	}
	if got := cover.Elements[2].(Paragraph).Text; got != config.DefaultSubtitle {
		t.Errorf("expected default subtitle, got %q", got)
	}
}

func TestDefaultStyleSheet(t *testing.T) {
	t.Parallel()

	s := DefaultStyleSheet()

	normal := s.Get(StyleNormal)
	if normal.FontFamily != "Times" || normal.FontSize != 12 || normal.Leading != 18 {
		t.Errorf("unexpected Normal style: %+v", normal)
	}

	for _, name := range []string{StyleTitleBoldCentered, StyleTitleCentered, StyleBody} {
		st := s.Get(name)
		if st.Name != name {
			t.Errorf("expected style %q to be defined", name)
		}
		if st.FontSize != normal.FontSize || st.Leading != normal.Leading {
			t.Errorf("style %q does not inherit size from Normal: %+v", name, st)
		}
	}

	if !s.Get(StyleTitleBoldCentered).Bold {
		t.Error("expected bold title style")
	}
	if s.Get(StyleTitleCentered).Alignment != AlignCenter {
		t.Error("expected centered title style")
	}
	if s.Get("missing").Name != StyleNormal {
		t.Error("expected unknown styles to fall back to Normal")
	}
	if err := s.Derive(StyleBody, StyleNormal, nil); err == nil {
		t.Error("expected duplicate style to be rejected")
	}
}
