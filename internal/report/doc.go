// Package report assembles the attendance report and renders it.
//
// Builder turns an attendance table into a Document: an ordered list of
// sections, each an ordered list of elements (paragraphs, spacers, a grid
// and page breaks). A Document carries no layout engine of its own;
// renderers interpret it.
//
//   - PDFRenderer writes an A4 PDF with the core Times font.
//   - MarkdownRenderer writes the same content as Markdown for previews.
//
// Design decision: We keep the document model independent of the PDF
// library so that the structure of the report (cover, description, table)
// can be tested without parsing PDF output, and so that the preview
// command shares the exact same content.
package report
