package extract

import (
	"regexp"
	"strings"
)

// ContentItem types stored inside a section's content list.
const (
	ItemParagraph       = "paragraph"
	ItemTable           = "table"
	ItemStructuredTable = "structured_table"
)

// Fallback headings used when content appears before any numbered heading.
const (
	headingUntitledSection = "Untitled Section"
	headingUntitledTable   = "Untitled Table"
	headingExtractedTables = "Extracted Tables"
)

// Section is the top-level unit of structured document output: a heading plus
// the content items that follow it in reading order.
type Section struct {
	Heading string        `json:"heading"`
	Content []ContentItem `json:"content"`
}

// ContentItem is a tagged variant: a paragraph, a loose single-row table, or a
// structured table with a header and data rows. Only the fields matching the
// Type are populated.
type ContentItem struct {
	Type       string     `json:"type"`
	Text       string     `json:"text,omitempty"`
	Data       []string   `json:"data,omitempty"`
	TableIndex *int       `json:"tableIndex,omitempty"`
	Headers    []string   `json:"headers,omitempty"`
	Rows       [][]string `json:"rows,omitempty"`
}

// Table is a header row plus data rows recognized by the structured-table pass.
type Table struct {
	Headers []string
	Rows    [][]string
}

var (
	lineRe    = regexp.MustCompile(`[^\r\n]+`)
	headingRe = regexp.MustCompile(`^\s*\d+\.\s*`)
	rowRunRe  = regexp.MustCompile(`\s{2,}`)
	cellRe    = regexp.MustCompile(`\t|\s{2,}`)
)

// Structure segments flat extracted text into sections. A numbered heading
// ("1. Introduction") starts a new section; a line with tabs or runs of two or
// more spaces becomes a loose table row; everything else is a paragraph.
// Content before the first heading lands in an untitled section.
func Structure(text string) []Section {
	sections := []Section{}
	var current *Section

	push := func(heading string) *Section {
		sections = append(sections, Section{Heading: heading, Content: []ContentItem{}})
		return &sections[len(sections)-1]
	}

	for _, line := range lineRe.FindAllString(text, -1) {
		switch {
		case headingRe.MatchString(line):
			current = push(strings.TrimSpace(line))
		case isTableRow(line):
			if current == nil {
				current = push(headingUntitledTable)
			}
			current.Content = append(current.Content, ContentItem{
				Type: ItemTable,
				Data: splitCells(line),
			})
		default:
			if current == nil {
				current = push(headingUntitledSection)
			}
			current.Content = append(current.Content, ContentItem{
				Type: ItemParagraph,
				Text: strings.TrimSpace(line),
			})
		}
	}

	return sections
}

// Tables runs the structured-table pass: consecutive whitespace-delimited rows
// form a block whose first row is the header. A block only becomes a table
// once it has a non-empty header and at least one data row; header-only blocks
// are discarded.
func Tables(text string) []Table {
	tables := []Table{}

	var (
		inTable bool
		headers []string
		rows    [][]string
	)

	flush := func() {
		if len(headers) > 0 && len(rows) > 0 {
			tables = append(tables, Table{Headers: headers, Rows: rows})
		}
		headers = nil
		rows = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isTableRow(line) {
			cells := splitNonEmptyCells(line)
			if !inTable {
				inTable = true
				headers = cells
			} else {
				rows = append(rows, cells)
			}
			continue
		}
		if inTable {
			inTable = false
			flush()
		}
	}
	if inTable {
		flush()
	}

	return tables
}

// StructureDocument combines both passes: the section structure from Structure
// plus, when the table pass found anything, one trailing "Extracted Tables"
// section. Rows that qualify for both passes intentionally appear twice, once
// as loose table items and once inside a structured table.
func StructureDocument(text string) []Section {
	sections := Structure(text)

	tables := Tables(text)
	if len(tables) == 0 {
		return sections
	}

	content := make([]ContentItem, 0, len(tables))
	for i, table := range tables {
		idx := i
		content = append(content, ContentItem{
			Type:       ItemStructuredTable,
			TableIndex: &idx,
			Headers:    table.Headers,
			Rows:       table.Rows,
		})
	}
	return append(sections, Section{Heading: headingExtractedTables, Content: content})
}

// Paragraphs converts extracted text into a flat list of paragraph items, one
// per non-empty line. This is the DOCX path: no headings, no table detection.
func Paragraphs(text string) []ContentItem {
	items := []ContentItem{}
	for _, line := range lineRe.FindAllString(text, -1) {
		items = append(items, ContentItem{
			Type: ItemParagraph,
			Text: strings.TrimSpace(line),
		})
	}
	return items
}

func isTableRow(line string) bool {
	return strings.Contains(line, "\t") || rowRunRe.MatchString(line)
}

// splitCells trims each cell but keeps empty ones, so leading whitespace runs
// still produce a leading empty cell.
func splitCells(line string) []string {
	parts := cellRe.Split(line, -1)
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

func splitNonEmptyCells(line string) []string {
	cells := []string{}
	for _, part := range cellRe.Split(line, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cells = append(cells, trimmed)
		}
	}
	return cells
}
