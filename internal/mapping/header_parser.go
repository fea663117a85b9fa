package mapping

import "strings"

// ParsedHeaders holds the two pasted header lines split into index-aligned
// columns. displayNames[i] and headerCodes[i] always describe the same CSV
// column, including columns that are blank in either line.
type ParsedHeaders struct {
	DisplayNames []string
	HeaderCodes  []string
}

func (p ParsedHeaders) Len() int {
	return len(p.HeaderCodes)
}

// ParseHeaderLines splits the display-name line and the source-code line
// independently and pads the shorter side with empty strings. Dropping empty
// cells would shift every column to the left of the real CSV, so they are
// kept as-is.
func ParseHeaderLines(displayLine, codeLine string) ParsedHeaders {
	displayNames := splitColumns(displayLine)
	headerCodes := splitColumns(codeLine)

	if len(displayNames) < len(headerCodes) {
		displayNames = padColumns(displayNames, len(headerCodes))
	} else if len(headerCodes) < len(displayNames) {
		headerCodes = padColumns(headerCodes, len(displayNames))
	}

	return ParsedHeaders{
		DisplayNames: displayNames,
		HeaderCodes:  headerCodes,
	}
}

// DetectDelimiter picks the column separator of a pasted line: tab wins over
// comma, comma over plain whitespace. Whitespace-delimited lines split on
// runs of spaces, so they cannot carry empty cells.
func DetectDelimiter(line string) rune {
	switch {
	case strings.ContainsRune(line, '\t'):
		return '\t'
	case strings.ContainsRune(line, ','):
		return ','
	default:
		return ' '
	}
}

func splitColumns(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return []string{}
	}

	delim := DetectDelimiter(line)
	if delim == ' ' {
		// A run of spaces is one separator, not a sequence of empty columns.
		return strings.Fields(line)
	}

	cells := strings.Split(line, string(delim))
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}

func padColumns(cells []string, size int) []string {
	padded := make([]string, size)
	copy(padded, cells)
	return padded
}
