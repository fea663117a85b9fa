package ingestion

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// RowReader streams data rows out of an uploaded CSV. The delimiter is
// detected from the header line (tab beats comma beats whitespace), fields
// are trimmed, and blank lines are skipped without consuming a row number.
// Whitespace-delimited input splits on runs of spaces; such files cannot
// carry empty cells.
type RowReader struct {
	reader  *csv.Reader
	scanner *bufio.Scanner
	headers []string
}

func NewRowReader(r io.Reader) (*RowReader, error) {
	buffered := bufio.NewReader(r)

	headerLine, err := buffered.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	headerLine = strings.TrimRight(headerLine, "\r\n")
	if headerLine == "" {
		return nil, errors.New("csv file has no header line")
	}

	delim := detectCSVDelimiter(headerLine)

	// encoding/csv treats every single space as a separator, which turns a
	// run of spaces into phantom empty columns. Whitespace-delimited input is
	// read line by line instead.
	if delim == ' ' {
		return &RowReader{
			scanner: bufio.NewScanner(buffered),
			headers: strings.Fields(headerLine),
		}, nil
	}

	headerReader := csv.NewReader(strings.NewReader(headerLine))
	headerReader.Comma = delim
	headerReader.FieldsPerRecord = -1
	headers, err := headerReader.Read()
	if err != nil {
		return nil, err
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	body := csv.NewReader(buffered)
	body.Comma = delim
	body.FieldsPerRecord = -1
	body.TrimLeadingSpace = true

	return &RowReader{reader: body, headers: headers}, nil
}

func (r *RowReader) Headers() []string {
	return r.headers
}

// Next returns the next data row, with io.EOF ending the stream.
func (r *RowReader) Next() ([]string, error) {
	if r.scanner != nil {
		return r.nextWhitespace()
	}

	for {
		cells, err := r.reader.Read()
		if err != nil {
			return nil, err
		}

		blank := true
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
			if cells[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}

		return cells, nil
	}
}

func (r *RowReader) nextWhitespace() ([]string, error) {
	for r.scanner.Scan() {
		cells := strings.Fields(r.scanner.Text())
		if len(cells) == 0 {
			continue
		}
		return cells, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func detectCSVDelimiter(line string) rune {
	switch {
	case strings.ContainsRune(line, '\t'):
		return '\t'
	case strings.ContainsRune(line, ','):
		return ','
	default:
		return ' '
	}
}
