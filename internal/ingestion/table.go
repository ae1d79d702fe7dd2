package ingestion

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// delimiterCandidates are tried when sniffing a CSV delimiter, comma first.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// tableData is the uniform tabular structure both readers produce: the raw
// header labels and the data rows padded to header width.
type tableData struct {
	rawHeaders []string
	rows       [][]string
}

// readTable selects a reader by file extension: ".csv" goes to the
// delimiter-sniffing text reader, anything else to the spreadsheet reader.
func readTable(content []byte, filename string) (tableData, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return readCSV(content)
	}
	return readWorkbook(content)
}

func readCSV(content []byte) (tableData, error) {
	reader := bufio.NewReader(bytes.NewReader(content))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = sniffDelimiter(content)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return tableData{}, fmt.Errorf("failed to read csv: %w", err)
	}

	return normalizeTable(records)
}

func readWorkbook(content []byte) (tableData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return tableData{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return tableData{}, errors.New("workbook has no sheets")
	}

	// First sheet only.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return tableData{}, fmt.Errorf("failed to read rows from workbook: %w", err)
	}

	return normalizeTable(rows)
}

// sniffDelimiter picks the candidate delimiter occurring most often on the
// first line, defaulting to comma. Characters inside double-quoted fields
// are field content, not delimiters, and are not counted.
func sniffDelimiter(content []byte) rune {
	line := content
	if idx := bytes.IndexByte(content, '\n'); idx >= 0 {
		line = content[:idx]
	}

	counts := make(map[rune]int, len(delimiterCandidates))
	inQuotes := false
	for _, r := range string(line) {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		if isDelimiterCandidate(r) {
			counts[r]++
		}
	}

	best := ','
	bestCount := 0
	for _, candidate := range delimiterCandidates {
		if counts[candidate] > bestCount {
			best = candidate
			bestCount = counts[candidate]
		}
	}
	return best
}

func isDelimiterCandidate(r rune) bool {
	for _, candidate := range delimiterCandidates {
		if r == candidate {
			return true
		}
	}
	return false
}

// normalizeTable splits raw records into a header row and data rows. The
// first non-empty row is the header; fully blank rows are dropped and data
// rows are padded to header width.
func normalizeTable(records [][]string) (tableData, error) {
	var headerRow []string
	var dataRows [][]string

	for _, row := range records {
		if isBlankRow(row) {
			continue
		}
		if headerRow == nil {
			headerRow = row
			continue
		}
		dataRows = append(dataRows, padRow(row, len(headerRow)))
	}

	rawHeaders := make([]string, len(headerRow))
	for i, value := range headerRow {
		rawHeaders[i] = strings.TrimSpace(value)
	}

	return tableData{
		rawHeaders: rawHeaders,
		rows:       dataRows,
	}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func padRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	padded := make([]string, length)
	copy(padded, row)
	return padded
}
