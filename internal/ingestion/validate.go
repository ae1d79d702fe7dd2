package ingestion

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rpattn/adstats/internal/domain"
	"github.com/shopspring/decimal"
)

// ParsedRow is one accepted data row, fully normalized and typed.
type ParsedRow struct {
	Year        int
	Advertiser  string
	Brand       string
	StartDate   time.Time
	EndDate     time.Time
	FormatType  string
	Platform    string
	Impressions decimal.NullDecimal
}

// Result is the uniform outcome of parsing and validating one file. Either
// OK is false and ErrKind/ErrMessage classify a file-level failure, or OK
// is true with the accepted rows; success and a non-empty skip list can
// coexist.
type Result struct {
	OK         bool
	Rows       []ParsedRow
	Skipped    []domain.SkippedRow
	ErrKind    domain.ErrorKind
	ErrMessage string
}

// fileFailure is the file-level failure variant: it aborts the whole upload,
// unlike a row skip which only drops one row. Keeping the two severities as
// distinct types prevents call sites from confusing them.
type fileFailure struct {
	kind    domain.ErrorKind
	message string
}

func failResult(f *fileFailure) Result {
	return Result{OK: false, ErrKind: f.kind, ErrMessage: f.message}
}

// ParseAndValidate reads raw file bytes, reconciles column names, validates
// every row, and returns a classified result. No failure escapes as an
// error: unreadable files, structural problems, and bad rows all come back
// as classified results.
func ParseAndValidate(content []byte, filename string) Result {
	table, err := readTable(content, filename)
	if err != nil {
		return failResult(&fileFailure{kind: domain.ErrorKindFormat, message: err.Error()})
	}

	columns := normalizeColumns(table.rawHeaders)

	rows, skipped, failure := validateTable(table, columns)
	if failure != nil {
		return failResult(failure)
	}

	return Result{OK: true, Rows: rows, Skipped: skipped}
}

// validateTable applies the structural checks and the per-row pass. The
// blank-date scan runs over all rows before any row is accepted: blank
// required dates mean the table itself is invalid, not a single bad record.
func validateTable(table tableData, columns columnMap) ([]ParsedRow, []domain.SkippedRow, *fileFailure) {
	if len(table.rows) == 0 {
		return nil, nil, &fileFailure{
			kind:    domain.ErrorKindStructure,
			message: "The file contains no data.",
		}
	}

	var missing []string
	for _, field := range []string{fieldStart, fieldEnd} {
		if !columns.has(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, nil, &fileFailure{
			kind:    domain.ErrorKindRequiredColumns,
			message: fmt.Sprintf("Missing required columns: %s.", strings.Join(missing, ", ")),
		}
	}

	for _, row := range table.rows {
		if columns.value(row, fieldStart) == "" || columns.value(row, fieldEnd) == "" {
			return nil, nil, &fileFailure{
				kind:    domain.ErrorKindEmptyDates,
				message: "The Start and End columns must not be empty. The table is invalid.",
			}
		}
	}

	var accepted []ParsedRow
	var skipped []domain.SkippedRow

	for idx, row := range table.rows {
		// Physical row in the file: data index + header line + 1-indexing.
		rowNum := idx + 2

		rawStart := columns.value(row, fieldStart)
		rawEnd := columns.value(row, fieldEnd)

		start, ok := ParseDate(rawStart)
		if !ok {
			skipped = append(skipped, domain.SkippedRow{
				RowNum: rowNum,
				Reason: domain.SkipInvalidStart,
				Detail: fmt.Sprintf("invalid Start format (value: %q)", rawStart),
			})
			continue
		}

		end, ok := ParseDate(rawEnd)
		if !ok {
			skipped = append(skipped, domain.SkippedRow{
				RowNum: rowNum,
				Reason: domain.SkipInvalidEnd,
				Detail: fmt.Sprintf("invalid End format (value: %q)", rawEnd),
			})
			continue
		}

		if start.After(end) {
			skipped = append(skipped, domain.SkippedRow{
				RowNum: rowNum,
				Reason: domain.SkipStartAfterEnd,
				Detail: fmt.Sprintf("Start (%s) is later than End (%s)",
					start.Format("2006-01-02"), end.Format("2006-01-02")),
			})
			continue
		}

		parsed := ParsedRow{
			Year:       start.Year(),
			Advertiser: columns.value(row, fieldAdvertiser),
			Brand:      columns.value(row, fieldBrand),
			StartDate:  start,
			EndDate:    end,
			FormatType: columns.value(row, fieldFormat),
			Platform:   columns.value(row, fieldPlatform),
		}
		if columns.has(fieldImpressions) {
			if impressions, ok := ParseNumber(columns.value(row, fieldImpressions)); ok {
				parsed.Impressions = decimal.NewNullDecimal(impressions)
			}
		}

		accepted = append(accepted, parsed)
	}

	return accepted, skipped, nil
}
