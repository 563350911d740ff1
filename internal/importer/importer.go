// Package importer provides CSV and Excel import of cabinet lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CabinetCut/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Cabinets []model.JobCabinet
	Errors   []string
	Warnings []string
}

// Job wraps the imported cabinets in a new job cut from m.
func (r ImportResult) Job(name string, m model.Material) model.Job {
	job := model.NewJob(name, m)
	job.Cabinets = append(job.Cabinets, r.Cabinets...)
	return job
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label     int
	Width     int
	Height    int
	Depth     int
	Divisions int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":     {"label", "name", "cabinet", "reference", "ref", "number", "no", "#", "description"},
	"width":     {"width", "w"},
	"height":    {"height", "h"},
	"depth":     {"depth", "d"},
	"divisions": {"divisions", "division", "shelves", "shelf", "shelf count", "div"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only delimiters that split the first row count
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (label, width, height, depth, divisions) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1, Depth: -1, Divisions: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					setOnce(&mapping.Label, i)
				case "width":
					setOnce(&mapping.Width, i)
				case "height":
					setOnce(&mapping.Height, i)
				case "depth":
					setOnce(&mapping.Depth, i)
				case "divisions":
					setOnce(&mapping.Divisions, i)
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping(), false
	}
	return mapping, true
}

func positionalMapping() ColumnMapping {
	return ColumnMapping{Label: 0, Width: 1, Height: 2, Depth: 3, Divisions: 4}
}

func setOnce(idx *int, i int) {
	if *idx == -1 {
		*idx = i
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseMM reads a whole-millimetre value. Fractional values are rounded and
// reported through the warning.
func parseMM(s, field, rowLabel string) (int, string, string) {
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field), ""
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, "", ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s), ""
	}
	v := int(math.Round(f))
	return v, "", fmt.Sprintf("%s: %s %s rounded to %d mm", rowLabel, field, s, v)
}

// parseRow extracts a cabinet from a row using the given column mapping.
// Returns the cabinet, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, position int) (model.JobCabinet, string, []string) {
	var warnings []string
	var dims [3]int
	for i, col := range []struct {
		name string
		idx  int
	}{{"width", mapping.Width}, {"height", mapping.Height}, {"depth", mapping.Depth}} {
		v, errMsg, warning := parseMM(getCell(row, col.idx), col.name, rowLabel)
		if errMsg != "" {
			return model.JobCabinet{}, errMsg, nil
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
		dims[i] = v
	}

	divisions := 0
	if s := getCell(row, mapping.Divisions); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return model.JobCabinet{}, fmt.Sprintf("%s: Invalid divisions '%s'", rowLabel, s), nil
		}
		divisions = v
	}

	c := model.Cabinet{Width: dims[0], Height: dims[1], Depth: dims[2], Divisions: divisions}
	if err := c.Validate(); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return model.JobCabinet{}, fmt.Sprintf("%s: %s", rowLabel, strings.TrimPrefix(err.Error(), verr.Detail+": ")), nil
		}
		return model.JobCabinet{}, fmt.Sprintf("%s: %v", rowLabel, err), nil
	}

	jc := model.JobCabinet{Number: position, Cabinet: c}
	label := getCell(row, mapping.Label)
	if n, err := strconv.Atoi(label); err == nil && n > 0 {
		jc.Number = n
	} else if label != "" {
		jc.Label = label
	}
	return jc, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile dispatches on the file extension: .xlsx/.xlsm/.xls go to
// ImportExcel, anything else to ImportCSV.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports cabinets from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports cabinets from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel imports cabinets from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a cabinet.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if mapping.Depth == -1 {
			missing = append(missing, "Depth")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// Unrecognised header: the width column is not numeric
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]string)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		jc, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Cabinets)+1)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if first, dup := seen[jc.Ref()]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Cabinet reference '%s' already used on %s", rowLabel, jc.Ref(), first))
			continue
		}
		seen[jc.Ref()] = rowLabel
		result.Warnings = append(result.Warnings, warnings...)
		result.Cabinets = append(result.Cabinets, jc)
	}

	return result
}
