package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CabinetCut/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Label,Width,Height,Depth\nA,600,720,560\nB,400,720,560\n", ','},
		{"semicolon", "Label;Width;Height;Depth\nA;600;720;560\nB;400;720;560\n", ';'},
		{"tab", "Label\tWidth\tHeight\tDepth\nA\t600\t720\t560\n", '\t'},
		{"pipe", "Label|Width|Height|Depth\nA|600|720|560\n", '|'},
	}
	for _, tt := range tests {
		if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Label", "Width", "Height", "Depth", "Divisions"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Label: 0, Width: 1, Height: 2, Depth: 3, Divisions: 4}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"SHELVES", " d ", "W", "H", "Name"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Label: 4, Width: 2, Height: 3, Depth: 1, Divisions: 0}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"1", "600", "720", "560", "2"})

	if isHeader {
		t.Error("numeric row should not be a header")
	}
	if mapping != positionalMapping() {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Width,Height,Depth,Divisions\n1,600,720,560,2\n2,450,720,300,0\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d", len(result.Cabinets))
	}
	first := result.Cabinets[0]
	want := model.Cabinet{Width: 600, Height: 720, Depth: 560, Divisions: 2}
	if first.Cabinet != want || first.Number != 1 || first.Label != "" {
		t.Errorf("unexpected first cabinet %+v", first)
	}
	if result.Cabinets[1].Ref() != "2" {
		t.Errorf("expected ref 2, got %s", result.Cabinets[1].Ref())
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,600,720,560,1\nB,400,720,560\n"), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d", len(result.Cabinets))
	}
	if result.Cabinets[0].Label != "A" || result.Cabinets[0].Number != 1 {
		t.Errorf("unexpected first cabinet %+v", result.Cabinets[0])
	}
	if result.Cabinets[1].Cabinet.Divisions != 0 {
		t.Errorf("missing divisions should default to 0, got %d", result.Cabinets[1].Cabinet.Divisions)
	}
	if result.Cabinets[1].Number != 2 {
		t.Errorf("expected position number 2, got %d", result.Cabinets[1].Number)
	}
}

func TestImportCSVFromReader_UnrecognisedHeaderSkipped(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Cab,Breite,Hoehe,Tiefe\nA,600,720,560\n"), ',')

	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d (errors %v)", len(result.Cabinets), result.Errors)
	}
	if !containsSubstring(result.Warnings, "header") {
		t.Errorf("expected header warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Width,Height\nA,600,720\n"), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Depth") {
		t.Errorf("expected missing Depth error, got %v", result.Errors)
	}
	if len(result.Cabinets) != 0 {
		t.Errorf("expected no cabinets, got %d", len(result.Cabinets))
	}
}

func TestImportCSVFromReader_InvalidRows(t *testing.T) {
	data := strings.Join([]string{
		"Label,Width,Height,Depth,Divisions",
		"A,abc,720,560,0",
		"B,600,,560,0",
		"C,600,720,560,x",
		"D,-600,720,560,0",
		"E,600,720,15,2",
		"F,600,720,560,1",
	}, "\n")
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Cabinets) != 1 || result.Cabinets[0].Label != "F" {
		t.Fatalf("expected only F to import, got %+v", result.Cabinets)
	}
	if len(result.Errors) != 5 {
		t.Fatalf("expected 5 errors, got %d: %v", len(result.Errors), result.Errors)
	}

	checks := []string{
		"Line 2: Invalid width 'abc'",
		"Line 3: Missing height value",
		"Line 4: Invalid divisions 'x'",
		"Line 5: width must be greater than 0",
		"Line 6: depth must exceed 20 mm",
	}
	for i, want := range checks {
		if !strings.HasPrefix(result.Errors[i], want) {
			t.Errorf("error %d: expected prefix %q, got %q", i, want, result.Errors[i])
		}
	}
}

func TestImportCSVFromReader_NegativeDivisions(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,600,720,560,-1\n"), ',')
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "divisions must be at least 0") {
		t.Errorf("expected divisions error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_DecimalValuesRounded(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,600.4,719.6,560,0\n"), ',')

	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d (errors %v)", len(result.Cabinets), result.Errors)
	}
	c := result.Cabinets[0].Cabinet
	if c.Width != 600 || c.Height != 720 {
		t.Errorf("expected 600x720 after rounding, got %dx%d", c.Width, c.Height)
	}
	if !containsSubstring(result.Warnings, "rounded to 720 mm") {
		t.Errorf("expected rounding warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_DuplicateReference(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,600,720,560\nA,400,720,560\n"), ',')

	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d", len(result.Cabinets))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "already used on Line 1") {
		t.Errorf("expected duplicate error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyRowsAndWhitespace(t *testing.T) {
	data := "Label;Width;Height;Depth\n\n  A ; 600 ; 720 ; 560 \n;;;\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 1 || result.Cabinets[0].Label != "A" {
		t.Errorf("unexpected cabinets %+v", result.Cabinets)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cabinets.csv")
	if err := os.WriteFile(path, []byte("Name;W;H;D;Shelves\nSink;800;720;560;0\nTall;600;2100;580;4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d", len(result.Cabinets))
	}
	if !containsSubstring(result.Warnings, "semicolon") {
		t.Errorf("expected delimiter warning, got %v", result.Warnings)
	}
	if result.Cabinets[1].Cabinet.Divisions != 4 {
		t.Errorf("expected 4 divisions, got %d", result.Cabinets[1].Cabinet.Divisions)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}
}

func TestImportResultJob(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,600,720,560,1\nB,400,720,560,0\n"), ',')
	job := result.Job("imported", model.Material{Type: "mdf", Thickness: 18, Kerf: 3})

	if err := job.Validate(); err != nil {
		t.Fatalf("imported job should validate: %v", err)
	}
	panels := job.Panels()
	if len(panels) != 11 {
		t.Fatalf("expected 11 panels, got %d", len(panels))
	}
	if panels[0].ID != "CA-L1" || panels[len(panels)-1].ID != "CB-D1" {
		t.Errorf("unexpected panel ids %s .. %s", panels[0].ID, panels[len(panels)-1].ID)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cabinets.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Cabinet", "Width", "Height", "Depth", "Shelves"},
		{1, 600, 720, 560, 2},
		{"Pantry", 600, 2100, 580, 5},
	})

	result := ImportFile(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d", len(result.Cabinets))
	}
	if result.Cabinets[0].Number != 1 || result.Cabinets[0].Cabinet.Divisions != 2 {
		t.Errorf("unexpected first cabinet %+v", result.Cabinets[0])
	}
	if result.Cabinets[1].Ref() != "Pantry" {
		t.Errorf("expected Pantry, got %s", result.Cabinets[1].Ref())
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Width", "Height", "Depth"},
		{"A", "wide", 720, 560},
	})

	result := ImportExcel(path)
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "Row 2:") {
		t.Errorf("expected a Row 2 error, got %v", result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
