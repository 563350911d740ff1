package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/render"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	job, sheets := buildTestJob(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, sheets, job.Material); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	job := model.NewJob("Wall", model.Material{Type: "mdf", Thickness: 18, Kerf: 3})
	for i := 0; i < 5; i++ {
		job.AddCabinet(model.Cabinet{Width: 600, Height: 720, Depth: 560, Divisions: 2})
	}
	sheets := make([]render.CabinetSheet, len(job.Cabinets))
	for i, jc := range job.Cabinets {
		sheets[i] = render.RenderCabinet(jc, job.Material, render.Scale)
	}

	// 5 cabinets x 7 panels = 35 labels, which needs two pages.
	if n := len(CollectLabelInfos(sheets, job.Material)); n != 35 {
		t.Fatalf("expected 35 labels, got %d", n)
	}

	path := filepath.Join(t.TempDir(), "many.pdf")
	if err := ExportLabels(path, sheets, job.Material); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
}

func TestExportLabels_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportLabels(path, nil, model.Material{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	job, sheets := buildTestJob(t)
	labels := CollectLabelInfos(sheets, job.Material)

	// 7 panels for cabinet 1 and 5 for cabinet 2.
	if len(labels) != 12 {
		t.Fatalf("expected 12 labels, got %d", len(labels))
	}

	first := labels[0]
	if first.PanelID != "C1-L1" || first.Type != "Left Side" {
		t.Errorf("unexpected first label %+v", first)
	}
	if first.Width != 560 || first.Height != 720 {
		t.Errorf("wrong dimensions: got %dx%d, want 560x720", first.Width, first.Height)
	}
	if first.EdgeBanding != "top, front" {
		t.Errorf("unexpected edge banding %q", first.EdgeBanding)
	}
	if first.Cabinet != "1" || first.Material != "plywood" || first.Thickness != 18 {
		t.Errorf("unexpected cabinet/material on label: %+v", first)
	}

	last := labels[len(labels)-1]
	if last.PanelID != "C2-D1" || last.Cabinet != "2" {
		t.Errorf("unexpected last label %+v", last)
	}
}

func TestCollectLabelInfos_Quantity(t *testing.T) {
	sheets := []render.CabinetSheet{{
		Cabinet: model.JobCabinet{Number: 1},
		Panels:  []model.Panel{{ID: "C1-S1", Kind: model.PanelShelf, Width: 100, Height: 50, Quantity: 3}},
	}}
	if n := len(CollectLabelInfos(sheets, model.Material{Type: "mdf", Thickness: 18})); n != 3 {
		t.Errorf("expected one label per piece, got %d", n)
	}
}

func TestLabelInfo_JSONKeys(t *testing.T) {
	info := LabelInfo{PanelID: "C1-D1", Cabinet: "1", Type: "Door", Width: 640, Height: 760, Thickness: 18, Material: "mdf"}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	for _, key := range []string{"panel", "cabinet", "type", "width_mm", "height_mm", "thickness_mm", "material"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if _, ok := decoded["edge_banding"]; ok {
		t.Error("empty edge banding should be omitted")
	}
}
