package model

import (
	"testing"
)

func TestBuildInventoryRows(t *testing.T) {
	m := Material{Type: "plywood", Thickness: 18, Kerf: 3.2}
	panels := DerivePanels(Cabinet{Width: 600, Height: 720, Depth: 560, Divisions: 2}, 1)
	rows := BuildInventoryRows(panels, m)

	if len(rows) != len(panels) {
		t.Fatalf("expected %d rows, got %d", len(panels), len(rows))
	}
	for i, r := range rows {
		if r.Reference != panels[i].ID {
			t.Errorf("row %d: expected reference %s, got %s", i, panels[i].ID, r.Reference)
		}
		if r.Quantity != 1 {
			t.Errorf("row %d: expected quantity 1, got %d", i, r.Quantity)
		}
		if r.Material != "PLYWOOD" {
			t.Errorf("row %d: expected material PLYWOOD, got %s", i, r.Material)
		}
	}

	if rows[2].Dimensions != "600 × 560 × 18 mm" {
		t.Errorf("unexpected top dimensions %q", rows[2].Dimensions)
	}
	if rows[2].EdgeBanding != "front, left, right" {
		t.Errorf("unexpected top banding %q", rows[2].EdgeBanding)
	}
	if rows[4].EdgeBanding != "all" {
		t.Errorf("unexpected door banding %q", rows[4].EdgeBanding)
	}
}

func TestBuildInventoryRows_NoAggregation(t *testing.T) {
	m := Material{Type: "mdf", Thickness: 16, Kerf: 3}
	panels := DerivePanels(Cabinet{Width: 600, Height: 720, Depth: 560, Divisions: 3}, 2)
	rows := BuildInventoryRows(panels, m)

	shelves := 0
	for _, r := range rows {
		if r.Type == "Shelf" {
			shelves++
			if r.Dimensions != "596 × 540 × 16 mm" {
				t.Errorf("unexpected shelf dimensions %q", r.Dimensions)
			}
		}
	}
	if shelves != 3 {
		t.Errorf("expected 3 separate shelf rows, got %d", shelves)
	}
}

func TestBuildInventoryRows_FractionalThickness(t *testing.T) {
	rows := BuildInventoryRows([]Panel{{ID: "C1-S1", Kind: PanelShelf, Width: 100, Height: 50, Quantity: 1}},
		Material{Type: "Birch", Thickness: 12.5})
	if rows[0].Dimensions != "100 × 50 × 12.5 mm" {
		t.Errorf("unexpected dimensions %q", rows[0].Dimensions)
	}
	if rows[0].Material != "BIRCH" {
		t.Errorf("expected upper-cased material, got %q", rows[0].Material)
	}
}

func TestBuildInventoryRows_Empty(t *testing.T) {
	rows := BuildInventoryRows(nil, Material{Type: "mdf"})
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestInventoryRowCells(t *testing.T) {
	r := InventoryRow{Reference: "C1-D1", Type: "Door", Dimensions: "640 × 760 × 18 mm", Material: "MDF", EdgeBanding: "all", Quantity: 1}
	cells := r.Cells()
	if len(cells) != len(InventoryHeaders) {
		t.Fatalf("expected %d cells, got %d", len(InventoryHeaders), len(cells))
	}
	if cells[5] != "1" {
		t.Errorf("expected quantity cell 1, got %s", cells[5])
	}
}
