package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Fixed allowances applied when deriving panels from a cabinet (mm).
const (
	DoorOverlay       = 40 // Door overlaps the carcass on every side
	ShelfPinClearance = 4  // Shelves are narrower than the carcass to clear the pins
	ShelfSetback      = 20 // Shelves sit back from the front edge
)

// Cabinet describes the carcass a cut-list is derived from. All lengths in mm.
type Cabinet struct {
	Width     int `json:"width" validate:"gt=0"`
	Height    int `json:"height" validate:"gt=0"`
	Depth     int `json:"depth" validate:"gt=0"`
	Divisions int `json:"divisions" validate:"gte=0"` // Internal shelves
}

// Material is the sheet stock every panel of a cabinet is cut from.
type Material struct {
	Type      string  `json:"type" validate:"required"`
	Thickness float64 `json:"thickness" validate:"gt=0"` // mm
	Kerf      float64 `json:"kerf" validate:"gte=0"`     // Saw blade width in mm, drawn as a guide only
}

// PanelKind is the closed set of panels a cabinet is made of.
type PanelKind int

const (
	PanelLeftSide PanelKind = iota
	PanelRightSide
	PanelTop
	PanelBottom
	PanelDoor
	PanelShelf
)

// carcassKinds are the panels every cabinet has exactly one of, in cut-list order.
var carcassKinds = []PanelKind{PanelLeftSide, PanelRightSide, PanelTop, PanelBottom, PanelDoor}

func (k PanelKind) String() string {
	switch k {
	case PanelLeftSide:
		return "Left Side"
	case PanelRightSide:
		return "Right Side"
	case PanelTop:
		return "Top"
	case PanelBottom:
		return "Bottom"
	case PanelDoor:
		return "Door"
	case PanelShelf:
		return "Shelf"
	default:
		return "Unknown"
	}
}

// Code returns the single letter used in panel references.
func (k PanelKind) Code() string {
	switch k {
	case PanelLeftSide:
		return "L"
	case PanelRightSide:
		return "R"
	case PanelTop:
		return "T"
	case PanelBottom:
		return "B"
	case PanelDoor:
		return "D"
	case PanelShelf:
		return "S"
	default:
		return "X"
	}
}

// Dimensions returns the (width, height) of a panel of this kind cut for c.
// No validation happens here: degenerate cabinets give degenerate panels.
func (k PanelKind) Dimensions(c Cabinet) (width, height int) {
	switch k {
	case PanelLeftSide, PanelRightSide:
		return c.Depth, c.Height
	case PanelTop, PanelBottom:
		return c.Width, c.Depth
	case PanelDoor:
		return c.Width + DoorOverlay, c.Height + DoorOverlay
	case PanelShelf:
		return c.Width - ShelfPinClearance, c.Depth - ShelfSetback
	default:
		return 0, 0
	}
}

// EdgeBanding returns the banded edges of a panel of this kind.
func (k PanelKind) EdgeBanding() []EdgeBand {
	switch k {
	case PanelLeftSide, PanelRightSide:
		return []EdgeBand{EdgeTop, EdgeFront}
	case PanelTop, PanelBottom:
		return []EdgeBand{EdgeFront, EdgeLeft, EdgeRight}
	case PanelDoor:
		return []EdgeBand{EdgeAll}
	case PanelShelf:
		return []EdgeBand{EdgeFront}
	default:
		return nil
	}
}

// EdgeBand labels one banded edge of a panel.
type EdgeBand string

const (
	EdgeTop   EdgeBand = "top"
	EdgeFront EdgeBand = "front"
	EdgeLeft  EdgeBand = "left"
	EdgeRight EdgeBand = "right"
	EdgeAll   EdgeBand = "all"
)

// Panel is one flat piece to be cut. Panels are derived on demand and never stored.
type Panel struct {
	ID          string     `json:"id"`
	Kind        PanelKind  `json:"kind"`
	Width       int        `json:"width"`  // mm
	Height      int        `json:"height"` // mm
	Quantity    int        `json:"quantity"`
	EdgeBanding []EdgeBand `json:"edge_banding"`
}

// Type returns the human-readable kind name, e.g. "Left Side".
func (p Panel) Type() string {
	return p.Kind.String()
}

// HasBanding reports whether edge e is listed in the panel's banding.
func (p Panel) HasBanding(e EdgeBand) bool {
	for _, b := range p.EdgeBanding {
		if b == e {
			return true
		}
	}
	return false
}

// PanelID formats a panel reference such as "C3-S2".
func PanelID(cabinetLabel string, kind PanelKind, index int) string {
	return fmt.Sprintf("C%s-%s%d", cabinetLabel, kind.Code(), index)
}

// DerivePanels lists the panels of cabinet number n: left side, right side,
// top, bottom, door, then one shelf per division.
func DerivePanels(c Cabinet, n int) []Panel {
	return DerivePanelsLabeled(c, strconv.Itoa(n))
}

// DerivePanelsLabeled is DerivePanels for an arbitrary cabinet label.
func DerivePanelsLabeled(c Cabinet, label string) []Panel {
	shelves := c.Divisions
	if shelves < 0 {
		shelves = 0
	}
	panels := make([]Panel, 0, len(carcassKinds)+shelves)
	for _, kind := range carcassKinds {
		panels = append(panels, newPanel(c, label, kind, 1))
	}
	for i := 1; i <= shelves; i++ {
		panels = append(panels, newPanel(c, label, PanelShelf, i))
	}
	return panels
}

// DerivePanelsChecked validates c before deriving its panels.
func DerivePanelsChecked(c Cabinet, label string) ([]Panel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return DerivePanelsLabeled(c, label), nil
}

func newPanel(c Cabinet, label string, kind PanelKind, index int) Panel {
	w, h := kind.Dimensions(c)
	return Panel{
		ID:          PanelID(label, kind, index),
		Kind:        kind,
		Width:       w,
		Height:      h,
		Quantity:    1,
		EdgeBanding: kind.EdgeBanding(),
	}
}

// JobCabinet is one numbered cabinet within a job.
type JobCabinet struct {
	Number  int     `json:"number"`
	Label   string  `json:"label,omitempty"` // Overrides Number in panel references
	Cabinet Cabinet `json:"cabinet"`
}

// Ref returns the label used in panel references for this cabinet.
func (jc JobCabinet) Ref() string {
	if jc.Label != "" {
		return jc.Label
	}
	return strconv.Itoa(jc.Number)
}

// Panels derives this cabinet's panels.
func (jc JobCabinet) Panels() []Panel {
	return DerivePanelsLabeled(jc.Cabinet, jc.Ref())
}

// Job ties a set of cabinets to the material they are cut from, for save/load.
type Job struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	CreatedAt string       `json:"created_at"`
	Material  Material     `json:"material"`
	Cabinets  []JobCabinet `json:"cabinets" validate:"min=1,dive"`
}

func NewJob(name string, m Material) Job {
	return Job{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Material:  m,
		Cabinets:  []JobCabinet{},
	}
}

// AddCabinet appends c numbered one past the highest number in the job.
func (j *Job) AddCabinet(c Cabinet) JobCabinet {
	next := 1
	for _, jc := range j.Cabinets {
		if jc.Number >= next {
			next = jc.Number + 1
		}
	}
	jc := JobCabinet{Number: next, Cabinet: c}
	j.Cabinets = append(j.Cabinets, jc)
	return jc
}

// Panels derives the panels of every cabinet in job order.
func (j Job) Panels() []Panel {
	var panels []Panel
	for _, jc := range j.Cabinets {
		panels = append(panels, jc.Panels()...)
	}
	return panels
}
