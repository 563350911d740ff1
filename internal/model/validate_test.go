package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCabinetValidate_OK(t *testing.T) {
	assert.NoError(t, baseCabinet().Validate())
	assert.NoError(t, Cabinet{Width: 1, Height: 1, Depth: 1}.Validate())
}

func TestCabinetValidate_Fields(t *testing.T) {
	err := Cabinet{Width: 0, Height: -5, Depth: 560, Divisions: -1}.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "width")
	assert.Contains(t, verr.Fields, "height")
	assert.Contains(t, verr.Fields, "divisions")
	assert.NotContains(t, verr.Fields, "depth")
}

func TestCabinetValidate_ShallowShelvedCabinet(t *testing.T) {
	err := Cabinet{Width: 600, Height: 720, Depth: 20, Divisions: 1}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must exceed 20 mm when the cabinet has shelves", verr.Fields["depth"])

	// Same depth without shelves is fine.
	assert.NoError(t, Cabinet{Width: 600, Height: 720, Depth: 20}.Validate())
}

func TestCabinetValidate_NarrowShelvedCabinet(t *testing.T) {
	err := Cabinet{Width: 4, Height: 720, Depth: 560, Divisions: 2}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "width")
}

func TestMaterialValidate(t *testing.T) {
	assert.NoError(t, Material{Type: "mdf", Thickness: 18, Kerf: 0}.Validate())

	err := Material{Type: "", Thickness: 0, Kerf: -1}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)
	assert.Equal(t, "is required", verr.Fields["type"])
}

func TestJobValidate(t *testing.T) {
	job := NewJob("Empty", Material{Type: "mdf", Thickness: 18, Kerf: 3})
	err := job.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "cabinets")

	job.AddCabinet(baseCabinet())
	job.Cabinets = append(job.Cabinets, JobCabinet{Number: 1, Cabinet: Cabinet{Width: 600, Height: 720, Depth: 10, Divisions: 1}})
	err = job.Validate()
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "cabinets[1].number")
	assert.Contains(t, verr.Fields, "cabinets[1].cabinet.depth")
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := NewValidation(map[string]string{"width": "bad", "depth": "worse"})
	assert.Equal(t, "invalid input: depth worse; width bad", err.Error())
}
