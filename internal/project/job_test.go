package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CabinetCut/internal/model"
)

func sampleJob() model.Job {
	job := model.NewJob("Kitchen", model.Material{Type: "plywood", Thickness: 18, Kerf: 3.2})
	job.AddCabinet(model.Cabinet{Width: 600, Height: 720, Depth: 560, Divisions: 2})
	job.AddCabinet(model.Cabinet{Width: 800, Height: 720, Depth: 560})
	job.Cabinets[1].Label = "Sink"
	return job
}

func TestSaveAndLoadJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs", "kitchen.cabcut")
	job := sampleJob()

	require.NoError(t, SaveJob(path, job))

	loaded, err := LoadJob(path)
	require.NoError(t, err)
	assert.Equal(t, job, loaded)
	assert.Equal(t, "CSink-D1", loaded.Panels()[len(loaded.Panels())-1].ID)
}

func TestSaveJobRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cabcut")
	job := model.NewJob("empty", model.Material{Type: "mdf", Thickness: 18})

	err := SaveJob(path, job)
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadJobInvalidContents(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.cabcut")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name":"x","material":{"type":"mdf","thickness":18},"cabinets":[{"number":1,"cabinet":{"width":0,"height":720,"depth":560}}]}`), 0644))
	_, err := LoadJob(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cabinets[0].cabinet.width")

	garbage := filepath.Join(dir, "garbage.cabcut")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0644))
	_, err = LoadJob(garbage)
	assert.Error(t, err)

	_, err = LoadJob(filepath.Join(dir, "missing.cabcut"))
	assert.Error(t, err)
}

func TestJobPath(t *testing.T) {
	assert.Equal(t, "kitchen.cabcut", JobPath("kitchen"))
	assert.Equal(t, "kitchen.CABCUT", JobPath("kitchen.CABCUT"))
	assert.Equal(t, "kitchen.json.cabcut", JobPath("kitchen.json"))
}
