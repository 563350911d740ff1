package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/CabinetCut/internal/model"
)

// JobExtension is the file extension of saved jobs.
const JobExtension = ".cabcut"

// JobPath appends JobExtension to path unless it already has it.
func JobPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), JobExtension) {
		return path
	}
	return path + JobExtension
}

// SaveJob writes job as JSON. The job must validate.
func SaveJob(path string, job model.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid job: %w", err)
	}
	if err := writeJSON(path, job); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// LoadJob reads and validates a job file.
func LoadJob(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to read job file: %w", err)
	}
	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return model.Job{}, fmt.Errorf("failed to parse job file: %w", err)
	}
	if job.Cabinets == nil {
		job.Cabinets = []model.JobCabinet{}
	}
	if err := job.Validate(); err != nil {
		return model.Job{}, fmt.Errorf("invalid job file %s: %w", path, err)
	}
	return job, nil
}
