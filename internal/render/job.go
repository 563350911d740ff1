package render

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/CabinetCut/internal/model"
)

// CabinetSheet is the rendered output for one cabinet of a job.
type CabinetSheet struct {
	Cabinet  model.JobCabinet
	Panels   []model.Panel
	Drawings []Drawing
	Rows     []model.InventoryRow
}

// RenderJob validates job and renders its cabinets in parallel. Results keep
// the order of job.Cabinets.
func RenderJob(ctx context.Context, job model.Job, scale float64) ([]CabinetSheet, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	sheets := make([]CabinetSheet, len(job.Cabinets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, jc := range job.Cabinets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("rendering cabinet %s: %w", jc.Ref(), err)
			}
			sheets[i] = RenderCabinet(jc, job.Material, scale)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sheets, nil
}

// RenderCabinet derives, draws and tabulates the panels of one cabinet.
func RenderCabinet(jc model.JobCabinet, m model.Material, scale float64) CabinetSheet {
	panels := jc.Panels()
	return CabinetSheet{
		Cabinet:  jc,
		Panels:   panels,
		Drawings: RenderPanels(panels, m, scale),
		Rows:     model.BuildInventoryRows(panels, m),
	}
}
