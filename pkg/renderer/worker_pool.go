package renderer

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"
)

// bandsPerWorker splits the image finer than the worker count so bands with
// expensive geometry do not leave other workers idle
const bandsPerWorker = 4

// RowBand is a contiguous range of viewport rows, rendered from Top down to
// Bottom (inclusive)
type RowBand struct {
	Index  int
	Top    int
	Bottom int
}

// SplitRows divides rows height-1..0 into at most count bands of nearly
// equal size, top band first
func SplitRows(height, count int) []RowBand {
	if count > height {
		count = height
	}
	if count < 1 {
		count = 1
	}

	bands := make([]RowBand, 0, count)
	top := height - 1
	for b := 0; b < count; b++ {
		rows := height / count
		if b < height%count {
			rows++
		}
		bands = append(bands, RowBand{Index: b, Top: top, Bottom: top - rows + 1})
		top -= rows
	}
	return bands
}

// renderBands renders every row. One worker walks the rows in order with
// the raytracer's own camera; more workers render bands concurrently, each
// with a camera whose lens sampler is seeded from the band index.
func (rt *Raytracer) renderBands(ctx context.Context, img *image.RGBA, counters *renderCounters) error {
	if rt.config.NumWorkers == 1 {
		for j := rt.config.Height - 1; j >= 0; j-- {
			if err := ctx.Err(); err != nil {
				return err
			}
			rt.renderRow(rt.camera, j, img, counters)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.config.NumWorkers)

	for _, band := range SplitRows(rt.config.Height, rt.config.NumWorkers*bandsPerWorker) {
		band := band
		camera := rt.camera.WithRandom(NewRandom(rt.seed + int64(band.Index) + 1))

		g.Go(func() error {
			for j := band.Top; j >= band.Bottom; j-- {
				if err := ctx.Err(); err != nil {
					return err
				}
				rt.renderRow(camera, j, img, counters)
			}
			return nil
		})
	}

	return g.Wait()
}
