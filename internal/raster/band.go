package raster

import "golang.org/x/sync/errgroup"

// bandsPerWorker oversubscribes the pool so uneven rows balance out.
const bandsPerWorker = 4

// ForEachBand calls fn over disjoint row ranges [y0, y1) covering [0, rows).
// With workers > 1 the bands run concurrently and ForEachBand returns after
// all of them finish.
func ForEachBand(rows, workers int, fn func(y0, y1 int)) {
	if rows <= 0 {
		return
	}
	if workers <= 1 || rows == 1 {
		fn(0, rows)
		return
	}
	if workers > rows {
		workers = rows
	}

	step := rows / (workers * bandsPerWorker)
	if step < 1 {
		step = 1
	}

	// errgroup only bounds the goroutines here; bands cannot fail, so Wait
	// always returns nil.
	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < rows; y0 += step {
		y1 := min(y0+step, rows)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}
