// Package simmat computes pairwise similarity and association matrices —
// cosine similarity, covariance, and Pearson correlation — over dense and
// sparse numeric data.
//
// All engines exploit the symmetry of the output: only one triangle is
// computed, then mirrored. Dense inputs are column-major float64 matrices;
// sparse inputs are coordinate-list (COO) triplets sorted by column, then row.
//
// # Quick Start
//
// Dense cosine similarity:
//
//	x, _ := simmat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 0})
//	dst := simmat.NewSquare(2)
//	_ = simmat.Cosine(dst, x)
//	// dst is [[1, 1/√2], [1/√2, 1]]
//
// Weighted covariance with unbiased normalization:
//
//	w, _ := simmat.NewWeights([]float64{0.2, 0.3, 0.5})
//	_ = simmat.Covariance(dst, x, w, simmat.Unbiased)
//
// Sparse cosine over sorted COO triplets:
//
//	coo, _ := simmat.NewCOO(3, 3, rows, cols, vals)
//	_ = simmat.SparseCosine(dst, coo)
//
// # Configuration
//
// Per-call behavior is configured through functional options — there is no
// process-global state:
//
//	simmat.Cosine(dst, x,
//	    simmat.WithParallelThreshold(10_000),
//	    simmat.WithWorkers(4),
//	    simmat.WithLogger(simmat.NewTextLogger(slog.LevelDebug)),
//	)
//
// # Numerical policy
//
// Degenerate inputs are not errors. A zero-norm column yields NaN in the
// dense engines through the natural division; a structurally empty column in
// the sparse engine is marked NaN across its row and column, including the
// diagonal. Sparse dot products with magnitude at or below the configured
// epsilon are treated as exactly orthogonal.
//
// Invalid inputs (bad weight vectors, dimension mismatches, unsorted
// triplets) fail eagerly: an error return guarantees the output buffer was
// never written.
//
// # Snapshots
//
// Results can be persisted through the blobstore and codec packages:
//
//	store := blobstore.NewLocalStore("./data")
//	_ = simmat.SaveDense(ctx, store, "corr.mat", dst, codec.CompressionZSTD)
package simmat
