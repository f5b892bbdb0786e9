// Package testutil provides testing utilities for rangeset.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Range Expressions
//
//	rng := testutil.NewRNG(seed)
//	expr, want := rng.RangeExpr(20, 1000) // expression plus its sorted, deduplicated indices
//
// # Blob Store Conformance
//
//	testutil.RunBlobStoreSuite(t, store)
package testutil
