// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BufferStats summarizes the samples a buffer currently retains.
type BufferStats struct {
	ID     BufferID `json:"id"`
	Count  int      `json:"count"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Mean   float64  `json:"mean"`
	StdDev float64  `json:"std_dev"`
}

// Summarize computes the statistics of samples. StdDev is the sample
// standard deviation and is zero with fewer than two samples.
func Summarize(id BufferID, samples []float64) BufferStats {
	st := BufferStats{ID: id, Count: len(samples)}
	switch len(samples) {
	case 0:
		return st
	case 1:
		st.Min, st.Max, st.Mean = samples[0], samples[0], samples[0]
		return st
	}

	st.Min = floats.Min(samples)
	st.Max = floats.Max(samples)
	st.Mean, st.StdDev = stat.MeanStdDev(samples, nil)

	return st
}
