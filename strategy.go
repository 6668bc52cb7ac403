// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

// Strategy is the closed two-way choice the transmitter dispatches on: emit
// one command per changed pixel, or rewrite the whole bounding box.
type Strategy int

const (
	StrategySparse Strategy = iota
	StrategyRectangle
)

func (s Strategy) String() string {
	switch s {
	case StrategySparse:
		return "sparse"
	case StrategyRectangle:
		return "rectangle"
	default:
		return "unknown"
	}
}

// DefaultCostPerPixel is the calibrated per-pixel cost (in bulk-byte
// equivalents) used by Choose when the caller has not supplied its own.
const DefaultCostPerPixel = 12

// Choose picks between the Sparse and Rectangle transmission strategies
// by comparing the cost of one command per changed pixel against the
// cost of rewriting the whole bounding box. diffW and diffH are the
// bounding box dimensions; costPerPixel is normally DefaultCostPerPixel.
func Choose(changeCount, diffW, diffH, costPerPixel int) Strategy {
	boxCost := 6 + diffW*diffH*2
	pointCost := changeCount * costPerPixel
	if pointCost < boxCost {
		return StrategySparse
	}
	return StrategyRectangle
}
