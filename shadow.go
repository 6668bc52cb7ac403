// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

import "fmt"

// ScreenBuffer is a logically-dimensioned RGB565 pixel store held in
// row-major order. It never resizes in place; a dimension change allocates a
// fresh buffer.
type ScreenBuffer struct {
	width  int
	height int
	pix    []uint16
}

// NewScreenBuffer allocates a zero-filled buffer of the given logical
// dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	return &ScreenBuffer{
		width:  width,
		height: height,
		pix:    make([]uint16, width*height),
	}
}

// Width returns the buffer's logical width.
func (s *ScreenBuffer) Width() int { return s.width }

// Height returns the buffer's logical height.
func (s *ScreenBuffer) Height() int { return s.height }

// Pix exposes the backing row-major pixel slice. Callers must not hold on to
// it past a Clear or Fill, which mutate in place but never reallocate.
func (s *ScreenBuffer) Pix() []uint16 { return s.pix }

func (s *ScreenBuffer) index(x, y int) int {
	return y*s.width + x
}

func (s *ScreenBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// At returns the pixel at (x, y). It panics on an out-of-range coordinate:
// no cell may be accessed out of range.
func (s *ScreenBuffer) At(x, y int) uint16 {
	if !s.inBounds(x, y) {
		panic(fmt.Sprintf("turingpanel: coordinate (%d,%d) out of bounds for %dx%d buffer", x, y, s.width, s.height))
	}
	return s.pix[s.index(x, y)]
}

// Set writes the pixel at (x, y). It panics on an out-of-range coordinate.
func (s *ScreenBuffer) Set(x, y int, c uint16) {
	if !s.inBounds(x, y) {
		panic(fmt.Sprintf("turingpanel: coordinate (%d,%d) out of bounds for %dx%d buffer", x, y, s.width, s.height))
	}
	s.pix[s.index(x, y)] = c
}

// Clear zeroes every cell.
func (s *ScreenBuffer) Clear() {
	for i := range s.pix {
		s.pix[i] = 0
	}
}

// Fill broadcasts c across every cell.
func (s *ScreenBuffer) Fill(c uint16) {
	for i := range s.pix {
		s.pix[i] = c
	}
}
