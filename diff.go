// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

// DiffResult is the outcome of scanning a submitted region against the
// shadow framebuffer: a changed-pixel count and the bounding box of all
// differing pixels, expressed in the submitted region's own coordinates.
type DiffResult struct {
	Empty       bool
	ChangeCount int
	MinX, MinY  int
	MaxX, MaxY  int
}

// wideBatch is the pixel count a single wide compare covers: 16 adjacent
// RGB565 cells, the width of one 256-bit SIMD register.
const wideBatch = 16

// Scan compares a submitted w x h region against shadow, placed at
// (left, top) on the shadow's own logical surface.
// Every row is scanned to completion so the bounding box is exact; Empty is
// set when the whole region matches.
func Scan(submitted []uint16, w, h int, shadow *ScreenBuffer, left, top int) DiffResult {
	res := DiffResult{MinX: w, MinY: h, MaxX: -1, MaxY: -1}
	stride := shadow.width
	shadowPix := shadow.pix

	for y := 0; y < h; y++ {
		srcRow := submitted[y*w : y*w+w]
		rowOff := (top+y)*stride + left
		dstRow := shadowPix[rowOff : rowOff+w]

		x := 0
		if wideScanEnabled {
			x = scanRowWide(srcRow, dstRow, y, &res)
		}
		for ; x < w; x++ {
			if srcRow[x] != dstRow[x] {
				recordDiff(&res, x, y)
			}
		}
	}

	res.Empty = res.ChangeCount == 0
	return res
}

func recordDiff(res *DiffResult, x, y int) {
	res.ChangeCount++
	if x < res.MinX {
		res.MinX = x
	}
	if x > res.MaxX {
		res.MaxX = x
	}
	if y < res.MinY {
		res.MinY = y
	}
	if y > res.MaxY {
		res.MaxY = y
	}
}

// scanRowWide compares src/dst in batches of wideBatch pixels using 64-bit
// word reads (4 pixels per word), the portable stand-in for the 256-bit
// byte-wise compare a real SIMD unit would issue. It returns the index at
// which the caller's scalar loop should resume; that index is always a
// multiple of wideBatch, leaving the trailing w mod wideBatch pixels to the
// scalar cleanup.
//
// A hardware wide compare produces two mask bits per pixel (one per byte of
// the RGB565 cell); those two bits must be treated as a single
// differing-pixel signal even when only one byte of the pixel
// changed. Comparing whole 16-bit lanes here fuses that pair by
// construction, so changeCount never needs the bytes/2 correction a
// byte-granular mask would require.
func scanRowWide(src, dst []uint16, y int, res *DiffResult) int {
	n := len(src)
	limit := n - n%wideBatch
	x := 0
	for ; x < limit; x += wideBatch {
		var changed uint32
		for lane := 0; lane < wideBatch/4; lane++ {
			base := x + lane*4
			srcWord := uint64(src[base]) | uint64(src[base+1])<<16 | uint64(src[base+2])<<32 | uint64(src[base+3])<<48
			dstWord := uint64(dst[base]) | uint64(dst[base+1])<<16 | uint64(dst[base+2])<<32 | uint64(dst[base+3])<<48
			diffWord := srcWord ^ dstWord
			if diffWord == 0 {
				continue
			}
			for i := 0; i < 4; i++ {
				if diffWord>>(uint(i)*16)&0xFFFF != 0 {
					changed |= 1 << uint(lane*4+i)
				}
			}
		}
		if changed == 0 {
			continue
		}
		for i := 0; i < wideBatch; i++ {
			if changed&(1<<uint(i)) != 0 {
				recordDiff(res, x+i, y)
			}
		}
	}
	return x
}
