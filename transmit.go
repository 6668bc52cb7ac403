// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

import "sync"

// maxBlockHeight is the DMA-size ceiling on a single rectangle tile: at
// nativeWidth columns this keeps a tile at or under the device's 16-bit
// byte counter (320*40 = 12800 pixels, 25600 bytes).
const maxBlockHeight = 40

// tilePool recycles the byte buffer backing a single rectangle tile's
// payload, bounding peak residency to one tile regardless of how large the
// bounding box is.
var tilePool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, maxBlockHeight*nativeWidth*2)
		return &buf
	},
}

func getTileBuffer(size int) *[]byte {
	p := tilePool.Get().(*[]byte)
	if cap(*p) < size {
		*p = make([]byte, size)
	} else {
		*p = (*p)[:size]
	}
	return p
}

func putTileBuffer(p *[]byte) {
	tilePool.Put(p)
}

// mapPoint converts a logical point to its physical panel coordinate. When
// rotate is false the axes are identical; when true, the point is
// transposed.
func mapPoint(x, y int, rotate bool) (int, int) {
	if !rotate {
		return x, y
	}
	return y, x
}

// mapRect converts a logical rectangle to its physical counterpart: when
// rotate is true, physical (x, y, w, h) = (logY, logX, logH, logW).
func mapRect(x, y, w, h int, rotate bool) (px, py, pw, ph int) {
	if !rotate {
		return x, y, w, h
	}
	return y, x, h, w
}

// transmitSparse emits one pixel command per changed cell, visited
// row-major over the submitted region.
func (d *Driver) transmitSparse(submitted []uint16, w, h, left, top int) error {
	stride := d.shadow.width
	shadowPix := d.shadow.pix
	rotate := d.softwareRotation

	for y := 0; y < h; y++ {
		rowOff := (top+y)*stride + left
		srcRow := submitted[y*w : y*w+w]
		dstRow := shadowPix[rowOff : rowOff+w]
		for x := 0; x < w; x++ {
			c := srcRow[x]
			if c == dstRow[x] {
				continue
			}
			dstRow[x] = c

			logX, logY := left+x, top+y
			px, py := mapPoint(logX, logY, rotate)
			packHeader(d.scratch[:headerSize], px, py, px, py, cmdDraw)
			packPixelPayload(d.scratch[headerSize:headerSize+2], c)
			if err := d.link.WriteAll(d.scratch[:headerSize], d.scratch[headerSize:headerSize+2]); err != nil {
				return err
			}
		}
	}
	return nil
}

// transmitRectangle synchronizes the shadow over the bounding box first,
// then transmits it tiled into horizontal strips of at most
// maxBlockHeight logical rows, with an optional transpose when software
// rotation is active.
func (d *Driver) transmitRectangle(submitted []uint16, w, h, left, top int, diff DiffResult) error {
	stride := d.shadow.width
	shadowPix := d.shadow.pix

	diffW := diff.MaxX - diff.MinX + 1
	diffH := diff.MaxY - diff.MinY + 1

	// Synchronize shadow over the bounding box.
	for y := diff.MinY; y <= diff.MaxY; y++ {
		srcOff := y*w + diff.MinX
		dstOff := (top+y)*stride + left + diff.MinX
		copy(shadowPix[dstOff:dstOff+diffW], submitted[srcOff:srcOff+diffW])
	}

	logX := left + diff.MinX
	baseLogY := top + diff.MinY
	rotate := d.softwareRotation

	rowsLeft := diffH
	currentY := 0
	for rowsLeft > 0 {
		tileH := rowsLeft
		if tileH > maxBlockHeight {
			tileH = maxBlockHeight
		}
		logY := baseLogY + currentY

		if err := d.transmitTile(logX, logY, diffW, tileH, stride, shadowPix, rotate); err != nil {
			return err
		}

		currentY += tileH
		rowsLeft -= tileH
	}
	return nil
}

// transmitTile packs and emits a single rectangle tile. (logX, logY,
// diffW, tileH) are logical; the packed payload and header are physical
// when software rotation is active.
func (d *Driver) transmitTile(logX, logY, diffW, tileH, stride int, shadowPix []uint16, rotate bool) error {
	px, py, pw, ph := mapRect(logX, logY, diffW, tileH, rotate)

	size := pw * ph * 2
	bufPtr := getTileBuffer(size)
	defer putTileBuffer(bufPtr)
	buf := *bufPtr

	if !rotate {
		for row := 0; row < tileH; row++ {
			srcOff := (logY+row)*stride + logX
			rowPix := shadowPix[srcOff : srcOff+diffW]
			dst := buf[row*diffW*2 : (row+1)*diffW*2]
			for i, c := range rowPix {
				dst[2*i] = byte(c & 0xFF)
				dst[2*i+1] = byte(c >> 8)
			}
		}
	} else {
		for row := 0; row < ph; row++ {
			for col := 0; col < pw; col++ {
				c := shadowPix[(logY+col)*stride+logX+row]
				off := (row*pw + col) * 2
				buf[off] = byte(c & 0xFF)
				buf[off+1] = byte(c >> 8)
			}
		}
	}

	ex := px + pw - 1
	ey := py + ph - 1
	packHeader(d.scratch[:headerSize], px, py, ex, ey, cmdDraw)

	return d.link.WriteAll(d.scratch[:headerSize], buf)
}
