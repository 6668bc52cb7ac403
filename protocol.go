// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

// Wire command codes.
const (
	cmdReset       byte = 101
	cmdClear       byte = 102
	cmdScreenOff   byte = 108
	cmdScreenOn    byte = 109
	cmdBrightness  byte = 110
	cmdOrientation byte = 121
	cmdDraw        byte = 197
)

// headerSize is the fixed 6-byte packed rectangle header every command
// carries, zero-padded for the commands that need no coordinates.
const headerSize = 6

// nativeWidth and nativeHeight are the panel's physical axes regardless of
// the orientation presented to callers.
const (
	nativeWidth  = 320
	nativeHeight = 480
)

// packHeader encodes the 10-bit-per-coordinate rectangle header into
// scratch[0:6]. x, y, ex and ey must each fit in 10 bits; callers are
// expected to have already clamped to the physical surface.
func packHeader(scratch []byte, x, y, ex, ey int, cmd byte) {
	_ = scratch[5]
	scratch[0] = byte(x >> 2)
	scratch[1] = byte((x&0x3)<<6 | (y >> 4))
	scratch[2] = byte((y&0xF)<<4 | (ex >> 6))
	scratch[3] = byte((ex&0x3F)<<2 | (ey >> 8))
	scratch[4] = byte(ey & 0xFF)
	scratch[5] = cmd
}

// unpackHeader is the inverse of packHeader, used by tests to assert the
// encoding is injective and round-trips.
func unpackHeader(scratch []byte) (x, y, ex, ey int, cmd byte) {
	x = int(scratch[0])<<2 | int(scratch[1])>>6
	y = int(scratch[1]&0x3F)<<4 | int(scratch[2])>>4
	ex = int(scratch[2]&0xF)<<6 | int(scratch[3])>>2
	ey = int(scratch[3]&0x3)<<8 | int(scratch[4])
	cmd = scratch[5]
	return
}

// packControl zeroes scratch[0:6] and sets the command byte, for the
// zero-padded control commands (Reset, Clear, ScreenOff, ScreenOn).
func packControl(scratch []byte, cmd byte) {
	_ = scratch[5]
	scratch[0], scratch[1], scratch[2], scratch[3], scratch[4] = 0, 0, 0, 0, 0
	scratch[5] = cmd
}

// packBrightness packs the Brightness command: level fills a 10-bit field
// whose top 8 bits go in scratch[0] and whose low 2 bits go in the top two
// bits of scratch[1].
func packBrightness(scratch []byte, level int) {
	_ = scratch[5]
	scratch[0] = byte(level >> 2)
	scratch[1] = byte((level & 0x3) << 6)
	scratch[2], scratch[3], scratch[4] = 0, 0, 0
	scratch[5] = cmdBrightness
}

// packOrientation packs the 11-byte Orientation command: a zeroed 6-byte
// header with the command byte, followed by ord+100 and the native
// width/height as big-endian 16-bit values.
func packOrientation(scratch []byte, ord int, width, height int) {
	_ = scratch[10]
	scratch[0], scratch[1], scratch[2], scratch[3], scratch[4] = 0, 0, 0, 0, 0
	scratch[5] = cmdOrientation
	scratch[6] = byte(ord + 100)
	scratch[7] = byte(width >> 8)
	scratch[8] = byte(width & 0xFF)
	scratch[9] = byte(height >> 8)
	scratch[10] = byte(height & 0xFF)
}

// packPixelPayload writes a single RGB565 pixel in native little-endian
// order, the payload shape of a 1x1 Draw command.
func packPixelPayload(scratch []byte, c uint16) {
	_ = scratch[1]
	scratch[0] = byte(c & 0xFF)
	scratch[1] = byte(c >> 8)
}
