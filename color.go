// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

// EncodeTruncate converts 24-bit RGB to RGB565 by masking off the low bits
// of each channel. It is the cheap conversion: two channels already aligned
// to 5/6/5 bit precision round-trip exactly, everything else loses the
// truncated bits.
func EncodeTruncate(r, g, b byte) uint16 {
	return (uint16(r&0xF8) << 8) | (uint16(g&0xFC) << 3) | uint16(b>>3)
}

// EncodeRound converts 24-bit RGB to RGB565 using round-to-nearest on each
// channel instead of truncation. It costs three integer divisions but keeps
// the worst-case per-channel error within half an RGB565 step.
func EncodeRound(r, g, b byte) uint16 {
	r5 := (uint16(r)*31 + 127) / 255
	g6 := (uint16(g)*63 + 127) / 255
	b5 := (uint16(b)*31 + 127) / 255
	return (r5 << 11) | (g6 << 5) | b5
}

// Decode expands an RGB565 value back to 24-bit RGB by replicating the high
// bits of each channel into the bits it doesn't carry.
func Decode(c uint16) (r, g, b byte) {
	r5 := byte(c >> 11 & 0x1F)
	g6 := byte(c >> 5 & 0x3F)
	b5 := byte(c & 0x1F)
	r = r5<<3 | r5>>2
	g = g6<<2 | g6>>4
	b = b5<<3 | b5>>2
	return r, g, b
}
