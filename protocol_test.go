// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

import "testing"

func TestPackHeaderRoundTrip(t *testing.T) {
	coords := []int{0, 1, 2, 63, 64, 319, 479, 1000, 1023}
	for _, x := range coords {
		for _, y := range coords {
			scratch := make([]byte, headerSize)
			packHeader(scratch, x, y, x, y, cmdDraw)
			gx, gy, gex, gey, cmd := unpackHeader(scratch)
			if gx != x || gy != y || gex != x || gey != y || cmd != cmdDraw {
				t.Fatalf("round-trip(%d,%d) = (%d,%d,%d,%d,%d), want (%d,%d,%d,%d,%d)",
					x, y, gx, gy, gex, gey, cmd, x, y, x, y, cmdDraw)
			}
		}
	}
}

func TestPackHeaderInjective(t *testing.T) {
	seen := make(map[[6]byte]struct{})
	samples := []int{0, 1, 255, 256, 511, 512, 1023}
	for _, x := range samples {
		for _, y := range samples {
			for _, ex := range samples {
				for _, ey := range samples {
					scratch := make([]byte, headerSize)
					packHeader(scratch, x, y, ex, ey, cmdDraw)
					var key [6]byte
					copy(key[:], scratch)
					if _, dup := seen[key]; dup {
						t.Fatalf("collision packing (%d,%d,%d,%d)", x, y, ex, ey)
					}
					seen[key] = struct{}{}

					gx, gy, gex, gey, _ := unpackHeader(scratch)
					if gx != x || gy != y || gex != ex || gey != ey {
						t.Fatalf("unpack(%d,%d,%d,%d) = (%d,%d,%d,%d)", x, y, ex, ey, gx, gy, gex, gey)
					}
				}
			}
		}
	}
}

func TestPackControl(t *testing.T) {
	scratch := make([]byte, headerSize)
	packControl(scratch, cmdReset)
	want := []byte{0, 0, 0, 0, 0, cmdReset}
	for i, b := range want {
		if scratch[i] != b {
			t.Fatalf("packControl: scratch[%d] = %#02x, want %#02x", i, scratch[i], b)
		}
	}
}

func TestPackBrightness(t *testing.T) {
	cases := []struct {
		level  int
		b0, b1 byte
	}{
		{0, 0, 0},
		{100, 25, 0x00},
		{255, 63, 0xC0},
	}
	for _, tc := range cases {
		scratch := make([]byte, headerSize)
		packBrightness(scratch, tc.level)
		if scratch[0] != tc.b0 || scratch[1] != tc.b1 {
			t.Fatalf("packBrightness(%d): scratch[0:2] = %#02x,%#02x, want %#02x,%#02x", tc.level, scratch[0], scratch[1], tc.b0, tc.b1)
		}
		if scratch[5] != cmdBrightness {
			t.Fatalf("packBrightness(%d): scratch[5] = %#02x, want cmdBrightness", tc.level, scratch[5])
		}
	}
}

func TestPackOrientation(t *testing.T) {
	scratch := make([]byte, 11)
	packOrientation(scratch, int(Landscape), nativeWidth, nativeHeight)
	if scratch[5] != cmdOrientation {
		t.Fatalf("scratch[5] = %#02x, want cmdOrientation", scratch[5])
	}
	if scratch[6] != byte(int(Landscape)+100) {
		t.Fatalf("scratch[6] = %d, want %d", scratch[6], int(Landscape)+100)
	}
	gotW := int(scratch[7])<<8 | int(scratch[8])
	gotH := int(scratch[9])<<8 | int(scratch[10])
	if gotW != nativeWidth || gotH != nativeHeight {
		t.Fatalf("packOrientation width/height = %d,%d want %d,%d", gotW, gotH, nativeWidth, nativeHeight)
	}
}

func TestPackPixelPayload(t *testing.T) {
	scratch := make([]byte, 2)
	packPixelPayload(scratch, 0xF800)
	if scratch[0] != 0x00 || scratch[1] != 0xF8 {
		t.Fatalf("packPixelPayload(0xF800) = %#02x,%#02x, want 0x00,0xf8", scratch[0], scratch[1])
	}
}
