// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

import "testing"

func TestScanNoChangesIsEmpty(t *testing.T) {
	shadow := NewScreenBuffer(40, 20)
	shadow.Fill(0x1234)
	submitted := make([]uint16, 40*20)
	for i := range submitted {
		submitted[i] = 0x1234
	}
	res := Scan(submitted, 40, 20, shadow, 0, 0)
	if !res.Empty || res.ChangeCount != 0 {
		t.Fatalf("Scan() = %+v, want Empty with 0 changes", res)
	}
}

func TestScanSinglePixelChange(t *testing.T) {
	shadow := NewScreenBuffer(40, 20)
	submitted := make([]uint16, 40*20)
	submitted[5*40+7] = 0xFFFF

	res := Scan(submitted, 40, 20, shadow, 0, 0)
	if res.Empty || res.ChangeCount != 1 {
		t.Fatalf("ChangeCount = %d, want 1", res.ChangeCount)
	}
	if res.MinX != 7 || res.MaxX != 7 || res.MinY != 5 || res.MaxY != 5 {
		t.Fatalf("bounding box = (%d,%d)-(%d,%d), want (7,5)-(7,5)", res.MinX, res.MinY, res.MaxX, res.MaxY)
	}
}

func TestScanFullRowChangeLandscapeLine(t *testing.T) {
	// Scenario: a single full-width row differs, as in the landscape
	// single-line redraw case.
	w, h := 480, 1
	shadow := NewScreenBuffer(w, h)
	submitted := make([]uint16, w*h)
	for i := range submitted {
		submitted[i] = 0xBEEF
	}

	res := Scan(submitted, w, h, shadow, 0, 0)
	if res.ChangeCount != w {
		t.Fatalf("ChangeCount = %d, want %d", res.ChangeCount, w)
	}
	if res.MinX != 0 || res.MaxX != w-1 || res.MinY != 0 || res.MaxY != 0 {
		t.Fatalf("bounding box = (%d,%d)-(%d,%d), want (0,0)-(%d,0)", res.MinX, res.MinY, res.MaxX, res.MaxY, w-1)
	}
}

func TestScanOffsetIntoShadow(t *testing.T) {
	shadow := NewScreenBuffer(10, 10)
	shadow.Fill(0x0001)
	w, h := 3, 3
	submitted := make([]uint16, w*h)
	for i := range submitted {
		submitted[i] = 0x0001
	}
	submitted[1*w+1] = 0x0002 // center pixel differs

	res := Scan(submitted, w, h, shadow, 4, 4)
	if res.ChangeCount != 1 {
		t.Fatalf("ChangeCount = %d, want 1", res.ChangeCount)
	}
	if res.MinX != 1 || res.MinY != 1 {
		t.Fatalf("bounding box min = (%d,%d), want (1,1) in submitted-local coordinates", res.MinX, res.MinY)
	}
}

func TestScanRowWideMatchesScalarOnSparseChanges(t *testing.T) {
	w := 64
	shadow := NewScreenBuffer(w, 1)
	submitted := make([]uint16, w)

	wantChanged := map[int]bool{0: true, 1: true, 15: true, 16: true, 31: true, 47: true, 63: true}
	for idx := range wantChanged {
		submitted[idx] = 0xAAAA
	}

	var wideRes DiffResult
	wideRes.MinX, wideRes.MinY, wideRes.MaxX, wideRes.MaxY = w, 1, -1, -1
	resumeAt := scanRowWide(submitted, shadow.pix[0:w], 0, &wideRes)
	if resumeAt != w {
		t.Fatalf("scanRowWide resumed at %d, want %d (no scalar remainder for width %d)", resumeAt, w, w)
	}
	if wideRes.ChangeCount != len(wantChanged) {
		t.Fatalf("wide ChangeCount = %d, want %d", wideRes.ChangeCount, len(wantChanged))
	}

	var scalarRes DiffResult
	for x := 0; x < w; x++ {
		if submitted[x] != shadow.pix[x] {
			recordDiff(&scalarRes, x, 0)
		}
	}
	if wideRes.ChangeCount != scalarRes.ChangeCount || wideRes.MinX != scalarRes.MinX || wideRes.MaxX != scalarRes.MaxX {
		t.Fatalf("wide and scalar scans disagree: wide=%+v scalar=%+v", wideRes, scalarRes)
	}
}

func TestScanRowWideLeavesRemainderToCaller(t *testing.T) {
	w := 20 // not a multiple of wideBatch
	shadow := NewScreenBuffer(w, 1)
	submitted := make([]uint16, w)
	submitted[18] = 0x1 // inside the scalar remainder

	var res DiffResult
	res.MinX, res.MinY, res.MaxX, res.MaxY = w, 1, -1, -1
	resumeAt := scanRowWide(submitted, shadow.pix[0:w], 0, &res)
	if resumeAt != 16 {
		t.Fatalf("resumeAt = %d, want 16", resumeAt)
	}
	if res.ChangeCount != 0 {
		t.Fatalf("wide pass should not see the remainder pixel, got ChangeCount=%d", res.ChangeCount)
	}
}
