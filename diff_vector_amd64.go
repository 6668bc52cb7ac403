// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build amd64

package turingpanel

import "golang.org/x/sys/cpu"

// wideScanEnabled gates the batched compare in scanRowWide on hosts whose
// CPU actually carries the 256-bit integer SIMD unit the batching stands in
// for. Hosts without it fall back to the scalar path in diff.go, which is
// bit-exact with the wide path.
var wideScanEnabled = cpu.X86.HasAVX2
