// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !amd64

package turingpanel

// wideScanEnabled is false on architectures with no 256-bit integer SIMD
// unit to stand in for; Scan always takes the scalar path there.
var wideScanEnabled = false
