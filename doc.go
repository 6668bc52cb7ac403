// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package turingpanel drives a family of 3.5" USB-attached smart display
// panels that enumerate on the host as a CDC serial device with a 320x480
// RGB565 framebuffer.
//
// The package owns a differential render pipeline: every submitted frame is
// compared against a shadow copy of what the panel currently displays, a
// calibrated cost model picks between emitting one command per changed pixel
// or a tiled bounding-box rewrite, and software rotation repacks the payload
// when the requested orientation does not match the panel's native axes.
// Image decoding, scaling and the concrete serial transport are left to the
// caller; see the serialport subpackage for one such transport.
package turingpanel
