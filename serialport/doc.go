// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package serialport adapts a go.bug.st/serial port to the
// turingpanel.ByteSink interface. It is the external collaborator the
// core render pipeline leaves out: opening a named port with 8-N-1 framing
// and asserting DTR/RTS live here, not in the core package. It does not
// enumerate ports or size OS-level buffers.
package serialport
