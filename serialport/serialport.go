// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package serialport

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/GermanBionicSystems/turingpanel"
)

// DefaultBaudRate is the baud rate the reference panel firmware is driven
// at.
const DefaultBaudRate = 921600

// Options configures Open.
type Options struct {
	// Port is the OS device path, e.g. "/dev/ttyACM0" or "COM5".
	Port string
	// BaudRate defaults to DefaultBaudRate when zero.
	BaudRate int
	// ReadTimeout bounds blocking reads on the underlying port; the
	// render pipeline itself never reads, this only affects any
	// handshake a caller layers on top.
	ReadTimeout time.Duration
}

// DefaultOptions returns Options for port with the recommended baud rate
// and a 1 second read timeout.
func DefaultOptions(port string) Options {
	return Options{Port: port, BaudRate: DefaultBaudRate, ReadTimeout: time.Second}
}

// Port adapts a go.bug.st/serial port to turingpanel.ByteSink.
type Port struct {
	p serial.Port
}

// Open opens the serial port at opts.Port with 8-N-1 framing and DTR/RTS
// asserted.
func Open(opts Options) (turingpanel.ByteSink, error) {
	baud := opts.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(opts.Port, mode)
	if err != nil {
		return nil, &turingpanel.PortBusyError{Port: opts.Port, Err: err}
	}
	if err := p.SetDTR(true); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("serialport: set DTR on %s: %w", opts.Port, err)
	}
	if err := p.SetRTS(true); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("serialport: set RTS on %s: %w", opts.Port, err)
	}
	timeout := opts.ReadTimeout
	if timeout == 0 {
		timeout = time.Second
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("serialport: set read timeout on %s: %w", opts.Port, err)
	}

	return &Port{p: p}, nil
}

// Write implements turingpanel.ByteSink.
func (s *Port) Write(b []byte) (int, error) {
	return s.p.Write(b)
}

// Close implements turingpanel.ByteSink.
func (s *Port) Close() error {
	return s.p.Close()
}

// Opener returns a func suitable for turingpanel.Open and for Link's
// recovery reopen: each call opens opts.Port fresh.
func Opener(opts Options) func() (turingpanel.ByteSink, error) {
	return func() (turingpanel.ByteSink, error) {
		return Open(opts)
	}
}
