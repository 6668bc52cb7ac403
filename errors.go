// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

import (
	"errors"
	"fmt"
)

// Sentinel errors for failure kinds that carry no extra context of their
// own.
var (
	// ErrDisconnected is returned when a write is attempted with no open
	// link.
	ErrDisconnected = errors.New("turingpanel: link is disconnected")
	// ErrRecoveryExhausted is returned when reopening the link during
	// recovery does not succeed within the recovery window.
	ErrRecoveryExhausted = errors.New("turingpanel: recovery exhausted")
)

// WriteFailedError wraps an I/O failure reported by the underlying byte
// sink while a command was in flight.
type WriteFailedError struct {
	Err error
}

func (e *WriteFailedError) Error() string {
	return fmt.Sprintf("turingpanel: write failed: %v", e.Err)
}

func (e *WriteFailedError) Unwrap() error { return e.Err }

// PortBusyError is returned when opening the byte sink fails because
// something else holds it, e.g. a locked host session.
type PortBusyError struct {
	Port string
	Err  error
}

func (e *PortBusyError) Error() string {
	return fmt.Sprintf("turingpanel: port %q busy: %v", e.Port, e.Err)
}

func (e *PortBusyError) Unwrap() error { return e.Err }

// InvalidArgumentError is returned when a coordinate or region falls
// outside the logical surface, or an orientation value is unknown.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("turingpanel: invalid argument: %s", e.Reason)
}
