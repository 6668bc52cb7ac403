// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

import (
	"io"
	"log"
	"time"
)

// ByteSink is the only contract the render pipeline needs from a serial
// transport: blocking writes and an error-reporting Close. The concrete
// transport -- port enumeration, DTR/RTS, OS buffer sizing -- is an
// external collaborator; see the serialport subpackage for one.
type ByteSink interface {
	io.Writer
	io.Closer
}

// recoveryWindow bounds how long Link.WriteAll's internal recovery will
// keep retrying the opener before giving up.
const recoveryWindow = 1 * time.Second

// recoveryRetryInterval is the pause between reopen attempts inside the
// recovery window.
const recoveryRetryInterval = 20 * time.Millisecond

// Link owns the byte sink and the reconnect logic. It is not safe for
// concurrent use, matching the single-threaded caller model of this
// package.
type Link struct {
	sink   ByteSink
	opener func() (ByteSink, error)

	// onRecover re-establishes device state (Reset, Clear, Brightness,
	// Orientation, full-shadow redraw) once the sink has been
	// successfully reopened. Installed by Driver.
	onRecover func() error

	recovering bool
}

// helloPreamble is six 0x45 bytes the panel's Rev-A boot sequence expects
// before it will accept any other command, sent once on every fresh open.
var helloPreamble = [6]byte{0x45, 0x45, 0x45, 0x45, 0x45, 0x45}

// helloHandshake writes helloPreamble to sink, ignoring the panel's lack of
// a reply (the core never reads from the sink, see ByteSink).
func helloHandshake(sink ByteSink) error {
	_, err := sink.Write(helloPreamble[:])
	return err
}

// Connected reports whether the link currently holds an open sink.
func (l *Link) Connected() bool {
	return l.sink != nil
}

// Open opens the sink if not already open and runs the hello handshake.
func (l *Link) Open() error {
	if l.sink != nil {
		return nil
	}
	sink, err := l.opener()
	if err != nil {
		return err
	}
	if err := helloHandshake(sink); err != nil {
		_ = sink.Close()
		return &WriteFailedError{Err: err}
	}
	l.sink = sink
	return nil
}

// openWithin retries Open until it succeeds or window elapses.
func (l *Link) openWithin(window time.Duration) error {
	deadline := time.Now().Add(window)
	for {
		sink, err := l.opener()
		if err == nil {
			if helloErr := helloHandshake(sink); helloErr != nil {
				_ = sink.Close()
				err = helloErr
			} else {
				l.sink = sink
				return nil
			}
		}
		if time.Now().After(deadline) {
			return ErrRecoveryExhausted
		}
		time.Sleep(recoveryRetryInterval)
	}
}

// Close releases the sink, ignoring a nil sink. Repeated calls are
// idempotent.
func (l *Link) Close() error {
	if l.sink == nil {
		return nil
	}
	err := l.sink.Close()
	l.sink = nil
	return err
}

// WriteAll blocks until header and payload have both been handed to the
// sink, or fails. On a write failure it runs the recovery protocol once
// and resumes the write; if recovery itself fails, the recovery error is
// returned.
func (l *Link) WriteAll(header, payload []byte) error {
	if l.sink == nil {
		return ErrDisconnected
	}

	if err := l.writeOnce(header, payload); err != nil {
		if l.recovering {
			// The failure happened while resyncing inside recovery
			// itself; don't recurse, just surface it.
			return err
		}
		if recErr := l.recover(); recErr != nil {
			return recErr
		}
		return l.writeOnce(header, payload)
	}
	return nil
}

func (l *Link) writeOnce(header, payload []byte) error {
	if _, err := l.sink.Write(header); err != nil {
		return &WriteFailedError{Err: err}
	}
	if len(payload) > 0 {
		if _, err := l.sink.Write(payload); err != nil {
			return &WriteFailedError{Err: err}
		}
	}
	return nil
}

// recover runs the recovery protocol: close (ignoring errors), retry
// open within recoveryWindow, then hand off to onRecover to restore
// device state.
func (l *Link) recover() error {
	l.recovering = true
	defer func() { l.recovering = false }()

	if l.sink != nil {
		_ = l.sink.Close()
		l.sink = nil
	}

	deadline := time.Now().Add(recoveryWindow)
	attempt := 0
	for {
		sink, err := l.opener()
		if err == nil {
			if helloErr := helloHandshake(sink); helloErr != nil {
				_ = sink.Close()
				err = helloErr
			} else {
				l.sink = sink
				break
			}
		}
		attempt++
		if time.Now().After(deadline) {
			log.Printf("turingpanel: recovery reopen exhausted after %d attempts: %v", attempt, err)
			return ErrRecoveryExhausted
		}
		log.Printf("turingpanel: recovery reopen attempt %d failed: %v; retrying", attempt, err)
		time.Sleep(recoveryRetryInterval)
	}

	if l.onRecover == nil {
		return nil
	}
	if err := l.onRecover(); err != nil {
		log.Printf("turingpanel: recovery re-sync failed: %v", err)
		return ErrRecoveryExhausted
	}
	return nil
}
