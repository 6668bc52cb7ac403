// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package turingpanel

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// Orientation is the panel's 4-valued orientation tag. The numeric value is
// the ordinal the wire protocol carries.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
	ReversePortrait
	ReverseLandscape
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case ReversePortrait:
		return "reverse-portrait"
	case ReverseLandscape:
		return "reverse-landscape"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// colorWhite is the RGB565 encoding Clear fills the shadow with.
const colorWhite uint16 = 0xFFFF

// settleDelay is the pause recovery inserts between re-sending Reset and
// Clear.
const settleDelay = 50 * time.Millisecond

// resetReopenTimeout bounds the reopen attempted by the public Reset
// operation.
const resetReopenTimeout = 5 * time.Second

// Config holds the options Open applies once the link is healthy. There is
// no loader: callers build one directly.
type Config struct {
	// Brightness is the initial brightness, 1..100. Zero is treated as
	// unset and leaves the default of 100.
	Brightness int
	// Orientation is the initial orientation.
	Orientation Orientation
	// CostPerPixel overrides DefaultCostPerPixel for the strategy
	// selector's cost model, mostly useful for recalibrating against a
	// different panel revision.
	CostPerPixel int
}

// DefaultConfig returns Portrait, full brightness, and the calibrated
// default cost-per-pixel.
func DefaultConfig() Config {
	return Config{
		Brightness:   100,
		Orientation:  Portrait,
		CostPerPixel: DefaultCostPerPixel,
	}
}

// Driver is a handle to one panel. It exclusively owns the shadow
// framebuffer, the command scratch area, and the serial link; a submitted
// frame is borrowed read-only for the duration of a render call. Driver is
// not safe for concurrent use: the render pipeline is designed for a
// single-threaded caller.
type Driver struct {
	link *Link

	orientation      Orientation
	width, height    int
	softwareRotation bool
	brightness       int
	costPerPixel     int

	shadow  *ScreenBuffer
	scratch [16]byte
}

// Open connects through opener and initializes the driver to Portrait,
// logical 320x480, brightness 100.
func Open(opener func() (ByteSink, error)) (*Driver, error) {
	d := &Driver{
		orientation:  Portrait,
		width:        nativeWidth,
		height:       nativeHeight,
		brightness:   100,
		costPerPixel: DefaultCostPerPixel,
		shadow:       NewScreenBuffer(nativeWidth, nativeHeight),
	}
	d.link = &Link{opener: opener}
	d.link.onRecover = d.resyncAfterRecovery

	if err := d.link.Open(); err != nil {
		return nil, err
	}
	return d, nil
}

// OpenWithConfig is Open followed by applying cfg's orientation, brightness
// and cost-per-pixel override.
func OpenWithConfig(opener func() (ByteSink, error), cfg Config) (*Driver, error) {
	d, err := Open(opener)
	if err != nil {
		return nil, err
	}
	if cfg.CostPerPixel > 0 {
		d.costPerPixel = cfg.CostPerPixel
	}
	if cfg.Orientation != Portrait {
		if err := d.SetOrientation(cfg.Orientation); err != nil {
			_ = d.Close()
			return nil, err
		}
	}
	if cfg.Brightness != 0 && cfg.Brightness != 100 {
		if err := d.SetBrightness(cfg.Brightness); err != nil {
			_ = d.Close()
			return nil, err
		}
	}
	return d, nil
}

// Close releases the link. Repeated calls are idempotent.
func (d *Driver) Close() error {
	if d.link == nil {
		return nil
	}
	return d.link.Close()
}

// Reset sends the Reset command, closes the link, then reconnects within a
// 5 second window.
func (d *Driver) Reset() error {
	packControl(d.scratch[:headerSize], cmdReset)
	if err := d.link.WriteAll(d.scratch[:headerSize], nil); err != nil {
		return err
	}
	_ = d.link.Close()
	return d.link.openWithin(resetReopenTimeout)
}

// Clear sends the Clear command and fills the shadow with white.
func (d *Driver) Clear() error {
	packControl(d.scratch[:headerSize], cmdClear)
	if err := d.link.WriteAll(d.scratch[:headerSize], nil); err != nil {
		return err
	}
	d.shadow.Fill(colorWhite)
	return nil
}

// ScreenOn turns the panel's backlight on. It has no shadow effect.
func (d *Driver) ScreenOn() error {
	packControl(d.scratch[:headerSize], cmdScreenOn)
	return d.link.WriteAll(d.scratch[:headerSize], nil)
}

// ScreenOff turns the panel's backlight off. It has no shadow effect.
func (d *Driver) ScreenOff() error {
	packControl(d.scratch[:headerSize], cmdScreenOff)
	return d.link.WriteAll(d.scratch[:headerSize], nil)
}

// SetBrightness clamps level to [0, 100], records it, and emits the
// Brightness command. Out-of-range input is clamped silently, it does not
// signal InvalidArgumentError.
func (d *Driver) SetBrightness(level int) error {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	packBrightness(d.scratch[:headerSize], level)
	if err := d.link.WriteAll(d.scratch[:headerSize], nil); err != nil {
		return err
	}
	d.brightness = level
	return nil
}

// SetOrientation updates the logical dimensions, toggles software
// rotation, emits the Orientation command, allocates a fresh shadow at the
// new logical dimensions, and clears it. Orientation transitions are only
// permitted while the link is healthy; a failing call leaves the driver in
// its prior state.
func (d *Driver) SetOrientation(o Orientation) error {
	var newWidth, newHeight int
	var rotate bool
	switch o {
	case Portrait, ReversePortrait:
		newWidth, newHeight = nativeWidth, nativeHeight
		rotate = false
	case Landscape, ReverseLandscape:
		newWidth, newHeight = nativeHeight, nativeWidth
		rotate = true
	default:
		return &InvalidArgumentError{Reason: fmt.Sprintf("unknown orientation %d", int(o))}
	}

	packOrientation(d.scratch[:11], int(o), nativeWidth, nativeHeight)
	if err := d.link.WriteAll(d.scratch[:6], d.scratch[6:11]); err != nil {
		return err
	}

	prevOrientation, prevWidth, prevHeight := d.orientation, d.width, d.height
	prevRotate, prevShadow := d.softwareRotation, d.shadow

	d.orientation = o
	d.width, d.height = newWidth, newHeight
	d.softwareRotation = rotate
	d.shadow = NewScreenBuffer(newWidth, newHeight)

	if err := d.Clear(); err != nil {
		d.orientation = prevOrientation
		d.width, d.height = prevWidth, prevHeight
		d.softwareRotation = prevRotate
		d.shadow = prevShadow
		return err
	}
	return nil
}

// SetPixel round-to-nearest converts (r, g, b), writes the shadow, and
// emits a single sparse-path pixel command.
func (d *Driver) SetPixel(x, y int, r, g, b byte) error {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return &InvalidArgumentError{Reason: fmt.Sprintf("pixel (%d,%d) outside %dx%d surface", x, y, d.width, d.height)}
	}
	c := EncodeRound(r, g, b)
	d.shadow.Set(x, y, c)

	px, py := mapPoint(x, y, d.softwareRotation)
	packHeader(d.scratch[:headerSize], px, py, px, py, cmdDraw)
	packPixelPayload(d.scratch[headerSize:headerSize+2], c)
	return d.link.WriteAll(d.scratch[:headerSize], d.scratch[headerSize:headerSize+2])
}

// DisplayBuffer submits a buf.Width() x buf.Height() frame at logical
// (x, y) and runs the full diff -> strategy -> transmit pipeline against
// it.
func (d *Driver) DisplayBuffer(x, y int, buf *ScreenBuffer) error {
	w, h := buf.Width(), buf.Height()
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > d.width || y+h > d.height {
		return &InvalidArgumentError{Reason: fmt.Sprintf("region (%d,%d)+%dx%d exceeds %dx%d surface", x, y, w, h, d.width, d.height)}
	}

	diff := Scan(buf.pix, w, h, d.shadow, x, y)
	if diff.Empty {
		return nil
	}

	diffW := diff.MaxX - diff.MinX + 1
	diffH := diff.MaxY - diff.MinY + 1
	switch Choose(diff.ChangeCount, diffW, diffH, d.costPerPixel) {
	case StrategySparse:
		return d.transmitSparse(buf.pix, w, h, x, y)
	default:
		return d.transmitRectangle(buf.pix, w, h, x, y, diff)
	}
}

// resyncAfterRecovery re-emits Reset, a settle delay, Clear, Brightness,
// Orientation, and a full-shadow redraw. It is
// installed as the link's onRecover hook; the link marks itself
// recovering while this runs so the nested WriteAll calls below do not
// re-trigger recovery.
func (d *Driver) resyncAfterRecovery() error {
	packControl(d.scratch[:headerSize], cmdReset)
	if err := d.link.WriteAll(d.scratch[:headerSize], nil); err != nil {
		return err
	}
	time.Sleep(settleDelay)

	packControl(d.scratch[:headerSize], cmdClear)
	if err := d.link.WriteAll(d.scratch[:headerSize], nil); err != nil {
		return err
	}

	packBrightness(d.scratch[:headerSize], d.brightness)
	if err := d.link.WriteAll(d.scratch[:headerSize], nil); err != nil {
		return err
	}

	packOrientation(d.scratch[:11], int(d.orientation), nativeWidth, nativeHeight)
	if err := d.link.WriteAll(d.scratch[:6], d.scratch[6:11]); err != nil {
		return err
	}

	return d.transmitFullShadow()
}

// transmitFullShadow redraws the entire logical surface from the shadow
// using the rectangle path, tiled by maxBlockHeight.
func (d *Driver) transmitFullShadow() error {
	stride := d.shadow.width
	shadowPix := d.shadow.pix
	rotate := d.softwareRotation

	rowsLeft := d.height
	currentY := 0
	for rowsLeft > 0 {
		tileH := rowsLeft
		if tileH > maxBlockHeight {
			tileH = maxBlockHeight
		}
		if err := d.transmitTile(0, currentY, d.width, tileH, stride, shadowPix, rotate); err != nil {
			return err
		}
		currentY += tileH
		rowsLeft -= tileH
	}
	return nil
}

// rgb565Color adapts a packed RGB565 value to color.Color so Driver can
// implement periph.io/x/conn/v3/display.Drawer.
type rgb565Color uint16

func (c rgb565Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := Decode(uint16(c))
	return uint32(r8) * 0x101, uint32(g8) * 0x101, uint32(b8) * 0x101, 0xFFFF
}

// ColorModel565 converts arbitrary colors to the panel's native RGB565
// representation.
var ColorModel565 = color.ModelFunc(func(c color.Color) color.Color {
	if rc, ok := c.(rgb565Color); ok {
		return rc
	}
	r, g, b, _ := c.RGBA()
	return rgb565Color(EncodeRound(byte(r>>8), byte(g>>8), byte(b>>8)))
})

// ColorModel implements display.Drawer.
func (d *Driver) ColorModel() color.Model {
	return ColorModel565
}

// Bounds implements display.Drawer.
func (d *Driver) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Draw implements display.Drawer. It samples src pixel by pixel into a
// ScreenBuffer using the round-to-nearest codec and submits it through
// DisplayBuffer; it does no scaling, only the coordinate-aligned copy
// display.Drawer's contract describes.
func (d *Driver) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	buf := NewScreenBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cr, cg, cb, _ := src.At(sp.X+x, sp.Y+y).RGBA()
			buf.Set(x, y, EncodeRound(byte(cr>>8), byte(cg>>8), byte(cb>>8)))
		}
	}
	return d.DisplayBuffer(r.Min.X, r.Min.Y, buf)
}

// String implements conn.Resource.
func (d *Driver) String() string {
	return fmt.Sprintf("turingpanel.Driver{%s, %dx%d}", d.orientation, d.width, d.height)
}

// Halt implements conn.Resource.
func (d *Driver) Halt() error {
	return d.Close()
}

var _ display.Drawer = (*Driver)(nil)
var _ conn.Resource = (*Driver)(nil)
