// Package capture opens a system audio capture device and delivers raw PCM
// blocks to the session. Everything here is plumbing around miniaudio; the
// core never sees a device handle, only blocks of bytes in arrival order.
package capture

import (
	"errors"
	"fmt"

	"github.com/gen2brain/malgo"
)

const (
	// SampleRate is the fixed capture rate in Hz.
	SampleRate = 44100
	// Channels is fixed to mono; the estimator has no mixing stage.
	Channels = 1
)

// ErrNoDevice indicates that no capture device is available.
var ErrNoDevice = errors.New("no capture devices available")

// DeviceInfo describes one enumerable capture device.
type DeviceInfo struct {
	Index   int
	Name    string
	Default bool
}

// Devices enumerates the capture devices currently visible to the system.
func Devices() ([]DeviceInfo, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("enumerate capture devices: %w", err)
	}
	out := make([]DeviceInfo, len(infos))
	for i, info := range infos {
		out[i] = DeviceInfo{
			Index:   i,
			Name:    info.Name(),
			Default: info.IsDefault != 0,
		}
	}
	return out, nil
}

// Stream is an open capture device delivering mono S16LE blocks to a
// callback from the audio context.
type Stream struct {
	ctx *malgo.AllocatedContext
	dev *malgo.Device
}

// Open starts capture on the device at index. An out-of-range index falls
// back to the system default device; if the system has no capture devices at
// all, Open fails with ErrNoDevice. onBlock runs on the capture context and
// must not block for long.
func Open(index int, onBlock func(block []byte)) (*Stream, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}
	release := func() {
		_ = ctx.Uninit()
		ctx.Free()
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatS16
	cfg.Capture.Channels = Channels
	cfg.SampleRate = SampleRate
	cfg.Alsa.NoMMap = 1

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		release()
		return nil, fmt.Errorf("enumerate capture devices: %w", err)
	}
	if len(infos) == 0 {
		release()
		return nil, ErrNoDevice
	}
	if index >= 0 && index < len(infos) {
		cfg.Capture.DeviceID = infos[index].ID.Pointer()
	}

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			onBlock(input)
		},
	}
	dev, err := malgo.InitDevice(ctx.Context, cfg, callbacks)
	if err != nil {
		release()
		return nil, fmt.Errorf("open capture device %d: %w", index, err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		release()
		return nil, fmt.Errorf("start capture device %d: %w", index, err)
	}
	return &Stream{ctx: ctx, dev: dev}, nil
}

// Close stops capture and releases the device. Safe to call more than once.
func (s *Stream) Close() {
	if s.dev != nil {
		s.dev.Uninit()
		s.dev = nil
	}
	if s.ctx != nil {
		_ = s.ctx.Uninit()
		s.ctx.Free()
		s.ctx = nil
	}
}
