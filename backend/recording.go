package backend

import (
	"github.com/gogpu/paint/gpucore"
	"github.com/gogpu/paint/recording"
)

// Backend name constants.
const (
	// BackendRecording is the name of the in-memory recording backend.
	BackendRecording = "recording"
	// BackendNative is the name of the Pure Go GPU backend (gogpu/wgpu).
	BackendNative = "native"
)

// RecordingBackend is a device backend that records every device call in
// memory. It needs no GPU and is always available.
type RecordingBackend struct {
	device *recording.Device
}

// init registers the recording backend on package import.
func init() {
	Register(BackendRecording, func() DeviceBackend {
		return &RecordingBackend{}
	})
}

// NewRecordingBackend creates a new recording backend.
func NewRecordingBackend() *RecordingBackend {
	return &RecordingBackend{}
}

// Name returns the backend identifier.
func (b *RecordingBackend) Name() string {
	return BackendRecording
}

// Init initializes the backend with an empty recording device.
func (b *RecordingBackend) Init() error {
	b.device = recording.NewDevice()
	return nil
}

// Close drops the recording.
func (b *RecordingBackend) Close() {
	b.device = nil
}

// Device returns the recording device, or nil before Init.
func (b *RecordingBackend) Device() gpucore.Device {
	if b.device == nil {
		return nil
	}
	return b.device
}

// Recording returns the concrete recording device for inspection.
func (b *RecordingBackend) Recording() *recording.Device {
	return b.device
}
