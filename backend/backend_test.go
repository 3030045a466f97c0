package backend

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/paint/gpucore"
)

// failingBackend never initializes.
type failingBackend struct {
	name   string
	closed bool
}

var errNoHardware = errors.New("no hardware")

func (b *failingBackend) Name() string           { return b.name }
func (b *failingBackend) Init() error            { return errNoHardware }
func (b *failingBackend) Close()                 { b.closed = true }
func (b *failingBackend) Device() gpucore.Device { return nil }

// withBackends swaps the registry for the duration of the test.
func withBackends(t *testing.T, m map[string]BackendFactory) {
	t.Helper()
	registryMu.Lock()
	saved := backends
	backends = m
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		backends = saved
		registryMu.Unlock()
	})
}

func TestRecordingBackendName(t *testing.T) {
	b := NewRecordingBackend()
	if b.Name() != "recording" {
		t.Errorf("Name() = %q, want %q", b.Name(), "recording")
	}
}

func TestRecordingBackendInit(t *testing.T) {
	b := NewRecordingBackend()
	if b.Device() != nil {
		t.Error("Device() should be nil before Init")
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if b.Device() == nil || b.Recording() == nil {
		t.Fatal("Device() should not be nil after Init")
	}

	if _, err := b.Device().CreateSampler(&gpucore.SamplerDescriptor{Label: "probe"}); err != nil {
		t.Errorf("CreateSampler() error = %v", err)
	}
	if got := b.Recording().Live().Samplers; got != 1 {
		t.Errorf("recorded samplers = %d, want 1", got)
	}

	b.Close()
	if b.Device() != nil {
		t.Error("Device() should be nil after Close")
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	// Recording backend is auto-registered via init()
	if !IsRegistered("recording") {
		t.Error("recording backend should be auto-registered")
	}

	b := Get("recording")
	if b == nil {
		t.Fatal("Get(recording) returned nil")
	}
	if b.Name() != "recording" {
		t.Errorf("Get(recording).Name() = %q, want %q", b.Name(), "recording")
	}
}

func TestRegistryGetUnregistered(t *testing.T) {
	b := Get("nonexistent")
	if b != nil {
		t.Error("Get(nonexistent) should return nil")
	}
}

func TestRegistryAvailableSorted(t *testing.T) {
	withBackends(t, map[string]BackendFactory{
		"zeta":  func() DeviceBackend { return NewRecordingBackend() },
		"alpha": func() DeviceBackend { return NewRecordingBackend() },
		"mid":   func() DeviceBackend { return NewRecordingBackend() },
	})

	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, Available()); diff != "" {
		t.Errorf("Available() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryDefaultPriority(t *testing.T) {
	withBackends(t, map[string]BackendFactory{
		BackendRecording: func() DeviceBackend { return NewRecordingBackend() },
		BackendNative:    func() DeviceBackend { return &failingBackend{name: BackendNative} },
	})

	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	if b.Name() != BackendNative {
		t.Errorf("Default() = %q, want %q", b.Name(), BackendNative)
	}
}

func TestRegistryDefaultEmpty(t *testing.T) {
	withBackends(t, map[string]BackendFactory{})

	if b := Default(); b != nil {
		t.Errorf("Default() = %v, want nil", b)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustDefault() should panic with no backends")
		}
	}()
	MustDefault()
}

func TestRegistryMustDefault(t *testing.T) {
	// Should not panic when recording backend is available
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustDefault() panicked: %v", r)
		}
	}()
	b := MustDefault()
	if b == nil {
		t.Error("MustDefault() returned nil")
	}
}

func TestRegistryInitDefaultFallsBack(t *testing.T) {
	failing := &failingBackend{name: BackendNative}
	withBackends(t, map[string]BackendFactory{
		BackendRecording: func() DeviceBackend { return NewRecordingBackend() },
		BackendNative:    func() DeviceBackend { return failing },
	})

	b, err := InitDefault()
	if err != nil {
		t.Fatalf("InitDefault() error = %v", err)
	}
	defer b.Close()

	if b.Name() != BackendRecording {
		t.Errorf("InitDefault() = %q, want %q", b.Name(), BackendRecording)
	}
	if b.Device() == nil {
		t.Error("backend from InitDefault() should be usable")
	}
	if !failing.closed {
		t.Error("failed backend should be closed")
	}
}

func TestRegistryInitDefaultNoneWork(t *testing.T) {
	withBackends(t, map[string]BackendFactory{
		BackendNative: func() DeviceBackend { return &failingBackend{name: BackendNative} },
		"other":       func() DeviceBackend { return &failingBackend{name: "other"} },
	})

	b, err := InitDefault()
	if b != nil {
		t.Errorf("InitDefault() backend = %v, want nil", b)
	}
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("error = %v, want ErrBackendNotAvailable", err)
	}
	if !errors.Is(err, errNoHardware) {
		t.Errorf("error = %v, should carry the Init failure", err)
	}
}

func TestRegistryUnregister(t *testing.T) {
	// Register a test backend
	testFactory := func() DeviceBackend {
		return &RecordingBackend{}
	}
	Register("test-backend", testFactory)

	if !IsRegistered("test-backend") {
		t.Error("test-backend should be registered")
	}

	Unregister("test-backend")

	if IsRegistered("test-backend") {
		t.Error("test-backend should be unregistered")
	}
}

func TestRegistryIsRegistered(t *testing.T) {
	if !IsRegistered("recording") {
		t.Error("recording should be registered")
	}
	if IsRegistered("nonexistent") {
		t.Error("nonexistent should not be registered")
	}
}
