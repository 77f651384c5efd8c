//go:build windows

// Package webgpu implements a GPU statevector engine on WebGPU compute
// shaders. Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO
// WebGPU bindings.
//
// Amplitudes are stored as interleaved float32 pairs on the GPU, so the
// engine trades precision for width: it is meant for circuits too wide
// for the CPU engine, not for tight gradient tolerances.
package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/statevector"
)

// Backend is the WebGPU statevector engine.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex
}

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (backend *Backend, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Backend{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
	}, nil
}

// IsAvailable checks if WebGPU is available on the current system.
func IsAvailable() bool {
	b, err := New()
	if err != nil {
		return false
	}
	b.Release()
	return true
}

// Release frees all GPU resources held by the backend.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.pipelines {
		p.Release()
	}
	for _, s := range b.shaders {
		s.Release()
	}
	b.pipelines = make(map[string]*wgpu.ComputePipeline)
	b.shaders = make(map[string]*wgpu.ShaderModule)
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}

// Name returns "webgpu".
func (b *Backend) Name() string {
	return "webgpu"
}

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer and uploads initial data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))
	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()
	return buffer
}

// createUniformBuffer creates a uniform buffer with 16-byte alignment.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15
	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})
	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()
	return buffer
}

// readBuffer reads data back from a GPU buffer through a staging buffer.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}
	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)
	stagingBuffer.Unmap()

	return result, nil
}

// uniformParams packs the gate kernel's uniform block: pair count, target
// bit, control mask and the 2x2 unitary as interleaved f32.
func uniformParams(pairCount, targetBit, ctrlMask uint32, m [4]complex128) []byte {
	buf := make([]byte, 48)
	binary.LittleEndian.PutUint32(buf[0:4], pairCount)
	binary.LittleEndian.PutUint32(buf[4:8], targetBit)
	binary.LittleEndian.PutUint32(buf[8:12], ctrlMask)
	for i, c := range m {
		off := 16 + 8*i
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(float32(real(c))))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(float32(imag(c))))
	}
	return buf
}

// dispatchGate runs one gate kernel over the state buffer.
func (b *Backend) dispatchGate(stateBuffer *wgpu.Buffer, stateSize uint64, numQubits int,
	m [4]complex128, target int, ctrlMask uint32,
) {
	shader := b.compileShader("gate", gateShader)
	pipeline := b.getOrCreatePipeline("gate", shader)

	//nolint:gosec // G115: pair count fits in uint32 for any simulable width
	pairCount := uint32(1 << (numQubits - 1))
	//nolint:gosec // G115: target is a validated qubit index
	params := uniformParams(pairCount, uint32(target), ctrlMask, m)
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, stateBuffer, 0, stateSize),
		wgpu.BufferBindingEntry(1, bufferParams, 0, 48),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	workgroups := (pairCount + workgroupSize - 1) / workgroupSize
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)
}

// Simulate evolves c from |0...0> on the GPU and reads the state back.
func (b *Backend) Simulate(c *circuit.Circuit, values []float64) (*statevector.Statevector, error) {
	bind, err := c.Binder(values)
	if err != nil {
		return nil, err
	}
	n := c.NumQubits()
	dim := 1 << n

	// |0...0> as interleaved f32 pairs.
	initial := make([]byte, 8*dim)
	binary.LittleEndian.PutUint32(initial[0:4], math.Float32bits(1))
	stateSize := uint64(len(initial))
	stateBuffer := b.createBuffer(initial,
		wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	defer stateBuffer.Release()

	for i := 0; i < c.NumGates(); i++ {
		g := c.Gate(i)
		theta := 0.0
		if g.Angle != nil {
			theta = g.Angle.Eval(bind)
		}
		switch {
		case g.Kind == circuit.KindSwap:
			// Swap decomposes into three alternating CX gates.
			x := statevector.BaseMatrix(circuit.KindX, 0)
			q0, q1 := g.Qubits[0], g.Qubits[1]
			b.dispatchGate(stateBuffer, stateSize, n, x, q1, uint32(1)<<q0)
			b.dispatchGate(stateBuffer, stateSize, n, x, q0, uint32(1)<<q1)
			b.dispatchGate(stateBuffer, stateSize, n, x, q1, uint32(1)<<q0)
		case g.Kind.Controlled():
			m := statevector.BaseMatrix(g.Kind, theta)
			b.dispatchGate(stateBuffer, stateSize, n, m, g.Qubits[1], uint32(1)<<g.Qubits[0])
		default:
			m := statevector.BaseMatrix(g.Kind, theta)
			b.dispatchGate(stateBuffer, stateSize, n, m, g.Qubits[0], 0)
		}
	}

	raw, err := b.readBuffer(stateBuffer, stateSize)
	if err != nil {
		return nil, err
	}
	amps := make([]complex128, dim)
	for k := range amps {
		re := math.Float32frombits(binary.LittleEndian.Uint32(raw[8*k : 8*k+4]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(raw[8*k+4 : 8*k+8]))
		amps[k] = complex(float64(re), float64(im))
	}
	return statevector.FromAmplitudes(amps)
}
