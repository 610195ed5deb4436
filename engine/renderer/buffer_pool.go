package renderer

import (
	"fmt"
	"math/bits"

	"github.com/cogentcore/webgpu/wgpu"
)

// minBufferClass is the smallest pooled buffer size. Uniform blocks here are
// all well under this, so every quad layer shares one size class.
const minBufferClass = 256

// bufferClass rounds a requested size up to its pool size class, the next
// power of two at or above minBufferClass.
func bufferClass(size uint64) uint64 {
	if size <= minBufferClass {
		return minBufferClass
	}
	return 1 << bits.Len64(size-1)
}

// PooledBuffer is one recyclable GPU buffer. Uniform data is transient, so
// buffers cycle through the pool every frame; the bind group for a buffer is
// created lazily per layout and cached on the buffer, which means steady
// state frames create no GPU objects at all.
type PooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
	usage  wgpu.BufferUsage

	bindGroups map[*wgpu.BindGroupLayout]*wgpu.BindGroup
	inUse      bool
}

// Buffer returns the underlying GPU buffer.
func (b *PooledBuffer) Buffer() *wgpu.Buffer {
	return b.buffer
}

// Size returns the allocated size of the buffer, which is the size class it
// was rounded up to, not the size requested at checkout.
func (b *PooledBuffer) Size() uint64 {
	return b.size
}

// BindGroup returns the bind group binding this buffer at binding 0 under
// the given layout, creating and caching it on first use.
//
// Parameters:
//   - device: the device to create the bind group on
//   - layout: the bind group layout to bind under
//
// Returns:
//   - *wgpu.BindGroup: the cached or newly created bind group
//   - error: an error if bind group creation failed
func (b *PooledBuffer) BindGroup(device *wgpu.Device, layout *wgpu.BindGroupLayout) (*wgpu.BindGroup, error) {
	if bg, ok := b.bindGroups[layout]; ok {
		return bg, nil
	}
	bg, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Pooled Buffer Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  b.buffer,
				Offset:  0,
				Size:    b.size,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create pooled bind group: %w", err)
	}
	b.bindGroups[layout] = bg
	return bg, nil
}

func (b *PooledBuffer) release() {
	for _, bg := range b.bindGroups {
		bg.Release()
	}
	b.bindGroups = nil
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

// poolKey groups free buffers by usage and size class.
type poolKey struct {
	usage wgpu.BufferUsage
	size  uint64
}

// BufferPool recycles transient GPU buffers for one surface renderer. The
// pool never shrinks; its high-water mark is the worst frame of its surface.
// It is not safe for concurrent use: each surface renderer's encode worker
// owns its pool exclusively.
type BufferPool struct {
	device *wgpu.Device
	label  string

	free        map[poolKey][]*PooledBuffer
	all         []*PooledBuffer
	outstanding int
}

// NewBufferPool creates an empty buffer pool.
//
// Parameters:
//   - device: the device buffers are created on
//   - label: a debug label applied to created buffers
//
// Returns:
//   - *BufferPool: the empty pool
func NewBufferPool(device *wgpu.Device, label string) *BufferPool {
	return &BufferPool{
		device: device,
		label:  label,
		free:   make(map[poolKey][]*PooledBuffer),
	}
}

// Checkout hands out a buffer of at least the requested size with the given
// usage, reusing a free buffer of the same class when one exists. CopyDst is
// added to the usage so the queue can write into it.
//
// Parameters:
//   - usage: the base usage, e.g. wgpu.BufferUsageUniform
//   - size: the minimum size in bytes
//
// Returns:
//   - *PooledBuffer: the checked-out buffer
//   - error: an error if a new buffer had to be created and creation failed
func (p *BufferPool) Checkout(usage wgpu.BufferUsage, size uint64) (*PooledBuffer, error) {
	class := bufferClass(size)
	key := poolKey{usage: usage, size: class}

	if list := p.free[key]; len(list) > 0 {
		b := list[len(list)-1]
		p.free[key] = list[:len(list)-1]
		b.inUse = true
		p.outstanding++
		return b, nil
	}

	buffer, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: p.label,
		Size:  class,
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create pooled buffer: %w", err)
	}
	b := &PooledBuffer{
		buffer:     buffer,
		size:       class,
		usage:      usage,
		bindGroups: make(map[*wgpu.BindGroupLayout]*wgpu.BindGroup),
		inUse:      true,
	}
	p.all = append(p.all, b)
	p.outstanding++
	return b, nil
}

// Return puts a checked-out buffer back on its free list. Returning a buffer
// that is not checked out is a bug in the caller and panics.
//
// Parameters:
//   - b: the buffer to return
func (p *BufferPool) Return(b *PooledBuffer) {
	if !b.inUse {
		panic("renderer: pooled buffer returned twice")
	}
	b.inUse = false
	p.outstanding--
	key := poolKey{usage: b.usage, size: b.size}
	p.free[key] = append(p.free[key], b)
}

// Outstanding returns the number of buffers currently checked out.
func (p *BufferPool) Outstanding() int {
	return p.outstanding
}

// Release frees every buffer the pool ever created, including their cached
// bind groups. Must not be called with buffers still checked out.
func (p *BufferPool) Release() {
	for _, b := range p.all {
		b.release()
	}
	p.all = nil
	p.free = make(map[poolKey][]*PooledBuffer)
	p.outstanding = 0
}
