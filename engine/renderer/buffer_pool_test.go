package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestBufferClassRounding(t *testing.T) {
	cases := []struct {
		size uint64
		want uint64
	}{
		{1, 256},
		{96, 256},
		{256, 256},
		{257, 512},
		{512, 512},
		{513, 1024},
		{24 * 500, 16384},
	}
	for _, tc := range cases {
		if got := bufferClass(tc.size); got != tc.want {
			t.Errorf("bufferClass(%d) = %d, want %d", tc.size, got, tc.want)
		}
	}
}

func TestBufferPoolReturnTwicePanics(t *testing.T) {
	p := NewBufferPool(nil, "test")
	b := &PooledBuffer{size: 256, usage: wgpu.BufferUsageUniform, inUse: true}
	p.outstanding = 1

	p.Return(b)
	if p.Outstanding() != 0 {
		t.Fatalf("outstanding = %d after return, want 0", p.Outstanding())
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on double return")
		}
	}()
	p.Return(b)
}

func TestBufferPoolReusesReturnedBuffers(t *testing.T) {
	// Exercise the free-list path without a device: seed the pool with a
	// buffer as if it had been created earlier, return it, and check that
	// the next checkout of the same class hands it back instead of touching
	// the nil device.
	p := NewBufferPool(nil, "test")
	seeded := &PooledBuffer{size: 256, usage: wgpu.BufferUsageUniform, inUse: true}
	p.all = append(p.all, seeded)
	p.outstanding = 1
	p.Return(seeded)

	got, err := p.Checkout(wgpu.BufferUsageUniform, 96)
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if got != seeded {
		t.Errorf("expected the returned buffer to be reused")
	}
	if !got.inUse {
		t.Errorf("checked-out buffer should be marked in use")
	}
	if p.Outstanding() != 1 {
		t.Errorf("outstanding = %d, want 1", p.Outstanding())
	}
}

func TestBufferPoolClassesDoNotMix(t *testing.T) {
	p := NewBufferPool(nil, "test")
	uniform := &PooledBuffer{size: 256, usage: wgpu.BufferUsageUniform, inUse: true}
	vertex := &PooledBuffer{size: 256, usage: wgpu.BufferUsageVertex, inUse: true}
	p.all = append(p.all, uniform, vertex)
	p.outstanding = 2
	p.Return(uniform)
	p.Return(vertex)

	got, err := p.Checkout(wgpu.BufferUsageVertex, 24)
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if got != vertex {
		t.Errorf("vertex checkout should not receive a uniform-usage buffer")
	}
}
