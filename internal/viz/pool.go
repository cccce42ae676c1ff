package viz

import "sync"

// CanvasPool recycles canvases of one fixed size. Rendering builds a
// frame thirty times a second; without the pool every frame allocates
// the whole grid again.
type CanvasPool struct {
	pool          sync.Pool
	width, height int
}

func NewCanvasPool(w, h int) *CanvasPool {
	return &CanvasPool{
		width:  w,
		height: h,
		pool: sync.Pool{
			New: func() interface{} {
				return NewCanvas(w, h)
			},
		},
	}
}

// Get returns a cleared canvas of the pool's size.
func (p *CanvasPool) Get() *Canvas {
	c := p.pool.Get().(*Canvas)
	c.Clear()
	return c
}

// Put returns a canvas to the pool. Canvases of a different size are
// dropped.
func (p *CanvasPool) Put(c *Canvas) {
	if c.Width == p.width && c.Height == p.height {
		p.pool.Put(c)
	}
}
