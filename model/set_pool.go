package model

import "sync"

// CoordSetPool recycles the scratch sets used while evaluating a turn
type CoordSetPool struct {
	pool sync.Pool
}

func NewCoordSetPool() *CoordSetPool {
	return &CoordSetPool{
		pool: sync.Pool{
			New: func() interface{} {
				return make(CoordSet)
			},
		},
	}
}

// Get retrieves an empty set from the pool
func (p *CoordSetPool) Get() CoordSet {
	return p.pool.Get().(CoordSet)
}

// Put returns a set to the pool, clearing its contents
func (p *CoordSetPool) Put(s CoordSet) {
	if s == nil {
		return
	}
	clear(s)
	p.pool.Put(s)
}
