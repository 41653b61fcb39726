package utils

import (
	"context"
	"sync"
)

type ContainerKey string

const (
	LookupEngine     ContainerKey = "lookup_engine"
	ProviderRegistry ContainerKey = "provider_registry"
)

type container struct {
	mutex sync.RWMutex
	items map[ContainerKey]interface{}
}

// Container holds the long lived services shared by the commands and the
// http handlers.
var Container = &container{
	items: map[ContainerKey]interface{}{},
}

func (c *container) Assign(_ context.Context, key ContainerKey, value interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = value
}

// Fetch returns the value assigned to key or nil.
func (c *container) Fetch(_ context.Context, key ContainerKey) interface{} {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.items[key]
}

func (c *container) Clear(_ context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = map[ContainerKey]interface{}{}
}
