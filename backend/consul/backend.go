package consul

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/fileio/backend"
	"github.com/mwantia/fileio/data"
)

// MaxValueSize is the value size limit imposed by Consul KV.
const MaxValueSize = 512 * 1024

// ConsulBackend stores objects as values in the HashiCorp Consul KV store.
// Best suited for configuration files and other small assets; commits larger
// than MaxValueSize fail with data.ErrObjectTooLarge.
type ConsulBackend struct {
	mu sync.RWMutex
	kv *api.KV

	config *ConsulBackendConfig
}

// ConsulBackendConfig contains configuration options for the Consul backend.
type ConsulBackendConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Prefix for all keys in Consul KV (optional)
	Prefix string
}

// NewConsulBackend creates a new Consul-backed object storage backend.
func NewConsulBackend(config *ConsulBackendConfig) (*ConsulBackend, error) {
	if config == nil {
		config = &ConsulBackendConfig{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulBackend{
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend.
func (*ConsulBackend) Name() string {
	return "consul"
}

// OpenObject opens the object at key under the given mode.
func (cb *ConsulBackend) OpenObject(ctx context.Context, key string, mode data.AccessMode) (backend.ObjectHandle, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	// Write mode replaces the value wholesale; no need to fetch it first
	if mode.HasWrite() {
		return backend.NewWriterHandle(ctx, nil, true, cb.commitFunc(key)), nil
	}

	pair, _, err := cb.kv.Get(cb.buildKey(key), nil)
	if err != nil {
		return nil, err
	}

	switch {
	case mode.HasRead():
		if pair == nil {
			return nil, data.ErrNotExist
		}
		return backend.NewReaderHandle(pair.Value), nil

	case mode.HasAppend():
		var initial []byte
		if pair != nil {
			initial = pair.Value
		}

		return backend.NewWriterHandle(ctx, initial, pair == nil, cb.commitFunc(key)), nil
	}

	return nil, data.ErrInvalidMode
}

func (cb *ConsulBackend) commitFunc(key string) backend.CommitFunc {
	return func(ctx context.Context, content []byte) error {
		if len(content) > MaxValueSize {
			return data.ErrObjectTooLarge
		}

		cb.mu.Lock()
		defer cb.mu.Unlock()

		pair := &api.KVPair{
			Key:   cb.buildKey(key),
			Value: content,
		}

		_, err := cb.kv.Put(pair, nil)
		return err
	}
}

// StatObject returns the size of the object at key.
// Consul KV keeps no timestamps, so both times report the stat call itself.
func (cb *ConsulBackend) StatObject(ctx context.Context, key string) (*data.FileStat, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	pair, _, err := cb.kv.Get(cb.buildKey(key), nil)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, data.ErrNotExist
	}

	now := time.Now()

	return &data.FileStat{
		Key:        key,
		Size:       int64(len(pair.Value)),
		CreateTime: now,
		ModifyTime: now,
	}, nil
}

// LookupObject checks if an object exists at the given key.
func (cb *ConsulBackend) LookupObject(ctx context.Context, key string) (bool, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	pair, _, err := cb.kv.Get(cb.buildKey(key), nil)
	if err != nil {
		return false, err
	}

	return pair != nil, nil
}

// RemoveObject deletes the object at key.
func (cb *ConsulBackend) RemoveObject(ctx context.Context, key string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	_, err := cb.kv.Delete(cb.buildKey(key), nil)
	return err
}

func (cb *ConsulBackend) buildKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if cb.config.Prefix == "" {
		return key
	}

	return strings.TrimSuffix(cb.config.Prefix, "/") + "/" + key
}
