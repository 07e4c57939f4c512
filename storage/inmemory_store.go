package storage

import (
	"context"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// UpdateBufferSize is the capacity of every listener channel. Updates to a
// listener whose channel is full are dropped, a slow websocket must not stall
// the bus reader.
const UpdateBufferSize = 255

type InmemoryStore struct {
	mu     sync.RWMutex
	values []byte

	listenMu    sync.Mutex
	updateChans map[<-chan *Update]chan *Update

	// stop will be closed when Close() is called
	stop     chan struct{}
	stopOnce sync.Once
}

func NewInmemoryStore() *InmemoryStore {
	return &InmemoryStore{
		values:      []byte(""),
		stop:        make(chan struct{}),
		updateChans: make(map[<-chan *Update]chan *Update),
	}
}

func (i *InmemoryStore) Close() error {
	i.stopOnce.Do(func() {
		close(i.stop)

		i.listenMu.Lock()
		defer i.listenMu.Unlock()

		for key, updateChan := range i.updateChans {
			close(updateChan)
			delete(i.updateChans, key)
		}
	})

	return nil
}

func (i *InmemoryStore) Set(ctx context.Context, key []byte, value interface{}) error {
	if !i.isRunning() {
		return ErrClosed
	}

	i.mu.Lock()
	values, err := sjson.SetBytes(i.values, string(key), value)
	if err != nil {
		i.mu.Unlock()
		return err
	}

	i.values = values
	update := &Update{
		Key:   key,
		Value: []byte(gjson.GetBytes(i.values, string(key)).Raw),
	}
	i.mu.Unlock()

	i.listenMu.Lock()
	defer i.listenMu.Unlock()

	for _, updateChan := range i.updateChans {
		select {
		case updateChan <- update:
		default:
		}
	}

	return nil
}

// Get returns the raw JSON under key, or nil when nothing was stored there.
func (i *InmemoryStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	result := gjson.GetBytes(i.values, string(key))
	if !result.Exists() {
		return nil, nil
	}

	return []byte(result.Raw), nil
}

func (i *InmemoryStore) ListenToUpdates() <-chan *Update {
	i.listenMu.Lock()
	defer i.listenMu.Unlock()

	updateChan := make(chan *Update, UpdateBufferSize)
	if !i.isRunning() {
		close(updateChan)
		return updateChan
	}

	i.updateChans[updateChan] = updateChan
	return updateChan
}

// StopListening closes and forgets a channel returned by ListenToUpdates.
func (i *InmemoryStore) StopListening(c <-chan *Update) {
	i.listenMu.Lock()
	defer i.listenMu.Unlock()

	if updateChan, ok := i.updateChans[c]; ok {
		close(updateChan)
		delete(i.updateChans, c)
	}
}

func (i *InmemoryStore) Restore(values []byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.values = append([]byte(nil), values...)
	return nil
}

func (i *InmemoryStore) Backup() ([]byte, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if len(i.values) == 0 {
		return []byte("{}"), nil
	}

	return append([]byte(nil), i.values...), nil
}

// isRunning returns true if Close has not been called
func (i *InmemoryStore) isRunning() bool {
	select {
	case <-i.stop:
		return false

	default:
		return true
	}
}

var _ Store = (*InmemoryStore)(nil)
