package model

import (
	"sync"

	"github.com/soocke/vision-overlay-go/domain/detection"
)

// Event identifies a DetectionModel notification.
type Event int

const (
	// EventWillChange fires before the published list is replaced.
	EventWillChange Event = iota
	// EventChanged fires after the published list was replaced.
	EventChanged
)

func (e Event) String() string {
	switch e {
	case EventWillChange:
		return "will_change"
	case EventChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// Observer receives model events with a copy of the list current at the time.
type Observer func(ev Event, list detection.List)

// DetectionModel holds the published detection list. Only the republisher
// writes it; any number of views read it or subscribe to it.
type DetectionModel struct {
	mu        sync.RWMutex
	list      detection.List
	observers map[int]Observer
	nextID    int
	sets      uint64
}

func NewDetectionModel() *DetectionModel { return &DetectionModel{} }

// Subscribe registers o and returns a function that removes it.
func (m *DetectionModel) Subscribe(o Observer) (cancel func()) {
	if m == nil || o == nil {
		return func() {}
	}
	m.mu.Lock()
	if m.observers == nil {
		m.observers = make(map[int]Observer)
	}
	id := m.nextID
	m.nextID++
	m.observers[id] = o
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.observers, id)
			m.mu.Unlock()
		})
	}
}

// WillChange announces an upcoming replacement.
func (m *DetectionModel) WillChange() {
	if m == nil {
		return
	}
	m.notify(EventWillChange, m.List())
}

// Set replaces the published list. It returns false without notifying when
// list equals the current one by value.
func (m *DetectionModel) Set(list detection.List) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	if m.list.Equal(list) {
		m.mu.Unlock()
		return false
	}
	m.list = list.Clone()
	m.sets++
	snapshot := m.list.Clone()
	m.mu.Unlock()
	m.notify(EventChanged, snapshot)
	return true
}

// NotifyChanged emits EventChanged with the current list without replacing
// it. It closes a WillChange whose replacement turned out equal to what is
// already published.
func (m *DetectionModel) NotifyChanged() {
	if m == nil {
		return
	}
	m.notify(EventChanged, m.List())
}

// List returns a copy of the published list.
func (m *DetectionModel) List() detection.List {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.list.Clone()
}

// Len returns the number of published detections.
func (m *DetectionModel) Len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.list)
}

// Publishes returns how many times Set replaced the list.
func (m *DetectionModel) Publishes() uint64 {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sets
}

func (m *DetectionModel) notify(ev Event, list detection.List) {
	m.mu.RLock()
	obs := make([]Observer, 0, len(m.observers))
	for _, o := range m.observers {
		obs = append(obs, o)
	}
	m.mu.RUnlock()
	for _, o := range obs {
		o(ev, list)
	}
}
