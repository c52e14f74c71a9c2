package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Astemirdum/room-reservation/reservation/internal/errs"
	"github.com/Astemirdum/room-reservation/reservation/internal/model"
)

type memoryState struct {
	reservations map[string]model.Reservation
}

func (s *memoryState) clone() *memoryState {
	out := &memoryState{reservations: make(map[string]model.Reservation, len(s.reservations))}
	for k, v := range s.reservations {
		out.reservations[k] = v
	}
	return out
}

// MemoryRepository keeps reservations and rooms in process memory.
// Transactions work on a copy of the state that replaces the original on
// success, so a failed InTx leaves nothing behind.
type MemoryRepository struct {
	mu    *sync.Mutex
	state *memoryState
	inTx  bool
	now   func() time.Time

	roomsMu *sync.RWMutex
	rooms   map[string]model.Room
}

func NewMemory(rooms ...model.Room) *MemoryRepository {
	m := &MemoryRepository{
		mu:      &sync.Mutex{},
		state:   &memoryState{reservations: make(map[string]model.Reservation)},
		now:     func() time.Time { return time.Now().UTC() },
		roomsMu: &sync.RWMutex{},
		rooms:   make(map[string]model.Room, len(rooms)),
	}
	for _, room := range rooms {
		m.rooms[room.ID] = room
	}
	return m
}

func (m *MemoryRepository) AddRoom(room model.Room) {
	m.roomsMu.Lock()
	defer m.roomsMu.Unlock()
	m.rooms[room.ID] = room
}

func (m *MemoryRepository) GetRoom(_ context.Context, id string) (model.Room, error) {
	m.roomsMu.RLock()
	defer m.roomsMu.RUnlock()
	room, ok := m.rooms[id]
	if !ok {
		return model.Room{}, errs.ErrNotFound
	}
	return room, nil
}

func (m *MemoryRepository) lock() func() {
	if m.inTx {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *MemoryRepository) InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	if m.inTx {
		return fn(ctx, m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &MemoryRepository{
		mu:      m.mu,
		state:   m.state.clone(),
		inTx:    true,
		now:     m.now,
		roomsMu: m.roomsMu,
		rooms:   m.rooms,
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	m.state.reservations = tx.state.reservations
	return nil
}

func (m *MemoryRepository) Insert(_ context.Context, rsv model.Reservation) (model.Reservation, error) {
	defer m.lock()()
	if _, ok := m.state.reservations[rsv.ID]; ok {
		return model.Reservation{}, errs.Persistence("Insert", fmt.Errorf("duplicate reservation id %s", rsv.ID))
	}
	m.state.reservations[rsv.ID] = rsv
	return rsv, nil
}

func (m *MemoryRepository) FindByID(_ context.Context, id string) (model.Reservation, error) {
	defer m.lock()()
	rsv, ok := m.state.reservations[id]
	if !ok {
		return model.Reservation{}, errs.ErrNotFound
	}
	return rsv, nil
}

func (m *MemoryRepository) Find(_ context.Context, f Filter) ([]model.Reservation, error) {
	defer m.lock()()
	items := make([]model.Reservation, 0)
	for _, rsv := range m.state.reservations {
		if f.Match(rsv) {
			items = append(items, rsv)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].FromDate.Equal(items[j].FromDate.Time) {
			return items[i].FromDate.Before(items[j].FromDate.Time)
		}
		return items[i].CreateDate.Before(items[j].CreateDate)
	})
	return items, nil
}

func (m *MemoryRepository) Exists(_ context.Context, f Filter) (bool, error) {
	defer m.lock()()
	for _, rsv := range m.state.reservations {
		if f.Match(rsv) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepository) Update(_ context.Context, rsv model.Reservation) (model.Reservation, error) {
	defer m.lock()()
	cur, ok := m.state.reservations[rsv.ID]
	if !ok {
		return model.Reservation{}, errs.ErrNotFound
	}
	cur.FromDate, cur.ToDate = rsv.FromDate, rsv.ToDate
	cur.PricePerDay, cur.TotalPrice = rsv.PricePerDay, rsv.TotalPrice
	cur.Status = rsv.Status
	cur.UpdateDate = m.now()
	m.state.reservations[cur.ID] = cur
	return cur, nil
}

func (m *MemoryRepository) UpdateStatus(_ context.Context, id string, status model.Status) (model.Reservation, error) {
	defer m.lock()()
	cur, ok := m.state.reservations[id]
	if !ok {
		return model.Reservation{}, errs.ErrNotFound
	}
	cur.Status = status
	cur.UpdateDate = m.now()
	m.state.reservations[id] = cur
	return cur, nil
}

func (m *MemoryRepository) UpdateManyStatus(_ context.Context, ids []string, status model.Status) (int64, error) {
	defer m.lock()()
	var n int64
	now := m.now()
	for _, id := range ids {
		cur, ok := m.state.reservations[id]
		if !ok {
			continue
		}
		cur.Status = status
		cur.UpdateDate = now
		m.state.reservations[id] = cur
		n++
	}
	return n, nil
}

func (m *MemoryRepository) DeleteByID(_ context.Context, id string) (model.Reservation, error) {
	defer m.lock()()
	cur, ok := m.state.reservations[id]
	if !ok {
		return model.Reservation{}, errs.ErrNotFound
	}
	delete(m.state.reservations, id)
	return cur, nil
}

var (
	_ Repository     = (*MemoryRepository)(nil)
	_ RoomRepository = (*MemoryRepository)(nil)
	_ Repository     = (*repository)(nil)
	_ RoomRepository = (*roomRepository)(nil)
)
