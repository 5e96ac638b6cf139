package protocols

import (
	"context"
	"sort"
	"sync"
)

var _ protocolsRepo = (*repoMock)(nil)

type repoMock struct {
	protocols map[int]*Protocol
	nextID    int
	mutex     sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		protocols: make(map[int]*Protocol),
		nextID:    1,
	}
}

func (r *repoMock) Add(_ context.Context, protocol *Protocol) (*Protocol, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	protocol.ID = r.nextID
	r.nextID++
	r.protocols[protocol.ID] = protocol
	return protocol, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Protocol, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	protocol, ok := r.protocols[id]
	if !ok {
		return nil, ErrProtocolNotFound
	}
	return protocol, nil
}

func (r *repoMock) Update(_ context.Context, protocol *Protocol) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.protocols[protocol.ID]; !ok {
		return ErrProtocolNotFound
	}
	r.protocols[protocol.ID] = protocol
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.protocols[id]; !ok {
		return ErrProtocolNotFound
	}
	delete(r.protocols, id)
	return nil
}

func (r *repoMock) List(_ context.Context) ([]Protocol, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var all []Protocol
	for _, protocol := range r.protocols {
		all = append(all, *protocol)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].MeetingDate.After(all[j].MeetingDate)
	})
	return all, nil
}
