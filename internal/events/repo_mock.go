package events

import (
	"context"
	"sort"
	"sync"
	"time"
)

var _ eventsRepo = (*repoMock)(nil)

type repoMock struct {
	events map[int]*Event
	nextID int
	mutex  sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		events: make(map[int]*Event),
		nextID: 1,
	}
}

func (r *repoMock) Add(_ context.Context, event *Event) (*Event, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	event.ID = r.nextID
	r.nextID++
	r.events[event.ID] = event
	return event, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Event, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	event, ok := r.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (r *repoMock) Update(_ context.Context, event *Event) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.events[event.ID]; !ok {
		return ErrEventNotFound
	}
	r.events[event.ID] = event
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *repoMock) List(_ context.Context, page, size int) ([]Event, int, error) {
	all := r.sortedEvents()

	from := (page - 1) * size
	if from >= len(all) {
		return nil, len(all), nil
	}
	to := from + size
	if to > len(all) {
		to = len(all)
	}

	return all[from:to], len(all), nil
}

func (r *repoMock) Upcoming(_ context.Context, now time.Time) ([]Event, error) {
	var upcoming []Event
	for _, event := range r.sortedEvents() {
		if !event.StartsAt.Before(now) {
			upcoming = append(upcoming, event)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartsAt.Before(upcoming[j].StartsAt)
	})
	return upcoming, nil
}

func (r *repoMock) sortedEvents() []Event {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	all := make([]Event, 0, len(r.events))
	for _, event := range r.events {
		all = append(all, *event)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].StartsAt.After(all[j].StartsAt)
	})
	return all
}
