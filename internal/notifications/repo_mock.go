package notifications

import (
	"context"
	"sort"
	"sync"
)

var _ subscriptionsRepo = (*repoMock)(nil)

type repoMock struct {
	subs  map[string]*Subscription
	mutex sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		subs: make(map[string]*Subscription),
	}
}

func (r *repoMock) Add(_ context.Context, sub *Subscription) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.subs {
		if existing.Endpoint == sub.Endpoint {
			return nil
		}
	}
	r.subs[sub.ID] = sub
	return nil
}

func (r *repoMock) Delete(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.subs[id]; !ok {
		return ErrSubscriptionNotFound
	}
	delete(r.subs, id)
	return nil
}

func (r *repoMock) List(_ context.Context) ([]Subscription, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var all []Subscription
	for _, sub := range r.subs {
		all = append(all, *sub)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all, nil
}
