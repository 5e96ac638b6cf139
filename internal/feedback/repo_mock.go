package feedback

import (
	"context"
	"sort"
	"sync"
)

var _ feedbackRepo = (*repoMock)(nil)

type repoMock struct {
	entries map[int]*Feedback
	nextID  int
	mutex   sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		entries: make(map[int]*Feedback),
		nextID:  1,
	}
}

func (r *repoMock) Add(_ context.Context, feedback *Feedback) (*Feedback, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	feedback.ID = r.nextID
	r.nextID++
	r.entries[feedback.ID] = feedback
	return feedback, nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.entries[id]; !ok {
		return ErrFeedbackNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *repoMock) List(_ context.Context) ([]Feedback, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var all []Feedback
	for _, entry := range r.entries {
		all = append(all, *entry)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}
