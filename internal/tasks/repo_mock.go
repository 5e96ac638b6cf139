package tasks

import (
	"context"
	"sort"
	"sync"
)

var _ tasksRepo = (*repoMock)(nil)

type repoMock struct {
	tasks  map[int]*Task
	nextID int
	mutex  sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		tasks:  make(map[int]*Task),
		nextID: 1,
	}
}

func (r *repoMock) Add(_ context.Context, task *Task) (*Task, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = task
	return task, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Task, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (r *repoMock) Update(_ context.Context, task *Task) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return ErrTaskNotFound
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *repoMock) List(_ context.Context, status *Status) ([]Task, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var all []Task
	for _, task := range r.tasks {
		if status != nil && task.Status != *status {
			continue
		}
		all = append(all, *task)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}
