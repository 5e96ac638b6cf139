package committees

import (
	"context"
	"sort"
	"sync"
)

var _ membersRepo = (*repoMock)(nil)

type repoMock struct {
	members map[int]*Member
	nextID  int
	mutex   sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		members: make(map[int]*Member),
		nextID:  1,
	}
}

func (r *repoMock) Add(_ context.Context, member *Member) (*Member, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	member.ID = r.nextID
	r.nextID++
	r.members[member.ID] = member
	return member, nil
}

func (r *repoMock) Update(_ context.Context, member *Member) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.members[member.ID]; !ok {
		return ErrMemberNotFound
	}
	r.members[member.ID] = member
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.members[id]; !ok {
		return ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *repoMock) List(_ context.Context) ([]Member, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var all []Member
	for _, member := range r.members {
		all = append(all, *member)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all, nil
}
