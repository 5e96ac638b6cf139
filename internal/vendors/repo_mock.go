package vendors

import (
	"context"
	"sort"
	"sync"
)

var _ vendorsRepo = (*repoMock)(nil)

type repoMock struct {
	vendors map[int]*Vendor
	nextID  int
	mutex   sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		vendors: make(map[int]*Vendor),
		nextID:  1,
	}
}

func (r *repoMock) Add(_ context.Context, vendor *Vendor) (*Vendor, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	vendor.ID = r.nextID
	r.nextID++
	r.vendors[vendor.ID] = vendor
	return vendor, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Vendor, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	vendor, ok := r.vendors[id]
	if !ok {
		return nil, ErrVendorNotFound
	}
	return vendor, nil
}

func (r *repoMock) Update(_ context.Context, vendor *Vendor) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.vendors[vendor.ID]; !ok {
		return ErrVendorNotFound
	}
	r.vendors[vendor.ID] = vendor
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.vendors[id]; !ok {
		return ErrVendorNotFound
	}
	delete(r.vendors, id)
	return nil
}

func (r *repoMock) List(_ context.Context) ([]Vendor, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var all []Vendor
	for _, vendor := range r.vendors {
		all = append(all, *vendor)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all, nil
}
