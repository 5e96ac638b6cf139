package groceries

import (
	"context"
	"sort"
	"sync"
)

var _ groceriesRepo = (*repoMock)(nil)

type repoMock struct {
	lists      map[int]*List
	items      map[int]*Item
	nextListID int
	nextItemID int
	mutex      sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		lists:      make(map[int]*List),
		items:      make(map[int]*Item),
		nextListID: 1,
		nextItemID: 1,
	}
}

func (r *repoMock) AddList(_ context.Context, list *List) (*List, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	list.ID = r.nextListID
	r.nextListID++
	r.lists[list.ID] = list
	return list, nil
}

func (r *repoMock) GetList(_ context.Context, id int) (*List, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, ErrListNotFound
	}

	listCopy := *list
	listCopy.Items = nil
	for _, item := range r.items {
		if item.ListID == id {
			listCopy.Items = append(listCopy.Items, *item)
		}
	}
	sort.Slice(listCopy.Items, func(i, j int) bool {
		return listCopy.Items[i].ID < listCopy.Items[j].ID
	})
	return &listCopy, nil
}

func (r *repoMock) DeleteList(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.lists[id]; !ok {
		return ErrListNotFound
	}
	delete(r.lists, id)
	for itemID, item := range r.items {
		if item.ListID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *repoMock) Lists(_ context.Context) ([]List, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var all []List
	for _, list := range r.lists {
		listCopy := *list
		listCopy.Items = nil
		all = append(all, listCopy)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (r *repoMock) AddItem(_ context.Context, item *Item) (*Item, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	item.ID = r.nextItemID
	r.nextItemID++
	r.items[item.ID] = item
	return item, nil
}

func (r *repoMock) UpdateItem(_ context.Context, item *Item) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return ErrItemNotFound
	}
	item.ListID = existing.ListID
	r.items[item.ID] = item
	return nil
}

func (r *repoMock) DeleteItem(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}
