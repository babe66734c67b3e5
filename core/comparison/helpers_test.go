package comparison

import (
	"context"
	"fmt"
	"sync"

	"asset-lists/core/assetlist"

	"github.com/google/uuid"
)

const (
	firstFile  = "firstAssetFileInfoList.assetlist"
	secondFile = "secondAssetFileInfoList.assetlist"
	resultFile = "assetFileInfoList.assetlist"
)

// memStore is an in-memory assetlist.Store recording every save.
type memStore struct {
	mu       sync.Mutex
	lists    map[string]*assetlist.List
	saves    []string
	loadErr  map[string]error
	saveErrs map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		lists:    make(map[string]*assetlist.List),
		loadErr:  make(map[string]error),
		saveErrs: make(map[string]error),
	}
}

func (s *memStore) Load(_ context.Context, locator string) (*assetlist.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadErr[locator]; err != nil {
		return nil, err
	}
	list, ok := s.lists[locator]
	if !ok {
		return nil, fmt.Errorf("%s: %w", locator, assetlist.ErrListNotFound)
	}
	return list, nil
}

func (s *memStore) Save(_ context.Context, locator string, list *assetlist.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveErrs[locator]; err != nil {
		return err
	}
	s.lists[locator] = list
	s.saves = append(s.saves, locator)
	return nil
}

func (s *memStore) saved(locator string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.saves {
		if l == locator {
			return true
		}
	}
	return false
}

// fixture mirrors the canonical scenario: first = {0,1,2,3,4}, second = {1,2',3,4',5}
// where ' marks a changed content hash.
type fixture struct {
	ids    [6]assetlist.AssetID
	first  *assetlist.List
	second *assetlist.List
	store  *memStore
}

func newFixture() *fixture {
	f := &fixture{store: newMemStore()}
	for i := range f.ids {
		f.ids[i] = assetlist.NewAssetID(uuid.New(), 0)
	}

	record := func(i int, content string) assetlist.AssetFileInfo {
		return assetlist.NewAssetFileInfo(f.ids[i], fmt.Sprintf("Asset%d.txt", i), assetlist.HashBytes([]byte(content)))
	}

	f.first = assetlist.NewList()
	for i := 0; i <= 4; i++ {
		f.first.Add(record(i, fmt.Sprintf("Asset%d.txt", i)))
	}

	f.second = assetlist.NewList(
		record(1, "Asset1.txt"),
		record(2, "new Asset2.txt"),
		record(3, "Asset3.txt"),
		record(4, "new Asset4.txt"),
		record(5, "Asset5.txt"),
	)

	f.store.lists[firstFile] = f.first
	f.store.lists[secondFile] = f.second
	return f
}

func (f *fixture) idSet(indexes ...int) map[assetlist.AssetID]struct{} {
	set := make(map[assetlist.AssetID]struct{}, len(indexes))
	for _, i := range indexes {
		set[f.ids[i]] = struct{}{}
	}
	return set
}

func idsOf(list *assetlist.List) map[assetlist.AssetID]struct{} {
	set := make(map[assetlist.AssetID]struct{}, list.Len())
	for _, id := range list.IDs() {
		set[id] = struct{}{}
	}
	return set
}

// checkingStore is a memStore that refuses the locators in rejected.
type checkingStore struct {
	*memStore
	rejected map[string]bool
}

func (s checkingStore) CheckLocator(locator string) error {
	if s.rejected[locator] {
		return fmt.Errorf("%w: %s", assetlist.ErrInvalidLocator, locator)
	}
	return nil
}
