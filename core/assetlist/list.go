package assetlist

// List is an ordered collection of records with unique asset ids.
type List struct {
	entries []AssetFileInfo
	index   map[AssetID]int
}

// NewList builds a list from infos. A later record with the same id replaces an earlier one.
func NewList(infos ...AssetFileInfo) *List {
	l := &List{
		entries: make([]AssetFileInfo, 0, len(infos)),
		index:   make(map[AssetID]int, len(infos)),
	}
	for _, info := range infos {
		l.Add(info)
	}
	return l
}

// Add appends info, or replaces the record with the same id in place.
func (l *List) Add(info AssetFileInfo) {
	if l.index == nil {
		l.index = make(map[AssetID]int)
	}
	info = info.clone()
	if pos, ok := l.index[info.AssetID]; ok {
		l.entries[pos] = info
		return
	}
	l.index[info.AssetID] = len(l.entries)
	l.entries = append(l.entries, info)
}

// Get returns the record for id.
func (l *List) Get(id AssetID) (AssetFileInfo, bool) {
	if l == nil {
		return AssetFileInfo{}, false
	}
	pos, ok := l.index[id]
	if !ok {
		return AssetFileInfo{}, false
	}
	return l.entries[pos], true
}

// Contains reports whether id is in the list.
func (l *List) Contains(id AssetID) bool {
	if l == nil {
		return false
	}
	_, ok := l.index[id]
	return ok
}

// Len returns the number of records.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries returns a copy of the records in list order.
func (l *List) Entries() []AssetFileInfo {
	if l == nil {
		return nil
	}
	out := make([]AssetFileInfo, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.clone()
	}
	return out
}

// IDs returns the asset ids in list order.
func (l *List) IDs() []AssetID {
	if l == nil {
		return nil
	}
	ids := make([]AssetID, len(l.entries))
	for i, e := range l.entries {
		ids[i] = e.AssetID
	}
	return ids
}

// Each calls fn for every record in order until fn returns false.
// The record passed to fn must not be modified.
func (l *List) Each(fn func(AssetFileInfo) bool) {
	if l == nil {
		return
	}
	for _, e := range l.entries {
		if !fn(e) {
			return
		}
	}
}
