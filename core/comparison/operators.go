package comparison

import (
	"fmt"

	"asset-lists/core/assetlist"
	"asset-lists/core/pattern"
)

// UnionLists returns every record of a and b. Records of b replace records of a with the
// same id; a's order is kept and b-only records follow in b's order.
func UnionLists(a, b *assetlist.List) *assetlist.List {
	out := assetlist.NewList()
	a.Each(func(info assetlist.AssetFileInfo) bool {
		if second, ok := b.Get(info.AssetID); ok {
			out.Add(second)
		} else {
			out.Add(info)
		}
		return true
	})
	b.Each(func(info assetlist.AssetFileInfo) bool {
		if !a.Contains(info.AssetID) {
			out.Add(info)
		}
		return true
	})
	return out
}

// IntersectLists returns the records of b whose id is also in a.
func IntersectLists(a, b *assetlist.List) *assetlist.List {
	out := assetlist.NewList()
	b.Each(func(info assetlist.AssetFileInfo) bool {
		if a.Contains(info.AssetID) {
			out.Add(info)
		}
		return true
	})
	return out
}

// ComplementLists returns the records of b whose id is not in a.
func ComplementLists(a, b *assetlist.List) *assetlist.List {
	out := assetlist.NewList()
	b.Each(func(info assetlist.AssetFileInfo) bool {
		if !a.Contains(info.AssetID) {
			out.Add(info)
		}
		return true
	})
	return out
}

// DeltaLists returns the records of b that are new or whose hash differs from a.
// Ids only present in a are not reported.
func DeltaLists(a, b *assetlist.List) *assetlist.List {
	out := assetlist.NewList()
	b.Each(func(info assetlist.AssetFileInfo) bool {
		first, ok := a.Get(info.AssetID)
		if !ok || first.Hash != info.Hash {
			out.Add(info)
		}
		return true
	})
	return out
}

// FilterLists returns the records of a whose relative path matches m.
func FilterLists(a *assetlist.List, m *pattern.Matcher) (*assetlist.List, error) {
	out := assetlist.NewList()
	var matchErr error
	a.Each(func(info assetlist.AssetFileInfo) bool {
		ok, err := m.Match(info.RelativePath)
		if err != nil {
			matchErr = err
			return false
		}
		if ok {
			out.Add(info)
		}
		return true
	})
	if matchErr != nil {
		return nil, matchErr
	}
	return out, nil
}

// apply runs the operator for t. second is ignored by FilePattern.
func apply(t ComparisonType, first, second *assetlist.List, m *pattern.Matcher) (*assetlist.List, error) {
	switch t {
	case Delta:
		return DeltaLists(first, second), nil
	case Union:
		return UnionLists(first, second), nil
	case Intersection:
		return IntersectLists(first, second), nil
	case Complement:
		return ComplementLists(first, second), nil
	case FilePattern:
		return FilterLists(first, m)
	default:
		return nil, fmt.Errorf("%w: unknown comparison type %s", ErrConfiguration, t)
	}
}
