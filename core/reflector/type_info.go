// Package reflector provides type reflection utilities with caching.
// It extracts and caches type metadata for efficient repeated lookups.
package reflector

import (
	"reflect"

	"github.com/codewandler/actorkit/core/cache"
	"github.com/codewandler/actorkit/core/sf"
)

// cacheSize bounds the number of distinct types tracked at once. A typical
// program's message types are few and static, so eviction is rarely if
// ever observed in practice.
const cacheSize = 1024

var (
	typeCache = cache.NewTyped[TypeInfo](cache.NewLRU(cache.LRUOpts{Size: cacheSize}))
	inflight  = sf.New[TypeInfo]()
)

// TypeInfo holds metadata about a reflected type.
type TypeInfo struct {
	Name string       // Fully qualified name: "pkg/path.TypeName"
	Type reflect.Type // The underlying reflect.Type
}

// TypeInfoOf returns TypeInfo for the dynamic type of x.
// The result is cached for subsequent lookups.
func TypeInfoOf(x any) TypeInfo {
	return TypeInfoForType(reflect.TypeOf(x))
}

// TypeInfoFor returns TypeInfo for type parameter T.
// The result is cached for subsequent lookups.
func TypeInfoFor[T any]() TypeInfo {
	return TypeInfoForType(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeInfoForType returns TypeInfo for the given reflect.Type.
// For pointer types, returns info about the element type.
// Results are cached; concurrent misses for the same type are
// deduplicated so only one goroutine builds the TypeInfo.
func TypeInfoForType(t reflect.Type) TypeInfo {
	if t == nil {
		return TypeInfo{}
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	cacheKey := t.PkgPath() + "." + t.Name()

	if ti, ok := typeCache.Get(cacheKey); ok {
		return ti
	}

	ti, _ := inflight.Do(cacheKey, func() (*TypeInfo, error) {
		if ti, ok := typeCache.Get(cacheKey); ok {
			return &ti, nil
		}
		built := TypeInfo{Name: cacheKey, Type: t}
		typeCache.Put(cacheKey, built)
		return &built, nil
	})
	return *ti
}
