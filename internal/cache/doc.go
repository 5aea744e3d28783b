// Package cache provides a small generic LRU cache.
//
// It backs the compiled shader cache: identical shader sources compiled for
// the same stage share one immutable module.
//
//	c := cache.New[string, *glsl.Module](64)
//	mod, err := c.GetOrCompute(key, func() (*glsl.Module, error) {
//		return glsl.Compile(src, opts)
//	})
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
