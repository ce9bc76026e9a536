package middleware

import "github.com/aretw0/japanizer/pkg/ports"

// Middleware allows wrapping a PreferenceStore to add behavior.
type Middleware func(ports.PreferenceStore) ports.PreferenceStore

// Chain wraps store with mws. The first middleware is the outermost one.
func Chain(store ports.PreferenceStore, mws ...Middleware) ports.PreferenceStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
