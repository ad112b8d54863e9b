package keymap

import "slices"

// Resolver answers "what does this key do". The player has a single pane,
// so every binding shares one key namespace and a key maps to at most one
// action; the reverse index backs the help overlay.
type Resolver struct {
	actionByKey  map[string]Action
	keysByAction map[Action][]string
}

// NewResolver indexes the binding table in both directions.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actionByKey:  make(map[string]Action),
		keysByAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.actionByKey[key] = b.Action
			// An action may be listed more than once; index each key once.
			if !slices.Contains(r.keysByAction[b.Action], key) {
				r.keysByAction[b.Action] = append(r.keysByAction[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key, or "" when the key is free.
func (r *Resolver) Resolve(key string) Action {
	return r.actionByKey[key]
}

// KeysFor returns the keys bound to an action, in binding-table order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keysByAction[action]
}
