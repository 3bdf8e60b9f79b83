package store

// View binds one dotted path and a default to a store, so repeated
// access to one setting does not repeat the path string at every call
// site. Views share the underlying store's guards; they hold no state
// of their own beyond the binding.
type View struct {
	store *Store
	path  string
	def   any
}

// Mutable returns a view over the given path with the given default.
func (s *Store) Mutable(path string, def any) *View {
	return &View{store: s, path: path, def: def}
}

// Get returns the value at the view's path, or the view's default
// when unset.
func (v *View) Get() (any, error) {
	return v.store.GetOr(v.path, v.def)
}

// GetOr returns the value at the view's path, or def when unset,
// overriding the view's own default for this call.
func (v *View) GetOr(def any) (any, error) {
	return v.store.GetOr(v.path, def)
}

// Set stores a value at the view's path. A nil value removes the key.
func (v *View) Set(val any) error {
	return v.store.Set(v.path, val)
}

// IsSet reports whether the view's path holds a value.
func (v *View) IsSet() (bool, error) {
	return v.store.IsSet(v.path)
}

// Path returns the dotted path this view is bound to.
func (v *View) Path() string {
	return v.path
}

// Default returns the view's default value.
func (v *View) Default() any {
	return v.def
}

// Store returns the underlying store.
func (v *View) Store() *Store {
	return v.store
}

// As reads a view as a concrete type. Numbers convert between the
// document's int64/float64 representations and the requested type;
// anything else must match exactly. A lookup error or a mismatched
// type yields the zero value and false.
func As[T any](v *View) (T, bool) {
	var zero T
	val, err := v.Get()
	if err != nil || val == nil {
		return zero, false
	}
	if t, ok := val.(T); ok {
		return t, true
	}
	if t, ok := convertNumber[T](val); ok {
		return t, true
	}
	return zero, false
}

// AsOr reads a view as a concrete type, returning def on any miss.
func AsOr[T any](v *View, def T) T {
	if t, ok := As[T](v); ok {
		return t
	}
	return def
}

// convertNumber bridges the two numeric kinds a document read can
// produce. Document numbers surface as int64 or float64 only.
func convertNumber[T any](val any) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case int:
		if i, ok := numAsInt(val); ok {
			return any(int(i)).(T), true
		}
	case int32:
		if i, ok := numAsInt(val); ok {
			return any(int32(i)).(T), true
		}
	case int64:
		if i, ok := numAsInt(val); ok {
			return any(i).(T), true
		}
	case float32:
		if f, ok := numAsFloat(val); ok {
			return any(float32(f)).(T), true
		}
	case float64:
		if f, ok := numAsFloat(val); ok {
			return any(f).(T), true
		}
	}
	return zero, false
}

func numAsInt(val any) (int64, bool) {
	switch n := val.(type) {
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

func numAsFloat(val any) (float64, bool) {
	switch n := val.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
