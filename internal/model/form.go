package model

import "sort"

// Form is a string to string mapping that remembers insertion order. Keys are
// unique, setting an existing key replaces its value in place.
type Form struct {
	keys   []string
	values map[string]string
}

// FormOf builds a Form from alternating keys and values. a trailing key
// without a value is ignored.
func FormOf(kv ...string) Form {
	var f Form
	for i := 0; i+1 < len(kv); i += 2 {
		f.Set(kv[i], kv[i+1])
	}
	return f
}

// FormFromMap copies m in sorted key order.
func FormFromMap(m map[string]string) Form {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var f Form
	for _, k := range keys {
		f.Set(k, m[k])
	}
	return f
}

func (f *Form) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

func (f Form) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f Form) Len() int { return len(f.keys) }

// Each calls fn for every pair in insertion order.
func (f Form) Each(fn func(key, value string)) {
	for _, k := range f.keys {
		fn(k, f.values[k])
	}
}

func (f Form) Clone() Form {
	c := Form{keys: make([]string, len(f.keys)), values: make(map[string]string, len(f.values))}
	copy(c.keys, f.keys)
	for k, v := range f.values {
		c.values[k] = v
	}
	return c
}
