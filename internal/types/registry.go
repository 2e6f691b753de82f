package types

// Registry resolves a type name appearing in source (a builtin name or a
// class name) to its Type, the way the teacher's TypeRegistry resolves
// builtin vs. imported vs. user-defined struct names.
type Registry struct {
	builtins map[string]Type
	records  map[string]*RecordType
}

// NewRegistry creates a registry pre-populated with "int" and "bool".
func NewRegistry() *Registry {
	return &Registry{
		builtins: map[string]Type{
			"int":  IntType{},
			"bool": BoolType{},
		},
		records: make(map[string]*RecordType),
	}
}

// Define registers a class declaration's record type.
func (r *Registry) Define(rec *RecordType) {
	r.records[rec.Name] = rec
}

// Lookup resolves a bare type name to its Type. ok is false for an unknown
// name.
func (r *Registry) Lookup(name string) (Type, bool) {
	if t, ok := r.builtins[name]; ok {
		return t, true
	}
	if rec, ok := r.records[name]; ok {
		return rec, true
	}
	return nil, false
}

// Record returns the RecordType registered under name, or nil.
func (r *Registry) Record(name string) *RecordType {
	return r.records[name]
}

// IsRecordName reports whether name was declared with "class".
func (r *Registry) IsRecordName(name string) bool {
	_, ok := r.records[name]
	return ok
}

// Records returns every registered record type; iteration order is
// unspecified, callers that need determinism should sort by name.
func (r *Registry) Records() map[string]*RecordType {
	return r.records
}
