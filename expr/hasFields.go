package expr

// HasFields is the capability a host record must provide to be bound under
// one of the record binding names. Field access is by name and may consult
// the bindings of the evaluation that triggered it. A nil return is presented
// to the script as its null value; it is not an error.
type HasFields interface {
	GetField(name string, bindings Bindings) any
}
