package cache

// ScopedKeyer prefixes every key from an inner Keyer. The CLI scopes keys by
// build version so artifacts rendered by an older binary are never served.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(kind, paramsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(kind, paramsHash, opts)
}

func (k *ScopedKeyer) PrintKey(documentHash string) string {
	return k.prefix + k.inner.PrintKey(documentHash)
}
