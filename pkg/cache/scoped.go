package cache

// ScopedKeyer wraps a Keyer with a prefix so that several applications can
// share one Redis instance without their keys colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), RedisPrefix)
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HighlightKey generates a prefixed key for highlighted code.
func (k *ScopedKeyer) HighlightKey(lexer, style, code string) string {
	return k.prefix + k.inner.HighlightKey(lexer, style, code)
}
