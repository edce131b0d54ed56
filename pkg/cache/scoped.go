package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The CLI scopes keys by release so that upgrading the tool never serves
// artifacts rendered by an older version:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.CacheScope())
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

// PlanKey generates a prefixed plan key.
func (k *ScopedKeyer) PlanKey(manifestHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(manifestHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(planKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planKey, opts)
}
