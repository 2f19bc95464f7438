package cache

// ArtifactKeyOpts distinguishes renderings of the same parameters.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	// Time is the animation time for a single frame, 0 for a still.
	Time float64 `json:"time,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one output format of a generator's parameters.
	// paramsHash is the Hash of the canonical parameter encoding.
	ArtifactKey(kind, paramsHash string, opts ArtifactKeyOpts) string
	// PrintKey identifies a printed PDF by the Hash of its HTML document.
	PrintKey(documentHash string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(kind, paramsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", kind, paramsHash, opts)
}

func (DefaultKeyer) PrintKey(documentHash string) string {
	return "print:" + documentHash
}
