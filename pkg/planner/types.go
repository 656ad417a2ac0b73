package planner

// Asset is one static file to publish: its storage key, its byte source, and
// the derived metadata used for reconciliation. Assets are rebuilt from
// scratch on every run and discarded afterwards.
type Asset struct {
	Key         string // path under the site root, also the object key
	LocalPath   string // absolute path to the byte source
	Size        int64
	ContentType string // derived, never empty
	Fingerprint string // content MD5, lowercase hex
}

// Manifest is the desired state: the complete key → asset mapping the remote
// namespace should match. Keys are unique by construction.
type Manifest map[string]Asset

// NewManifest builds a manifest from assets, rejecting duplicate keys.
// Duplicates are a configuration error, not a last-writer-wins merge: on a
// case-insensitive filesystem two source files can normalize to one key, and
// silently publishing either would serve the wrong bytes.
func NewManifest(assets ...Asset) (Manifest, error) {
	m := make(Manifest, len(assets))
	for _, asset := range assets {
		if _, exists := m[asset.Key]; exists {
			return nil, newError(ErrConfiguration, asset.Key, errDuplicateKey)
		}
		m[asset.Key] = asset
	}
	return m, nil
}

type Action string

const (
	ActionUpload Action = "upload"
	ActionDelete Action = "delete"
	ActionSkip   Action = "skip"
)

// Reason records why an item landed in its plan set. Consumers branch on the
// constants; the values double as display text.
type Reason string

const (
	ReasonNewObject          Reason = "new object"
	ReasonFingerprintDiffers Reason = "fingerprint differs"
	ReasonAbsentLocally      Reason = "absent locally"
	ReasonUpToDate           Reason = "up to date"
)

// Item is one planned operation.
type Item struct {
	Action Action
	Key    string
	Asset  Asset // zero-valued for deletes
	Reason Reason
}

// Plan holds the three disjoint operation sets of a reconciliation. Each set
// is sorted by key for stable presentation; the sets themselves do not depend
// on input order.
type Plan struct {
	Uploads   []Item
	Deletes   []Item
	Unchanged []Item
}

// Empty reports whether the plan requires no operations.
func (p Plan) Empty() bool {
	return len(p.Uploads) == 0 && len(p.Deletes) == 0
}
