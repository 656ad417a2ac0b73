package planner

import "sort"

// Reconcile compares the desired state against the remote key → fingerprint
// mapping and produces the operations that make remote match local.
//
//   - Uploads: keys only present locally, or present in both with differing
//     fingerprints. An empty remote fingerprint never matches, so objects
//     whose fingerprint could not be derived are re-uploaded.
//   - Deletes: keys only present remotely, computed only when deleteEnabled.
//     Off by default so manually placed objects (the periodically refreshed
//     data file) survive a site deploy.
//   - Unchanged: keys present in both with equal fingerprints.
//
// The result is a pure function of the two mappings; input order is
// irrelevant. Reconcile performs no I/O.
func Reconcile(local Manifest, remote map[string]string, deleteEnabled bool) Plan {
	plan := Plan{
		Uploads:   []Item{},
		Deletes:   []Item{},
		Unchanged: []Item{},
	}

	for key, asset := range local {
		remoteFP, exists := remote[key]
		switch {
		case !exists:
			plan.Uploads = append(plan.Uploads, Item{
				Action: ActionUpload,
				Key:    key,
				Asset:  asset,
				Reason: ReasonNewObject,
			})
		case remoteFP == "" || remoteFP != asset.Fingerprint:
			plan.Uploads = append(plan.Uploads, Item{
				Action: ActionUpload,
				Key:    key,
				Asset:  asset,
				Reason: ReasonFingerprintDiffers,
			})
		default:
			plan.Unchanged = append(plan.Unchanged, Item{
				Action: ActionSkip,
				Key:    key,
				Asset:  asset,
				Reason: ReasonUpToDate,
			})
		}
	}

	if deleteEnabled {
		for key := range remote {
			if _, exists := local[key]; !exists {
				plan.Deletes = append(plan.Deletes, Item{
					Action: ActionDelete,
					Key:    key,
					Reason: ReasonAbsentLocally,
				})
			}
		}
	}

	sortItems(plan.Uploads)
	sortItems(plan.Deletes)
	sortItems(plan.Unchanged)
	return plan
}

func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Key < items[j].Key
	})
}
