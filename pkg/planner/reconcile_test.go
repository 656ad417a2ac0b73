package planner

import (
	"reflect"
	"testing"
)

func asset(key, fp string) Asset {
	return Asset{
		Key:         key,
		LocalPath:   "/site/" + key,
		ContentType: "text/html",
		Fingerprint: fp,
	}
}

func manifestOf(t *testing.T, assets ...Asset) Manifest {
	t.Helper()
	m, err := NewManifest(assets...)
	if err != nil {
		t.Fatalf("NewManifest: %v", err)
	}
	return m
}

func planKeys(items []Item) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}
	return keys
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name          string
		local         []Asset
		remote        map[string]string
		deleteEnabled bool
		wantUploads   []string
		wantDeletes   []string
		wantUnchanged []string
	}{
		{
			name:          "empty remote uploads everything",
			local:         []Asset{asset("a.html", "h1"), asset("b.css", "h2")},
			remote:        map[string]string{},
			deleteEnabled: false,
			wantUploads:   []string{"a.html", "b.css"},
			wantDeletes:   []string{},
			wantUnchanged: []string{},
		},
		{
			name:          "matching fingerprints unchanged, extra remote kept without delete mode",
			local:         []Asset{asset("a.html", "h1")},
			remote:        map[string]string{"a.html": "h1", "b.css": "h2"},
			deleteEnabled: false,
			wantUploads:   []string{},
			wantDeletes:   []string{},
			wantUnchanged: []string{"a.html"},
		},
		{
			name:          "fingerprint mismatch forces re-upload",
			local:         []Asset{asset("a.html", "h1")},
			remote:        map[string]string{"a.html": "h3"},
			deleteEnabled: false,
			wantUploads:   []string{"a.html"},
			wantDeletes:   []string{},
			wantUnchanged: []string{},
		},
		{
			name:          "delete mode removes remote-only keys",
			local:         []Asset{asset("a.html", "h1")},
			remote:        map[string]string{"a.html": "h1", "old/page.html": "h9"},
			deleteEnabled: true,
			wantUploads:   []string{},
			wantDeletes:   []string{"old/page.html"},
			wantUnchanged: []string{"a.html"},
		},
		{
			name:          "empty remote fingerprint never matches",
			local:         []Asset{asset("big.bin", "h1")},
			remote:        map[string]string{"big.bin": ""},
			deleteEnabled: false,
			wantUploads:   []string{"big.bin"},
			wantDeletes:   []string{},
			wantUnchanged: []string{},
		},
		{
			name: "mixed scenario",
			local: []Asset{
				asset("new.html", "h1"),
				asset("same.css", "h2"),
				asset("changed.js", "h3"),
			},
			remote: map[string]string{
				"same.css":   "h2",
				"changed.js": "h0",
				"gone.png":   "h4",
			},
			deleteEnabled: true,
			wantUploads:   []string{"changed.js", "new.html"},
			wantDeletes:   []string{"gone.png"},
			wantUnchanged: []string{"same.css"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Reconcile(manifestOf(t, tt.local...), tt.remote, tt.deleteEnabled)

			if got := planKeys(plan.Uploads); !reflect.DeepEqual(got, tt.wantUploads) {
				t.Errorf("Uploads = %v, want %v", got, tt.wantUploads)
			}
			if got := planKeys(plan.Deletes); !reflect.DeepEqual(got, tt.wantDeletes) {
				t.Errorf("Deletes = %v, want %v", got, tt.wantDeletes)
			}
			if got := planKeys(plan.Unchanged); !reflect.DeepEqual(got, tt.wantUnchanged) {
				t.Errorf("Unchanged = %v, want %v", got, tt.wantUnchanged)
			}
		})
	}
}

func TestReconcileIdempotent(t *testing.T) {
	local := manifestOf(t,
		asset("index.html", "h1"),
		asset("css/style.css", "h2"),
	)
	remote := map[string]string{
		"index.html":    "h1",
		"css/style.css": "h2",
	}

	plan := Reconcile(local, remote, true)

	if !plan.Empty() {
		t.Errorf("plan with remote == local must be empty, got uploads=%v deletes=%v",
			planKeys(plan.Uploads), planKeys(plan.Deletes))
	}
	if got := planKeys(plan.Unchanged); !reflect.DeepEqual(got, []string{"css/style.css", "index.html"}) {
		t.Errorf("Unchanged = %v", got)
	}
}

func TestReconcileOrderIndependent(t *testing.T) {
	forward := manifestOf(t, asset("a.html", "h1"), asset("b.css", "h2"), asset("c.js", "h3"))
	reversed := manifestOf(t, asset("c.js", "h3"), asset("b.css", "h2"), asset("a.html", "h1"))
	remote := map[string]string{"b.css": "h2", "d.png": "h4"}

	first := Reconcile(forward, remote, true)
	second := Reconcile(reversed, remote, true)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("plans differ by input order:\n%+v\n%+v", first, second)
	}
}

func TestReconcileUploadReasons(t *testing.T) {
	local := manifestOf(t, asset("new.html", "h1"), asset("changed.css", "h2"))
	remote := map[string]string{"changed.css": "h0"}

	plan := Reconcile(local, remote, false)

	reasons := map[string]Reason{}
	for _, item := range plan.Uploads {
		reasons[item.Key] = item.Reason
	}
	want := map[string]Reason{
		"new.html":    ReasonNewObject,
		"changed.css": ReasonFingerprintDiffers,
	}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("reasons = %v, want %v", reasons, want)
	}
}

func TestNewManifestRejectsDuplicateKeys(t *testing.T) {
	_, err := NewManifest(asset("Index.html", "h1"), asset("Index.html", "h2"))
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
	if !IsConfiguration(err) {
		t.Errorf("duplicate key must be a configuration error, got %v", err)
	}
}
