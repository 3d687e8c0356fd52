package dash

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// similarity returns the fraction of common text between two panel
// fingerprints, in [0, 1]. 1 means identical; panels use this to flag
// refreshes that actually changed something.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	var common, total int
	for _, d := range diffs {
		n := len(d.Text)
		total += n
		if d.Type == diffmatchpatch.DiffEqual {
			common += n
		}
	}
	if total == 0 {
		return 1
	}
	return float64(common) / float64(total)
}
