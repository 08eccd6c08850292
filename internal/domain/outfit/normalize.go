package outfit

import "strings"

type normalizer struct {
	cfg NormalizeConfig
}

func (n normalizer) apply(rec Recommendation) Recommendation {
	rec.Top = n.collapseThermals(rec.Top)
	rec.Bottom = n.collapseThermals(rec.Bottom)
	rec.Accessories = n.collapseThermals(rec.Accessories)
	if n.hasOuterwear(rec) {
		rec.Top = n.dropBaseLayer(rec.Top)
		rec.Bottom = n.dropBaseLayer(rec.Bottom)
	}
	return rec
}

// collapseThermals trims, drops blanks and "none", removes repeats and folds every thermal garment
// into one canonical entry at the position of the first one.
func (n normalizer) collapseThermals(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{})
	keyword := strings.ToLower(n.cfg.ThermalKeyword)
	for _, item := range items {
		clean := strings.TrimSpace(item)
		if clean == "" || strings.EqualFold(clean, "none") {
			continue
		}
		if strings.Contains(strings.ToLower(clean), keyword) {
			clean = n.cfg.ThermalLabel
		}
		key := strings.ToLower(clean)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, clean)
	}
	return out
}

func (n normalizer) hasOuterwear(rec Recommendation) bool {
	for _, list := range [][]string{rec.Top, rec.Bottom, rec.Accessories} {
		for _, item := range list {
			lower := strings.ToLower(item)
			for _, keyword := range n.cfg.OuterwearKeywords {
				if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
					return true
				}
			}
		}
	}
	return false
}

func (n normalizer) dropBaseLayer(items []string) []string {
	out := items[:0:0]
	for _, item := range items {
		if strings.EqualFold(item, n.cfg.BaseLayer) {
			continue
		}
		out = append(out, item)
	}
	return out
}
