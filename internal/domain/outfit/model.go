package outfit

import "strings"

// Recommendation is the advisor's output. Lists are never nil and never carry a "none" placeholder.
type Recommendation struct {
	Top         []string `json:"top"`
	Bottom      []string `json:"bottom"`
	Accessories []string `json:"accessories"`
	Reasons     []string `json:"reasons"`
	Override    string   `json:"override,omitempty"`
}

// Items flattens top, bottom and accessories in that order, dropping case-insensitive repeats so a
// garment worn top and bottom (thermals) is listed once.
func (r Recommendation) Items() []string {
	out := make([]string, 0, len(r.Top)+len(r.Bottom)+len(r.Accessories))
	seen := make(map[string]struct{})
	for _, list := range [][]string{r.Top, r.Bottom, r.Accessories} {
		for _, item := range list {
			key := strings.ToLower(item)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}
