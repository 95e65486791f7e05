package catalog

// Merge reconciles a freshly built catalog into the persisted one.
//
// Persisted entries keep their position; those with a fresh counterpart take
// its registry-sourced fields and keep everything local. Fresh entries with no
// persisted counterpart are appended in fresh order. Persisted entries absent
// from fresh are kept as they are. Inputs are not modified.
func Merge(persisted, fresh []Game) []Game {
	freshByASIN := make(map[string]Game, len(fresh))
	for _, g := range fresh {
		if _, ok := freshByASIN[g.ASIN]; !ok {
			freshByASIN[g.ASIN] = g
		}
	}

	out := make([]Game, 0, len(persisted)+len(fresh))
	known := make(map[string]struct{}, len(persisted))
	for _, p := range persisted {
		merged := p.Clone()
		if _, dup := known[p.ASIN]; !dup {
			if f, ok := freshByASIN[p.ASIN]; ok {
				merged.applyRegistryFields(f)
			}
		}
		known[p.ASIN] = struct{}{}
		out = append(out, merged)
	}

	for _, f := range fresh {
		if _, ok := known[f.ASIN]; ok {
			continue
		}
		known[f.ASIN] = struct{}{}
		out = append(out, f.Clone())
	}
	return out
}

func (g *Game) applyRegistryFields(fresh Game) {
	fresh = fresh.Clone()
	g.Title = fresh.Title
	g.ImageURL = fresh.ImageURL
	g.Installed = fresh.Installed
	g.InstallDirectory = fresh.InstallDirectory
	g.Launch = fresh.Launch
}
