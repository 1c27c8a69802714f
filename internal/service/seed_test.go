package service

import "testing"

// Every interaction in a seed set must reference drugs carried by that same
// set, so importing a single source never records lookup failures.
func TestSeedSetsSelfContained(t *testing.T) {
	for source, set := range seedCatalog {
		names := map[string]bool{}
		for _, d := range set.drugs {
			names[d.Name] = true
		}
		for _, in := range set.interactions {
			if !names[in.Drug1Name] {
				t.Errorf("source %s: interaction references %s, not among the set's drugs", source, in.Drug1Name)
			}
			if !names[in.Drug2Name] {
				t.Errorf("source %s: interaction references %s, not among the set's drugs", source, in.Drug2Name)
			}
		}
	}
}

func TestSeedCatalogDrugIDsUniqueWithinSet(t *testing.T) {
	for source, set := range seedCatalog {
		seen := map[string]bool{}
		for _, d := range set.drugs {
			if seen[d.DrugID] {
				t.Errorf("source %s: duplicate drug_id %s", source, d.DrugID)
			}
			seen[d.DrugID] = true
		}
	}
}
