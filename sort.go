package fret

import "sort"

// sortMembers orders family members by SemVer precedence.
//
// Note: ties are deterministically broken by the counter and then by the
// raw string, so permutations of the input produce identical output.
func sortMembers(fam []member, asc bool) {
	if len(fam) < 2 {
		return
	}

	sort.SliceStable(fam, func(i, j int) bool {
		a, b := fam[i], fam[j]
		c := a.ver.Compare(b.ver)
		if c == 0 {
			if a.counter != b.counter {
				if asc {
					return a.counter < b.counter
				}
				return a.counter > b.counter
			}

			if asc {
				return a.raw < b.raw
			}
			return a.raw > b.raw
		}

		if asc {
			return c < 0
		}

		return c > 0
	})
}
