package linkage

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/svtools/sv"
)

type breakendPair struct{ a, b sv.BreakendID }

// BuildAssemblyLinks links every two breakends of different SVs that share an
// assembly and face each other.  A pair sharing several assemblies gets one
// link, for the assembly with the most support; the support of a link is the
// smaller of the two breakends' supporting read counts.
func BuildAssemblyLinks(store *sv.Store) *LinkStore {
	byAssembly := map[string][]sv.BreakendID{}
	for i := 0; i < store.NumBreakends(); i++ {
		id := sv.BreakendID(i)
		for _, a := range store.Breakend(id).Assemblies {
			if a.ID == "" {
				continue
			}
			members := byAssembly[a.ID]
			if n := len(members); n > 0 && members[n-1] == id {
				continue
			}
			byAssembly[a.ID] = append(members, id)
		}
	}
	assemblies := make([]string, 0, len(byAssembly))
	for name := range byAssembly {
		assemblies = append(assemblies, name)
	}
	sort.Strings(assemblies)

	best := map[breakendPair]Link{}
	for _, name := range assemblies {
		members := byAssembly[name]
		if len(members) < 2 {
			log.Debug.Printf("assembly %s: no mate for breakend %d", name, members[0])
			continue
		}
		for i, a := range members {
			ba := store.Breakend(a)
			for _, b := range members[i+1:] {
				if store.SvOf(a) == store.SvOf(b) {
					continue
				}
				bb := store.Breakend(b)
				if !ba.Facing(bb) {
					continue
				}
				ra, _ := ba.AssemblyReads(name)
				rb, _ := bb.AssemblyReads(name)
				reads := minInt(ra, rb)
				key := breakendPair{a, b}
				if existing, ok := best[key]; ok && existing.SupportingReads >= reads {
					continue
				}
				best[key] = Link{Type: Assembly, AssemblyID: name, SupportingReads: reads, First: a, Second: b}
			}
		}
	}

	pairs := make([]breakendPair, 0, len(best))
	for key := range best {
		pairs = append(pairs, key)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
	links := NewLinkStore()
	for n, key := range pairs {
		l := best[key]
		l.ID = fmt.Sprintf("asm%d", n)
		links.Add(l)
	}
	return links
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}
