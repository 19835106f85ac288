package analyze

import "github.com/QuentinArnault/periphery/internal/symgraph"

// paramUnionFind groups parameter declarations that must share a
// single used/unused verdict: positionally-matched parameters across
// an override chain or a protocol requirement/witness/default-impl set
// (spec.md §4.4.3 — "propagates up the override chain ... and vice
// versa").
type paramUnionFind struct {
	parent map[symgraph.DeclID]symgraph.DeclID
}

func newParamUnionFind() *paramUnionFind {
	return &paramUnionFind{parent: make(map[symgraph.DeclID]symgraph.DeclID)}
}

func (u *paramUnionFind) find(id symgraph.DeclID) symgraph.DeclID {
	if _, ok := u.parent[id]; !ok {
		u.parent[id] = id
		return id
	}
	root := id
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[id] != root {
		u.parent[id], id = root, u.parent[id]
	}
	return root
}

func (u *paramUnionFind) union(a, b symgraph.DeclID) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// spreadRetention marks every member of a group retained once any
// member of that group is retained.
func (u *paramUnionFind) spreadRetention(g *symgraph.SourceGraph) {
	groups := make(map[symgraph.DeclID][]symgraph.DeclID)
	for id := range u.parent {
		root := u.find(id)
		groups[root] = append(groups[root], id)
	}
	for _, members := range groups {
		anyRetained := false
		for _, id := range members {
			if g.Declaration(id).IsRetained {
				anyRetained = true
				break
			}
		}
		if !anyRetained {
			continue
		}
		for _, id := range members {
			g.Declaration(id).IsRetained = true
		}
	}
}
