package mutate

import "github.com/QuentinArnault/periphery/internal/symgraph"

// runConformanceWitnesses links every resolved protocol a type conforms
// to with the member declarations that witness its requirements, and
// links each requirement to a protocol extension's default
// implementation if one exists (spec.md §4.4.2: conformance witnesses
// and protocol-extension default implementations both retain a
// requirement transitively through the members that satisfy it).
func runConformanceWitnesses(g *symgraph.SourceGraph, res *Result) {
	for _, id := range g.AllDeclarations() {
		d := g.Declaration(id)
		if d.Kind != symgraph.KindClass && d.Kind != symgraph.KindStruct && d.Kind != symgraph.KindEnum {
			continue
		}
		for _, protoID := range resolvedProtocolConformances(g, id) {
			witnessRequirements(g, res, id, protoID)
		}
	}

	for _, id := range g.AllDeclarations() {
		d := g.Declaration(id)
		if d.Kind != symgraph.KindProtocol {
			continue
		}
		linkProtocolExtensionDefaults(g, res, id)
	}
}

// witnessRequirements matches protoID's requirement declarations
// against typeID's direct members by (kind, name), falling back to the
// members of typeID's extensions, recording every match under
// res.ConformanceWitnesses[typeID][protoID].
func witnessRequirements(g *symgraph.SourceGraph, res *Result, typeID, protoID symgraph.DeclID) {
	proto := g.Declaration(protoID)
	typ := g.Declaration(typeID)

	var witnesses []symgraph.DeclID
	for _, reqID := range proto.Declarations {
		req := g.Declaration(reqID)
		if memberID, ok := findMember(g, typeID, req.Kind, req.Name); ok {
			witnesses = append(witnesses, memberID)
			res.RequirementWitnesses[reqID] = append(res.RequirementWitnesses[reqID], memberID)
			continue
		}
		for _, extID := range g.ExtensionsOf(typ.USR) {
			if memberID, ok := findMember(g, extID, req.Kind, req.Name); ok {
				witnesses = append(witnesses, memberID)
				res.RequirementWitnesses[reqID] = append(res.RequirementWitnesses[reqID], memberID)
				break
			}
		}
	}
	if len(witnesses) == 0 {
		return
	}
	if res.ConformanceWitnesses[typeID] == nil {
		res.ConformanceWitnesses[typeID] = make(map[symgraph.DeclID][]symgraph.DeclID)
	}
	res.ConformanceWitnesses[typeID][protoID] = witnesses
}

// linkProtocolExtensionDefaults matches protocolID's requirements
// against the member declarations of its own protocol extensions,
// recording a default-implementation link for every requirement a
// conforming type may rely on instead of providing its own witness.
func linkProtocolExtensionDefaults(g *symgraph.SourceGraph, res *Result, protocolID symgraph.DeclID) {
	proto := g.Declaration(protocolID)
	for _, extID := range g.ExtensionsOf(proto.USR) {
		ext := g.Declaration(extID)
		if ext.Kind != symgraph.KindExtensionProtocol {
			continue
		}
		for _, reqID := range proto.Declarations {
			req := g.Declaration(reqID)
			if defaultID, ok := findMember(g, extID, req.Kind, req.Name); ok {
				res.ProtocolExtensionDefaults[reqID] = defaultID
			}
		}
	}
}
