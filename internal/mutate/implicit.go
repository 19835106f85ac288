package mutate

import "github.com/QuentinArnault/periphery/internal/symgraph"

var builtinCodableProtocolNames = map[string]bool{
	"Codable":   true,
	"Encodable": true,
	"Decodable": true,
}

var equatableNames = map[string]bool{"Equatable": true}
var hashableNames = map[string]bool{"Hashable": true}

// runImplicitMembers implements M-ImplicitMembers (spec.md §4.3):
// synthesizes the memberwise initializer for visible-only structs, and
// the conformance members for Equatable/Hashable/Codable where declared
// by conformance but not user-written. For Codable, a nested
// CodingKeys enum is retained iff the enclosing type actually conforms
// to a codable protocol.
func runImplicitMembers(g *symgraph.SourceGraph, cfg Config) {
	codableUSRs := toSet(cfg.ExternalCodableUSRs)

	for _, id := range g.AllDeclarations() {
		d := g.Declaration(id)
		if d.Kind != symgraph.KindStruct && d.Kind != symgraph.KindClass && d.Kind != symgraph.KindEnum {
			continue
		}

		names := conformedProtocolNames(g, id)

		if d.Kind == symgraph.KindStruct {
			synthesizeMemberwiseInit(g, id)
		}
		synthesizeConformanceMembers(g, id, names)

		isCodable := false
		for _, n := range names.protocolNames {
			if builtinCodableProtocolNames[n] {
				isCodable = true
			}
		}
		for _, usr := range names.protocolUSRs {
			if codableUSRs[usr] {
				isCodable = true
			}
		}
		if isCodable {
			retainCodingKeys(g, id)
		}
	}
}

type conformanceNames struct {
	protocolNames []string
	protocolUSRs  []string
}

func conformedProtocolNames(g *symgraph.SourceGraph, id symgraph.DeclID) conformanceNames {
	d := g.Declaration(id)
	var out conformanceNames
	for _, refID := range d.Related {
		ref := g.Reference(refID)
		if ref == nil || ref.Kind != symgraph.KindProtocol {
			continue
		}
		out.protocolNames = append(out.protocolNames, ref.Name)
		out.protocolUSRs = append(out.protocolUSRs, ref.USR)
	}
	return out
}

func synthesizeMemberwiseInit(g *symgraph.SourceGraph, structID symgraph.DeclID) {
	d := g.Declaration(structID)

	hasExplicitInit := false
	var storedProps []symgraph.DeclID
	for _, childID := range d.Declarations {
		child := g.Declaration(childID)
		switch child.Kind {
		case symgraph.KindFunctionConstructor:
			if !child.IsImplicit {
				hasExplicitInit = true
			}
		case symgraph.KindVarInstance:
			if !hasComputedAccessor(g, childID) {
				storedProps = append(storedProps, childID)
			}
		}
	}
	if hasExplicitInit || len(storedProps) == 0 {
		return
	}

	// "whose stored properties are all visible" (spec.md §4.3):
	// a private/fileprivate stored property blocks synthesis.
	for _, propID := range storedProps {
		if g.Declaration(propID).Access.Value < symgraph.AccessInternal {
			return
		}
	}

	g.AddDeclaration(symgraph.Declaration{
		Kind:       symgraph.KindFunctionConstructor,
		Name:       "init",
		USR:        d.USR + ".init.memberwise",
		Module:     d.Module,
		Loc:        d.Loc,
		Access:     d.Access,
		IsImplicit: true,
		Parent:     symgraph.DeclParent(structID),
	})
}

// hasComputedAccessor reports whether propID has a getter/setter that
// indicates a computed (not stored) property — computed properties
// never participate in memberwise-init synthesis.
func hasComputedAccessor(g *symgraph.SourceGraph, propID symgraph.DeclID) bool {
	prop := g.Declaration(propID)
	for _, childID := range prop.Declarations {
		child := g.Declaration(childID)
		if child.Kind == symgraph.KindFunctionAccessorGetter && !child.IsImplicit {
			return true
		}
	}
	return false
}

func synthesizeConformanceMembers(g *symgraph.SourceGraph, typeID symgraph.DeclID, names conformanceNames) {
	d := g.Declaration(typeID)
	has := func(kind symgraph.Kind, name string) bool {
		for _, childID := range d.Declarations {
			c := g.Declaration(childID)
			if c.Kind == kind && c.Name == name {
				return true
			}
		}
		return false
	}
	synth := func(kind symgraph.Kind, name, usrSuffix string) {
		if has(kind, name) {
			return
		}
		g.AddDeclaration(symgraph.Declaration{
			Kind:       kind,
			Name:       name,
			USR:        d.USR + usrSuffix,
			Module:     d.Module,
			Loc:        d.Loc,
			Access:     d.Access,
			IsImplicit: true,
			Parent:     symgraph.DeclParent(typeID),
		})
	}

	for _, n := range names.protocolNames {
		switch {
		case equatableNames[n]:
			synth(symgraph.KindFunctionOperatorInfix, "==", ".==.synth")
		case hashableNames[n]:
			synth(symgraph.KindFunctionMethodInstance, "hash(into:)", ".hash.synth")
		case builtinCodableProtocolNames[n]:
			synth(symgraph.KindFunctionConstructor, "init(from:)", ".initfrom.synth")
			synth(symgraph.KindFunctionMethodInstance, "encode(to:)", ".encodeto.synth")
		}
	}
}

func retainCodingKeys(g *symgraph.SourceGraph, typeID symgraph.DeclID) {
	d := g.Declaration(typeID)
	for _, childID := range d.Declarations {
		child := g.Declaration(childID)
		if child.Kind == symgraph.KindEnum && child.Name == "CodingKeys" {
			child.IsRetained = true
		}
	}
}
