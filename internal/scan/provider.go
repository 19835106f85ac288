// Package scan implements Scan (C10): a concrete, reference
// index.Provider that walks a directory tree, parses each eligible
// source file with tree-sitter, and emits the def/ref/related
// occurrence stream the Indexer consumes. It is a swappable
// implementation of the IndexProvider contract (spec.md §6.1) — the
// core never imports this package directly. Grounded on the teacher's
// internal/world package: TreeSitterParser's two-phase
// declare-then-connect walk (ast_treesitter.go), its directory walker
// (fs.go), and its incremental re-scan/cache pairing
// (incremental_scan.go, cache.go).
package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/QuentinArnault/periphery/internal/index"
	"github.com/QuentinArnault/periphery/internal/logging"
	"github.com/QuentinArnault/periphery/internal/symgraph"
)

// TreeSitterProvider is a reference index.Provider for Go source,
// reused here as the stand-in for a compiler-driven provider over the
// statically-typed OO language spec.md actually targets (spec.md §1's
// out-of-scope list: "driving a compiler/build to produce an index
// store"). A production deployment plugs in a real compiler-backed
// provider instead; the IndexProvider interface is language-agnostic.
type TreeSitterProvider struct {
	Roots       []string
	Extensions  []string
	IgnoreGlobs []string
}

// Records implements index.Provider.
func (p *TreeSitterProvider) Records() ([]index.Record, error) {
	log := logging.Get(logging.CategoryScan)

	files, err := p.discoverFiles()
	if err != nil {
		return nil, err
	}
	log.Info("discovered %d source files under %d roots", len(files), len(p.Roots))

	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	defer parser.Close()

	var records []index.Record
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		tree, err := parser.ParseCtx(context.Background(), nil, content)
		if err != nil {
			log.Warn("skipping %s: parse error: %v", file, err)
			continue
		}
		w := &fileWalker{
			file:        file,
			packagePath: packagePathOf(file),
			content:     content,
		}
		w.walkFile(tree.RootNode())
		tree.Close()
		records = append(records, w.records...)
	}

	return records, nil
}

// discoverFiles walks every configured root, keeping files whose
// extension matches Extensions and that do not match any IgnoreGlobs.
func (p *TreeSitterProvider) discoverFiles() ([]string, error) {
	exts := p.Extensions
	if len(exts) == 0 {
		exts = []string{".go"}
	}

	var files []string
	for _, root := range p.Roots {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if !hasAnyExt(path, exts) {
				return nil
			}
			if p.ignored(path) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func hasAnyExt(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func (p *TreeSitterProvider) ignored(path string) bool {
	for _, glob := range p.IgnoreGlobs {
		if ok, _ := filepath.Match(glob, path); ok {
			return true
		}
		if ok, _ := filepath.Match(glob, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

// packagePathOf derives a stable module-scoping string from a file's
// containing directory, used as both the Record.Module and the USR
// namespace's qualifying prefix.
func packagePathOf(file string) string {
	return filepath.ToSlash(filepath.Dir(file))
}

// fileWalker accumulates records for a single translation unit.
type fileWalker struct {
	file        string
	packagePath string
	content     []byte

	records []index.Record

	// declaredUSR maps a simple declared name to its USR within this
	// translation unit, used by the reference pass to resolve
	// same-file call/identifier occurrences without full type
	// resolution (this reference provider trades precision for
	// simplicity; a compiler-backed provider resolves references
	// exactly, per spec.md §1's out-of-scope list).
	declaredUSR map[string]string
	declaredKind map[string]symgraph.Kind
}

func (w *fileWalker) text(n *sitter.Node) string {
	return n.Content(w.content)
}

func (w *fileWalker) loc(n *sitter.Node) (int, int) {
	p := n.StartPoint()
	return int(p.Row) + 1, int(p.Column) + 1
}

func (w *fileWalker) walkFile(root *sitter.Node) {
	w.declaredUSR = make(map[string]string)
	w.declaredKind = make(map[string]symgraph.Kind)

	// First pass: top-level declarations, so forward references within
	// the same file resolve regardless of declaration order (mirrors
	// the Indexer's own two-pass structure, spec.md §4.2).
	for i := 0; i < int(root.NamedChildCount()); i++ {
		w.declareTopLevel(root.NamedChild(i))
	}
	// Second pass: references inside function/method bodies.
	for i := 0; i < int(root.NamedChildCount()); i++ {
		w.walkReferences(root.NamedChild(i), "")
	}
}

func (w *fileWalker) declareTopLevel(n *sitter.Node) {
	switch n.Type() {
	case "function_declaration":
		w.declareFunction(n)
	case "method_declaration":
		w.declareMethod(n)
	case "type_declaration":
		w.declareType(n)
	case "const_declaration", "var_declaration":
		w.declareGlobalVars(n)
	}
}

func (w *fileWalker) declareFunction(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := w.text(nameNode)
	usr := usrFor(w.packagePath, name)
	line, col := w.loc(n)

	kind := symgraph.KindFunctionFree
	access := accessibilityOf(name)

	w.declaredUSR[name] = usr
	w.declaredKind[name] = kind

	w.records = append(w.records, index.Record{
		Module: w.packagePath, File: w.file, Line: line, Column: col,
		Kind: kind, Name: name, USR: usr, Role: index.RoleDef,
		Accessibility: access,
	})

	w.declareParameters(n, usr)
}

func (w *fileWalker) declareMethod(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	receiverNode := n.ChildByFieldName("receiver")
	if nameNode == nil || receiverNode == nil {
		return
	}
	recvType := receiverTypeName(w, receiverNode)
	name := w.text(nameNode)
	qualified := recvType + "." + name
	usr := usrFor(w.packagePath, qualified)
	line, col := w.loc(n)

	kind := symgraph.KindFunctionMethodInstance
	access := accessibilityOf(name)

	w.declaredUSR[qualified] = usr
	w.declaredKind[qualified] = kind

	container := w.declaredUSR[recvType]
	w.records = append(w.records, index.Record{
		Module: w.packagePath, File: w.file, Line: line, Column: col,
		Kind: kind, Name: name, USR: usr, Role: index.RoleDef,
		ContainerUSR: container, Accessibility: access,
	})

	w.declareParameters(n, usr)
}

func receiverTypeName(w *fileWalker, receiver *sitter.Node) string {
	for i := 0; i < int(receiver.NamedChildCount()); i++ {
		param := receiver.NamedChild(i)
		typeNode := param.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		t := w.text(typeNode)
		return strings.TrimPrefix(t, "*")
	}
	return ""
}

func (w *fileWalker) declareParameters(fn *sitter.Node, fnUSR string) {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		nameNode := param.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := w.text(nameNode)
		usr := usrFor(w.packagePath, fnUSR+"#"+name)
		line, col := w.loc(nameNode)
		w.records = append(w.records, index.Record{
			Module: w.packagePath, File: w.file, Line: line, Column: col,
			Kind: symgraph.KindVarParameter, Name: name, USR: usr,
			Role: index.RoleDef, ContainerUSR: fnUSR, Accessibility: "private",
		})
	}
}

func (w *fileWalker) declareType(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != "type_spec" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		typeNode := spec.ChildByFieldName("type")
		if nameNode == nil || typeNode == nil {
			continue
		}
		name := w.text(nameNode)
		usr := usrFor(w.packagePath, name)
		line, col := w.loc(spec)

		kind := symgraph.KindStruct
		if typeNode.Type() == "interface_type" {
			kind = symgraph.KindProtocol
		}

		w.declaredUSR[name] = usr
		w.declaredKind[name] = kind

		w.records = append(w.records, index.Record{
			Module: w.packagePath, File: w.file, Line: line, Column: col,
			Kind: kind, Name: name, USR: usr, Role: index.RoleDef,
			Accessibility: accessibilityOf(name),
		})

		if typeNode.Type() == "struct_type" {
			w.declareEmbeddedFields(typeNode, usr)
		}
	}
}

// declareEmbeddedFields emits a `related` edge for every embedded
// (anonymous) field of a struct, the Go analog of class inheritance
// this reference provider maps onto spec.md's `related`/inheritance
// model.
func (w *fileWalker) declareEmbeddedFields(structType *sitter.Node, ownerUSR string) {
	body := structType.ChildByFieldName("fields")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		field := body.NamedChild(i)
		if field.Type() != "field_declaration" {
			continue
		}
		// An embedded field has a type but no name child.
		if field.ChildByFieldName("name") != nil {
			continue
		}
		typeNode := field.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		targetName := strings.TrimPrefix(w.text(typeNode), "*")
		line, col := w.loc(field)
		w.records = append(w.records, index.Record{
			Module: w.packagePath, File: w.file, Line: line, Column: col,
			Kind: symgraph.KindClass, Name: targetName, USR: usrFor(w.packagePath, targetName),
			Role: index.RoleRelated, ContainerUSR: ownerUSR,
		})
	}
}

func (w *fileWalker) declareGlobalVars(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != "var_spec" && spec.Type() != "const_spec" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := w.text(nameNode)
		usr := usrFor(w.packagePath, name)
		line, col := w.loc(spec)

		w.declaredUSR[name] = usr
		w.declaredKind[name] = symgraph.KindVarGlobal

		w.records = append(w.records, index.Record{
			Module: w.packagePath, File: w.file, Line: line, Column: col,
			Kind: symgraph.KindVarGlobal, Name: name, USR: usr, Role: index.RoleDef,
			Accessibility: accessibilityOf(name),
		})
	}
}

// walkReferences recurses through a node looking for call expressions
// and identifier reads, emitting a `ref` record for each occurrence
// that resolves to a name declared in this translation unit.
// containerUSR is the USR of the nearest enclosing function/method.
func (w *fileWalker) walkReferences(n *sitter.Node, containerUSR string) {
	switch n.Type() {
	case "function_declaration":
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			containerUSR = w.declaredUSR[w.text(nameNode)]
		}
	case "method_declaration":
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			recv := receiverTypeName(w, n.ChildByFieldName("receiver"))
			containerUSR = w.declaredUSR[recv+"."+w.text(nameNode)]
		}
	case "call_expression":
		w.emitCallReference(n, containerUSR)
	case "identifier":
		w.emitIdentifierReference(n, containerUSR)
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walkReferences(n.NamedChild(i), containerUSR)
	}
}

func (w *fileWalker) emitCallReference(n *sitter.Node, containerUSR string) {
	fnNode := n.ChildByFieldName("function")
	if fnNode == nil || containerUSR == "" {
		return
	}
	name := w.text(fnNode)
	usr, ok := w.declaredUSR[name]
	if !ok {
		return
	}
	line, col := w.loc(fnNode)
	w.records = append(w.records, index.Record{
		Module: w.packagePath, File: w.file, Line: line, Column: col,
		Kind: w.declaredKind[name], Name: name, USR: usr, Role: index.RoleRef,
		ContainerUSR: containerUSR,
	})
}

func (w *fileWalker) emitIdentifierReference(n *sitter.Node, containerUSR string) {
	if containerUSR == "" {
		return
	}
	parent := n.Parent()
	if parent != nil && (parent.Type() == "call_expression" || parent.Type() == "function_declaration" || parent.Type() == "method_declaration") {
		// Call targets and declaration names are handled elsewhere;
		// avoid double-counting them as plain identifier reads.
		return
	}
	name := w.text(n)
	usr, ok := w.declaredUSR[name]
	if !ok || w.declaredKind[name].IsFunction() {
		return
	}
	line, col := w.loc(n)
	w.records = append(w.records, index.Record{
		Module: w.packagePath, File: w.file, Line: line, Column: col,
		Kind: w.declaredKind[name], Name: name, USR: usr, Role: index.RoleRef,
		ContainerUSR: containerUSR,
	})
}

func accessibilityOf(name string) string {
	if name == "" {
		return "internal"
	}
	r := name[0]
	if r >= 'A' && r <= 'Z' {
		return "public"
	}
	return "private"
}
