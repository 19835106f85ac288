package symgraph

import "testing"

func TestKindClassification(t *testing.T) {
	tests := []struct {
		name       string
		kind       Kind
		isFunction bool
		isVariable bool
		isExt      bool
		isAccessor bool
	}{
		{"free function", KindFunctionFree, true, false, false, false},
		{"getter accessor", KindFunctionAccessorGetter, true, false, false, true},
		{"instance var", KindVarInstance, false, true, false, false},
		{"class extension", KindExtensionClass, false, false, true, false},
		{"struct decl", KindStruct, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsFunction(); got != tt.isFunction {
				t.Errorf("IsFunction() = %v, want %v", got, tt.isFunction)
			}
			if got := tt.kind.IsVariable(); got != tt.isVariable {
				t.Errorf("IsVariable() = %v, want %v", got, tt.isVariable)
			}
			if got := tt.kind.IsExtension(); got != tt.isExt {
				t.Errorf("IsExtension() = %v, want %v", got, tt.isExt)
			}
			if got := tt.kind.IsAccessor(); got != tt.isAccessor {
				t.Errorf("IsAccessor() = %v, want %v", got, tt.isAccessor)
			}
		})
	}
}

func TestParseKind_RoundTrips(t *testing.T) {
	k, ok := ParseKind("function.method.instance")
	if !ok || k != KindFunctionMethodInstance {
		t.Fatalf("ParseKind roundtrip failed: got %v, %v", k, ok)
	}

	if _, ok := ParseKind("not.a.kind"); ok {
		t.Fatalf("expected unknown kind to be rejected")
	}
}

func TestParseAccessibility(t *testing.T) {
	info := ParseAccessibility("open")
	if info.Value != AccessOpen || !info.Explicit {
		t.Fatalf("got %+v", info)
	}

	implicit := ParseAccessibility("")
	if implicit.Value != AccessInternal || implicit.Explicit {
		t.Fatalf("got %+v", implicit)
	}
}
