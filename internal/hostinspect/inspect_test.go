package hostinspect

import "testing"

func TestSplitSymbolFunction(t *testing.T) {
	typeName, methodName := splitSymbol("Outer")
	if typeName != "Outer" || methodName != "" {
		t.Fatalf("splitSymbol(%q) = (%q, %q), want (%q, %q)", "Outer", typeName, methodName, "Outer", "")
	}
}

func TestSplitSymbolMethod(t *testing.T) {
	typeName, methodName := splitSymbol("Dense.SafeT")
	if typeName != "Dense" || methodName != "SafeT" {
		t.Fatalf("splitSymbol(%q) = (%q, %q), want (%q, %q)", "Dense.SafeT", typeName, methodName, "Dense", "SafeT")
	}
}

func TestGorgoniaRequirementsNameOneModule(t *testing.T) {
	for _, r := range GorgoniaRequirements {
		if r.PackagePath != "gorgonia.org/tensor" {
			t.Fatalf("requirement %+v targets an unexpected package", r)
		}
	}
}

// Check itself drives go/packages against a real module checkout and is
// exercised only by integration tooling that has a module graph to load;
// it needs no unit test here beyond the pure helper above.
