// Package difftest renders a readable unified diff when a golden
// string comparison in a test fails (currently the diag formatter
// test), instead of dumping both strings raw.
package difftest

import "github.com/pmezard/go-difflib/difflib"

// Diff returns a unified diff between want and got, empty if they are
// equal. label is used as both file names in the diff header.
func Diff(label, want, got string) string {
	if want == got {
		return ""
	}
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: label + " (want)",
		ToFile:   label + " (got)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "(diff error: " + err.Error() + ")"
	}
	return text
}

// Equal reports whether want == got, calling t.Fatalf with a unified
// diff if not. t is a minimal testing.TB-shaped interface so this
// package does not import "testing" itself.
func Equal(t interface{ Fatalf(string, ...interface{}) }, label, want, got string) {
	if diff := Diff(label, want, got); diff != "" {
		t.Fatalf("%s mismatch:\n%s", label, diff)
	}
}
