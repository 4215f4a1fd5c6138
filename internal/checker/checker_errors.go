package checker

import "github.com/luka-lang/lukac/internal/diag"

// Format renders every accumulated diagnostic through f, in the order
// they were recorded (source order within a function, function order
// within a module).
func (c *Checker) Format(f *diag.Formatter) {
	for _, d := range c.diagnostics {
		f.Format(d)
	}
}

// FirstError returns the first accumulated diagnostic as an error, or
// nil if no errors were recorded. Semantic errors are fatal and
// unbatched at the driver boundary (the driver reports only the first
// one), even though the checker itself accumulates every failure it
// finds.
func (c *Checker) FirstError() error {
	if len(c.diagnostics) == 0 {
		return nil
	}
	d := c.diagnostics[0]
	return d
}
