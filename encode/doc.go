// Package encode serializes an ir.Entry back to NMR-STAR text, or to JSON
// or YAML for interchange. The NMR-STAR layout matches the archive's
// canonical formatting: three-space indented tags padded to a common
// width, loops with five-space data rows, values quoted only when the
// grammar requires it.
package encode
