// Package ir holds the NMR-STAR document model: an entry made of
// saveframes, which carry tag/value pairs and loops of tabular data.
//
// # Related Packages
//
//   - github.com/bmrb-io/go-nmrstar/parse - Parse text into the model
//   - github.com/bmrb-io/go-nmrstar/encode - Encode the model to text
package ir
