// Package parse structures an NMR-STAR token stream into the ir model:
// one data_ block holding save_ frames with tags and loop_ ... stop_
// tables.
package parse
