// Package corpus aggregates harvested type catalogs across many binaries
// into a frequency-ranked, size-keyed index, with gzipped snapshots for
// persistence and merging.
package corpus
