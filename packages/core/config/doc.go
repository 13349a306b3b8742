// Package config turns raw CLI arguments into the immutable run
// configuration shared by every stage of a run.
//
// Resolution is table driven: every known flag name maps to exactly one
// RunConfig field, and an unknown name fails resolution outright so a
// renamed flag cannot silently drop data.
package config
