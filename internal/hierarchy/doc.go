// Package hierarchy resolves hierarchical locations into breadcrumb trails.
//
// Labels for each level come from catalog fetches issued concurrently; a
// failed fetch degrades that level to a generic label instead of aborting the
// levels below it. Legacy scene identifiers resolve as part aliases.
package hierarchy
