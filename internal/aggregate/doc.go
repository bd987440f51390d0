// Package aggregate rolls part-level content counts up to episodes and
// projects. Missing child data degrades to undercounting rather than failure.
package aggregate
