// Package classify maps filenames to classification buckets.
//
// Classification is purely lexical: the extension selects a category via a
// case-insensitive table, and an ordered list of keyword rules per category
// may refine the result into a subcategory. No file content is ever read.
// Classify is total over any string input; names without a recognized
// extension fall into the configured fallback category.
package classify
