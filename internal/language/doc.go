// Package language normalizes language identifiers for subtitle track tags
// and human-readable reports.
//
// Parsing and naming are delegated to golang.org/x/text/language so BCP 47
// tags, ISO 639-1 codes, and ISO 639-2 codes (including bibliographic
// variants such as "chi" and "fre") are all accepted.
package language
