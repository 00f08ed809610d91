// Package textutil provides filename sanitization for merged episode outputs.
package textutil
