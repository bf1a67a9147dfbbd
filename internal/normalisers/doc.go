// Package normalisers holds the text normalisers applied to catalog data
// before it is indexed for search. Each subpackage handles one input format.
package normalisers
