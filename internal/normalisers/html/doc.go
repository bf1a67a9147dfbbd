// Package html cleans product text that arrives with markup. Storefront
// exports often carry HTML descriptions and entity-encoded names; the
// normaliser reduces them to the plain text search and autocomplete match on.
package html
