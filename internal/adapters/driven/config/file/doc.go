// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under ~/.shopsearch.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - SynonymStore: User-editable TOML synonym table for relevance scoring
package file
