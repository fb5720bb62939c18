// Package match finds query hits in extracted documents and turns them into
// highlighted snippets.
//
// Two rules decide whether a line matches:
//   - exact: the lower-cased line contains the lower-cased query
//   - fuzzy: for tabular rows only, some word of the row is similar to the
//     whole query by more than the threshold
//
// Page documents only use the exact rule. Fuzzy matching is per word and never
// spans word boundaries.
package match
