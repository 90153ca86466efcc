// Package hygiene provides file hygiene rules.
//
// Rules in this package:
//   - merge-conflict: leftover merge conflict markers
//   - debug-statements: debugger and debug-print residue in source files
//   - trailing-whitespace: whitespace at end of line
//   - end-of-file-newline: files must end with exactly one newline
//   - large-files: files above a configurable size threshold
//   - case-conflict: paths that collide on case-insensitive filesystems
package hygiene
