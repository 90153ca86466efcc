// Package syntax provides rules that require configuration files to parse.
//
// Rules in this package:
//   - check-toml: TOML files must parse
//   - check-yaml: YAML files must parse
//   - check-json: JSON files must parse
//
// Each rule reports exactly one violation per file it cannot parse.
package syntax
