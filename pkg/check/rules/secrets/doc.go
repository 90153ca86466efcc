// Package secrets provides rules that detect credential material.
//
// Rules in this package:
//   - private-key: PEM private key blocks
//   - aws-access-key: AWS access key identifiers
package secrets
