// Package signature reduces selectors and class names to parameterized
// signatures.
//
// A signature keeps the first "-"-separated segment of a class token and
// replaces every later segment with its position: ".b-1-fff" becomes
// ".b-$1-$2". Two classes with the same signature are instances of one rule
// family, which is how utility classes in templates are matched against the
// selectors a reg file declares.
//
// [Extract] works on the top-level selectors of a parsed tree, [FromClasses]
// on raw class lines, and [ScanClasses] pulls class lines out of template
// markup.
package signature
