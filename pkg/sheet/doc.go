// Package sheet defines the tree produced by parsing reg text.
//
// A parsed document is a [Mapping] from selector to body. Bodies are
// themselves mappings whose children are either property values ([Leaf]),
// unresolved extend statements ([Extend]) or nested selector blocks
// ([Mapping]). The outermost mapping may additionally hold pending
// [Import] references until the resolver inlines them.
//
// [Node] is a closed sum type: only the types in this package implement it,
// so a type switch over the five variants is exhaustive.
//
// # Ordering
//
// Mappings are backed by Go maps. Two mappings holding the same key/value
// pairs are [Equal] regardless of the order they were built in, and the order
// in which a mapping's children were declared is not retained. [Mapping.Keys]
// returns keys sorted so that rendering is reproducible, but callers must not
// treat that order as meaningful.
//
// # Ownership
//
// The tree is an ownership tree. Each mapping exclusively owns its children;
// there are no shared or back references, and [Mapping.Clone] produces a fully
// independent copy.
package sheet
