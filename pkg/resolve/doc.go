// Package resolve inlines @import directives into a parsed reg tree.
//
// # Rounds
//
// Resolution runs in rounds until no top-level child of the tree is an
// import. Each round renders the non-import children back to text, prepends
// the raw contents of every imported file, and re-parses the whole blob with
// [parse.Document], replacing the tree. Imports that appear inside imported
// files are therefore found on the following round.
//
// # Loaded Paths
//
// A resolution call remembers every path it has read. Reading a path a
// second time is an [*ImportCycleError], whether or not the repetition forms
// a real cycle: a file imported by two siblings (a diamond) is rejected the
// same way as a file that imports itself. This bounds the number of rounds by
// the number of distinct reachable paths.
//
// # Reading Files
//
// Import paths are used literally after trimming; relative paths are relative
// to the working directory unless a [FileReader] is given a Dir. A [Reader]
// can be any source: [ReaderFunc] adapts a function and [CachedReader] puts a
// [cache.Cache] in front of the file system.
//
// # Import Graphs
//
// [Graph] walks files without merging them, recording which file imports
// which. It reports only true cycles and is used to draw dependency diagrams.
package resolve
