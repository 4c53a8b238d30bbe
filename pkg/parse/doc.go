// Package parse turns reg text into a [sheet.Mapping].
//
// # Grammar
//
//	document  = ws* entry ( ws+ entry )* ws*
//	entry     = comment | import | block
//	comment   = "//" { any char except newline }
//	import    = "@import(" path ")" ws* ";"
//	block     = selector "{" body "}"
//	body      = ws* statement ( ";" statement )* ws*
//	          | ws* block ( ws+ block )* ws*
//	statement = ws* "?" name [ ";" ws* &"}" ]
//	          | key ":" value [ ";" ws* &"}" ]
//
// Selectors may contain spaces (".x a") and are trimmed, as are keys, values
// and extend names. Comments and imports are only recognized at the top level.
// A body holds either statements or nested blocks, never both.
//
// The optional ";" at the end of a statement is only consumed when the next
// non-whitespace character closes the block, so "a:1;b:2;" and "a:1;b:2"
// produce the same mapping while a ";" in the middle of a body always
// separates two statements.
//
// # Errors
//
// Parsing never recovers: the first construct that does not match aborts with
// a [*SyntaxError] naming the construct that was expected.
package parse
