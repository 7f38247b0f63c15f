// Package grammar parses the qbool query syntax into a typed parse tree.
//
// GRAMMAR:
//
//	query    = space? , (clause , space?)* ;
//	clause   = operator? , (phrase | term) ;
//	operator = "+" | "-" ;
//	phrase   = '"' , (term , space?)* , '"' ;
//	term     = (any byte except ASCII whitespace and '"')+ ;
//	space    = ASCII whitespace+ ;
//
// The rules are goparsify combinators over a handful of leaf parsers that
// record byte offsets. They are built once at package init and hold no
// per-call state, so Parse is safe for concurrent use.
//
// A failed parse never yields a partial tree. Parse returns a *SyntaxError
// carrying the byte offset of the furthest successful parse and what was
// expected there (a term, a closing quote, or the end of input).
package grammar
