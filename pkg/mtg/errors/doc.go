// Package errors provides rich error types for lexing and parsing trigger clauses.
//
// # Error Types
//
// ErrorTypeSyntax: the tokens after the leading subset match no production
//
// ErrorTypeLexical: the source text could not be tokenized
//
// ErrorTypeLimit: the clause exceeds a configured bound (eg. token count)
//
// ErrorTypeIO: file I/O errors (corpus files)
//
// Errors returned by the subset, zone-subset, keyword and counter
// productions are never converted to these types. The parser passes them
// through unchanged.
//
// # Basic Usage
//
//	tree, err := p.ParseClause(tokens)
//	if errors.IsSyntax(err) {
//	    err = errors.WithSource(err, text)
//	    fmt.Println(err)
//	}
//
// # Error Format
//
//	[syntax] unexpected "inn", expected in or out at 1:10
//	  |
//	-> 1 | ~ phases inn
//	     |          ^
//	  |
//	  = suggestion: Did you mean 'in'?
package errors
