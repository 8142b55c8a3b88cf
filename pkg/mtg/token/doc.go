// Package token defines the classified tokens consumed by the trigger
// parser and the forward-only Cursor productions read them through.
package token
