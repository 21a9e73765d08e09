// Package sanitizer provides small string transforms for cleaning user input
// before it reaches validation or storage.
//
// Every helper has the shape func(string) string so they can be combined with
// the generic Apply and Compose helpers:
//
//	clean := sanitizer.Compose(
//	    sanitizer.RemoveControlChars,
//	    sanitizer.SingleLine,
//	    sanitizer.Truncate(100),
//	)
//
//	name := clean("  Irving\x00\n Delgado ") // "Irving Delgado"
//
// The package is stateless and safe for concurrent use.
package sanitizer
