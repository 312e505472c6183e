// Package errors provides coded, actionable errors for the portal.
//
// Every error carries a registered code (e.g. "E200") that maps to a category,
// a short message and a longer detail. Callers decorate the error with a
// specific detail, a suggestion, and the wrapped cause.
//
// # Error Categories
//
//   - config: portal.json problems
//   - routing: route table and request path problems
//   - i18n: locale resources and catalog problems
//   - explorer: file explorer paths and listing problems
//   - cli: command line usage problems
//   - server: malformed HTTP requests and navigation messages
//
// # Usage
//
//	err := errors.New("E200").
//	    WithDetail(`catch-all "files/*subPath" is declared before literal sibling "files/recent"`).
//	    WithSuggestion("Move the catch-all entry after its literal siblings")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E200: Invalid route table
//	//
//	//   catch-all "files/*subPath" is declared before literal sibling "files/recent"
//	//
//	//   Hint: Move the catch-all entry after its literal siblings
package errors
