// Package navigation holds the portal's route table and the navigation
// state machine built on it.
//
// Routes returns the declarative table. New compiles it into a Table whose
// Resolve follows redirects, names the resulting State and loads the lazy
// not-found page on first demand. A Navigator keeps one session's history.
//
// Transitions are plain path navigations. Authentication gating happens
// outside this package.
package navigation
