// Package router compiles a declarative route table into a matcher.
//
// A table is an ordered list of Route entries. Children nest under their
// parent, whose component wraps theirs as a layout:
//
//	routes := []router.Route{
//	    {Path: "/", Component: router.Page("LoginPage")},
//	    {Path: "/main", Component: router.Page("MainPage"), Children: []router.Route{
//	        {Path: "project", Component: router.Page("ProjectList")},
//	        {Path: "project/:projectName", Component: router.Page("ProjectDashboard")},
//	        {Path: "files/*subPath", Component: router.Page("FileExplorer")},
//	        {Path: "", Redirect: "/main/project"},
//	    }},
//	    {Path: "/*pathMatch", Component: router.Lazy("NotFound", loadNotFound)},
//	}
//
//	r, err := router.Compile(routes)
//	m, err := r.Resolve("/main/files/a/b/c")
//	// m.Params["subPath"] == "a/b/c"
//	// m.Chain == [MainPage FileExplorer]
//
// # Patterns
//
//	project          literal segment
//	:projectName     one segment, captured
//	*subPath         zero or more remaining segments, captured joined by "/"
//
// # Ordering
//
// Entries are matched top to bottom and the first match wins. Compile rejects
// tables where that order would disagree with the matcher's precedence: an
// entry shadowed by an earlier, more general sibling (such as a literal after
// a catch-all sharing its prefix), a catch-all that is not the last segment,
// or a global fallback ("/*name" at the top level) that is not the last entry.
// With a valid table, literal segments beat parameters and parameters beat
// catch-alls at every level.
package router
