// Package explorer lists the folders of a user's file space.
//
// The file-explorer page receives the remainder of its catch-all route as a
// sub-path. CleanSubPath normalizes it, a Lister reads the folder from a
// storage backend and Browse turns the result into a Listing: folders first,
// every entry decorated with its icon, plus breadcrumbs and the parent folder.
//
// Two listers are provided: LocalLister reads a directory tree on disk and
// S3Lister reads a bucket prefix, treating "/" as the folder separator.
package explorer
