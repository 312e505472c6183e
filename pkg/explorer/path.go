package explorer

import (
	"strings"

	portalerrors "github.com/systra-connect/portal/internal/errors"
)

// CleanSubPath normalizes a folder path relative to the file space root.
// Leading, trailing and repeated slashes and "." segments are dropped; the
// root is "". Any ".." segment, backslash or NUL byte is an E400 error.
func CleanSubPath(raw string) (string, error) {
	if strings.ContainsAny(raw, "\\\x00") {
		return "", portalerrors.New("E400").WithDetailf("%q contains a backslash or NUL byte.", raw)
	}

	var kept []string
	for _, seg := range strings.Split(raw, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			return "", portalerrors.New("E400").WithDetailf("%q contains a parent reference.", raw)
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, "/"), nil
}

// parentOf returns the parent folder of a cleaned path and whether one exists.
func parentOf(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "", true
	}
	return p[:i], true
}

// joinPath joins a cleaned folder and an entry name.
func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
