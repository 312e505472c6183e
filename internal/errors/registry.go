package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No portal.json was found in the project directory.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "portal.json could not be read or parsed.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server port must be between 0 and 65535.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid locale settings",
		Detail:   "The default and fallback locales must be supported locales.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid explorer settings",
		Detail:   "The explorer backend must be \"local\" or \"s3\" with its required fields set.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid log settings",
		Detail:   "The log level must be debug, info, warn or error and the format text or json.",
	},

	// ============================================
	// Routing Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategoryRouting,
		Message:  "Invalid route table",
		Detail:   "The declared routes violate the ordering rules.",
	},
	"E201": {
		Category: CategoryRouting,
		Message:  "Invalid path",
		Detail:   "The request path could not be canonicalized.",
	},
	"E202": {
		Category: CategoryRouting,
		Message:  "Redirect loop",
		Detail:   "Following redirects did not reach a page.",
	},
	"E203": {
		Category: CategoryRouting,
		Message:  "Component load failed",
		Detail:   "A lazily loaded component could not be loaded.",
	},
	"E204": {
		Category: CategoryRouting,
		Message:  "No history entry",
		Detail:   "There is no page to go back or forward to.",
	},
	"E205": {
		Category: CategoryRouting,
		Message:  "No matching route",
		Detail:   "No route matches the path and the table declares no fallback.",
	},

	// ============================================
	// I18n Errors (E300-E319)
	// ============================================

	"E300": {
		Category: CategoryI18n,
		Message:  "Locale resources could not be loaded",
		Detail:   "A locale file could not be read or parsed.",
	},
	"E301": {
		Category: CategoryI18n,
		Message:  "Unknown locale",
		Detail:   "The requested locale is not part of the catalog.",
	},
	"E302": {
		Category: CategoryI18n,
		Message:  "Locale keys differ",
		Detail:   "Every locale must define the same set of keys as the fallback locale.",
	},

	// ============================================
	// Explorer Errors (E400-E419)
	// ============================================

	"E400": {
		Category: CategoryExplorer,
		Message:  "Path escapes the explorer root",
		Detail:   "Folder paths must stay inside the user's file space.",
	},
	"E401": {
		Category: CategoryExplorer,
		Message:  "Folder could not be listed",
		Detail:   "The storage backend returned an error while listing the folder.",
	},
	"E402": {
		Category: CategoryExplorer,
		Message:  "Folder not found",
		Detail:   "The requested folder does not exist.",
	},

	// ============================================
	// CLI Errors (E500-E519)
	// ============================================

	"E500": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was called with invalid arguments.",
	},

	// ============================================
	// Server Errors (E600-E619)
	// ============================================

	"E600": {
		Category: CategoryServer,
		Message:  "Invalid request",
		Detail:   "A query parameter is missing or malformed.",
	},
	"E601": {
		Category: CategoryServer,
		Message:  "Unsupported navigation message",
		Detail:   "Navigation sessions accept the navigate, back and forward operations.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
