package i18n

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	portalerrors "github.com/systra-connect/portal/internal/errors"
)

// Messages maps keys to text with {name} placeholders.
type Messages map[string]string

//go:embed locales/*.yaml
var embedded embed.FS

// LoadEmbedded reads the locale files shipped in the binary.
func LoadEmbedded() (map[Locale]Messages, error) {
	return LoadFS(embedded, "locales")
}

// LoadDir reads <locale>.yaml files from a directory on disk.
func LoadDir(dir string) (map[Locale]Messages, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads every <locale>.yaml file in dir. Each file is a flat
// key to text mapping.
func LoadFS(fsys fs.FS, dir string) (map[Locale]Messages, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, portalerrors.New("E300").WithDetailf("Reading %s failed.", dir).Wrap(err)
	}

	out := make(map[Locale]Messages)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		locale, ok := ParseLocale(strings.TrimSuffix(name, ".yaml"))
		if !ok {
			return nil, portalerrors.New("E300").WithDetailf("%s is not named after a locale.", name)
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, portalerrors.New("E300").WithDetailf("Reading %s failed.", name).Wrap(err)
		}
		var msgs Messages
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, portalerrors.New("E300").WithDetailf("Parsing %s failed.", name).Wrap(err)
		}
		if msgs == nil {
			msgs = Messages{}
		}
		out[locale] = msgs
	}

	if len(out) == 0 {
		return nil, portalerrors.New("E300").WithDetailf("No locale files in %s.", dir)
	}
	return out, nil
}
