package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-yaml"
)

// WithResources loads every <lang>.yaml (or .yml) file in dir. Top-level keys
// of a file are namespaces:
//
//	# Resources/fr.yaml
//	home:
//	  welcome: "Bienvenue, %{name}"
func WithResources(fsys fs.FS, dir string) Option {
	return func(i *I18n) error {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return errors.Join(ErrLoadResources, err)
		}

		for _, entry := range entries {
			ext := path.Ext(entry.Name())
			if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			lang := strings.TrimSuffix(entry.Name(), ext)

			data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
			if err != nil {
				return errors.Join(ErrLoadResources, err)
			}

			var doc map[string]any
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return errors.Join(ErrLoadResources, fmt.Errorf("%s: %w", entry.Name(), err))
			}

			for namespace, value := range doc {
				section, ok := value.(map[string]any)
				if !ok {
					return fmt.Errorf("%w: %s: namespace %q is not a mapping", ErrLoadResources, entry.Name(), namespace)
				}
				if err := WithTranslations(lang, namespace, section)(i); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
