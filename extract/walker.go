// Package extract builds the engine's field catalogs from a Java
// source tree: DTO fields from business/vN/dto, DAO fields from a
// selected business/vN/dao/model subfolder.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/boyter/gocodewalker"

	"github.com/oestevezr/mapstruct"
)

// Extraction errors.
var (
	// ErrNoBusinessFolder is returned when no business/vN folder exists
	// under the search root.
	ErrNoBusinessFolder = errors.New("extract: no business/vN folder found")

	// ErrNoModelFolders is returned when dao/model has no subfolders.
	ErrNoModelFolders = errors.New("extract: no dao/model subfolders found")

	// ErrNoFields is returned when extraction yields an empty catalog side.
	ErrNoFields = errors.New("extract: no fields found")
)

var versionDir = regexp.MustCompile(`^v\d+$`)

// FindBusinessDir locates the business/vN folder under root. The usual
// Maven/Gradle src/main/java prefix is searched first, then src, then
// the root itself; the shallowest hit wins.
func FindBusinessDir(root string) (string, error) {
	searchRoot := root
	for _, candidate := range []string{filepath.Join(root, "src", "main", "java"), filepath.Join(root, "src")} {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			searchRoot = candidate
			break
		}
	}

	dirs, err := javaDirs(searchRoot)
	if err != nil {
		return "", err
	}

	var hits []string

	for _, dir := range dirs {
		base := filepath.Base(dir)
		if !versionDir.MatchString(strings.ToLower(base)) {
			continue
		}

		if strings.EqualFold(filepath.Base(filepath.Dir(dir)), "business") {
			hits = append(hits, dir)
		}
	}

	if len(hits) == 0 {
		return "", fmt.Errorf("%w under %s", ErrNoBusinessFolder, searchRoot)
	}

	sort.Slice(hits, func(i, j int) bool {
		di := strings.Count(hits[i], string(filepath.Separator))
		dj := strings.Count(hits[j], string(filepath.Separator))
		if di != dj {
			return di < dj
		}

		return hits[i] < hits[j]
	})

	return hits[0], nil
}

// javaDirs walks root, respecting .gitignore, and returns every
// directory that contains .java files, plus all their ancestors up to
// root.
func javaDirs(root string) ([]string, error) {
	fileListQueue := make(chan *gocodewalker.File, 100)

	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	fileWalker.AllowListExtensions = []string{"java"}

	var walkErr error
	fileWalker.SetErrorHandler(func(e error) bool {
		walkErr = e
		return true
	})

	seen := make(map[string]bool)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for f := range fileListQueue {
			for dir := filepath.Dir(f.Location); len(dir) >= len(root); dir = filepath.Dir(dir) {
				if seen[dir] {
					break
				}
				seen[dir] = true
			}
		}
	}()

	if err := fileWalker.Start(); err != nil {
		return nil, err
	}

	wg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	return dirs, nil
}

// ModelSubfolders lists the dao/model subfolders available for the
// user's pick.
func ModelSubfolders(businessDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(businessDir, "dao", "model"))
	if err != nil {
		return nil, fmt.Errorf("reading dao/model: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}

	if len(names) == 0 {
		return nil, ErrNoModelFolders
	}

	return names, nil
}

// DTOFields parses every class under dto/ and groups its fields by
// declaring class, in file then declaration order.
func DTOFields(businessDir string) (*mapstruct.Catalog, error) {
	cat := &mapstruct.Catalog{}

	err := eachJavaFile(filepath.Join(businessDir, "dto"), func(class string, data []byte) error {
		fields, err := Fields(data, class, false)
		if err != nil {
			return err
		}

		if len(fields) > 0 {
			cat.AddSource(class, fields...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(cat.Source) == 0 {
		return nil, fmt.Errorf("%w in %s/dto", ErrNoFields, businessDir)
	}

	return cat, nil
}

// DAOFields parses the selected dao/model subfolder's classes, keeping
// only @Campo-annotated fields and skipping Request*/Response* wrapper
// classes, and appends them to the catalog's flat target list.
func DAOFields(cat *mapstruct.Catalog, businessDir, model string) error {
	dir := filepath.Join(businessDir, "dao", "model", model)

	err := eachJavaFile(dir, func(class string, data []byte) error {
		if strings.HasPrefix(class, "Request") || strings.HasPrefix(class, "Response") {
			return nil
		}

		fields, err := Fields(data, class, true)
		if err != nil {
			return err
		}

		cat.AddTarget(fields...)

		return nil
	})
	if err != nil {
		return err
	}

	if len(cat.Target) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFields, dir)
	}

	return nil
}

// Catalog runs the whole local extraction: DTO side plus the selected
// model's DAO side.
func Catalog(businessDir, model string) (*mapstruct.Catalog, error) {
	cat, err := DTOFields(businessDir)
	if err != nil {
		return nil, err
	}

	if err := DAOFields(cat, businessDir, model); err != nil {
		return nil, err
	}

	return cat, nil
}

func eachJavaFile(dir string, fn func(class string, data []byte) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".java") {
			continue
		}

		data, err := os.ReadFile(filepath.Clean(filepath.Join(dir, e.Name())))
		if err != nil {
			return err
		}

		class := strings.TrimSuffix(e.Name(), ".java")

		if err := fn(class, data); err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
	}

	return nil
}
