package importers

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/smartlibrary/internal/library"
)

// Catalog is the document read by ParseCatalog.
type Catalog struct {
	Members []library.NewMember `yaml:"members"`
	Books   []library.NewBook   `yaml:"books"`
	Clubs   []ClubEntry         `yaml:"clubs"`
	Users   []UserEntry         `yaml:"users"`
}

// ClubEntry creates a club and enrolls the listed member IDs.
type ClubEntry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Members     []string `yaml:"members"`
}

// UserEntry creates a login, optionally linked to a member.
type UserEntry struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Member   string `yaml:"member"`
}

// ParseCatalog decodes a catalog. Unknown keys are rejected so typos do not
// silently drop data. An empty document is an empty catalog.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &catalog, nil
}

// LoadCatalog reads and parses a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}
