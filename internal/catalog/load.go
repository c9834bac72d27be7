package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/catalog.yaml
var defaultCatalog []byte

// DefaultData returns the embedded catalog in serialized form.
func DefaultData() (Data, error) {
	return decodeData(bytes.NewReader(defaultCatalog))
}

// LoadDefault builds the catalog embedded in the binary.
func LoadDefault() (*Catalog, error) {
	return load("embedded", bytes.NewReader(defaultCatalog))
}

// LoadFile builds a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &CatalogLoadError{Source: path, Err: err}
	}
	defer f.Close()
	return load(path, f)
}

// DecodeData reads the serialized catalog from YAML without validating it.
func DecodeData(r io.Reader) (Data, error) {
	return decodeData(r)
}

// Decode builds a catalog from YAML read from r.
func Decode(r io.Reader) (*Catalog, error) {
	return load("reader", r)
}

func load(source string, r io.Reader) (*Catalog, error) {
	data, err := decodeData(r)
	if err != nil {
		return nil, &CatalogLoadError{Source: source, Err: err}
	}
	c, err := build(data)
	if err != nil {
		return nil, &CatalogLoadError{Source: source, Err: err}
	}
	return c, nil
}

func decodeData(r io.Reader) (Data, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var data Data
	if err := dec.Decode(&data); err != nil {
		if err == io.EOF {
			return Data{}, fmt.Errorf("decode yaml: empty document")
		}
		return Data{}, fmt.Errorf("decode yaml: %w", err)
	}
	return data, nil
}
