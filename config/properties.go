package config

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/magiconair/properties"
)

const (
	envPrefix          = "MYTIMETABLE"
	propertiesFileName = "mytimetable.properties"
)

// newLoader reads Java properties syntax: \n escapes, \ line continuations,
// # and ! comments. ${key} references are kept literally.
func newLoader() *properties.Loader {
	return &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
}

// ReadPropertiesFile reads a properties file into a flat property set
func ReadPropertiesFile(path string) (map[string]string, error) {
	p, err := newLoader().LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return p.Map(), nil
}

// ReadProperties reads properties syntax from r into a flat property set
func ReadProperties(r io.Reader) (map[string]string, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	p, err := newLoader().LoadBytes(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("error parsing properties: %w", err)
	}
	return p.Map(), nil
}

// WriteProperties writes props sorted by key in properties syntax readable by Load
func WriteProperties(w io.Writer, props map[string]string) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, k := range keys {
		if _, _, err := p.Set(k, props[k]); err != nil {
			return fmt.Errorf("failed to set %s: %w", k, err)
		}
	}

	_, err := p.Write(w, properties.UTF8)
	return err
}
