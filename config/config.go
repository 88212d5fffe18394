package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// property binds a property key to a Configuration field.
// parse returns false when the raw value is unusable, in which case the field keeps its default.
// format returns false when the field should not be written.
type property struct {
	key    string
	parse  func(c *Configuration, raw string) bool
	format func(c *Configuration) (string, bool)
}

var propertyTable = []property{
	stringProperty(KeyAPIKey, func(c *Configuration) *string { return &c.APIKey }, true),
	{
		key: KeyAPIEndpointURIs,
		parse: func(c *Configuration, raw string) bool {
			c.APIEndpointURIs = splitList(raw, "\n")
			return true
		},
		format: func(c *Configuration) (string, bool) {
			return strings.Join(c.APIEndpointURIs, "\n"), true
		},
	},
	boolProperty(KeyAPISSLCNCheck, func(c *Configuration) *bool { return &c.APISSLCNCheck }),
	intProperty(KeyAPIConnectTimeout, func(c *Configuration) *int { return &c.APIConnectTimeout }),
	intProperty(KeyAPISocketTimeout, func(c *Configuration) *int { return &c.APISocketTimeout }),
	intProperty(KeyAPIMaxConnections, func(c *Configuration) *int { return &c.APIMaxConnections }),
	boolProperty(KeyAPIEnableGzip, func(c *Configuration) *bool { return &c.APIEnableGzip }),
	stringProperty(KeyMyTimetableVersion, func(c *Configuration) *string { return &c.MyTimetableVersion }, true),
	stringProperty(KeyApplicationURI, func(c *Configuration) *string { return &c.ApplicationURI }, false),
	stringProperty(KeyApplicationTarget, func(c *Configuration) *string { return &c.ApplicationTarget }, false),
	intProperty(KeyMaxNumberOfEvents, func(c *Configuration) *int { return &c.MaxNumberOfEvents }),
	intProperty(KeyDefaultNumberOfEvents, func(c *Configuration) *int { return &c.DefaultNumberOfEvents }),
	stringProperty(KeyUsernameDomainPrefix, func(c *Configuration) *string { return &c.UsernameDomainPrefix }, false),
	stringProperty(KeyUsernamePostfix, func(c *Configuration) *string { return &c.UsernamePostfix }, false),
	{
		key: KeyTimetableTypes,
		parse: func(c *Configuration, raw string) bool {
			types := splitList(raw, ";")
			if len(types) == 0 {
				return false
			}
			c.TimetableTypes = types
			return true
		},
		format: func(c *Configuration) (string, bool) {
			if len(c.TimetableTypes) == 0 {
				return "", false
			}
			return strings.Join(c.TimetableTypes, ";"), true
		},
	},
	boolProperty(KeyShowActivityType, func(c *Configuration) *bool { return &c.ShowActivityType }),
	stringProperty(KeyUnknownLocationDescription, func(c *Configuration) *string { return &c.UnknownLocationDescription }, false),
}

func stringProperty(key string, field func(*Configuration) *string, always bool) property {
	return property{
		key: key,
		parse: func(c *Configuration, raw string) bool {
			*field(c) = raw
			return true
		},
		format: func(c *Configuration) (string, bool) {
			v := *field(c)
			return v, always || v != ""
		},
	}
}

func intProperty(key string, field func(*Configuration) *int) property {
	return property{
		key: key,
		parse: func(c *Configuration, raw string) bool {
			v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				return false
			}
			*field(c) = int(v)
			return true
		},
		format: func(c *Configuration) (string, bool) {
			return strconv.Itoa(*field(c)), true
		},
	}
}

func boolProperty(key string, field func(*Configuration) *bool) property {
	return property{
		key: key,
		parse: func(c *Configuration, raw string) bool {
			switch strings.ToLower(strings.TrimSpace(raw)) {
			case "true":
				*field(c) = true
			case "false":
				*field(c) = false
			default:
				return false
			}
			return true
		},
		format: func(c *Configuration) (string, bool) {
			return strconv.FormatBool(*field(c)), true
		},
	}
}

// splitList splits on sep, trims entries and drops empty ones
func splitList(raw, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Keys returns every recognized property key in table order
func Keys() []string {
	keys := make([]string, len(propertyTable))
	for i, p := range propertyTable {
		keys[i] = p.key
	}
	return keys
}

// FromProperties builds a configuration from a flat property set.
// Absent keys and unparsable values keep their defaults.
func FromProperties(props map[string]string) *Configuration {
	cfg := Default()
	for _, p := range propertyTable {
		raw, ok := props[p.key]
		if !ok {
			continue
		}
		p.parse(cfg, raw)
	}
	return cfg
}

// ToProperties serializes the configuration into a flat property set
func (c *Configuration) ToProperties() map[string]string {
	props := make(map[string]string, len(propertyTable))
	for _, p := range propertyTable {
		if v, ok := p.format(c); ok {
			props[p.key] = v
		}
	}
	return props
}

// Load reads the configuration from a file.
// With an empty path the standard locations are searched for mytimetable.properties,
// then for a mytimetable.yaml or mytimetable.json viper can read.
// Values may be overridden by MYTIMETABLE_<KEY> environment variables.
func Load(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configPath == "" {
		configPath = findPropertiesFile(searchPaths())
	}

	props := make(map[string]string, len(propertyTable))

	if isPropertiesFile(configPath) {
		var err error
		props, err = ReadPropertiesFile(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		if configPath != "" {
			v.SetConfigFile(configPath)
		} else {
			v.SetConfigName("mytimetable")
			for _, dir := range searchPaths() {
				v.AddConfigPath(dir)
			}
		}

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				return nil, fmt.Errorf("config file not found: %w", err)
			}
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	// Environment wins over the file
	maps.Copy(props, collect(v))

	return FromProperties(props), nil
}

func searchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".mytimetable"))
	}
	return append(paths, "/etc/mytimetable/")
}

// findPropertiesFile returns the first mytimetable.properties in dirs, or ""
func findPropertiesFile(dirs []string) string {
	for _, dir := range dirs {
		path := filepath.Join(dir, propertiesFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func isPropertiesFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".properties")
}

// collect maps viper's case-insensitive keys back onto the property table
func collect(v *viper.Viper) map[string]string {
	props := make(map[string]string, len(propertyTable))
	for _, p := range propertyTable {
		if !v.IsSet(p.key) {
			continue
		}
		switch raw := v.Get(p.key).(type) {
		case []any:
			parts := make([]string, 0, len(raw))
			for _, item := range raw {
				parts = append(parts, fmt.Sprint(item))
			}
			sep := "\n"
			if p.key == KeyTimetableTypes {
				sep = ";"
			}
			props[p.key] = strings.Join(parts, sep)
		default:
			props[p.key] = v.GetString(p.key)
		}
	}
	return props
}
