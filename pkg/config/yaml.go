package config

import (
	"bytes"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unset keys stay at their
// zero value so the result can be merged over other sources.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	yamlBytes, err := c.ToYAML()
	if err != nil {
		return c.deepCopy()
	}

	clone, err := FromYAML(yamlBytes)
	if err != nil {
		return c.deepCopy()
	}

	c.copyCLIFields(clone)
	return clone
}

// copyCLIFields copies the yaml:"-" fields to target.
func (c *Config) copyCLIFields(target *Config) {
	target.Format = c.Format
	target.NameFormat = c.NameFormat
	target.Jobs = c.Jobs
	target.Strict = c.Strict
}

// deepCopy is the fallback used when the YAML round trip fails.
func (c *Config) deepCopy() *Config {
	clone := &Config{
		DetectLanguage:  c.DetectLanguage,
		MemoryLimit:     c.MemoryLimit,
		RequiredVersion: c.RequiredVersion,
		Extensions:      slices.Clone(c.Extensions),
		Ignore:          slices.Clone(c.Ignore),
	}
	if c.Preprocess != nil {
		v := *c.Preprocess
		clone.Preprocess = &v
	}
	if c.RecoverEncoding != nil {
		v := *c.RecoverEncoding
		clone.RecoverEncoding = &v
	}
	c.copyCLIFields(clone)
	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
