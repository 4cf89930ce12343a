// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. config.go deals with YAML structure and loading; this file
// serves the MCP and CLI surfaces where config is addressed by string keys
// (e.g., "limits.max_tags").
//
// Design: Pointers are used for optional limits so we can distinguish between
// "not set" (nil) and "explicitly set". Defaults only apply when unset.

package config

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/jpl-au/tagidx/tagset"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"limits.max_tags", "limits.max_tag_len",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "limits.max_tags":
		return strconv.Itoa(c.MaxTags()), nil
	case "limits.max_tag_len":
		return strconv.Itoa(c.MaxTagLen()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "limits.max_tags":
		n, err := boundedInt(key, value, tagset.MaxTags)
		if err != nil {
			return err
		}
		c.Limits.MaxTags = &n
	case "limits.max_tag_len":
		n, err := boundedInt(key, value, tagset.MaxTextLen)
		if err != nil {
			return err
		}
		c.Limits.MaxTagLen = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func boundedInt(key, value string, ceiling int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > ceiling {
		return 0, fmt.Errorf("%w: %s must be an integer between 1 and %d", ErrInvalidValue, key, ceiling)
	}
	return n, nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":        c.Author.Name,
		"author.email":       c.Author.Email,
		"limits.max_tags":    strconv.Itoa(c.MaxTags()),
		"limits.max_tag_len": strconv.Itoa(c.MaxTagLen()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "limits.max_tags":
		return c.Limits.MaxTags != nil
	case "limits.max_tag_len":
		return c.Limits.MaxTagLen != nil
	default:
		return false
	}
}
