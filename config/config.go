// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the settings shared by the sift library and CLI.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Storage backends.
const (
	BackendS3     = "s3"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Defaults for a fresh configuration.
const (
	DefaultBackend = BackendS3
	DefaultBucket  = "botchat-bucket-1"
	DefaultPrefix  = "chatbot/"
	DefaultRegion  = "us-east-1"
)

// Config selects the object store holding the corpus and how it is searched.
type Config struct {
	Backend  string `toml:"backend"`
	Bucket   string `toml:"bucket"`
	Prefix   string `toml:"prefix"`
	Region   string `toml:"region"`
	Endpoint string `toml:"endpoint"` // S3-compatible endpoint; empty uses AWS

	// Static credentials. When empty the default AWS credential chain is used.
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`

	DBPath   string `toml:"db_path"`   // Badger directory
	PoolSize int    `toml:"pool_size"` // 0 uses the library default
}

// Option modifies a Config.
type Option func(*Config) error

// WithBackend selects the storage backend.
func WithBackend(backend string) Option {
	return func(c *Config) error {
		c.Backend = backend
		return nil
	}
}

// WithBucket sets the S3 bucket.
func WithBucket(bucket string) Option {
	return func(c *Config) error {
		c.Bucket = bucket
		return nil
	}
}

// WithPrefix sets the key prefix that defines the corpus.
func WithPrefix(prefix string) Option {
	return func(c *Config) error {
		c.Prefix = prefix
		return nil
	}
}

// WithRegion sets the S3 region.
func WithRegion(region string) Option {
	return func(c *Config) error {
		c.Region = region
		return nil
	}
}

// WithEndpoint sets a custom S3 endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) error {
		c.Endpoint = endpoint
		return nil
	}
}

// WithDBPath sets the badger database directory.
func WithDBPath(path string) Option {
	return func(c *Config) error {
		c.DBPath = path
		return nil
	}
}

// WithPoolSize sets the number of documents processed concurrently.
func WithPoolSize(size int) Option {
	return func(c *Config) error {
		if size < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidPoolSize, size)
		}
		c.PoolSize = size
		return nil
	}
}

// WithCredentials sets static S3 credentials.
func WithCredentials(accessKeyID, secretAccessKey string) Option {
	return func(c *Config) error {
		c.AccessKeyID = accessKeyID
		c.SecretAccessKey = secretAccessKey
		return nil
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: DefaultBackend,
		Bucket:  DefaultBucket,
		Prefix:  DefaultPrefix,
		Region:  DefaultRegion,
	}
}

// New returns the default configuration with opts applied, normalized and
// validated.
func New(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFrom decodes the TOML file at path over the defaults.
// Keys missing from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("config path is required")
	}

	c := DefaultConfig()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Apply applies opts to c, then normalizes and validates the result.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	c.Normalize()
	return c.Validate()
}

// Normalize trims whitespace, lower-cases the backend, and gives a non-empty
// prefix a trailing slash.
func (c *Config) Normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Bucket = strings.TrimSpace(c.Bucket)
	c.Region = strings.TrimSpace(c.Region)
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	c.DBPath = strings.TrimSpace(c.DBPath)

	c.Prefix = strings.TrimSpace(c.Prefix)
	if c.Prefix != "" && !strings.HasSuffix(c.Prefix, "/") {
		c.Prefix += "/"
	}
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	if c.PoolSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPoolSize, c.PoolSize)
	}

	switch c.Backend {
	case BackendS3:
		if c.Bucket == "" {
			return ErrBucketRequired
		}
		if c.Region == "" {
			return ErrRegionRequired
		}
	case BackendBadger:
		if c.DBPath == "" {
			return ErrDBPathRequired
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	return nil
}
