// Package meta loads process diagrams and configuration documents through
// afs, resolving relative locations against a base URL.
package meta

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads resources from any afs supported storage.
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// URL expands ${env.KEY} expressions and resolves a relative location against
// the base URL.
func (s *Service) URL(location string) string {
	location = expandEnvExpr(location)
	if s.baseURL != "" && url.IsRelative(location) {
		return url.Join(s.baseURL, location)
	}
	return location
}

// Exists returns true if the resource exists.
func (s *Service) Exists(ctx context.Context, location string) (bool, error) {
	return s.fs.Exists(ctx, s.URL(location), s.options...)
}

// Download returns raw resource content.
func (s *Service) Download(ctx context.Context, location string) ([]byte, error) {
	URL := s.URL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("meta: failed to download %v: %w", URL, err)
	}
	return data, nil
}

// Load decodes a YAML (or JSON) resource into target; ${env.KEY} expressions
// in the content are expanded first.
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	data, err := s.Download(ctx, location)
	if err != nil {
		return err
	}
	data = []byte(expandEnvExpr(string(data)))
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err = decoder.Decode(target); err != nil {
		return fmt.Errorf("meta: failed to decode %v: %w", s.URL(location), err)
	}
	return nil
}

// New creates a meta service; options are passed to every storage call.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL, options: options}
}
