package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/idilsaglam/crudadmin/internal/model"
)

// ErrMissingID is returned by Update and Delete when the record has no identifier.
var ErrMissingID = errors.New("record has no identifier")

// Service performs CRUD calls for one entity kind.
type Service struct {
	client *Client
	kind   model.Kind
}

func (s *Service) Kind() model.Kind { return s.kind }

func (s *Service) itemPath(id model.ID) string {
	return s.kind.Endpoint + "/" + url.PathEscape(id.String())
}

// List fetches the whole collection, in backend order.
func (s *Service) List(ctx context.Context) ([]model.Record, error) {
	var out []model.Record
	if _, err := s.client.do(ctx, http.MethodGet, s.kind.Endpoint, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Record{}
	}
	return out, nil
}

// Get fetches one record.
func (s *Service) Get(ctx context.Context, id model.ID) (model.Record, error) {
	if id.IsZero() {
		return model.Record{}, ErrMissingID
	}
	var out model.Record
	if _, err := s.client.do(ctx, http.MethodGet, s.itemPath(id), nil, &out); err != nil {
		return model.Record{}, err
	}
	return out, nil
}

// Create posts rec without its identifier and returns the created record.
func (s *Service) Create(ctx context.Context, rec model.Record) (model.Record, error) {
	rec.ID = model.ID{}
	var out model.Record
	decoded, err := s.client.do(ctx, http.MethodPost, s.kind.Endpoint, rec, &out)
	if err != nil {
		return model.Record{}, err
	}
	if !decoded || out.ID.IsZero() {
		return rec, nil
	}
	return out, nil
}

// Update replaces the record identified by rec.ID.
func (s *Service) Update(ctx context.Context, rec model.Record) (model.Record, error) {
	if rec.ID.IsZero() {
		return model.Record{}, ErrMissingID
	}
	var out model.Record
	decoded, err := s.client.do(ctx, http.MethodPut, s.kind.Endpoint, rec, &out)
	if err != nil {
		return model.Record{}, err
	}
	if !decoded || out.ID.IsZero() {
		return rec, nil
	}
	return out, nil
}

// Delete removes the record identified by id.
func (s *Service) Delete(ctx context.Context, id model.ID) error {
	if id.IsZero() {
		return ErrMissingID
	}
	_, err := s.client.do(ctx, http.MethodDelete, s.itemPath(id), nil, nil)
	return err
}
