package service

import (
	"context"
	"errors"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DocumentStore gives raw access to any collection.
type DocumentStore interface {
	List(ctx context.Context, c model.Collection, limit, offset int) ([]repository.Document, int, error)
	Get(ctx context.Context, c model.Collection, id uuid.UUID) (repository.Document, error)
	Update(ctx context.Context, c model.Collection, id uuid.UUID, fields map[string]interface{}) (repository.Document, error)
	Delete(ctx context.Context, c model.Collection, id uuid.UUID) error
	BulkDelete(ctx context.Context, c model.Collection, ids []uuid.UUID) (int64, error)
}

// CollectionInfo describes a browsable collection.
type CollectionInfo struct {
	Name           model.Collection `json:"name"`
	EditableFields []string         `json:"editable_fields"`
}

// DocumentService is the admin's raw document browser.
type DocumentService struct {
	docs    DocumentStore
	content *ContentService
	log     zerolog.Logger
}

// NewDocumentService creates a new DocumentService. content may be nil; when
// set its caches are dropped after content tables change.
func NewDocumentService(docs DocumentStore, content *ContentService, log zerolog.Logger) *DocumentService {
	return &DocumentService{
		docs:    docs,
		content: content,
		log:     log.With().Str("component", "document_service").Logger(),
	}
}

// Collections lists the browsable collections.
func (s *DocumentService) Collections(actor Actor) ([]CollectionInfo, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	out := make([]CollectionInfo, 0, len(model.Collections))
	for _, c := range model.Collections {
		fields := c.EditableFields()
		if fields == nil {
			fields = []string{}
		}
		out = append(out, CollectionInfo{Name: c, EditableFields: fields})
	}
	return out, nil
}

// List returns a page of documents.
func (s *DocumentService) List(ctx context.Context, actor Actor, c model.Collection, limit, offset int) ([]repository.Document, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	return s.docs.List(ctx, c, limit, offset)
}

// Get returns one document.
func (s *DocumentService) Get(ctx context.Context, actor Actor, c model.Collection, id uuid.UUID) (repository.Document, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	doc, err := s.docs.Get(ctx, c, id)
	if err != nil {
		return nil, mapMissing(err, ErrNotFound)
	}
	return doc, nil
}

// Update overwrites the editable fields present in fields. Unknown or
// protected keys are ignored.
func (s *DocumentService) Update(ctx context.Context, actor Actor, c model.Collection, id uuid.UUID, fields map[string]interface{}) (repository.Document, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if len(c.EditableFields()) == 0 {
		return nil, invalid("collection", string(c)+" is read-only")
	}

	doc, err := s.docs.Update(ctx, c, id, fields)
	switch {
	case errors.Is(err, repository.ErrNoEditableFields):
		return nil, invalid("document", "no editable fields present")
	case errors.Is(err, repository.ErrInvalidDocument):
		return nil, invalid("document", err.Error())
	case err != nil:
		return nil, mapMissing(err, ErrNotFound)
	}

	s.log.Info().
		Str("collection", string(c)).
		Str("id", id.String()).
		Str("admin_id", actor.UserID.String()).
		Msg("Document updated")
	s.touched(ctx, c)
	return doc, nil
}

// Delete removes one document.
func (s *DocumentService) Delete(ctx context.Context, actor Actor, c model.Collection, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if c == model.CollectionUsers && id == actor.UserID {
		return invalid("id", "you cannot delete your own account")
	}
	if err := s.docs.Delete(ctx, c, id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrInUse
		}
		return mapMissing(err, ErrNotFound)
	}

	s.log.Info().
		Str("collection", string(c)).
		Str("id", id.String()).
		Str("admin_id", actor.UserID.String()).
		Msg("Document deleted")
	s.touched(ctx, c)
	return nil
}

// BulkDelete removes every listed document and reports how many existed.
func (s *DocumentService) BulkDelete(ctx context.Context, actor Actor, c model.Collection, ids []uuid.UUID) (int64, error) {
	if !actor.IsAdmin() {
		return 0, ErrForbidden
	}
	if len(ids) == 0 {
		return 0, invalid("ids", "at least one id is required")
	}
	if c == model.CollectionUsers {
		for _, id := range ids {
			if id == actor.UserID {
				return 0, invalid("ids", "you cannot delete your own account")
			}
		}
	}

	n, err := s.docs.BulkDelete(ctx, c, ids)
	if errors.Is(err, repository.ErrReferenced) {
		return 0, ErrInUse
	}
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Str("collection", string(c)).
		Int64("deleted", n).
		Str("admin_id", actor.UserID.String()).
		Msg("Documents bulk deleted")
	s.touched(ctx, c)
	return n, nil
}

func (s *DocumentService) touched(ctx context.Context, c model.Collection) {
	if s.content != nil && (c == model.CollectionNotices || c == model.CollectionUpcomingConcerts) {
		s.content.InvalidateAll(ctx)
	}
}
