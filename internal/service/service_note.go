package service

import (
	"context"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/store"
	"github.com/MKhiriev/ontime/models"
)

const resourceNote = "note"

type noteService struct {
	noteRepository store.NoteRepository
	maxLimit       uint64

	logger *logger.Logger
}

func NewNoteService(noteRepository store.NoteRepository, cfg config.Pagination, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		maxLimit:       cfg.MaxLimit,
		logger:         logger,
	}
}

func (s *noteService) CreateNote(ctx context.Context, ownerID int64, req models.NoteCreate) (models.Note, error) {
	note, err := s.noteRepository.CreateNote(ctx, models.Note{
		UserID:  ownerID,
		Content: req.Content,
	})
	return note, s.result(ctx, "create", ownerID, err)
}

func (s *noteService) ListNotes(ctx context.Context, ownerID int64, page models.Page) ([]models.Note, error) {
	notes, err := s.noteRepository.ListNotes(ctx, ownerID, page.Clamp(s.maxLimit))
	if err != nil {
		return nil, s.result(ctx, "list", ownerID, err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, s.result(ctx, "list", ownerID, nil)
}

func (s *noteService) GetNote(ctx context.Context, ownerID, noteID int64) (models.Note, error) {
	note, err := s.noteRepository.GetNote(ctx, ownerID, noteID)
	return note, s.result(ctx, "get", ownerID, err)
}

func (s *noteService) UpdateNote(ctx context.Context, ownerID, noteID int64, patch models.NoteUpdate) (models.Note, error) {
	if patch.IsEmpty() {
		return s.GetNote(ctx, ownerID, noteID)
	}

	note, err := s.noteRepository.UpdateNote(ctx, ownerID, noteID, patch)
	return note, s.result(ctx, "update", ownerID, err)
}

func (s *noteService) DeleteNote(ctx context.Context, ownerID, noteID int64) error {
	return s.result(ctx, "delete", ownerID, s.noteRepository.DeleteNote(ctx, ownerID, noteID))
}

func (s *noteService) result(ctx context.Context, operation string, ownerID int64, err error) error {
	return resourceResult(ctx, resourceNote, operation, ownerID, err, store.ErrNoteNotFound)
}
