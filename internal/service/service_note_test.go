package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/mock"
	"github.com/MKhiriev/ontime/internal/store"
	"github.com/MKhiriev/ontime/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNoteService_CRUD(t *testing.T) {
	repo := mock.NewMockNoteRepository(gomock.NewController(t))
	svc := NewNoteService(repo, config.Pagination{MaxLimit: 50}, logger.Nop())
	ctx := context.Background()
	content := "updated"

	note := models.Note{ID: 1, UserID: 9, Content: "hello"}
	repo.EXPECT().CreateNote(ctx, models.Note{UserID: 9, Content: "hello"}).Return(note, nil)
	repo.EXPECT().ListNotes(ctx, int64(9), models.Page{Limit: 50}).Return([]models.Note{note}, nil)
	repo.EXPECT().GetNote(ctx, int64(9), int64(1)).Return(note, nil)
	repo.EXPECT().UpdateNote(ctx, int64(9), int64(1), models.NoteUpdate{Content: &content}).
		Return(models.Note{ID: 1, UserID: 9, Content: content}, nil)
	repo.EXPECT().DeleteNote(ctx, int64(9), int64(1)).Return(nil)

	created, err := svc.CreateNote(ctx, 9, models.NoteCreate{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, note, created)

	notes, err := svc.ListNotes(ctx, 9, models.Page{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	got, err := svc.GetNote(ctx, 9, 1)
	require.NoError(t, err)
	assert.Equal(t, note, got)

	updated, err := svc.UpdateNote(ctx, 9, 1, models.NoteUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)

	require.NoError(t, svc.DeleteNote(ctx, 9, 1))
}

func TestNoteService_NotOwnedIsNotFound(t *testing.T) {
	repo := mock.NewMockNoteRepository(gomock.NewController(t))
	svc := NewNoteService(repo, config.Pagination{}, logger.Nop())
	ctx := context.Background()

	repo.EXPECT().GetNote(ctx, int64(2), int64(1)).Return(models.Note{}, store.ErrNoteNotFound)
	repo.EXPECT().DeleteNote(ctx, int64(2), int64(1)).Return(store.ErrNoteNotFound)

	_, err := svc.GetNote(ctx, 2, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteNote(ctx, 2, 1), ErrNotFound)
}

func TestNoteService_UpdateNote_EmptyPatchOfForeignNote(t *testing.T) {
	repo := mock.NewMockNoteRepository(gomock.NewController(t))
	svc := NewNoteService(repo, config.Pagination{MaxLimit: 100}, logger.Nop())
	ctx := context.Background()

	repo.EXPECT().GetNote(ctx, int64(2), int64(8)).Return(models.Note{}, store.ErrNoteNotFound)

	_, err := svc.UpdateNote(ctx, 2, 8, models.NoteUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}
