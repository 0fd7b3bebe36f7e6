package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/models"
)

// noteRepository implements [NoteRepository] on the "notes" table. Every
// statement it issues is scoped with [ownedBy] or [ownedRow].
type noteRepository struct {
	*DB
	logger *logger.Logger
}

func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	query, args, err := r.builder.
		Insert(notesTable).
		Columns("user_id", "content", "created_at", "updated_at").
		Values(note.UserID, note.Content, now, now).
		Suffix(returning(noteColumns)).
		ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanNote(r.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Int64("user_id", note.UserID).
			Stringer("db_failure", r.classify(err)).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// ListNotes returns one page of the owner's notes, most recently updated first.
func (r *noteRepository) ListNotes(ctx context.Context, ownerID int64, page models.Page) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.selectNotes(ownerID, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Int64("user_id", ownerID).
			Msg("failed to execute query for listing notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, page.Limit)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.ListNotes").
				Int64("user_id", ownerID).
				Int("row", len(notes)).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "noteRepository.ListNotes").Int64("user_id", ownerID).Msg("rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

func (r *noteRepository) GetNote(ctx context.Context, ownerID, noteID int64) (models.Note, error) {
	query, args, err := r.builder.
		Select(noteColumns...).
		From(notesTable).
		Where(ownedRow(ownerID, noteID)).
		ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.one(ctx, "noteRepository.GetNote", ownerID, noteID, query, args)
}

// UpdateNote applies the non-nil fields of patch and bumps updated_at.
func (r *noteRepository) UpdateNote(ctx context.Context, ownerID, noteID int64, patch models.NoteUpdate) (models.Note, error) {
	query, args, err := r.updateNote(ownerID, noteID, patch, r.now())
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.one(ctx, "noteRepository.UpdateNote", ownerID, noteID, query, args)
}

func (r *noteRepository) DeleteNote(ctx context.Context, ownerID, noteID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete(notesTable).
		Where(ownedRow(ownerID, noteID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Int64("user_id", ownerID).
			Int64("note_id", noteID).
			Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// one runs a statement that yields at most one note row.
func (r *noteRepository) one(ctx context.Context, fn string, ownerID, noteID int64, query string, args []any) (models.Note, error) {
	note, err := scanNote(r.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		logger.FromContext(ctx).Err(err).
			Str("func", fn).
			Int64("user_id", ownerID).
			Int64("note_id", noteID).
			Stringer("db_failure", r.classify(err)).
			Msg("note statement failed")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}
