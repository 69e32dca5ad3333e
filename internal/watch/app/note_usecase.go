package app

import (
	"context"
	"time"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/internal/watch/repository"
	errprocess "eduwatch_service/pkg/err"

	"github.com/google/uuid"
)

// NoteUseCase 負責筆記，只有擁有者能讀寫自己的筆記
type NoteUseCase struct {
	noteRepo repository.NoteRepository
}

// NewNoteUseCase init note use case
func NewNoteUseCase(noteRepo repository.NoteRepository) *NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// List 擁有者的筆記，videoID 非空時只列該影片的
func (uc *NoteUseCase) List(ctx context.Context, ownerID, videoID string) ([]domain.Note, error) {
	return uc.noteRepo.FindByOwner(ctx, ownerID, videoID)
}

// Create 建立筆記，videoID 為空代表獨立筆記
func (uc *NoteUseCase) Create(ctx context.Context, ownerID, videoID string, spans []domain.NoteSpan) (*domain.Note, error) {
	note := &domain.Note{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		VideoID:   videoID,
		Spans:     spans,
		UpdatedAt: time.Now().Unix(),
	}
	if err := uc.noteRepo.Insert(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update 覆寫筆記內容
func (uc *NoteUseCase) Update(ctx context.Context, noteID, ownerID string, spans []domain.NoteSpan) (*domain.Note, error) {
	note, err := uc.ownedNote(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}
	note.Spans = spans
	note.UpdatedAt = time.Now().Unix()
	if err := uc.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// InsertMarker 在筆記游標位置插入目前播放秒數的時間戳標記
func (uc *NoteUseCase) InsertMarker(ctx context.Context, noteID, ownerID string, seconds, cursor int) (*domain.Note, error) {
	if seconds < 0 {
		return nil, errprocess.Set("marker seconds is negative")
	}
	note, err := uc.ownedNote(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}
	note.InsertMarker(seconds, cursor)
	note.UpdatedAt = time.Now().Unix()
	if err := uc.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete 刪筆記
func (uc *NoteUseCase) Delete(ctx context.Context, noteID, ownerID string) error {
	if _, err := uc.ownedNote(ctx, noteID, ownerID); err != nil {
		return err
	}
	return uc.noteRepo.Delete(ctx, noteID)
}

func (uc *NoteUseCase) ownedNote(ctx context.Context, noteID, ownerID string) (*domain.Note, error) {
	note, err := uc.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, errprocess.Set("note not found")
	}
	if note.OwnerID != ownerID {
		return nil, errprocess.Set("not allowed to touch this note")
	}
	return note, nil
}
