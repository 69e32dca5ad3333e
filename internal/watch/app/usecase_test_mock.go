package app

import (
	"context"

	"eduwatch_service/internal/watch/domain"

	"github.com/segmentio/kafka-go"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/mock"
)

// MockCommentRepository Mock CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

// Insert moke insert comment
func (m *MockCommentRepository) Insert(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// FindByID moke find comment by id
func (m *MockCommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindRootsByVideo moke find root comments
func (m *MockCommentRepository) FindRootsByVideo(ctx context.Context, videoID string, includeReplies bool) ([]domain.CommentWithReplies, error) {
	args := m.Called(ctx, videoID, includeReplies)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.CommentWithReplies), args.Error(1)
	}
	return nil, args.Error(1)
}

// PushReply moke push reply id
func (m *MockCommentRepository) PushReply(ctx context.Context, parentID, replyID string) error {
	args := m.Called(ctx, parentID, replyID)
	return args.Error(0)
}

// DeleteCascade moke delete comment cascade
func (m *MockCommentRepository) DeleteCascade(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteReply moke delete reply
func (m *MockCommentRepository) DeleteReply(ctx context.Context, parentID, replyID string) error {
	args := m.Called(ctx, parentID, replyID)
	return args.Error(0)
}

// MockQuestionRepository Mock QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

// Insert moke insert question
func (m *MockQuestionRepository) Insert(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

// FindByID moke find question by id
func (m *MockQuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByVideo moke find questions by video
func (m *MockQuestionRepository) FindByVideo(ctx context.Context, videoID string) ([]domain.Question, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

// PushAnswer moke push answer
func (m *MockQuestionRepository) PushAnswer(ctx context.Context, questionID string, answer *domain.Answer) error {
	args := m.Called(ctx, questionID, answer)
	return args.Error(0)
}

// Delete moke delete question
func (m *MockQuestionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNoteRepository Mock NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

// Insert moke insert note
func (m *MockNoteRepository) Insert(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

// FindByID moke find note by id
func (m *MockNoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByOwner moke find notes by owner
func (m *MockNoteRepository) FindByOwner(ctx context.Context, ownerID, videoID string) ([]domain.Note, error) {
	args := m.Called(ctx, ownerID, videoID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

// Update moke update note
func (m *MockNoteRepository) Update(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

// Delete moke delete note
func (m *MockNoteRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlaylistRepository Mock PlaylistRepository
type MockPlaylistRepository struct {
	mock.Mock
}

// Insert moke insert playlist
func (m *MockPlaylistRepository) Insert(ctx context.Context, playlist *domain.Playlist) error {
	args := m.Called(ctx, playlist)
	return args.Error(0)
}

// FindByID moke find playlist by id
func (m *MockPlaylistRepository) FindByID(ctx context.Context, id string) (*domain.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Playlist), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByOwner moke find playlists by owner
func (m *MockPlaylistRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Playlist), args.Error(1)
	}
	return nil, args.Error(1)
}

// AddVideo moke add video to playlist
func (m *MockPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string, updatedAt int64) error {
	args := m.Called(ctx, playlistID, videoID, updatedAt)
	return args.Error(0)
}

// RemoveVideo moke remove video from playlist
func (m *MockPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string, updatedAt int64) error {
	args := m.Called(ctx, playlistID, videoID, updatedAt)
	return args.Error(0)
}

// Delete moke delete playlist
func (m *MockPlaylistRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVideoRepo Mock VideoRepo
type MockVideoRepo struct {
	mock.Mock
}

// AutoMigrate moke auto migrate
func (m *MockVideoRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Create moke create video
func (m *MockVideoRepo) Create(video *domain.Video) error {
	args := m.Called(video)
	return args.Error(0)
}

// GetByID moke get video by id
func (m *MockVideoRepo) GetByID(id uint) (*domain.Video, error) {
	args := m.Called(id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

// Update moke update video
func (m *MockVideoRepo) Update(video *domain.Video) error {
	args := m.Called(video)
	return args.Error(0)
}

// IncrementViewCount moke increment view count
func (m *MockVideoRepo) IncrementViewCount(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// IncrementLike moke increment like
func (m *MockVideoRepo) IncrementLike(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// PopularVideos moke popular videos
func (m *MockVideoRepo) PopularVideos(limit int) ([]domain.Video, error) {
	args := m.Called(limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockViewRepository Mock ViewRepository
type MockViewRepository struct {
	mock.Mock
}

// InitTable moke init table
func (m *MockViewRepository) InitTable(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Upsert moke upsert view
func (m *MockViewRepository) Upsert(ctx context.Context, view *domain.View) error {
	args := m.Called(ctx, view)
	return args.Error(0)
}

// Get moke get view
func (m *MockViewRepository) Get(ctx context.Context, memberID string, videoID uint) (*domain.View, error) {
	args := m.Called(ctx, memberID, videoID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.View), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockReportRepository Mock ReportRepository
type MockReportRepository struct {
	mock.Mock
}

// InitTable moke init table
func (m *MockReportRepository) InitTable(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Create moke create report
func (m *MockReportRepository) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

// UpdateStatus moke update report status
func (m *MockReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// FindByComment moke find reports by comment
func (m *MockReportRepository) FindByComment(ctx context.Context, commentID string) ([]domain.Report, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRoomPublisher Mock RoomPublisher
type MockRoomPublisher struct {
	mock.Mock
}

// Publish moke publisher
func (m *MockRoomPublisher) Publish(videoID string, event domain.RoomEvent) error {
	args := m.Called(videoID, event)
	return args.Error(0)
}

// Subscribe moke subscriber
func (m *MockRoomPublisher) Subscribe(ctx context.Context, videoID string, handler func(event domain.RoomEvent)) error {
	args := m.Called(videoID, handler)
	return args.Error(0)
}

// MockKafkaWriter Mock KafkaWriterRepo
type MockKafkaWriter struct {
	mock.Mock
}

// WriteMessages moke write messages
func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

// Close moke close writer
func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRabbitRepo Mock RabbitRepo
type MockRabbitRepo struct {
	mock.Mock
}

// GetRabbit moke get channel
func (m *MockRabbitRepo) GetRabbit() *amqp.Channel {
	args := m.Called()
	if args.Get(0) != nil {
		return args.Get(0).(*amqp.Channel)
	}
	return nil
}

// Publish moke publish
func (m *MockRabbitRepo) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}
