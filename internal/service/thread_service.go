package service

import (
	"context"
	"time"

	"threadnest/internal/models"
	"threadnest/internal/observability"
	"threadnest/internal/repository"
	"threadnest/internal/validation"
)

const randomFeedLimit = 15

// userViewer is the slice of UserService the thread reader needs.
type userViewer interface {
	GetUserView(ctx context.Context, viewerID, targetID uint) (*models.UserView, error)
}

// ThreadService assembles viewer-relative thread views and applies thread
// mutations.
type ThreadService struct {
	threadRepo repository.ThreadRepository
	users      userViewer
}

type CreateThreadInput struct {
	UserID    uint
	Type      models.ThreadType
	Text      string
	ImageURLs []string
	MainID    *uint
}

type UpdateThreadInput struct {
	ThreadID uint
	Type     models.ThreadType
	Text     string
}

func NewThreadService(threadRepo repository.ThreadRepository, users userViewer) *ThreadService {
	return &ThreadService{
		threadRepo: threadRepo,
		users:      users,
	}
}

// childKind maps a thread's type to the type its direct children carry:
// posts are commented on, comments are replied to.
func childKind(t models.ThreadType) models.ThreadType {
	if t == models.ThreadTypePost {
		return models.ThreadTypeComment
	}
	return models.ThreadTypeReply
}

// GetThreadView returns the thread as seen by the viewer. Once the thread row
// is known to exist the image URLs, author view, favorite count, viewer
// favorite flag and reply count are fetched concurrently and merged. Any
// sub-lookup failure surfaces as a backend error, never as NotFound.
func (s *ThreadService) GetThreadView(ctx context.Context, viewerID, threadID uint) (*models.ThreadView, error) {
	start := time.Now()

	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	var (
		imageURLs   []string
		authorView  *models.UserView
		favCount    int64
		isFavorited bool
		replyCount  int64
	)
	err = await(
		func() error {
			var err error
			imageURLs, err = s.threadRepo.ImageURLs(ctx, threadID)
			return err
		},
		func() error {
			var err error
			authorView, err = s.users.GetUserView(ctx, viewerID, thread.UserID)
			return err
		},
		func() error {
			var err error
			favCount, err = s.threadRepo.FavoriteCount(ctx, threadID)
			return err
		},
		func() error {
			var err error
			isFavorited, err = s.threadRepo.IsFavorited(ctx, viewerID, threadID)
			return err
		},
		func() error {
			var err error
			replyCount, err = s.threadRepo.ReplyCount(ctx, threadID, childKind(thread.Type))
			return err
		},
	)
	if err != nil {
		observability.FanoutErrors.WithLabelValues("thread").Inc()
		return nil, err
	}
	observability.FanoutDuration.WithLabelValues("thread").Observe(time.Since(start).Seconds())

	if imageURLs == nil {
		imageURLs = []string{}
	}
	return &models.ThreadView{
		Content: models.ThreadContent{
			ThreadID:  thread.ID,
			Text:      thread.Text,
			ImageURLs: imageURLs,
			CreatedAt: thread.CreatedAt.UnixMilli(),
			UpdatedAt: thread.UpdatedAt.UnixMilli(),
		},
		User: *authorView,
		Overview: models.ThreadOverview{
			Favorite: models.FavoriteOverview{
				Count:       favCount,
				IsFavorited: isFavorited,
			},
			Reply: models.ReplyOverview{
				Count: replyCount,
			},
		},
	}, nil
}

// RandomFeed returns up to 15 posts the viewer has not watched yet, in the
// random order the id query produced.
func (s *ThreadService) RandomFeed(ctx context.Context, viewerID uint) ([]models.ThreadView, error) {
	ids, err := s.threadRepo.RandomUnseenIDs(ctx, viewerID, randomFeedLimit)
	if err != nil {
		return nil, err
	}
	return s.assembleViews(ctx, viewerID, ids)
}

// Replies lists the direct children of mainID, each as a full thread view.
func (s *ThreadService) Replies(ctx context.Context, viewerID, mainID uint) ([]models.ThreadView, error) {
	ids, err := s.threadRepo.ReplyIDs(ctx, mainID)
	if err != nil {
		return nil, err
	}
	return s.assembleViews(ctx, viewerID, ids)
}

// assembleViews fans out one thread view per id, keeping input order. Ids
// that no longer resolve are dropped; backend failures abort the list.
func (s *ThreadService) assembleViews(ctx context.Context, viewerID uint, ids []uint) ([]models.ThreadView, error) {
	slots := make([]*models.ThreadView, len(ids))
	err := awaitIndexed(len(ids), func(i int) error {
		view, err := s.GetThreadView(ctx, viewerID, ids[i])
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		slots[i] = view
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.ThreadView, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			out = append(out, *slot)
		}
	}
	return out, nil
}

// CreateThread validates and persists a new thread with its image links and
// optional reply edge.
func (s *ThreadService) CreateThread(ctx context.Context, in CreateThreadInput) (*models.Thread, error) {
	if !in.Type.Valid() {
		return nil, models.NewValidationError("Invalid thread type")
	}
	if err := validation.ValidateThreadText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Type != models.ThreadTypePost && in.MainID == nil {
		return nil, models.NewValidationError("Comments and replies require a main thread")
	}
	const maxImages = 10
	if len(in.ImageURLs) > maxImages {
		return nil, models.NewValidationError("Too many images (max 10)")
	}

	thread := &models.Thread{
		Type:   in.Type,
		Text:   in.Text,
		UserID: in.UserID,
	}
	if err := s.threadRepo.Create(ctx, thread, in.ImageURLs, in.MainID); err != nil {
		return nil, err
	}
	return thread, nil
}

// UpdateThread changes text and type of an existing thread.
func (s *ThreadService) UpdateThread(ctx context.Context, in UpdateThreadInput) error {
	if !in.Type.Valid() {
		return models.NewValidationError("Invalid thread type")
	}
	if err := validation.ValidateThreadText(in.Text); err != nil {
		return models.NewValidationError(err.Error())
	}
	return s.threadRepo.UpdateContent(ctx, in.ThreadID, in.Text, in.Type)
}

// DeleteThread removes the thread and its dependent rows.
func (s *ThreadService) DeleteThread(ctx context.Context, threadID uint) error {
	return s.threadRepo.Delete(ctx, threadID)
}

// SetFavorite applies the caller's explicit favorite state on the thread.
func (s *ThreadService) SetFavorite(ctx context.Context, userID, threadID uint, favorited bool) error {
	if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
		return err
	}
	return s.threadRepo.SetFavorite(ctx, userID, threadID, favorited)
}

// ToggleWatch flips the viewer's saved ("watched") state on the thread and
// returns the resulting state.
func (s *ThreadService) ToggleWatch(ctx context.Context, userID, threadID uint) (bool, error) {
	if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
		return false, err
	}
	return s.threadRepo.ToggleWatch(ctx, userID, threadID)
}
