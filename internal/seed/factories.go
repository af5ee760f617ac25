// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"threadnest/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune factory behavior.
type SeedOptions struct {
	// DryRun logs what would be written instead of touching the DB.
	DryRun bool
	// SkipBcrypt stores a plain marker password for faster bulk seeding.
	SkipBcrypt bool
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

func (f *Factory) spreadCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Bio:       gofakeit.Sentence(10),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateThread constructs and persists a thread of the given type for the
// user. Comment and reply threads also get their edge to mainID.
func (f *Factory) CreateThread(user *models.User, threadType models.ThreadType, mainID *uint, overrides ...func(*models.Thread)) (*models.Thread, error) {
	thread := &models.Thread{
		Type:      threadType,
		Text:      gofakeit.Paragraph(1, 3, 8, " "),
		UserID:    user.ID,
		CreatedAt: f.spreadCreatedAt(),
	}

	// roughly a third of posts carry an image
	if threadType == models.ThreadTypePost && f.rng.Float32() < 0.35 {
		thread.Images = []models.Image{{
			URL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			Width:    800,
			Height:   800,
			MimeType: "image/jpeg",
		}}
	}

	for _, override := range overrides {
		override(thread)
	}

	if f.opts.DryRun {
		f.nextID++
		thread.ID = f.nextID
		log.Printf("[dry-run] CreateThread: type=%s user=%d", thread.Type, thread.UserID)
		return thread, nil
	}

	if err := f.db.Create(thread).Error; err != nil {
		return nil, err
	}
	if mainID != nil {
		edge := &models.ThreadReply{MainID: *mainID, ReplyID: thread.ID}
		if err := f.db.Create(edge).Error; err != nil {
			return nil, err
		}
	}
	return thread, nil
}

// CreateFollow persists a follow edge between two users.
func (f *Factory) CreateFollow(current, target *models.User) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateFollow: %d -> %d", current.ID, target.ID)
		return nil
	}
	follow := &models.Follow{CurrentID: current.ID, TargetID: target.ID}
	return f.db.Create(follow).Error
}

// CreateFavorite persists a favorite edge from user to thread.
func (f *Factory) CreateFavorite(user *models.User, thread *models.Thread) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateFavorite: user=%d thread=%d", user.ID, thread.ID)
		return nil
	}
	fav := &models.FavoriteThread{UserID: user.ID, ThreadID: thread.ID}
	return f.db.Create(fav).Error
}

// CreateWatch persists a watched ("saved") edge from user to thread.
func (f *Factory) CreateWatch(user *models.User, thread *models.Thread) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateWatch: user=%d thread=%d", user.ID, thread.ID)
		return nil
	}
	watch := &models.WatchedThread{UserID: user.ID, ThreadID: thread.ID}
	return f.db.Create(watch).Error
}
