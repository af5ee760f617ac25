package seed

import (
	"fmt"
	"log"

	"threadnest/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	Factory     SeedOptions
}

// Seed populates the database with test data: users with a follow mesh,
// posts with comments and replies, and favorite/watch engagement.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db, opts.Factory)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createDiscussions(f, users, posts); err != nil {
		return fmt.Errorf("failed to create comments and replies: %w", err)
	}

	if err := createSocialMesh(f, users, posts); err != nil {
		return fmt.Errorf("failed to create follows and engagement: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE thread_images, thread_replies, user_favorite_threads, user_watched_threads, follows, threads, images, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a couple of fixed accounts for manual testing.
	if count >= 2 {
		for _, name := range []string{"threadnest", "test"} {
			name := name
			user, err := f.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the OGs."
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}
	return users, nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Thread, error) {
	posts := make([]*models.Thread, 0, count)
	for i := 0; i < count; i++ {
		user := users[f.rng.Intn(len(users))]
		post, err := f.CreateThread(user, models.ThreadTypePost, nil)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}
	return posts, nil
}

// createDiscussions hangs comments off roughly half the posts and replies off
// roughly half the comments.
func createDiscussions(f *Factory, users []*models.User, posts []*models.Thread) error {
	comments := 0
	replies := 0
	for _, post := range posts {
		if f.rng.Float32() > 0.5 {
			continue
		}
		numComments := f.rng.Intn(4) + 1
		for i := 0; i < numComments; i++ {
			author := users[f.rng.Intn(len(users))]
			comment, err := f.CreateThread(author, models.ThreadTypeComment, &post.ID)
			if err != nil {
				return err
			}
			comments++

			if f.rng.Float32() < 0.5 {
				replier := users[f.rng.Intn(len(users))]
				if _, err := f.CreateThread(replier, models.ThreadTypeReply, &comment.ID); err != nil {
					return err
				}
				replies++
			}
		}
	}
	log.Printf("%d comments and %d replies created", comments, replies)
	return nil
}

// createSocialMesh wires follow edges between users and sprinkles favorites
// and watches over the posts.
func createSocialMesh(f *Factory, users []*models.User, posts []*models.Thread) error {
	follows := 0
	for _, user := range users {
		numFollows := f.rng.Intn(6)
		for i := 0; i < numFollows; i++ {
			target := users[f.rng.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			// duplicate pairs hit the unique index; skip them
			if err := f.CreateFollow(user, target); err == nil {
				follows++
			}
		}
	}
	log.Printf("%d follow edges created", follows)

	favorites := 0
	watches := 0
	for _, post := range posts {
		numFavs := f.rng.Intn(4)
		for i := 0; i < numFavs; i++ {
			if err := f.CreateFavorite(users[f.rng.Intn(len(users))], post); err == nil {
				favorites++
			}
		}
		if f.rng.Float32() < 0.3 {
			if err := f.CreateWatch(users[f.rng.Intn(len(users))], post); err == nil {
				watches++
			}
		}
	}
	log.Printf("%d favorites and %d watches created", favorites, watches)
	return nil
}
