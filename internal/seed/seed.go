// Package seed fills the database with demo content for development.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder creates demo users, posts, comments, and reactions.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll wipes all seeded content. Reaction rows go first so foreign keys
// never dangle.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Reaction{},
		&models.Comment{},
		&models.Post{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Seed creates numUsers readers, numPosts posts by the given author, and a
// spread of comments and reactions. Comment counters are derived from the
// reaction rows actually created, so the ledger invariant holds from the
// first boot.
func (s *Seeder) Seed(adminID uint, numUsers, numPosts int) error {
	users, err := s.seedUsers(numUsers)
	if err != nil {
		return err
	}

	posts, err := s.seedPosts(adminID, numPosts)
	if err != nil {
		return err
	}

	return s.seedCommentsAndReactions(users, posts)
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	// One shared hash keeps seeding fast; these are throwaway dev accounts.
	hashed, err := service.HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Password: hashed,
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%d", i),
			Bio:      gofakeit.Sentence(4),
		}
		if len(user.Username) > 50 {
			user.Username = user.Username[:50]
		}
		if len(user.Bio) > 50 {
			user.Bio = user.Bio[:50]
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))
	return users, nil
}

func (s *Seeder) seedPosts(adminID uint, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		published := gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
		post := &models.Post{
			UserID:      adminID,
			Title:       fmt.Sprintf("%s #%d", gofakeit.BookTitle(), i),
			Subtitle:    gofakeit.Sentence(6),
			Body:        gofakeit.Paragraph(4, 5, 12, "\n\n"),
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%d/1200/400", i),
			PublishedOn: published.Format("January 02, 2006"),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("seeded %d posts", len(posts))
	return posts, nil
}

func (s *Seeder) seedCommentsAndReactions(users []*models.User, posts []*models.Post) error {
	if len(users) == 0 {
		return nil
	}

	var commentCount, reactionCount int
	for _, post := range posts {
		for i := 0; i < rand.Intn(5); i++ {
			author := users[rand.Intn(len(users))]
			comment := &models.Comment{
				PostID: post.ID,
				UserID: author.ID,
				Body:   gofakeit.Sentence(12),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			commentCount++

			// Each user reacts at most once per comment; counters come from
			// the rows we just wrote.
			var likes, dislikes int
			for _, reactor := range users {
				roll := rand.Intn(10)
				if roll > 3 {
					continue
				}
				reaction := &models.Reaction{
					UserID:    reactor.ID,
					CommentID: comment.ID,
					Liked:     roll != 0,
					Disliked:  roll == 0,
				}
				if err := s.db.Create(reaction).Error; err != nil {
					return fmt.Errorf("seed reaction: %w", err)
				}
				reactionCount++
				if reaction.Liked {
					likes++
				} else {
					dislikes++
				}
			}
			if likes > 0 || dislikes > 0 {
				updates := map[string]any{"likes": likes, "dislikes": dislikes}
				if err := s.db.Model(&models.Comment{}).Where("id = ?", comment.ID).Updates(updates).Error; err != nil {
					return fmt.Errorf("update comment counters: %w", err)
				}
			}
		}
	}
	log.Printf("seeded %d comments with %d reactions", commentCount, reactionCount)
	return nil
}
