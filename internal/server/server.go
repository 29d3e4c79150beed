// Package server contains the HTTP handlers and routes for the blog's
// server-rendered pages.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/mail"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *session.Manager
	mailer         mail.Mailer
	viewsDir       string

	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	reactionRepo repository.ReactionRepository

	userService     *service.UserService
	postService     *service.PostService
	commentService  *service.CommentService
	reactionService *service.ReactionService
}

// NewServerWithDeps creates a Server using already-initialized dependencies,
// typically the DB and Redis client established by the bootstrap layer. The
// mailer is built from the SMTP settings in cfg; with no SMTP host configured
// contact mail is discarded.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	prom := middleware.InitMetrics("inkwell")

	var mailer mail.Mailer = mail.NoopMailer{}
	if cfg.SMTPHost != "" {
		smtp, err := mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			return nil, fmt.Errorf("mailer setup failed: %w", err)
		}
		mailer = smtp
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		sessions:       session.NewManager(cfg.SessionSecret, time.Duration(cfg.SessionTTL)*time.Hour, redisClient),
		mailer:         mailer,
		viewsDir:       "./templates",
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		reactionRepo:   reactionRepo,
	}
	server.userService = service.NewUserService(userRepo)
	server.postService = service.NewPostService(postRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo)
	server.reactionService = service.NewReactionService(reactionRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Static assets
	app.Static("/static", "./static")

	// Public pages
	app.Get("/", s.Index)
	app.Get("/about", s.About)
	app.Get("/contact", s.ContactForm)
	app.Post("/contact", s.ContactSubmit)

	// Auth pages (anonymous only)
	app.Get("/register", s.AnonOnly(), s.RegisterForm)
	app.Post("/register", s.AnonOnly(), s.Register)
	app.Get("/login", s.AnonOnly(), s.LoginForm)
	app.Post("/login", s.AnonOnly(), s.Login)
	app.Get("/logout", s.AuthRequired(), s.Logout)

	// Reading and commenting require a session
	app.Get("/post/:postID", s.AuthRequired(), s.ShowPost)
	app.Post("/post/:postID", s.AuthRequired(), s.CreateComment)
	app.Post("/handling-reactions/:commentID/:reaction/:commenterID/:postID", s.AuthRequired(), s.HandleReaction)
	app.Get("/edit-comment/:commentID/:postID", s.AuthRequired(), s.EditCommentForm)
	app.Post("/edit-comment/:commentID/:postID", s.AuthRequired(), s.EditComment)

	// Profile pages
	app.Get("/dashboard/:username", s.AuthRequired(), s.Dashboard)
	app.Get("/edit-user-info/:username/:userID", s.AuthRequired(), s.EditUserForm)
	app.Post("/edit-user-info/:username/:userID", s.AuthRequired(), s.EditUser)

	// Post authoring (admin only)
	app.Get("/new-post", s.AuthRequired(), s.AdminRequired(), s.NewPostForm)
	app.Post("/new-post", s.AuthRequired(), s.AdminRequired(), s.NewPost)
	app.Get("/edit-post/:postID", s.AuthRequired(), s.AdminRequired(), s.EditPostForm)
	app.Post("/edit-post/:postID", s.AuthRequired(), s.AdminRequired(), s.EditPost)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Sessions stay valid without Redis, but logout revocation degrades.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// newApp builds the Fiber app with the HTML template engine attached.
func (s *Server) newApp() *fiber.App {
	engine := html.New(s.viewsDir, ".html")

	app := fiber.New(fiber.Config{
		AppName:           "Inkwell",
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return s.renderErrorPage(c, fiber.StatusInternalServerError, "Something went wrong on our side.")
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.newApp()

	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
