package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nguyentantai21042004/segment-flow/internal/config"
	"github.com/nguyentantai21042004/segment-flow/internal/logger"
	"github.com/nguyentantai21042004/segment-flow/internal/postgen"
)

type implServer struct {
	app      *fiber.App
	cfg      *config.Config
	pipeline PipelineFactory
	posts    postgen.Generator
	validate *validator.Validate
	logger   logger.Logger
}

// New creates the HTTP server. posts may be nil, in which case /posts
// answers 503.
func New(cfg *config.Config, factory PipelineFactory, posts postgen.Generator, log logger.Logger) Server {
	s := &implServer{
		cfg:      cfg,
		pipeline: factory,
		posts:    posts,
		validate: validator.New(),
		logger:   log,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "segment-flow",
		BodyLimit:             cfg.Server.MaxUploadSize * 1024 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: "Content-Disposition, X-Run-ID",
	}))
	s.app.Use(fiberlogger.New())

	s.routes()
	return s
}

func (s *implServer) routes() {
	s.app.Get("/health", s.health)
	s.app.Post("/upload", s.upload)
	s.app.Post("/posts", s.generatePost)
}

func (s *implServer) App() *fiber.App {
	return s.app
}

func (s *implServer) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *implServer) Shutdown() error {
	return s.app.Shutdown()
}
