package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/infrastructure/config"
	"campusvoice/internal/interfaces/http/middleware"
	"campusvoice/internal/shared/logger"
)

// Container holds the repositories, use cases, handlers and middlewares of
// the HTTP server and wires them together.
type Container struct {
	// Core infrastructure
	engine    *gin.Engine
	db        *gorm.DB
	cfg       *config.Config
	log       logger.Interface
	redis     *redis.Client
	publisher events.EventPublisher

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	identityMiddleware *middleware.IdentityMiddleware
	rateLimiter        *middleware.RateLimiter
}

// NewContainer wires every component. redisClient may be nil, in which case
// throttling and alert deduplication are disabled.
func NewContainer(db *gorm.DB, redisClient *redis.Client, publisher events.EventPublisher, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:    gin.New(),
		db:        db,
		cfg:       cfg,
		log:       log,
		redis:     redisClient,
		publisher: publisher,
	}

	c.repos = newRepositories(db)

	ucs, err := c.newUseCases()
	if err != nil {
		return nil, err
	}
	c.ucs = ucs
	c.hdlrs = c.newHandlers()

	c.identityMiddleware = middleware.NewIdentityMiddleware(c.repos.students, c.repos.authorities, log.Named("identity"))
	if redisClient != nil {
		c.rateLimiter = middleware.NewRateLimiter(redisClient, cfg.Server.RequestsPerMinute, time.Minute, log.Named("ratelimit"))
	}

	return c, nil
}

// Engine returns the configured gin engine. SetupRoutes must run first.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}
