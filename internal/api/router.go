package api

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"colvote.com/internal/api/middleware"
	"colvote.com/internal/auth"
	"colvote.com/internal/config"
	"colvote.com/internal/service"
)

// Router wires services, middleware and routes onto the Fiber app.
type Router struct {
	app *fiber.App
	cfg *config.Config
	db  *gorm.DB
	rdb *redis.Client
}

func NewRouter(app *fiber.App, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Router {
	return &Router{app: app, cfg: cfg, db: db, rdb: rdb}
}

// RegisterRoutes sets up middleware, seeds the bootstrap admin and registers
// every route. Public reads stay open; everything else goes through the
// Protected middleware with the Casbin role policy.
func (r *Router) RegisterRoutes() {
	enforcer, err := auth.InitCasbin(r.db)
	if err != nil {
		log.Fatalf("Failed to initialize Casbin: %v", err)
	}

	userService := service.NewUserService(r.db)
	campaignService := service.NewCampaignService(r.db)
	voteService := service.NewVoteService(r.db)
	revoker := auth.NewRevocationList(r.rdb)

	if err := userService.EnsureAdmin(context.Background(), r.cfg.Auth.AdminColegiado, r.cfg.Auth.AdminPassword); err != nil {
		log.Fatalf("Failed to seed bootstrap admin: %v", err)
	}

	authHandler := NewAuthHandler(userService, revoker, r.cfg)
	userHandler := NewUserHandler(userService)
	campaignHandler := NewCampaignHandler(campaignService, voteService)
	candidateHandler := NewCandidateHandler(campaignService)
	voteHandler := NewVoteHandler(voteService, campaignService)

	protected := middleware.Protected(enforcer, []byte(r.cfg.Auth.JWTSecret), revoker)

	// Public routes
	r.app.Post("/users", authHandler.Register)
	r.app.Post("/login", authHandler.Login)
	r.app.Get("/campaigns", campaignHandler.ListCampaigns)
	r.app.Get("/campaigns/:id", campaignHandler.GetCampaign)
	r.app.Get("/campaigns/:id/results", campaignHandler.GetResults)

	// Campaign management (admin by policy)
	r.app.Post("/campaigns", protected, campaignHandler.CreateCampaign)
	r.app.Patch("/campaigns/:id/status", protected, campaignHandler.UpdateStatus)
	r.app.Post("/campaigns/:id/close", protected, campaignHandler.CloseCampaign)

	// Candidate management (admin by policy)
	r.app.Post("/candidates", protected, candidateHandler.CreateCandidate)
	r.app.Get("/candidates", protected, candidateHandler.ListCandidates)
	r.app.Get("/candidates/campaign/:campaignId", protected, candidateHandler.ListByCampaign)
	r.app.Delete("/candidates/:id", protected, candidateHandler.DeleteCandidate)

	// Voting (voter by policy)
	r.app.Post("/votes", protected, voteHandler.CastVote)
	r.app.Get("/voters/campaigns", protected, voteHandler.VoterCampaigns)
	r.app.Get("/voters/votes", protected, voteHandler.MyVotes)

	// Electoral roll (admin, or self where the handler allows it)
	r.app.Get("/users", protected, userHandler.ListUsers)
	r.app.Get("/users/:id", protected, userHandler.GetUser)
	r.app.Put("/users/:id", protected, userHandler.UpdateUser)
	r.app.Delete("/users/:id", protected, userHandler.DeleteUser)

	// Session
	r.app.Get("/auth/me", protected, authHandler.GetMe)
	r.app.Post("/auth/logout", protected, authHandler.Logout)
}
