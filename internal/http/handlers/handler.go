package handlers

import (
	"study_webapp/internal/http/middleware"
	"study_webapp/internal/repository"
	"study_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB           *pgxpool.Pool
	AuthService  *service.AuthService
	ShopService  *service.ShopService
	StudyService *service.StudyService
	UserRepo     *repository.UserRepository
	StatsRepo    *repository.StatsRepository
	ContentRepo  *repository.ContentRepository
	ProfileRepo  *repository.ProfileConfigRepository
}

func NewHandler(db *pgxpool.Pool, gen service.Generator) *Handler {
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	contentRepo := repository.NewContentRepository(db)

	return &Handler{
		DB:           db,
		AuthService:  service.NewAuthService(userRepo, statsRepo),
		ShopService:  service.NewShopService(repository.NewShopRepository(db)),
		StudyService: service.NewStudyService(gen, contentRepo, statsRepo),
		UserRepo:     userRepo,
		StatsRepo:    statsRepo,
		ContentRepo:  contentRepo,
		ProfileRepo:  repository.NewProfileConfigRepository(db),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
