package container

import (
	"database/sql"
	"time"

	auditLogRepo "github.com/FractiqLabs/StockEasy/internal/auditlog"
	"github.com/FractiqLabs/StockEasy/internal/config"
	"github.com/FractiqLabs/StockEasy/internal/database"
	"github.com/FractiqLabs/StockEasy/internal/equipment"
	"github.com/FractiqLabs/StockEasy/internal/facilities"
	"github.com/FractiqLabs/StockEasy/internal/repository"
	"github.com/FractiqLabs/StockEasy/internal/users"
	"github.com/FractiqLabs/StockEasy/pkg/auditlog"
	"github.com/FractiqLabs/StockEasy/pkg/security"
)

type Container struct {
	Repository       *repository.Repository
	AuditLog         *auditlog.Auditlog
	SessionStore     *security.SessionStore
	LoginHandler     *security.LoginHandler
	EquipmentHandler *equipment.EquipmentHandler
	FacilityHandler  *facilities.FacilityHandler
	UserRepository   *users.UserRepository
}

func NewAppContainer(db *sql.DB, driver database.Driver, cfg *config.Config) *Container {
	repo := repository.NewRepository(db, driver)
	auditStore := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditStore)

	sessionTTL := time.Duration(cfg.SessionTTLH) * time.Hour
	sessionStore := security.NewSessionStore(repo, sessionTTL)
	userRepo := users.NewRepository(repo)
	loginHandler := security.NewLoginHandler(userRepo, sessionStore, cfg.StaffPasscode, sessionTTL)

	equipmentRepo := equipment.NewEquipmentRepository(repo)
	equipmentHandler := equipment.NewEquipmentHandler(equipmentRepo, auditLog)

	facilityRepo := facilities.NewFacilityRepository(repo)
	facilityHandler := facilities.NewFacilityHandler(facilityRepo)

	return &Container{
		Repository:       repo,
		AuditLog:         auditLog,
		SessionStore:     sessionStore,
		LoginHandler:     loginHandler,
		EquipmentHandler: equipmentHandler,
		FacilityHandler:  facilityHandler,
		UserRepository:   userRepo,
	}
}
