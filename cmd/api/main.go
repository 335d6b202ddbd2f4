package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub/rostering-backend-go/internal/config"
	appHTTP "github.com/staffhub/rostering-backend-go/internal/handler/http"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
	"github.com/staffhub/rostering-backend-go/internal/pkg/database"
	"github.com/staffhub/rostering-backend-go/internal/repository/postgresql"
	availabilityService "github.com/staffhub/rostering-backend-go/internal/service/availability"
	"github.com/staffhub/rostering-backend-go/internal/service/matching"
	rosterService "github.com/staffhub/rostering-backend-go/internal/service/roster"
	timeoffService "github.com/staffhub/rostering-backend-go/internal/service/timeoff"
	workerService "github.com/staffhub/rostering-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	workerRepo := postgresql.NewWorkerRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	overrideRepo := postgresql.NewOverrideRepository(db)
	timeOffRepo := postgresql.NewTimeOffRepository(db)
	templateRepo := postgresql.NewShiftTemplateRepository(db)
	rosterRepo := postgresql.NewRosterRepository(db)
	swapRepo := postgresql.NewSwapRequestRepository(db)

	clk := clock.New()
	locks := rosterService.NewLocks()

	resolver := availabilityService.NewResolver(profileRepo, overrideRepo, timeOffRepo, clk)
	engine := matching.NewEngine(resolver, profileRepo, workerRepo)

	workerSvc := workerService.NewWorkerService(workerRepo)
	profileSvc := availabilityService.NewProfileService(profileRepo, workerRepo, resolver, clk)
	overrideSvc := availabilityService.NewOverrideService(overrideRepo, clk)
	timeOffSvc := timeoffService.NewRequestService(timeOffRepo, workerRepo, clk)
	templateSvc := rosterService.NewTemplateService(templateRepo)
	rosterSvc := rosterService.NewService(rosterRepo, templateRepo, workerRepo, profileRepo, engine, locks, clk)
	swapSvc := rosterService.NewSwapService(swapRepo, rosterRepo, workerRepo, resolver, locks, clk)

	workerHandler := appHTTP.NewWorkerHandler(workerSvc)
	availabilityHandler := appHTTP.NewAvailabilityHandler(profileSvc, overrideSvc)
	timeOffHandler := appHTTP.NewTimeOffHandler(timeOffSvc)
	rosterHandler := appHTTP.NewRosterHandler(templateSvc, rosterSvc, swapSvc)
	staffingHandler := appHTTP.NewStaffingHandler(engine)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	router := appHTTP.NewRouter(
		tokenAuth,
		workerHandler,
		availabilityHandler,
		timeOffHandler,
		rosterHandler,
		staffingHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
