package services

import (
	"context"
	"log"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs: sweeping expired inquiries and
// pruning dead refresh tokens. Both jobs are idempotent.
type CronService struct {
	inquiryRepo      repositories.InquiryRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(inquiryRepo repositories.InquiryRepository, refreshTokenRepo repositories.RefreshTokenRepository) *CronService {
	return &CronService{
		inquiryRepo:      inquiryRepo,
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start registers and launches the scheduled jobs (daily at 03:00)
func (s *CronService) Start() {
	s.cron.AddFunc("0 3 * * *", s.sweepInquiries)
	s.cron.AddFunc("30 3 * * *", s.pruneRefreshTokens)
	s.cron.Start()

	// Run the inquiry sweep once at startup so a restarted server does not
	// serve stale leads until the next scheduled run
	go s.sweepInquiries()

	log.Println("🚀 CronService started")
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) sweepInquiries() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.inquiryRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Inquiry sweep error: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("🧹 Inquiry sweep removed %d expired leads", removed)
	}
}

func (s *CronService) pruneRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Refresh token prune error: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("🧹 Pruned %d dead refresh tokens", removed)
	}
}
