// services/maintenance_service.go
package services

import (
	"time"

	"jobtract-backend/models"
	"jobtract-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaintenanceService scans for equipment whose next maintenance is coming
// due. Notification delivery is handled by the external email service;
// this side only surfaces what is due.
type MaintenanceService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewMaintenanceService(db *gorm.DB, logger *zap.Logger) *MaintenanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceService{db: db, logger: logger}
}

func (s *MaintenanceService) StartScheduler() {
	c := cron.New()

	// Run every day at 7 AM
	c.AddFunc("0 7 * * *", func() {
		s.ProcessDueMaintenance()
	})

	c.Start()
	s.logger.Info("maintenance scheduler started")
}

// ProcessDueMaintenance logs every active piece of equipment whose next
// maintenance date falls within the coming week or has already passed.
func (s *MaintenanceService) ProcessDueMaintenance() {
	now := time.Now()
	cutoff := now.AddDate(0, 0, 7)

	var due []models.Equipment
	if err := s.db.
		Where("next_maintenance IS NOT NULL AND next_maintenance <= ?", cutoff).
		Find(&due).Error; err != nil {
		s.logger.Error("failed to fetch equipment due for maintenance", zap.Error(err))
		return
	}

	for _, eq := range due {
		days := utils.DaysBetween(now, *eq.NextMaintenance)
		if days < 0 {
			s.logger.Warn("equipment maintenance overdue",
				zap.String("equipment", eq.Name),
				zap.String("id", eq.ID.String()),
				zap.Int("daysOverdue", -days),
			)
			continue
		}
		s.logger.Info("equipment maintenance due",
			zap.String("equipment", eq.Name),
			zap.String("id", eq.ID.String()),
			zap.Int("daysUntilDue", days),
		)
	}
}
