package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clinidesk/clinic-scheduler/internal/config"
	"github.com/clinidesk/clinic-scheduler/internal/logger"
	"github.com/clinidesk/clinic-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	log := logger.Get()

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Clinic{},
		&models.Doctor{},
		&models.Patient{},
		&models.ServiceType{},
		&models.AvailabilityRule{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE clinics
        SET timezone = 'Europe/Paris'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// btree_gist exclusion constraint backs the transactional conflict
	// re-check: two scheduled appointments for one doctor can never
	// commit with overlapping [start_time, end_time) ranges.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`ALTER TABLE appointments DROP CONSTRAINT IF EXISTS appointments_no_overlap`)
	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            doctor_id WITH =,
            tsrange(start_time, end_time) WITH &&
        )
        WHERE (status = 'scheduled')
    `)

	return db
}
