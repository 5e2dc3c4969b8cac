package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ericfrick132/beauty-salon-sub003/internal/config"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
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
		&models.Salon{},
		&models.User{},
		&models.Service{},
		&models.Client{},
		&models.Booking{},
		&models.TimeBlock{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE salons
        SET utc_offset = '-3'
        WHERE utc_offset IS NULL OR utc_offset = ''
    `)

	// dois blocos do mesmo profissional nunca se sobrepõem, nem quando um
	// escritor entra por fora do mutex — o banco rejeita com 23P01
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint
                WHERE conname = 'time_blocks_no_overlap'
            ) THEN
                ALTER TABLE time_blocks
                    ADD CONSTRAINT time_blocks_no_overlap
                    EXCLUDE USING gist (
                        staff_id WITH =,
                        tsrange(start_time, end_time) WITH &&
                    );
            END IF;
        END
        $$;
    `)

	return db
}
