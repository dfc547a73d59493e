package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/flowfactory-backend/internal/config"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(cfg *config.Config, log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	serviceLog.Info("Connecting to Postgres...", "host", cfg.PostgresHost, "db", cfg.PostgresName)
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := gormDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Project{},
		&types.Topic{},
		&types.Analysis{},
		&types.Output{},
		&types.NewTopic{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	fks := []struct {
		table, constraint, column, refTable string
	}{
		{"user_token", "fk_user_token_user_id", "user_id", "user"},
		{"project", "fk_project_user_id", "user_id", "user"},
		{"topic", "fk_topic_project_id", "project_id", "project"},
		{"analysis", "fk_analysis_topic_id", "topic_id", "topic"},
		{"output", "fk_output_analysis_id", "analysis_id", "analysis"},
		{"new_topic", "fk_new_topic_output_id", "output_id", "output"},
	}
	for _, fk := range fks {
		stmt := fmt.Sprintf(`
			ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q;
			ALTER TABLE %q ADD CONSTRAINT %q
			FOREIGN KEY (%q) REFERENCES %q("id") ON DELETE CASCADE
		`, fk.table, fk.constraint, fk.table, fk.constraint, fk.column, fk.refTable)
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add %s: %w", fk.constraint, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// Close releases the underlying connection pool; called once at shutdown.
func (s *PostgresService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
