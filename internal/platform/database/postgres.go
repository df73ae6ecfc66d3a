package database

import (
	"database/sql"
	"time"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/platform/config"
	"github.com/sirupsen/logrus"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		logrus.Fatalf("Error opening database: %v", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err = DB.Ping(); err != nil {
		logrus.Fatalf("Error connecting to database: %v", err)
	}

	logrus.Info("Successfully connected to PostgreSQL database")
}

func Close() {
	if DB != nil {
		DB.Close()
		logrus.Info("Database connection closed")
	}
}
