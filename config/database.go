package config

import (
	"fmt"

	"plantchatapi/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB is the global GORM handle to the central database. It holds users, the
// plant access grants and audit data; plant databases are reached through the
// plantdb pool, never through this handle.
var DB *gorm.DB

// CentralDSN assembles the connection string for the central database.
func CentralDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		Cfg.DBUser,
		Cfg.DBPass,
		Cfg.DBHost,
		Cfg.DBPort,
		Cfg.DBName,
	)
}

// ConnectDB establishes the central database connection using GORM.
func ConnectDB() error {
	logger.Infof("Connecting to central database %s@%s:%d/%s", Cfg.DBUser, Cfg.DBHost, Cfg.DBPort, Cfg.DBName)

	db, err := gorm.Open(mysql.Open(CentralDSN()), &gorm.Config{})
	if err != nil {
		logger.Errorf("Central database connection failed: %v", err)
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(Cfg.PoolMaxOpenConns)
	sqlDB.SetMaxIdleConns(Cfg.PoolMaxIdleConns)
	sqlDB.SetConnMaxLifetime(Cfg.PoolConnMaxLifetime)

	logger.Infof("Central database connected successfully to %s", Cfg.DBName)

	DB = db
	return nil
}
