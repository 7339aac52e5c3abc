package dbhelper

import (
	"fmt"
	"os"

	"github.com/dohee12/Back-GENIE/models"
	"github.com/dohee12/Back-GENIE/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func OpenDB() (*gorm.DB, error) {
	host := os.Getenv(utils.DBHOST)
	if len(host) == 0 {
		host = utils.DEFAULT_DBHOST
	}
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv(utils.DBUSER),
		os.Getenv(utils.DBPASS),
		host,
		os.Getenv(utils.DBNAME),
	)
	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey regardless of backend.
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

func InitDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.VerificationCode{},
	)
}
