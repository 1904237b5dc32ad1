package database

import (
	"fmt"
	"log"

	config "github.com/kibet721/chat_sphere/configs"
	"github.com/kibet721/chat_sphere/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		// The chat service relies on gorm.ErrDuplicatedKey to detect a lost
		// direct-conversation creation race.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.SetupJoinTable(&models.Conversation{}, "Members", &models.ConversationMember{})
	if err == nil {
		err = DB.SetupJoinTable(&models.User{}, "Conversations", &models.ConversationMember{})
	}
	if err != nil {
		log.Fatalf("🔥 Failed to set up membership join table: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.ConversationMember{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}
