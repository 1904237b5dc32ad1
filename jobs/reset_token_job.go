package jobs

import (
	"log"
	"time"

	"github.com/kibet721/chat_sphere/database"
	"github.com/kibet721/chat_sphere/models"
)

// PurgeExpiredResetTokens clears password-reset tokens that were never used
// before their expiry.
func PurgeExpiredResetTokens() {
	log.Println("Running job: PurgeExpiredResetTokens...")

	res := database.DB.Model(&models.User{}).
		Where("reset_password_token IS NOT NULL AND reset_password_token_expires_at < ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_password_token":            nil,
			"reset_password_token_expires_at": nil,
		})
	if res.Error != nil {
		log.Printf("🔥 Failed to purge expired reset tokens: %v", res.Error)
		return
	}

	if res.RowsAffected > 0 {
		log.Printf("Cleared %d expired password reset tokens", res.RowsAffected)
	}
}
