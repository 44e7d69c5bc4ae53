package auth

import (
	"fmt"
	"strings"
	"time"

	"bikestock-backend/internal/config"
	"bikestock-backend/internal/database"
	"bikestock-backend/internal/ledger"
	"bikestock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterAdminRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// POST /api/auth/register-admin
// İlk kurulum içindir: sistemde hiç admin yokken bir kez çalışır.
func RegisterAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}
		if len(body.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 6 karakter olmalıdır")
		}

		var count int64
		database.DB.Model(&models.User{}).
			Where("role = ?", models.RoleAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Zaten bir admin var")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			Username:     body.Username,
			FullName:     body.FullName,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			Active:       true,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))

		var user models.User
		if err := database.DB.Where("username = ? AND active = true", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		now := time.Now()
		database.DB.Model(&user).Update("last_login", now)

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":        user.ID,
				"username":  user.Username,
				"full_name": user.FullName,
				"role":      user.Role,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)

		var user models.User
		if userID, ok := userIDVal.(uint); ok {
			if err := database.DB.First(&user, userID).Error; err == nil {
				return c.JSON(fiber.Map{
					"user_id":    user.ID,
					"username":   user.Username,
					"full_name":  user.FullName,
					"email":      user.Email,
					"role":       user.Role,
					"last_login": user.LastLogin,
				})
			}
		}

		return c.JSON(fiber.Map{
			"user_id":  userIDVal,
			"username": c.Locals(CtxUsernameKey),
			"role":     c.Locals(CtxUserRoleKey),
		})
	}
}

// POST /api/auth/change-password
// Şifre değişikliği de işlem geçmişine yazılır; geçmiş kaydı başarısız
// olursa değişiklik commit edilmez.
func ChangePasswordHandler(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ChangePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.CurrentPassword == "" || body.NewPassword == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tüm alanlar zorunludur")
		}
		if len(body.NewPassword) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Yeni şifre en az 6 karakter olmalıdır")
		}

		actor, err := CurrentActor(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, actor.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.CurrentPassword)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Mevcut şifre yanlış")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
				return err
			}
			return ledgerSvc.AppendEventTx(tx, &models.LedgerEvent{
				Kind:        models.EventPasswordChange,
				Description: fmt.Sprintf("Kullanıcı şifre değiştirdi: %s", user.Username),
				ActorID:     actor.UserID,
				ActorName:   actor.UserName,
			})
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre değiştirilemedi")
		}

		return c.JSON(fiber.Map{"message": "Şifreniz başarıyla değiştirildi"})
	}
}
