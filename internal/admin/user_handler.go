package admin

import (
	"fmt"
	"strings"

	"bikestock-backend/internal/auth"
	"bikestock-backend/internal/database"
	"bikestock-backend/internal/ledger"
	"bikestock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// GET /api/users (sadece admin)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("username").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}
		return c.JSON(users)
	}
}

// POST /api/users (sadece admin)
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
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

		role := models.UserRole(body.Role)
		if role != models.RoleAdmin && role != models.RoleUser {
			role = models.RoleUser
		}

		var existing models.User
		if err := database.DB.Where("username = ?", body.Username).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı adı zaten kullanılıyor")
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
			Role:         role,
			Active:       true,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// POST /api/users/:id/reset-password (sadece admin)
// Admin kendi şifresini buradan sıfırlayamaz, change-password kullanır.
func ResetPasswordHandler(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id")
		}

		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if len(body.NewPassword) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Yeni şifre en az 6 karakter olmalıdır")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}
		if actor.UserID == uint(id) {
			return fiber.NewError(fiber.StatusBadRequest, "Kendi şifrenizi buradan sıfırlayamazsınız")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
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
				Kind:        models.EventPasswordReset,
				Description: fmt.Sprintf("Şifre sıfırlandı: %s", user.Username),
				ActorID:     actor.UserID,
				ActorName:   actor.UserName,
			})
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre sıfırlanamadı")
		}

		return c.JSON(fiber.Map{"message": fmt.Sprintf("%s kullanıcısının şifresi sıfırlandı", user.Username)})
	}
}

// PUT /api/users/:id/toggle-active (sadece admin)
func ToggleUserActiveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}
		if actor.UserID == uint(id) {
			return fiber.NewError(fiber.StatusBadRequest, "Kendi hesabınızı pasife alamazsınız")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		user.Active = !user.Active
		if err := database.DB.Model(&user).Update("active", user.Active).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		return c.JSON(user)
	}
}
