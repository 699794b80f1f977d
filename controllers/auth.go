package controllers

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/serviclima/scheduling/utils"
)

// Login authenticates the staff credential from env and issues the bearer
// token carried by every staff request. There is no account management;
// STAFF_EMAIL and STAFF_PASSWORD_HASH define the single staff identity.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	staffEmail := os.Getenv("STAFF_EMAIL")
	staffHash := os.Getenv("STAFF_PASSWORD_HASH")
	if staffEmail == "" || staffHash == "" || input.Email != staffEmail {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staffHash), []byte(input.Password)); err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}

	claims := jwt.MapClaims{
		"email": input.Email,
		"exp":   time.Now().Add(time.Hour * 24).Unix(), // 24 hour expiration
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	return utils.Success(c, fiber.Map{"token": tokenString})
}
