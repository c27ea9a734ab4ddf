package handler

import (
	"net/http"

	"store-service/pkg/config"
	"store-service/pkg/jwtutil"
	"store-service/pkg/logger"
	"store-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	adminUsername     string
	adminPasswordHash []byte
)

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// InitAuth stores the admin credentials from configuration. The password is
// kept only as a bcrypt hash.
func InitAuth(cfg *config.AdminConfig) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	adminUsername = cfg.Username
	adminPasswordHash = hash
	return nil
}

// Login checks the admin credentials and issues a JWT for the API group.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginAttemptsCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Username != adminUsername ||
		bcrypt.CompareHashAndPassword(adminPasswordHash, []byte(req.Password)) != nil {
		log.Warn("Failed login attempt", zap.String("username", req.Username))
		prometheus.LoginFailuresCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Invalid username or password",
		})
	}

	token, err := jwtutil.GenerateToken(req.Username)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to generate token",
		})
	}

	log.Info("Login successful", zap.String("username", req.Username))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
	})
}
