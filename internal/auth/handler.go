package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Handler exposes the admin login endpoint. The admin password is configured
// server-side; a successful login issues a short-lived JWT accepted by
// AdminMiddleware alongside the static secret.
type Handler struct {
	PasswordHash []byte // bcrypt hash of the admin password; empty disables login
	Tokens       TokenService
}

func NewHandler(passwordHash []byte, tokens TokenService) *Handler {
	return &Handler{PasswordHash: passwordHash, Tokens: tokens}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
}

type loginReq struct {
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if len(h.PasswordHash) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login disabled"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(h.PasswordHash, []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, exp, err := h.Tokens.Sign()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp,
	})
}
