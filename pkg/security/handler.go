package security

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/FractiqLabs/StockEasy/pkg/apperrors"
	"github.com/FractiqLabs/StockEasy/pkg/models"
	"github.com/FractiqLabs/StockEasy/pkg/roles"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// CredentialRepository is the credential lookup the login handlers need.
type CredentialRepository interface {
	GetAdminByUsername(username string) (*models.User, error)
	GetStaffByFacility(facilityID int64) (*models.User, error)
}

type LoginHandler struct {
	users    CredentialRepository
	sessions SessionRepository
	// staffPasscode is the shared fallback credential for staff login
	// when no per-facility staff user is provisioned. Empty disables it.
	staffPasscode string
	sessionTTL    time.Duration
}

func NewLoginHandler(users CredentialRepository, sessions SessionRepository, staffPasscode string, sessionTTL time.Duration) *LoginHandler {
	return &LoginHandler{
		users:         users,
		sessions:      sessions,
		staffPasscode: staffPasscode,
		sessionTTL:    sessionTTL,
	}
}

func (h *LoginHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/admin/login", h.AdminLogin)
	router.POST("/staff/login", h.StaffLogin)
	router.POST("/logout", h.Logout)
	router.GET("/session/check", h.SessionCheck)
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *LoginHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request payload"})
		return
	}

	user, err := h.users.GetAdminByUsername(req.Username)
	if err != nil {
		var notFound *apperrors.NotFoundError
		if !errors.As(err, &notFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "login failed"})
			return
		}
		// Missing user and wrong password look identical to the caller.
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid username or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid username or password"})
		return
	}

	var facilityID *int64
	if user.FacilityID.Valid {
		facilityID = &user.FacilityID.Int64
	}
	h.establishSession(c, user.Username, roles.Admin, facilityID)
}

type staffLoginRequest struct {
	FacilityID *int64 `json:"facilityId"`
	Password   string `json:"password"`
}

// StaffLogin requires a real credential: the facility's staff user if
// one is provisioned, otherwise the shared passcode. A deployment with
// neither cannot establish staff sessions.
func (h *LoginHandler) StaffLogin(c *gin.Context) {
	var req staffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request payload"})
		return
	}

	if req.FacilityID != nil {
		user, err := h.users.GetStaffByFacility(*req.FacilityID)
		if err == nil {
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
				return
			}
			h.establishSession(c, user.Username, roles.Staff, req.FacilityID)
			return
		}

		var notFound *apperrors.NotFoundError
		if !errors.As(err, &notFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "login failed"})
			return
		}
		// No staff user provisioned for this facility; the shared
		// passcode below is the remaining credential.
	}

	if h.staffPasscode != "" && subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.staffPasscode)) == 1 {
		h.establishSession(c, "staff", roles.Staff, req.FacilityID)
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
}

func (h *LoginHandler) establishSession(c *gin.Context, username string, role roles.Role, facilityID *int64) {
	token, err := h.sessions.Create(username, role, facilityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to establish session"})
		return
	}

	c.SetCookie(SessionCookie, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logged in",
		"token":   token,
		"role":    role.String(),
	})
}

func (h *LoginHandler) Logout(c *gin.Context) {
	token := c.GetString(ContextToken)
	if token != "" {
		if err := h.sessions.Delete(token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to clear session"})
			return
		}
	}

	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

func (h *LoginHandler) SessionCheck(c *gin.Context) {
	role := RoleFromContext(c)
	if role == roles.Anonymous {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "role": roles.Anonymous.String()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"role":          role.String(),
		"username":      c.GetString(ContextUsername),
	})
}
