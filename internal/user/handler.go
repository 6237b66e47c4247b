package user

import (
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Handler serves the demo session endpoints: placeholder user login, signup
// validation, and the admin login with rate limiting and lockout.
type Handler struct {
	adminUser     string
	adminPassHash string
	jwtSecret     string

	adminLimiter  *attemptLimiter
	adminFailures *attemptLimiter
	signupLimiter *attemptLimiter
}

func NewHandler(adminUser, adminPassHash, jwtSecret string) *Handler {
	return &Handler{
		adminUser:     adminUser,
		adminPassHash: adminPassHash,
		jwtSecret:     jwtSecret,
		adminLimiter:  newAttemptLimiter(5, 15*time.Minute),
		adminFailures: newAttemptLimiter(5, 15*time.Minute),
		signupLimiter: newAttemptLimiter(3, time.Hour),
	}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/login", h.login)
	app.Post("/api/logout", h.logout)
	app.Post("/api/signup", h.signup)
	app.Get("/api/check-session", h.checkSession)
	app.Post("/api/admin/login", h.adminLogin)
	app.Get("/api/admin/check-session", h.adminCheckSession)
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login is a non-functional placeholder: any POST logs the user in by
// setting the sentinel cookie. There is no credential check by design.
func (h *Handler) login(c *fiber.Ctx) error {
	setSessionCookie(c, UserSessionCookie, "Lax", 24*time.Hour)
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	clearSessionCookie(c, UserSessionCookie)
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) checkSession(c *fiber.Ctx) error {
	if HasUserSession(c) {
		return c.JSON(fiber.Map{"authenticated": true})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"authenticated": false})
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (h *Handler) signup(c *fiber.Ctx) error {
	if !h.signupLimiter.Allow(clientIP(c)) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false, "message": "Too many signup attempts, please try again later.",
		})
	}

	payload := new(signupRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" || payload.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Email, username, and password are required",
		})
	}
	if !emailPattern.MatchString(payload.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid email format"})
	}
	if len(payload.Username) < 3 || len(payload.Username) > 20 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Username must be between 3 and 20 characters",
		})
	}
	if !validPassword(payload.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Password must be at least 8 characters with uppercase, lowercase, number, and special character",
		})
	}

	if _, err := bcrypt.GenerateFromPassword([]byte(payload.Password), 12); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}

	// demo flow: nothing is stored, the account is simulated
	log.Printf("user signup: email=[REDACTED] username=%s", payload.Username)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully. Please check your email for verification.",
	})
}

func (h *Handler) adminLogin(c *fiber.Ctx) error {
	ip := clientIP(c)
	if !h.adminLimiter.Allow(ip) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false, "message": "Too many login attempts, please try again later.",
		})
	}

	if c.Get("X-CSRF-Token") == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Invalid CSRF token"})
	}

	if h.adminFailures.Exceeded(ip) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false, "message": "Account temporarily locked. Try again later.",
		})
	}

	payload := new(adminLoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	log.Printf("admin login attempt: email=[REDACTED] ip=%s", ip)

	if payload.Email == h.adminUser &&
		bcrypt.CompareHashAndPassword([]byte(h.adminPassHash), []byte(payload.Password)) == nil {
		h.adminFailures.Reset(ip)
		setSessionCookie(c, AdminSessionCookie, "Strict", time.Hour)

		token, err := h.signAdminToken()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "failed to generate token"})
		}
		return c.JSON(fiber.Map{"success": true, "token": token})
	}

	h.adminFailures.Record(ip)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid credentials"})
}

// adminCheckSession only checks cookie presence; admin mutations additionally
// require the exact sentinel via the guard.
func (h *Handler) adminCheckSession(c *fiber.Ctx) error {
	if c.Cookies(AdminSessionCookie) != "" {
		return c.JSON(fiber.Map{"authenticated": true})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"authenticated": false})
}

// signAdminToken issues the bearer token for non-browser admin clients.
func (h *Handler) signAdminToken() (string, error) {
	claims := jwt.MapClaims{
		"admin": true,
		"email": h.adminUser,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

// validPassword requires length 8+, upper, lower, digit and a special
// character. Spelled out because RE2 has no lookaheads.
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("@$!%*?&", r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// clientIP prefers the forwarding headers the way the upstream proxy sets
// them, falling back to the socket address.
func clientIP(c *fiber.Ctx) string {
	if ip := c.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := c.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return c.IP()
}
