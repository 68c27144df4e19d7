package controllers

import (
	"net/http"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/resources"
	"github.com/careerloft/careerloft/app/services"
	"github.com/careerloft/careerloft/pkg/bind"
	"github.com/careerloft/careerloft/pkg/response"
	"github.com/careerloft/careerloft/pkg/session"
)

// AuthController handles signup, login, logout and admin impersonation.
type AuthController struct {
	auth  *services.AuthService
	admin *services.AdminService
}

func NewAuthController() *AuthController {
	return &AuthController{
		auth:  services.NewAuthService(),
		admin: services.NewAdminService(),
	}
}

// Signup registers a new client or writer account.
// POST /api/auth/signup
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.auth.Signup(in)
	if err != nil {
		fail(w, r, err)
		return
	}

	c.startSession(w, r, user)
	response.Created(w, resources.UserMap(user))
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials, opens a session and returns a token pair for
// API clients that prefer bearer auth.
// POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, refresh, err := c.auth.Login(in.Username, in.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	c.startSession(w, r, user)
	response.Success(w, map[string]interface{}{
		"user":          resources.UserMap(user),
		"token":         token,
		"refresh_token": refresh,
	})
}

// Logout drops the session.
// POST /api/auth/logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if s := session.FromCtx(r); s != nil {
		s.Invalidate()
		s.Save(w) //nolint:errcheck
	}
	response.Success(w, map[string]string{"message": "logged out"})
}

// Me returns the authenticated account, plus the impersonator when an admin
// is currently acting as someone else.
// GET /api/auth/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	user, err := c.admin.FindUser(userID)
	if err != nil {
		fail(w, r, err)
		return
	}

	out := map[string]interface{}{"user": resources.UserMap(user)}
	if s := session.FromCtx(r); s != nil {
		if impID, found := s.GetUint("impersonator_id"); found {
			out["impersonator_id"] = impID
		}
	}
	response.Success(w, out)
}

// Impersonate switches the session to another account, remembering the admin
// behind it. Admin only; nested impersonation is rejected.
// POST /api/admin/impersonate/{id}
func (c *AuthController) Impersonate(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	s := session.FromCtx(r)
	if s == nil {
		response.BadRequest(w, "impersonation requires a session")
		return
	}
	if _, already := s.GetUint("impersonator_id"); already {
		response.BadRequest(w, "already impersonating; stop first")
		return
	}

	targetID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid user id")
		return
	}
	if targetID == adminID {
		response.BadRequest(w, "cannot impersonate yourself")
		return
	}

	target, err := c.admin.FindUser(targetID)
	if err != nil {
		fail(w, r, err)
		return
	}

	s.Set("impersonator_id", adminID)
	s.Set("user_id", target.ID)
	s.Set("role", string(target.Role))
	if err := s.Save(w); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.UserMap(target))
}

// StopImpersonation returns the session to the admin account.
// POST /api/auth/stop-impersonation
func (c *AuthController) StopImpersonation(w http.ResponseWriter, r *http.Request) {
	s := session.FromCtx(r)
	if s == nil {
		response.BadRequest(w, "no session")
		return
	}
	impID, found := s.GetUint("impersonator_id")
	if !found {
		response.Error(w, http.StatusForbidden, "not impersonating")
		return
	}

	admin, err := c.admin.FindUser(impID)
	if err != nil {
		fail(w, r, err)
		return
	}

	s.Delete("impersonator_id")
	s.Set("user_id", admin.ID)
	s.Set("role", string(admin.Role))
	if err := s.Save(w); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.UserMap(admin))
}

func (c *AuthController) startSession(w http.ResponseWriter, r *http.Request, user models.User) {
	s := session.FromCtx(r)
	if s == nil {
		return
	}
	s.Set("user_id", user.ID)
	s.Set("role", string(user.Role))
	s.Save(w) //nolint:errcheck
}
