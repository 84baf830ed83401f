package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parlourbd/parlour-server/internal/audit"
	"github.com/parlourbd/parlour-server/internal/dto"
	"github.com/parlourbd/parlour-server/internal/httperr"
	"github.com/parlourbd/parlour-server/internal/httpresp"
	"github.com/parlourbd/parlour-server/internal/middleware"
	"github.com/parlourbd/parlour-server/internal/models"
	"github.com/parlourbd/parlour-server/internal/store"
	"github.com/parlourbd/parlour-server/internal/validators"
)

const msgAlreadyLoggedIn = "user already logged in"

type UserHandler struct {
	users *store.UserStore
	audit *audit.Dispatcher
}

func NewUserHandler(users *store.UserStore, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{users: users, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type MakeAdminRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// --------- Handlers ---------

func (h *UserHandler) IsAdmin(c *gin.Context) {
	isAdmin, err := h.users.IsAdmin(c.Request.Context(), c.Query("email"))
	if err != nil {
		httperr.Internal(c, "failed_to_check_admin", "could not check role")
		return
	}
	httpresp.OK(c, gin.H{"isAdmin": isAdmin})
}

// Register is idempotent on the (name, email) pair: a repeat attempt inserts
// nothing and answers the already-logged-in signal.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailShapeValid(email) {
		httperr.BadRequest(c, "invalid_email", "the email address does not look valid")
		return
	}

	existing, err := h.users.FindByNameEmail(c.Request.Context(), req.Name, email)
	if err != nil {
		httperr.Internal(c, "failed_to_check_user", "could not check user")
		return
	}
	if existing != nil {
		httpresp.OK(c, gin.H{"message": msgAlreadyLoggedIn})
		return
	}

	user := models.User{
		Name:  req.Name,
		Email: email,
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpresp.OK(c, gin.H{"message": msgAlreadyLoggedIn})
			return
		}
		httperr.Internal(c, "failed_to_create_user", "could not create user")
		return
	}

	httpresp.Created(c, dto.InsertResult{InsertedID: user.ID})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_users", "could not list users")
		return
	}
	httpresp.OK(c, users)
}

func (h *UserHandler) MakeAdmin(c *gin.Context) {
	var req MakeAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	count, err := h.users.PromoteToAdmin(c.Request.Context(), req.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_update_role", "could not update role")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorEmail: c.GetString(middleware.ContextEmail),
		Action:     "user.make_admin",
		Entity:     "user",
		Metadata:   map[string]string{"email": req.Email},
	})

	httpresp.OK(c, dto.UpdateResult{MatchedCount: count, ModifiedCount: count})
}
