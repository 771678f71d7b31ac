package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/profilecard/internal/domain/errors"
	"github.com/polkiloo/profilecard/internal/domain/model"
	"github.com/polkiloo/profilecard/internal/server/http/dto"
	"github.com/polkiloo/profilecard/internal/server/http/views"
)

// FileField is the multipart field carrying the profile image.
const FileField = "file"

// Messages rendered on the login and register pages.
const (
	MsgSelectImage        = "Please select a profile image"
	MsgRegisterFields     = "Name, email and password are required"
	MsgUserExists         = "User already exists"
	MsgRegistrationFailed = "Registration failed, please try again"
	MsgLoginFields        = "Email and password are required"
	MsgInvalidCredentials = "Invalid email or password"
	MsgLoginFailed        = "Login failed, please try again"
)

// RegisteredRedirect is where a successful registration lands.
const RegisteredRedirect = "/?success=1"

// AccountHandler serves the login, registration and profile pages.
type AccountHandler struct {
	facade AccountFacade
	spool  UploadSpool
	logger *slog.Logger
}

// NewAccountHandler creates AccountHandler instance.
func NewAccountHandler(facade AccountFacade, spool UploadSpool, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{facade: facade, spool: spool, logger: logger}
}

// Index handles GET /.
func (h *AccountHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, views.Login, gin.H{
		"Success": c.Query("success") != "",
		"Error":   c.Query("error"),
	})
}

// RegisterForm handles GET /register.
func (h *AccountHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, views.Register, gin.H{"Error": ""})
}

// Register handles POST /register.
func (h *AccountHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegister(c, http.StatusBadRequest, MsgRegisterFields)
		return
	}

	reg := model.Registration{Name: form.Name, Email: form.Email, Password: form.Password}
	// any FormFile error means no usable file part
	if header, err := c.FormFile(FileField); err == nil {
		upload, err := h.spool.Save(FileField, header)
		if err != nil {
			h.logger.Error("spool upload failed", slog.String("error", err.Error()))
			h.renderRegister(c, http.StatusInternalServerError, MsgRegistrationFailed)
			return
		}
		reg.Upload = &upload
	}

	usr, err := h.facade.Register(c.Request.Context(), reg)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingFile):
			h.renderRegister(c, http.StatusBadRequest, MsgSelectImage)
		case errors.Is(err, domainErrors.ErrMissingFields):
			h.renderRegister(c, http.StatusBadRequest, MsgRegisterFields)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			h.renderRegister(c, http.StatusBadRequest, MsgUserExists)
		default:
			h.logger.Error("registration failed", slog.String("error", err.Error()))
			h.renderRegister(c, http.StatusInternalServerError, MsgRegistrationFailed)
		}
		return
	}

	h.logger.Info("user registered", slog.String("user_id", usr.ID), slog.String("email", usr.Email))
	c.Redirect(http.StatusFound, RegisteredRedirect)
}

// Login handles POST /login.
func (h *AccountHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, http.StatusBadRequest, MsgLoginFields)
		return
	}

	usr, err := h.facade.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingFields):
			h.renderLogin(c, http.StatusBadRequest, MsgLoginFields)
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			h.renderLogin(c, http.StatusBadRequest, MsgInvalidCredentials)
		default:
			h.logger.Error("login failed", slog.String("error", err.Error()))
			h.renderLogin(c, http.StatusInternalServerError, MsgLoginFailed)
		}
		return
	}

	c.HTML(http.StatusOK, views.Profile, dto.ProfileView{
		Name:     usr.Name,
		Email:    usr.Email,
		ImageURL: usr.ImageURL,
	})
}

func (h *AccountHandler) renderRegister(c *gin.Context, status int, msg string) {
	c.HTML(status, views.Register, gin.H{"Error": msg})
}

func (h *AccountHandler) renderLogin(c *gin.Context, status int, msg string) {
	c.HTML(status, views.Login, gin.H{"Success": false, "Error": msg})
}
