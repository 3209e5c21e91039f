package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikhpete/devconnect/internal/config"
	"github.com/nikhpete/devconnect/internal/githubapi"
	"github.com/nikhpete/devconnect/internal/profiles"
	"github.com/nikhpete/devconnect/pkg/middleware"
)

// UpsertProfileRequest is the POST /api/profile body. Status and skills are
// required; everything else is optional and skipped when empty.
type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" binding:"required"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" binding:"required"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// ExperienceRequest is the PUT /api/profile/experience body.
type ExperienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationRequest is the PUT /api/profile/education body.
type EducationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldOfStudy" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// ProfileHandler serves profile CRUD, embedded experience/education lists,
// account deletion, and the public GitHub repo proxy.
type ProfileHandler struct {
	cfg      *config.Config
	profiles *profiles.Service
	github   *githubapi.Client
}

func NewProfileHandler(cfg *config.Config, p *profiles.Service, gh *githubapi.Client) *ProfileHandler {
	return &ProfileHandler{cfg: cfg, profiles: p, github: gh}
}

// Register mounts the profile routes on the /api group.
func (h *ProfileHandler) Register(rg *gin.RouterGroup) {
	auth := middleware.Auth(h.cfg.JWT.Secret)
	p := rg.Group("/profile")
	p.GET("/me", auth, h.Me)
	p.POST("", auth, h.Upsert)
	p.GET("", h.List)
	p.GET("/user/:user_id", h.ByUser)
	p.DELETE("", auth, h.DeleteAccount)
	p.PUT("/experience", auth, h.AddExperience)
	p.DELETE("/experience/:exp_id", auth, h.RemoveExperience)
	p.PUT("/education", auth, h.AddEducation)
	p.DELETE("/education/:ed_id", auth, h.RemoveEducation)
	p.GET("/github/:username", h.GithubRepos)
}

func (h *ProfileHandler) Me(c *gin.Context) {
	p, err := h.profiles.GetOwn(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req UpsertProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.profiles.Upsert(c.Request.Context(), middleware.UserID(c), profiles.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) List(c *gin.Context) {
	ps, err := h.profiles.List(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (h *ProfileHandler) ByUser(c *gin.Context) {
	p, err := h.profiles.GetByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteAccount removes the caller's profile and account. Their posts are
// left behind.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	if err := h.profiles.DeleteAccount(c.Request.Context(), middleware.UserID(c)); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "user removed"})
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req ExperienceRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.profiles.AddExperience(c.Request.Context(), middleware.UserID(c), profiles.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	p, err := h.profiles.RemoveExperience(c.Request.Context(), middleware.UserID(c), c.Param("exp_id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req EducationRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.profiles.AddEducation(c.Request.Context(), middleware.UserID(c), profiles.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	p, err := h.profiles.RemoveEducation(c.Request.Context(), middleware.UserID(c), c.Param("ed_id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GithubRepos proxies the user's five most recent repositories straight
// through from the GitHub API.
func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	body, err := h.github.ListRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
