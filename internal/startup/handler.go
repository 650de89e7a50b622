package startup

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"exitlens/internal/calibration"
	"exitlens/internal/score"
	"exitlens/internal/valuation"
	"exitlens/pkg/models"
)

const maxTaglineLen = 128

// Handler serves the estimation endpoint and the stored-submission replay.
type Handler struct {
	Estimator *valuation.Estimator
	Scorer    *score.Service
	Snap      *calibration.Snapshot
	Repo      *Repo
	Logger    *logrus.Logger
}

func NewHandler(estimator *valuation.Estimator, scorer *score.Service, snap *calibration.Snapshot, repo *Repo, logger *logrus.Logger) *Handler {
	return &Handler{Estimator: estimator, Scorer: scorer, Snap: snap, Repo: repo, Logger: logger}
}

// RegisterPublicRoutes mounts the estimation endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/estimate", h.estimate)
}

// RegisterAdminRoutes mounts the stored-submission replay; the caller wraps
// the group with the admin middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/submissions/:id", h.getSubmission)
}

// estimate always answers with a plausible, bounded result. A malformed body
// degrades to an empty submission instead of a rejection.
func (h *Handler) estimate(c *gin.Context) {
	var sub models.StartupSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		h.Logger.WithError(err).Debug("malformed submission, coercing to defaults")
		sub = models.StartupSubmission{}
	}
	if r := []rune(sub.Tagline); len(r) > maxTaglineLen {
		sub.Tagline = string(r[:maxTaglineLen])
	}

	// one snapshot for both paths, so score and valuation agree on the market
	profile := h.Snap.Get()

	result := h.Estimator.Estimate(sub, profile)
	successScore := h.Scorer.Score(c.Request.Context(), sub, profile)

	stored := models.StoredSubmission{
		ID:           uuid.NewString(),
		Submission:   sub,
		Valuation:    result,
		SuccessScore: successScore,
		CreatedAt:    time.Now(),
	}
	if err := h.Repo.Save(c.Request.Context(), stored); err != nil {
		// storage is best-effort; the estimate is still returned
		h.Logger.WithError(err).Error("saving submission failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                  stored.ID,
		"success_score":       successScore,
		"estimated_valuation": result.EstimatedValuation,
		"is_at_ceiling":       result.IsAtCeiling,
		"valuation_range":     result.Range,
		"breakdown":           result.Breakdown,
	})
}

func (h *Handler) getSubmission(c *gin.Context) {
	id := c.Param("id")
	s, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}
