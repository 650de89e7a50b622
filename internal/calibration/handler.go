package calibration

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"exitlens/internal/category"
	"exitlens/pkg/models"
)

// Handler serves the public profile projection, the top-performers report,
// the categories listing and the protected recompute trigger.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterPublicRoutes mounts the read-only endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/market-profile", h.getProfile)
	rg.GET("/top-performers", h.getTopPerformers)
	rg.GET("/categories", h.getCategories)
}

// RegisterAdminRoutes mounts the protected recompute trigger. The caller
// wraps the group with the admin middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/recalibrate", h.recalibrate)
}

// publicProfile is the aggregate-only projection. Raw listing records and
// listing counts are never exposed publicly.
type publicProfile struct {
	LastUpdated         time.Time              `json:"last_updated"`
	CategoryMultipliers map[string]float64     `json:"category_multipliers"`
	AvgRevenueMultiple  float64                `json:"avg_revenue_multiple"`
	AvgProfitMultiple   float64                `json:"avg_profit_multiple"`
	AvgTrafficValue     float64                `json:"avg_traffic_value"`
	AvgCommunityValue   float64                `json:"avg_community_value"`
	SuccessPatterns     models.SuccessPatterns `json:"success_patterns"`
}

func (h *Handler) getProfile(c *gin.Context) {
	p := h.Service.Snap.Get()
	c.JSON(http.StatusOK, publicProfile{
		LastUpdated:         p.LastUpdated,
		CategoryMultipliers: p.CategoryMultipliers,
		AvgRevenueMultiple:  p.AvgRevenueMultiple,
		AvgProfitMultiple:   p.AvgProfitMultiple,
		AvgTrafficValue:     p.AvgTrafficValue,
		AvgCommunityValue:   p.AvgCommunityValue,
		SuccessPatterns:     p.SuccessPatterns,
	})
}

func (h *Handler) getTopPerformers(c *gin.Context) {
	p := h.Service.Snap.Get()
	c.JSON(http.StatusOK, p.TopPerformers)
}

func (h *Handler) getCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": category.DisplayNames()})
}

func (h *Handler) recalibrate(c *gin.Context) {
	profile := h.Service.Recalibrate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"last_updated": profile.LastUpdated,
		"listings":     profile.TotalListings,
		"sold":         profile.SoldListings,
		"categories":   len(profile.CategoryMultipliers),
	})
}
