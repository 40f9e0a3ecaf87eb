package catches

import (
	"net/http"

	apphttp "samakicash_backend/internal/http"
	"samakicash_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is the catch-history bounded context implementing http.Module.
type Module struct {
	svc *Service
}

// NewModule wires the catches module.
func NewModule(store Store) *Module {
	return &Module{svc: New(store)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "catches" }

// RegisterRoutes mounts the catch-history endpoints. The reads are
// user-scoped, so they require a valid access token for an offering
// account; the :id must match the authenticated user.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/users/:id")
	group.Use(httpkit.RequireUserType("fisher", "seller"))
	group.GET("/catches", m.ListCatches)
	group.GET("/stats", m.UserStats)
	group.GET("/market-insights", m.UserMarketSummary)
	group.GET("/transactions", m.Transactions)
}

// requireSelf aborts unless the authenticated user owns the :id scope.
func requireSelf(c *gin.Context) (string, bool) {
	userID := c.Param("id")

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return "", false
	}
	if id.UserID().String() != userID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return "", false
	}

	return userID, true
}

func (m *Module) ListCatches(c *gin.Context) {
	userID, ok := requireSelf(c)
	if !ok {
		return
	}

	history, err := m.svc.History(c.Request.Context(), userID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.JSON(c, http.StatusOK, gin.H{
		"user_id": userID,
		"count":   len(history),
		"catches": history,
	})
}

func (m *Module) UserStats(c *gin.Context) {
	userID, ok := requireSelf(c)
	if !ok {
		return
	}

	stats, err := m.svc.StatsByUser(c.Request.Context(), userID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, stats)
}

func (m *Module) UserMarketSummary(c *gin.Context) {
	userID, ok := requireSelf(c)
	if !ok {
		return
	}

	summary, err := m.svc.MarketSummaryByUser(c.Request.Context(), userID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, summary)
}

// Transactions lists completed sales for a user. No transaction write
// path exists yet, so the list is always empty.
// TODO: populate once buyers can accept a match.
func (m *Module) Transactions(c *gin.Context) {
	userID, ok := requireSelf(c)
	if !ok {
		return
	}

	httpkit.JSON(c, http.StatusOK, gin.H{
		"user_id":      userID,
		"count":        0,
		"transactions": []any{},
	})
}
