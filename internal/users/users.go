// Package users exposes read-only account listings used by market
// participants to discover each other.
package users

import (
	"context"
	"net/http"
	"time"

	"samakicash_backend/internal/auth/repository"
	apphttp "samakicash_backend/internal/http"
	"samakicash_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Lister abstracts the accounts repository.
type Lister interface {
	ListByType(ctx context.Context, userTypes ...string) ([]repository.User, error)
}

// Profile is the public view of an account. Credentials never leave
// this package.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	UserType     string    `json:"user_type"`
	Name         string    `json:"name,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Module is the user-directory bounded context implementing
// http.Module.
type Module struct {
	lister Lister
}

func NewModule(lister Lister) *Module {
	return &Module{lister: lister}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "users" }

// RegisterRoutes mounts the directory endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/users/buyers", m.ListBuyers)
	ctx.V1.GET("/users/sellers", m.ListSellers)
}

func (m *Module) ListBuyers(c *gin.Context) {
	users, err := m.lister.ListByType(c.Request.Context(), "buyer")
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	buyers := toProfiles(users)
	httpkit.JSON(c, http.StatusOK, gin.H{"count": len(buyers), "buyers": buyers})
}

// ListSellers returns sellers and fishers; both offer catches.
func (m *Module) ListSellers(c *gin.Context) {
	users, err := m.lister.ListByType(c.Request.Context(), "seller", "fisher")
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	sellers := toProfiles(users)
	httpkit.JSON(c, http.StatusOK, gin.H{"count": len(sellers), "sellers": sellers})
}

func toProfiles(users []repository.User) []Profile {
	profiles := make([]Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, Profile{
			ID:           u.ID.String(),
			Email:        u.Email,
			UserType:     u.UserType,
			Name:         u.Name,
			Organization: u.Organization,
			Location:     u.Location,
			CreatedAt:    u.CreatedAt,
		})
	}
	return profiles
}
