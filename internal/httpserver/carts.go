package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cartsync/internal/domain"
	cartrepo "cartsync/internal/repository/cart"
	"github.com/gin-gonic/gin"
)

// CartService is the read surface the handlers need from the cart service.
type CartService interface {
	GetAll(ctx context.Context, f cartrepo.Filter) ([]domain.Cart, error)
	GetByID(ctx context.Context, id int64) (*domain.Cart, error)
}

const dateParamLayout = "2006-01-02"

func listCartsHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f cartrepo.Filter

		if raw := c.Query("user_id"); raw != "" {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
				return
			}
			f.UserID = &userID
		}
		if raw := c.Query("start_date"); raw != "" {
			d, err := time.Parse(dateParamLayout, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
				return
			}
			f.StartDate = &d
		}
		if raw := c.Query("end_date"); raw != "" {
			d, err := time.Parse(dateParamLayout, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
				return
			}
			f.EndDate = &d
		}

		carts, err := svc.GetAll(c.Request.Context(), f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve carts: " + err.Error()})
			return
		}
		if len(carts) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no carts found matching the given filters"})
			return
		}

		c.JSON(http.StatusOK, carts)
	}
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart id must be an integer"})
			return
		}

		cart, err := svc.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart with id " + c.Param("id") + " not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve cart: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}
