package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cartsync/internal/syncjob"
	"github.com/gin-gonic/gin"
)

// SyncRunner runs one synchronization pass against the remote source.
type SyncRunner interface {
	Run(ctx context.Context) (int, error)
}

func syncHandler(job SyncRunner) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := job.Run(c.Request.Context())
		if err != nil {
			if errors.Is(err, syncjob.ErrNoCarts) {
				c.Status(http.StatusNoContent)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "synchronization failed: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("%d carts synchronized successfully", count),
			"count":   count,
		})
	}
}
