package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OwnerHeader carries the id of the user whose data a request touches.
// Authentication happens upstream of this service.
const OwnerHeader = "X-Owner-ID"

const ownerKey = "owner_id"

// Owner rejects requests without a valid owner id and stores it in the context
func Owner() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(OwnerHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + OwnerHeader + " header", "code": "UNAUTHORIZED"})
			return
		}
		owner, err := uuid.Parse(raw)
		if err != nil || owner == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid " + OwnerHeader + " header", "code": "UNAUTHORIZED"})
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

// GetOwner returns the owner stored by Owner
func GetOwner(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ownerKey)
	if !ok {
		return uuid.Nil, false
	}
	owner, ok := v.(uuid.UUID)
	return owner, ok
}
