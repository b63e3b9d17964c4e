package pkg

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/launchline/concierge/internal/domain"
)

// ParseID extracts the :id route parameter as an unsigned integer, returning
// a validation error for anything that is not a positive number.
func ParseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "invalid id "+strconv.Quote(raw), nil)
	}
	return uint(id), nil
}
