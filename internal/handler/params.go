package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/response"
)

// intParam parses a positive integer path parameter, responding with a
// validation error when it is malformed.
func intParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid %s", name)))
		return 0, false
	}
	return value, true
}

// intQueryPtr parses an optional integer query parameter.
func intQueryPtr(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

// requiredIntQuery parses a mandatory integer query parameter,
// responding with a validation error when absent or malformed.
func requiredIntQuery(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is required", name)))
		return 0, false
	}
	return value, true
}

func boolQuery(c *gin.Context, name string) bool {
	return c.Query(name) == "true"
}
