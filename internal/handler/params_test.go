package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIntParamRejectsGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/athletes/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	_, ok := intParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntParamAcceptsPositive(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/athletes/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, ok := intParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, 42, id)
}

func TestRequiredIntQueryMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/team-results/standings?year=2026", nil)

	_, ok := requiredIntQuery(c, "sportId")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntQueryPtr(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/meets?sportId=3&activeOnly=true", nil)

	sportID := intQueryPtr(c, "sportId")
	if assert.NotNil(t, sportID) {
		assert.Equal(t, 3, *sportID)
	}
	assert.Nil(t, intQueryPtr(c, "year"))
	assert.True(t, boolQuery(c, "activeOnly"))
	assert.False(t, boolQuery(c, "includeInactive"))
}
