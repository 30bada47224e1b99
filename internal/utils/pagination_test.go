package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFromQuery(query string) *PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsFromQuery("")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsClampsPageSize(t *testing.T) {
	params := paramsFromQuery("page_size=5000")
	assert.Equal(t, MaxPageSize, params.PageSize)

	params = paramsFromQuery("page_size=0")
	assert.Equal(t, MinPageSize, params.PageSize)
}

func TestGetPaginationParamsRejectsBadOrder(t *testing.T) {
	params := paramsFromQuery("order=sideways")
	assert.Equal(t, "desc", params.Order)
}

func TestGetOffset(t *testing.T) {
	params := &PaginationParams{Page: 3, PageSize: 20}
	assert.Equal(t, 40, params.GetOffset())
}

func TestCreatePaginationMeta(t *testing.T) {
	params := &PaginationParams{Page: 2, PageSize: 10}
	meta := CreatePaginationMeta(params, 35)

	assert.Equal(t, int64(35), meta.Total)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)
	assert.Equal(t, 3, *meta.NextPage)
	assert.Equal(t, 1, *meta.PreviousPage)
}

func TestCreatePaginationMetaLastPage(t *testing.T) {
	params := &PaginationParams{Page: 4, PageSize: 10}
	meta := CreatePaginationMeta(params, 35)

	assert.False(t, meta.HasNext)
	assert.Nil(t, meta.NextPage)
}
