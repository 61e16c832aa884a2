package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "campusmarket/pkg/errors"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, Success(c, map[string]string{"hello": "world"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestErrorMapsAppError(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, Error(c, apperrors.InvalidState("Order must be CONFIRMED first", nil)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_STATE", resp.Error.Code)
	assert.Equal(t, "Order must be CONFIRMED first", resp.Error.Message)
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, Error(c, assert.AnError))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, assert.AnError.Error())
}

func TestPaginatedTotalPages(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, Paginated(c, []int{1, 2, 3}, 23, 1, 10))

	resp := decode(t, rec)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var page PaginatedResponse
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, int64(23), page.Total)
	assert.Equal(t, 3, page.TotalPages)
}
