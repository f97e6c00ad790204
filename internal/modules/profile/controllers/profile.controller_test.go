package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/modules/profile/services"
	"habilitations-core/internal/shared/audit"
	authMiddleware "habilitations-core/internal/shared/middleware/auth"
	"habilitations-core/internal/shared/response"
	"habilitations-core/internal/shared/validation"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*gin.Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	tm := postgres.NewTransactionManager(mock, audit.NopJournal{}, zap.NewNop())
	svc := services.NewProfileService(mock, tm, &config.SuperAdminConfig{Login: "ADMIN", ProfileLib: "SUPER ADMINISTRATEUR"})
	ctrl := NewProfileController(svc, validation.New(), zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		authMiddleware.Bind(c, "sid", 1)
		response.SetAuth(c, response.LoggedIn, nil)
	})
	r.GET("/profile/permissionGroups", ctrl.PermissionGroups)
	r.POST("/profile/profile", ctrl.CreateProfile)
	r.PUT("/profile/profilePermissions", ctrl.ReplaceProfilePermissions)
	return r, mock
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func TestCreateProfile_AcceptsBareString(t *testing.T) {
	r, mock := newRouter(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT profil_id, is_delete FROM profils")).
		WithArgs("COMPTABLE").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profils")).
		WithArgs("COMPTABLE", int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"profil_id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	code, body := do(t, r, http.MethodPost, "/profile/profile", `"comptable"`)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Profil créé avec succès", body["message"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 7, data["profil_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProfile_EmptyLabel(t *testing.T) {
	r, _ := newRouter(t)

	code, body := do(t, r, http.MethodPost, "/profile/profile", `{"profil_lib":""}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, validation.MsgInvalidData, body["message"])
}

func TestReplaceProfilePermissions_RejectsUnknownPermission(t *testing.T) {
	r, mock := newRouter(t)

	code, _ := do(t, r, http.MethodPut, "/profile/profilePermissions", `{"profil_id":3,"permissions":["Piloter la fusée"]}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionGroups(t *testing.T) {
	r, _ := newRouter(t)

	code, body := do(t, r, http.MethodGet, "/profile/permissionGroups", "")

	assert.Equal(t, http.StatusOK, code)
	groups, ok := body["data"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, groups)
}
