package services

import (
	"testing"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/postgres"
	redisInfra "habilitations-core/internal/infrastructure/database/redis"
	pwdServices "habilitations-core/internal/modules/password/services"
	profileServices "habilitations-core/internal/modules/profile/services"
	userServices "habilitations-core/internal/modules/user/services"
	"habilitations-core/internal/shared/audit"
	"habilitations-core/internal/shared/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const keyPrefix = "habilitations_test"

func newRedis(t *testing.T) (*redisInfra.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisInfra.Wrap(rdb, redisInfra.NewRedisKeyGenerator(keyPrefix)), mr
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

type domain struct {
	hasher      *utils.Hasher
	users       *userServices.UserService
	credentials *pwdServices.CredentialService
	profiles    *profileServices.ProfileService
}

func newDomain(mock pgxmock.PgxPoolIface) domain {
	superAdmin := &config.SuperAdminConfig{Login: "ADMIN", ProfileLib: "SUPER ADMINISTRATEUR", DefaultDays: 90}
	hasher := utils.NewHasher(bcrypt.MinCost, 2)
	tm := postgres.NewTransactionManager(mock, audit.NopJournal{}, zap.NewNop())

	credentials := pwdServices.NewCredentialService(mock, tm, hasher, superAdmin)
	profiles := profileServices.NewProfileService(mock, tm, superAdmin)
	return domain{
		hasher:      hasher,
		credentials: credentials,
		profiles:    profiles,
		users:       userServices.NewUserService(mock, tm, credentials, profiles, hasher, superAdmin, zap.NewNop()),
	}
}
