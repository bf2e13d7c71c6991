package services

import (
	"testing"

	"github.com/etceter4/littlelemon/models"
	"github.com/etceter4/littlelemon/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	t.Run("password mismatch", func(t *testing.T) {
		_, err := svc.Register(RegisterInput{Username: "alice", Password: "secret-1", Password2: "secret-2"})
		assert.True(t, utils.IsKind(err, utils.KindValidation))
		assert.EqualValues(t, 0, countRows(t, db, &models.User{}))
	})

	t.Run("invalid username", func(t *testing.T) {
		_, err := svc.Register(RegisterInput{Username: "al ice", Password: "pw", Password2: "pw"})
		assert.True(t, utils.IsKind(err, utils.KindValidation))
	})

	t.Run("created", func(t *testing.T) {
		u, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret-1", Password2: "secret-1"})
		require.NoError(t, err)
		assert.NotEqual(t, "secret-1", u.Password)
		assert.Empty(t, u.Groups)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(RegisterInput{Username: "alice", Password: "other", Password2: "other"})
		assert.True(t, utils.IsKind(err, utils.KindConflict))
		assert.EqualValues(t, 1, countRows(t, db, &models.User{}))
	})
}

func TestLoginRefreshVerify(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	_, err := svc.Register(RegisterInput{Username: "alice", Password: "secret-1", Password2: "secret-1"})
	require.NoError(t, err)

	_, err = svc.Login("alice", "wrong")
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
	_, err = svc.Login("nobody", "secret-1")
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))

	pair, err := svc.Login("alice", "secret-1")
	require.NoError(t, err)
	assert.NoError(t, svc.Verify(pair.Access))
	assert.NoError(t, svc.Verify(pair.Refresh))
	assert.Error(t, svc.Verify("not-a-token"))

	_, err = svc.Refresh(pair.Access)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized), "access tokens cannot refresh")

	next, err := svc.Refresh(pair.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Refresh, next.Refresh)

	_, err = svc.Refresh(pair.Refresh)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized), "rotated refresh token is revoked")
	assert.Error(t, svc.Verify(pair.Refresh))

	claims, err := utils.ParseToken(next.Access, utils.TokenTypeAccess)
	require.NoError(t, err)
	id, err := svc.ResolveIdentity(claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)

	_, err = svc.ResolveIdentity(9999)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
}

func TestAssignManager(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	manager := createUser(t, db, "mona", withGroup(db, models.GroupManager))
	staff := createUser(t, db, "sam", asStaff(false))
	bob := createUser(t, db, "bob")

	_, err := svc.AssignManager(manager, "bob")
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	_, err = svc.AssignManager(staff, "ghost")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = svc.AssignManager(staff, "")
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	u, err := svc.AssignManager(staff, "bob")
	require.NoError(t, err)
	assert.True(t, u.InGroup(models.GroupManager))

	// assigning twice keeps a single membership
	_, err = svc.AssignManager(staff, "bob")
	require.NoError(t, err)
	var memberships int64
	require.NoError(t, db.Table("user_groups").Where("user_id = ?", bob.UserID).Count(&memberships).Error)
	assert.EqualValues(t, 1, memberships)

	id, err := svc.ResolveIdentity(bob.UserID)
	require.NoError(t, err)
	assert.True(t, id.Manager)
}

func TestAssignDeliveryCrew(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	manager := createUser(t, db, "mona", withGroup(db, models.GroupManager))
	alice := createUser(t, db, "alice")
	dan := createUser(t, db, "dan")

	_, err := svc.AssignDeliveryCrew(alice, dan.UserID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	_, err = svc.AssignDeliveryCrew(manager, 9999)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	u, err := svc.AssignDeliveryCrew(manager, dan.UserID)
	require.NoError(t, err)
	assert.True(t, u.InGroup(models.GroupDeliveryCrew))

	users, err := svc.ListUsers(manager)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = svc.ListUsers(alice)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))
}
