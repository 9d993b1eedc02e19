package db_test

import (
	"context"

	dbTypes "github.com/momo-data/momo-indexer/db"
	"github.com/momo-data/momo-indexer/db/models"
)

func strPtr(s string) *string {
	return &s
}

// Mirrors the create, read, update, list, delete round trip operators run against a fresh store.
func (suite *DBTestSuite) TestUserCRUD() {
	ctx := context.Background()

	userID, err := dbTypes.CreateUser(ctx, suite.db, "testuser", "password123", strPtr("test@example.com"))
	suite.Require().NoError(err)
	suite.Require().NotZero(userID)

	user, err := dbTypes.GetUserByID(ctx, suite.db, userID)
	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Assert().Equal("testuser", user.Username)
	suite.Assert().Equal("test@example.com", *user.Email)
	suite.Assert().Empty(user.Password)
	suite.Assert().False(user.CreatedAt.IsZero())

	updated, err := dbTypes.UpdateUser(ctx, suite.db, userID, dbTypes.UserPatch{Username: strPtr("updateduser")})
	suite.Require().NoError(err)
	suite.Require().True(updated)

	user, err = dbTypes.GetUserByID(ctx, suite.db, userID)
	suite.Require().NoError(err)
	suite.Assert().Equal("updateduser", user.Username)
	suite.Assert().Equal("test@example.com", *user.Email)

	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, userID).Error)
	suite.Assert().Equal("password123", stored.Password)

	users, err := dbTypes.GetAllUsers(ctx, suite.db)
	suite.Require().NoError(err)
	suite.Require().Len(users, 1)
	suite.Assert().Equal(userID, users[0].ID)

	deleted, err := dbTypes.DeleteUser(ctx, suite.db, userID)
	suite.Require().NoError(err)
	suite.Require().True(deleted)

	user, err = dbTypes.GetUserByID(ctx, suite.db, userID)
	suite.Require().NoError(err)
	suite.Require().Nil(user)
}

func (suite *DBTestSuite) TestCreateUserDuplicateUsername() {
	ctx := context.Background()

	_, err := dbTypes.CreateUser(ctx, suite.db, "jane", "secret", nil)
	suite.Require().NoError(err)

	_, err = dbTypes.CreateUser(ctx, suite.db, "jane", "other", nil)
	suite.Require().ErrorIs(err, dbTypes.ErrDuplicateUser)

	users, err := dbTypes.GetAllUsers(ctx, suite.db)
	suite.Require().NoError(err)
	suite.Require().Len(users, 1)
}

func (suite *DBTestSuite) TestCreateUsersWithoutEmail() {
	ctx := context.Background()

	_, err := dbTypes.CreateUser(ctx, suite.db, "first", "secret", nil)
	suite.Require().NoError(err)
	_, err = dbTypes.CreateUser(ctx, suite.db, "second", "secret", nil)
	suite.Require().NoError(err)

	users, err := dbTypes.GetAllUsers(ctx, suite.db)
	suite.Require().NoError(err)
	suite.Require().Len(users, 2)
	suite.Assert().Equal("first", users[0].Username)
	suite.Assert().Nil(users[0].Email)
}

func (suite *DBTestSuite) TestUpdateUser() {
	ctx := context.Background()

	updated, err := dbTypes.UpdateUser(ctx, suite.db, 4242, dbTypes.UserPatch{Username: strPtr("ghost")})
	suite.Require().NoError(err)
	suite.Require().False(updated)

	userID, err := dbTypes.CreateUser(ctx, suite.db, "jane", "secret", strPtr("jane@example.com"))
	suite.Require().NoError(err)
	_, err = dbTypes.CreateUser(ctx, suite.db, "john", "secret", strPtr("john@example.com"))
	suite.Require().NoError(err)

	updated, err = dbTypes.UpdateUser(ctx, suite.db, userID, dbTypes.UserPatch{})
	suite.Require().ErrorIs(err, dbTypes.ErrEmptyPatch)
	suite.Require().False(updated)

	updated, err = dbTypes.UpdateUser(ctx, suite.db, userID, dbTypes.UserPatch{Email: strPtr("john@example.com")})
	suite.Require().ErrorIs(err, dbTypes.ErrDuplicateUser)
	suite.Require().False(updated)

	user, err := dbTypes.GetUserByID(ctx, suite.db, userID)
	suite.Require().NoError(err)
	suite.Assert().Equal("jane@example.com", *user.Email)

	updated, err = dbTypes.UpdateUser(ctx, suite.db, userID, dbTypes.UserPatch{Password: strPtr("new-secret"), Email: strPtr("jane@momo.rw")})
	suite.Require().NoError(err)
	suite.Require().True(updated)

	user, err = dbTypes.GetUserByID(ctx, suite.db, userID)
	suite.Require().NoError(err)
	suite.Assert().Equal("jane", user.Username)
	suite.Assert().Equal("jane@momo.rw", *user.Email)
}

func (suite *DBTestSuite) TestDeleteMissingUser() {
	deleted, err := dbTypes.DeleteUser(context.Background(), suite.db, 4242)
	suite.Require().NoError(err)
	suite.Require().False(deleted)
}

func (suite *DBTestSuite) TestGetAllUsersEmpty() {
	users, err := dbTypes.GetAllUsers(context.Background(), suite.db)
	suite.Require().NoError(err)
	suite.Require().NotNil(users)
	suite.Require().Empty(users)
}
