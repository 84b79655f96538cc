package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	account := Account{Name: "alice"}

	err := account.SetPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotContains(t, account.PasswordHash, "s3cret")

	assert.True(t, account.CheckPassword("s3cret"))
	assert.False(t, account.CheckPassword("S3cret"))
	assert.False(t, account.CheckPassword(""))
}

func TestIsReservedPermission(t *testing.T) {
	for _, name := range ReservedPermissions {
		assert.True(t, IsReservedPermission(name), name)
	}

	assert.True(t, IsReservedPermission("DELETE"))
	assert.True(t, IsReservedPermission("  read "))
	assert.False(t, IsReservedPermission("publish"))
	assert.False(t, IsReservedPermission(""))
}

func TestNormalizePermissionName(t *testing.T) {
	assert.Equal(t, "publish", NormalizePermissionName(" Publish "))
	assert.Equal(t, "read", NormalizePermissionName("READ"))
}
