package v1

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListUsers(t *testing.T) {
	logic := NewUserLogic(context.Background())

	users := logic.ListUsers()
	assert.Len(t, users, 4)
	assert.Equal(t, "Tintin&Baybay", users[3].Name)

	users[0].Name = "changed"
	assert.Equal(t, "Sandy", logic.ListUsers()[0].Name)
	assert.Equal(t, "respond with a resource", logic.Placeholder())
}
