package v1

import (
	"context"

	"github.com/study-manager/study-manager/pkg/types"
)

var demoUsers = []types.User{
	{ID: 1, Name: "Sandy"},
	{ID: 2, Name: "Derek"},
	{ID: 3, Name: "Iris"},
	{ID: 4, Name: "Tintin&Baybay"},
}

// UserLogic serves the static demo users, nothing is persisted.
type UserLogic struct {
	ctx context.Context
}

func NewUserLogic(ctx context.Context) *UserLogic {
	return &UserLogic{
		ctx: ctx,
	}
}

func (l *UserLogic) Placeholder() string {
	return "respond with a resource"
}

// ListUsers returns a copy so callers cannot mutate the fixed list.
func (l *UserLogic) ListUsers() []types.User {
	res := make([]types.User, len(demoUsers))
	copy(res, demoUsers)
	return res
}
