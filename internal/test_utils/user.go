package test_utils

import (
	"context"
	"time"

	"github.com/69GliTcH/SimpliFin/pkg/user"
)

// TestUser returns the canonical user fixture for handler and service tests.
func TestUser() user.User {
	return user.User{
		Id:          123,
		Uid:         "test-user-uid",
		Username:    "test_user",
		DisplayName: "Test User",
		PhotoUrl:    "",
		Settings: user.Settings{
			Timezone:     "Asia/Kolkata",
			WeekFirstDay: time.Sunday,
			Currency:     "₹",
		},
	}
}

// WithTestUser puts the canonical test user into the context, as the
// X-User-Id middleware would.
func WithTestUser(ctx context.Context) context.Context {
	return user.WithUser(ctx, TestUser())
}
