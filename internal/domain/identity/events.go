package identity

import (
	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/shared"
)

// AggregateTypeUser is the aggregate type for user events
const AggregateTypeUser = "User"

// EventTypeUserRegistered is published when a new account is created
const EventTypeUserRegistered = "UserRegistered"

// UserRegisteredEvent is published when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeUserRegistered,
			AggregateTypeUser,
			user.ID,
		),
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}
