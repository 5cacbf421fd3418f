package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoleTeacher and RoleStudent are the two account roles in the platform
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User holds the structure for the profiles collection in mongo
type User struct {
	ID      string      `json:"_id" bson:"_id"`
	Details UserDetails `json:"user" bson:"user"`
}

// UserDetails holds the structure for the inner user structure as defined in the
// profiles collection in mongo
type UserDetails struct {
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password" bson:"password"`
	Role      string             `json:"role" bson:"role"`
	AvatarURL string             `json:"avatarUrl" bson:"avatarUrl"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
