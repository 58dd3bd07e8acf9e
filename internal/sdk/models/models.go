// Package models defines data models for the LangSync API.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user in the system. The password field holds a bcrypt
// hash and is never serialized into responses.
type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FullName         string               `bson:"fullName" json:"fullName"`
	Email            string               `bson:"email" json:"email"`
	Password         string               `bson:"password" json:"-"`
	Bio              string               `bson:"bio" json:"bio"`
	ProfilePic       string               `bson:"profilePic" json:"profilePic"`
	NativeLanguage   string               `bson:"nativeLanguage" json:"nativeLanguage"`
	LearningLanguage string               `bson:"learningLanguage" json:"learningLanguage"`
	Location         string               `bson:"location" json:"location"`
	IsOnboarded      bool                 `bson:"isOnboarded" json:"isOnboarded"`
	Friends          []primitive.ObjectID `bson:"friends" json:"friends"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// NewUser carries the fields needed to create a user. Password is the
// submitted plaintext; the store hashes it before anything is persisted.
type NewUser struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"-"`
	ProfilePic string `json:"profilePic"`
}

// OnboardUser carries the profile fields applied when a user completes
// onboarding.
type OnboardUser struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
}
