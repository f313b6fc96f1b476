package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Feedback *FeedbackRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Feedback: NewFeedbackRepository(database),
	}
}
