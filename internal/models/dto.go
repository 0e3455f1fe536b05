package models

import "time"

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
}

type StartInterviewRequest struct {
	ProfessionID string `json:"profession_id" validate:"required,uuid"`
	Grade        string `json:"grade" validate:"required"`
}

// InterviewQuestion is one row of the interview question list. Status is
// "completed" once the linked answer has feedback, "pending" otherwise.
type InterviewQuestion struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
	AnswerID   string `json:"answer_id"`
	Status     string `json:"status"`
}

type AnswerResponse struct {
	ID              string   `json:"id"`
	TranscribedText *string  `json:"transcribed_text,omitempty"`
	Feedback        *string  `json:"feedback,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
}

type AnswerDetail struct {
	QuestionID      string   `json:"question_id"`
	QuestionText    string   `json:"question_text"`
	TranscribedText *string  `json:"transcribed_text,omitempty"`
	Feedback        *string  `json:"feedback,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
}

type InterviewDetails struct {
	ID            string         `json:"id"`
	Profession    string         `json:"profession"`
	Grade         string         `json:"grade"`
	OverallRating *float64       `json:"overall_rating,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	Answers       []AnswerDetail `json:"answers"`
}

type InterviewSummary struct {
	ID            string     `json:"id"`
	Profession    string     `json:"profession"`
	Grade         string     `json:"grade"`
	OverallRating *float64   `json:"overall_rating,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// ProfessionCatalogEntry carries a profession together with how many
// questions exist per grade, so the catalog page can grey out empty tracks.
type ProfessionCatalogEntry struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	QuestionCounts map[Grade]int `json:"question_counts"`
}

type CVResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Review     *string   `json:"review,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ProfileResponse struct {
	User                    UserResponse `json:"user"`
	InterviewCount          int64        `json:"interview_count"`
	CompletedInterviewCount int64        `json:"completed_interview_count"`
	CVCount                 int64        `json:"cv_count"`
}
