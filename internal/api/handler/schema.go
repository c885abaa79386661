package handler

import "time"

// --- Requests ---

type userRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type textRequest struct {
	Content string `json:"content" validate:"required,min=5,max=60"`
	UserID  int64  `json:"userId"  validate:"gt=0"`
}

// textUpdateRequest moves the text to another user when UserID is set.
type textUpdateRequest struct {
	Content string `json:"content" validate:"required,min=5,max=60"`
	UserID  int64  `json:"userId"  validate:"omitempty,gt=0"`
}

type securityRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=Administrator User"`
	UserID   *int64 `json:"userId"   validate:"omitempty,gt=0"`
}

type loginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Responses ---

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	TextCount int       `json:"textCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type textResponse struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	UserID      int64     `json:"userId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type predictionResponse struct {
	ID          int64     `json:"id"`
	TextID      *int64    `json:"textId"`
	UserID      *int64    `json:"userId"`
	Result      string    `json:"result"`
	Probability float64   `json:"probability"`
	Date        time.Time `json:"date"`
}

type securityResponse struct {
	ID     int64  `json:"id"`
	Login  string `json:"login"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	UserID *int64 `json:"userId,omitempty"`
}

type tokenResponse struct {
	Token string           `json:"token"`
	User  securityResponse `json:"user"`
}

type categoryResponse struct {
	Name               string  `json:"name"`
	Count              int     `json:"count"`
	AverageProbability float64 `json:"averageProbability"`
}

type statsResponse struct {
	TotalPredictions   int                `json:"totalPredictions"`
	AverageProbability float64            `json:"averageProbability"`
	Categories         []categoryResponse `json:"categories"`
	LastTrainedAt      *time.Time         `json:"lastTrainedAt"`
	ModelVersion       string             `json:"modelVersion,omitempty"`
}
