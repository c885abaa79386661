package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserService struct {
	listFn   func(ctx context.Context, f ports.ListUsersFilter) (*pagination.Page[*domain.User], error)
	getFn    func(ctx context.Context, id int64) (*domain.User, error)
	createFn func(ctx context.Context, in ports.UserInput) (*domain.User, error)
	updateFn func(ctx context.Context, id int64, in ports.UserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubUserService) List(ctx context.Context, f ports.ListUsersFilter) (*pagination.Page[*domain.User], error) {
	return s.listFn(ctx, f)
}
func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}
func (s *stubUserService) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}
func (s *stubUserService) Update(ctx context.Context, id int64, in ports.UserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}
func (s *stubUserService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubTextService struct {
	listFn   func(ctx context.Context, f ports.ListTextsFilter) (*pagination.Page[*domain.Text], error)
	getFn    func(ctx context.Context, id int64) (*domain.Text, error)
	createFn func(ctx context.Context, in ports.TextInput) (*domain.Text, error)
	updateFn func(ctx context.Context, id int64, in ports.TextInput) (*domain.Text, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubTextService) List(ctx context.Context, f ports.ListTextsFilter) (*pagination.Page[*domain.Text], error) {
	return s.listFn(ctx, f)
}
func (s *stubTextService) Get(ctx context.Context, id int64) (*domain.Text, error) {
	return s.getFn(ctx, id)
}
func (s *stubTextService) Create(ctx context.Context, in ports.TextInput) (*domain.Text, error) {
	return s.createFn(ctx, in)
}
func (s *stubTextService) Update(ctx context.Context, id int64, in ports.TextInput) (*domain.Text, error) {
	return s.updateFn(ctx, id, in)
}
func (s *stubTextService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubPredictionService struct {
	listFn   func(ctx context.Context, f ports.ListPredictionsFilter) (*pagination.Page[*domain.Prediction], error)
	getFn    func(ctx context.Context, id int64) (*domain.Prediction, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubPredictionService) List(ctx context.Context, f ports.ListPredictionsFilter) (*pagination.Page[*domain.Prediction], error) {
	return s.listFn(ctx, f)
}
func (s *stubPredictionService) Get(ctx context.Context, id int64) (*domain.Prediction, error) {
	return s.getFn(ctx, id)
}
func (s *stubPredictionService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubClassificationService struct {
	predictFn func(ctx context.Context, in ports.PredictInput) (*domain.Prediction, error)
	statsFn   func(ctx context.Context) (*domain.ModelStats, error)
	retrainFn func(ctx context.Context) error
}

func (s *stubClassificationService) Predict(ctx context.Context, in ports.PredictInput) (*domain.Prediction, error) {
	return s.predictFn(ctx, in)
}
func (s *stubClassificationService) Stats(ctx context.Context) (*domain.ModelStats, error) {
	return s.statsFn(ctx)
}
func (s *stubClassificationService) RequestRetrain(ctx context.Context) error {
	return s.retrainFn(ctx)
}

type stubSecurityService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Security, error)
	loginFn    func(ctx context.Context, login, password string) (string, *domain.Security, error)
}

func (s *stubSecurityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Security, error) {
	return s.registerFn(ctx, in)
}
func (s *stubSecurityService) Login(ctx context.Context, login, password string) (string, *domain.Security, error) {
	return s.loginFn(ctx, login, password)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func int64Ptr(v int64) *int64 { return &v }

func asDomainError(err error, target **domain.Error) bool {
	return errors.As(err, target)
}
