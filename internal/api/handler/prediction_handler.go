package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/response"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry a predict call without creating a
// second prediction.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// PredictionHandler serves stored predictions and the classification endpoints.
type PredictionHandler struct {
	predictions    ports.PredictionService
	classification ports.ClassificationService
}

func NewPredictionHandler(predictions ports.PredictionService, classification ports.ClassificationService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions, classification: classification}
}

// List handles GET /api/v1/predictions.
//
// @Summary      List predictions
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber      query     int     false  "Page number (default 1)"
// @Param        pageSize        query     int     false  "Page size (1-100, default 10)"
// @Param        userId          query     int     false  "User id"
// @Param        textId          query     int     false  "Text id"
// @Param        result          query     string  false  "Result label substring"
// @Param        minProbability  query     number  false  "Minimum probability"
// @Param        fromDate        query     string  false  "Predicted at or after (RFC 3339 or YYYY-MM-DD)"
// @Success      200             {object}  response.Envelope{data=[]predictionResponse}
// @Failure      400             {object}  response.Envelope
// @Router       /api/v1/predictions [get]
func (h *PredictionHandler) List(c echo.Context) error {
	q := newQueryParser(c)
	filter := ports.ListPredictionsFilter{
		UserID:         q.Int64Ptr("userId"),
		TextID:         q.Int64Ptr("textId"),
		Result:         q.String("result"),
		MinProbability: q.Float64Ptr("minProbability"),
		FromDate:       q.TimePtr("fromDate"),
		PageNumber:     q.Int("pageNumber"),
		PageSize:       q.Int("pageSize"),
	}
	if err := q.Err(); err != nil {
		return err
	}

	page, err := h.predictions.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return response.Page(c, http.StatusOK, pagination.Map(page, toPredictionResponse),
		response.Success(fmt.Sprintf("found %d predictions", page.TotalCount)))
}

// Get handles GET /api/v1/predictions/:id.
//
// @Summary      Get a prediction
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Prediction id"
// @Success      200  {object}  response.Envelope{data=predictionResponse}
// @Failure      404  {object}  response.Envelope
// @Router       /api/v1/predictions/{id} [get]
func (h *PredictionHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.predictions.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, toPredictionResponse(p), response.Success("prediction retrieved"))
}

// Delete handles DELETE /api/v1/predictions/:id.
//
// @Summary      Delete a prediction
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Prediction id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/v1/predictions/{id} [delete]
func (h *PredictionHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.predictions.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, nil, response.Success(fmt.Sprintf("prediction %d deleted", id)))
}

// Predict handles POST /api/v1/predictions/predict/:textId.
//
// @Summary      Classify a stored text
// @Description  Classifies the text and stores the prediction. Replaying an Idempotency-Key returns the stored prediction.
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Param        textId           path      int     true   "Text id"
// @Param        Idempotency-Key  header    string  false  "Client key for safe retries"
// @Success      200              {object}  response.Envelope{data=predictionResponse}
// @Failure      400              {object}  response.Envelope
// @Failure      404              {object}  response.Envelope
// @Router       /api/v1/predictions/predict/{textId} [post]
func (h *PredictionHandler) Predict(c echo.Context) error {
	textID, err := pathID(c, "textId")
	if err != nil {
		return err
	}
	key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLength {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("%s must be at most %d characters", HeaderIdempotencyKey, maxIdempotencyKeyLength))
	}

	p, err := h.classification.Predict(c.Request().Context(), ports.PredictInput{
		TextID:         textID,
		IdempotencyKey: key,
		RequestID:      requestID(c),
	})
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, toPredictionResponse(p),
		response.Success(fmt.Sprintf("text %d classified as %s", textID, p.Result)))
}

// Stats handles GET /api/v1/predictions/stats.
//
// @Summary      Prediction statistics
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=statsResponse}
// @Router       /api/v1/predictions/stats [get]
func (h *PredictionHandler) Stats(c echo.Context) error {
	stats, err := h.classification.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, toStatsResponse(stats), response.Success("statistics computed"))
}

// Retrain handles POST /api/v1/predictions/retrain.
//
// @Summary      Schedule a model retrain
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Router       /api/v1/predictions/retrain [post]
func (h *PredictionHandler) Retrain(c echo.Context) error {
	if err := h.classification.RequestRetrain(c.Request().Context()); err != nil {
		return err
	}
	return response.JSON(c, http.StatusAccepted, nil, response.Information("model retrain scheduled"))
}
