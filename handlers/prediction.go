package handlers

import (
	"context"
	"net/http"

	"securecheck-api/estimator"
	"securecheck-api/metrics"
	"securecheck-api/models"
	"securecheck-api/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	DriverRaces = []string{"White", "Black", "Hispanic", "Asian", "Other"}
	Countries   = []string{"canada", "usa", "india"}
)

type PredictionHandler struct {
	ledger Ledger
	cache  *services.CacheService
}

func NewPredictionHandler(ledger Ledger, cache *services.CacheService) *PredictionHandler {
	return &PredictionHandler{ledger: ledger, cache: cache}
}

// PredictForm binds both JSON bodies and HTML form posts. Pointer fields
// distinguish a missing value from false or zero.
type PredictForm struct {
	StopDate         string `json:"stop_date" form:"stop_date"`
	StopTime         string `json:"stop_time" form:"stop_time"`
	CountryName      string `json:"country_name" form:"country_name"`
	DriverGender     string `json:"driver_gender" form:"driver_gender"`
	DriverAge        *int   `json:"driver_age" form:"driver_age"`
	DriverRace       string `json:"driver_race" form:"driver_race"`
	SearchConducted  *bool  `json:"search_conducted" form:"search_conducted"`
	SearchType       string `json:"search_type" form:"search_type"`
	DrugsRelatedStop *bool  `json:"drugs_related_stop" form:"drugs_related_stop"`
	StopDuration     string `json:"stop_duration" form:"stop_duration"`
	VehicleNumber    string `json:"vehicle_number" form:"vehicle_number"`
}

func (f PredictForm) Request() (estimator.Request, error) {
	switch {
	case f.DriverAge == nil:
		return estimator.Request{}, &estimator.InvalidRequestError{Field: "driver_age", Reason: "is required"}
	case f.SearchConducted == nil:
		return estimator.Request{}, &estimator.InvalidRequestError{Field: "search_conducted", Reason: "is required"}
	case f.DrugsRelatedStop == nil:
		return estimator.Request{}, &estimator.InvalidRequestError{Field: "drugs_related_stop", Reason: "is required"}
	}
	return estimator.Request{
		DriverGender:     f.DriverGender,
		DriverAge:        *f.DriverAge,
		SearchConducted:  *f.SearchConducted,
		StopDuration:     f.StopDuration,
		DrugsRelatedStop: *f.DrugsRelatedStop,
		CountryName:      f.CountryName,
		DriverRace:       f.DriverRace,
		SearchType:       f.SearchType,
		VehicleNumber:    f.VehicleNumber,
		StopDate:         f.StopDate,
		StopTime:         f.StopTime,
	}, nil
}

type PredictionResponse struct {
	estimator.Result
	Fallback bool   `json:"fallback"`
	Summary  string `json:"summary"`
}

type PredictionEvent struct {
	Request estimator.Request  `json:"request"`
	Result  PredictionResponse `json:"result"`
}

func (h *PredictionHandler) Options(c *gin.Context) {
	snap, err := h.ledger.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stop_durations": nonNil(snap.StopDurations()),
		"driver_genders": estimator.Genders,
		"driver_races":   DriverRaces,
		"countries":      Countries,
		"min_age":        estimator.MinDriverAge,
		"max_age":        estimator.MaxDriverAge,
	})
}

func (h *PredictionHandler) Predict(c *gin.Context) {
	var form PredictForm
	if err := c.ShouldBind(&form); err != nil {
		metrics.PredictionsRejected.Inc()
		respondError(c, &estimator.InvalidRequestError{Field: "body", Reason: err.Error()})
		return
	}
	req, err := form.Request()
	if err != nil {
		metrics.PredictionsRejected.Inc()
		respondError(c, err)
		return
	}

	snap, err := h.ledger.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.predict(req, snap)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// predict runs the estimator over snap and announces the result on the feed.
func (h *PredictionHandler) predict(req estimator.Request, snap *models.Snapshot) (PredictionResponse, error) {
	res, err := estimator.Estimate(req, snap.Records)
	if err != nil {
		metrics.PredictionsRejected.Inc()
		return PredictionResponse{}, err
	}

	source := "history"
	if res.Fallback() {
		source = "fallback"
	}
	metrics.Predictions.WithLabelValues(source).Inc()

	resp := PredictionResponse{Result: res, Fallback: res.Fallback(), Summary: estimator.Summary(req, res)}
	go func() {
		if err := h.cache.Publish(context.Background(), services.PredictionChannel, PredictionEvent{Request: req, Result: resp}); err != nil {
			log.Warn().Err(err).Msg("prediction publish failed")
		}
	}()
	return resp, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
