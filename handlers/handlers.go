package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nijaru/clipsai/config"
	"github.com/nijaru/clipsai/db"
	"github.com/nijaru/clipsai/middleware"
	"github.com/nijaru/clipsai/pipeline"
	"github.com/nijaru/clipsai/utils"
	"github.com/nijaru/clipsai/validation"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	cfg         *config.Config
	rateLimiter *rate.Limiter
	service     *pipeline.Service

	clipValidator    validation.ClipInputValidator
	requestValidator validation.TranscribeClipRequestValidator
)

// dispatchJob hands an accepted job to the pipeline in the background.
var dispatchJob = func(job *db.Job) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.PipelineTimeout)
		defer cancel()

		if err := service.Dispatch(ctx, job); err != nil {
			logrus.WithError(err).WithField("job_id", job.ID).Error("Pipeline dispatch failed")
		}
	}()
}

func InitHandlers(config *config.Config) {
	cfg = config
	rateLimiter = rate.NewLimiter(rate.Every(cfg.RateLimitInterval), cfg.RateLimit)
	service = pipeline.NewService(cfg)
}

// Routes returns the intake API wrapped in the standard middleware chain.
func Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/clip", ClipHandler)
	mux.HandleFunc("/transcribe-clip", TranscribeClipHandler)
	mux.HandleFunc("/jobs", JobHandler)
	mux.HandleFunc("/health", HealthHandler)

	return middleware.Chain(mux,
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware,
		middleware.RecoverMiddleware,
	)
}

// ClipHandler accepts a clip job for an already transcribed media file.
func ClipHandler(w http.ResponseWriter, r *http.Request) {
	acceptJob(w, r, db.KindClip, func(data validation.Params) (any, error) {
		input, err := clipValidator.Parse(data)
		if err != nil {
			return nil, err
		}
		return input, nil
	})
}

// TranscribeClipHandler accepts a transcribe-and-clip job.
func TranscribeClipHandler(w http.ResponseWriter, r *http.Request) {
	acceptJob(w, r, db.KindTranscribeClip, func(data validation.Params) (any, error) {
		req, err := requestValidator.Parse(data)
		if err != nil {
			return nil, err
		}
		return req, nil
	})
}

type jobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func acceptJob(w http.ResponseWriter, r *http.Request, kind string, parse func(validation.Params) (any, error)) {
	log := logrus.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"kind":       kind,
		"request_id": middleware.GetRequestID(r.Context()),
	})
	log.Info("Received request")

	if r.Method != http.MethodPost {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	if !rateLimiter.Allow() {
		utils.HandleError(w, "Rate limit exceeded", http.StatusTooManyRequests)
		log.Warn("Rate limit exceeded")
		return
	}

	data, err := decodeParams(w, r)
	if err != nil {
		utils.HandleError(w, err.Error(), http.StatusBadRequest)
		log.WithError(err).Warn("Failed to decode request body")
		return
	}

	record, err := parse(data)
	if err != nil {
		handleValidationError(w, log, err)
		return
	}

	payload, err := json.Marshal(record)
	if err != nil {
		utils.HandleError(w, "Failed to encode job", http.StatusInternalServerError)
		log.WithError(err).Error("Failed to encode job")
		return
	}

	job, err := db.CreateJob(r.Context(), kind, payload)
	if err != nil {
		utils.HandleError(w, "Failed to store job", http.StatusInternalServerError)
		log.WithError(err).Error("Failed to store job")
		return
	}

	dispatchJob(job)

	log.WithField("job_id", job.ID).Info("Job accepted")
	utils.RespondWithJSON(w, http.StatusAccepted, jobResponse{ID: job.ID, Status: job.Status})
}

func decodeParams(w http.ResponseWriter, r *http.Request) (validation.Params, error) {
	r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var data validation.Params
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %v", err)
	}
	if data == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return data, nil
}

func handleValidationError(w http.ResponseWriter, log *logrus.Entry, err error) {
	if kind, ok := validation.ErrorKindOf(err); ok {
		utils.HandleError(w, err.Error(), http.StatusBadRequest)
		log.WithError(err).WithField("error_kind", kind.String()).Warn("Request validation failed")
		return
	}
	utils.HandleError(w, "An error occurred while processing your request. Please try again later.", http.StatusInternalServerError)
	log.WithError(err).Error("Request parsing failed")
}

// JobHandler returns a stored job by id.
func JobHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		utils.HandleError(w, "id is required", http.StatusBadRequest)
		return
	}

	job, err := db.GetJob(r.Context(), id)
	if errors.Is(err, db.ErrJobNotFound) {
		utils.HandleError(w, "Job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.HandleError(w, "Failed to get job", http.StatusInternalServerError)
		logrus.WithError(err).WithField("job_id", id).Error("Failed to get job from DB")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, job)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
