// Package chatreply runs the whole chat pipeline for one visitor message:
// detection, translation, classification, extraction, composition,
// generation and translation back. It serves both the HTTP API and the
// chat-reply Zeebe job.
package chatreply

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"archibald/internal/common/errors"
	"archibald/internal/common/logger"
	"archibald/internal/common/metrics"
	"archibald/internal/common/observability"
	"archibald/internal/models"
	classifyintent "archibald/internal/workers/faq-chat/classify-intent"
	composeresponse "archibald/internal/workers/faq-chat/compose-response"
	extractparty "archibald/internal/workers/faq-chat/extract-party"
	resolvedate "archibald/internal/workers/faq-chat/resolve-date"
)

const (
	TaskType = "chat-reply"
)

type Detector interface {
	Detect(text string) (string, bool)
}

type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Dependencies are the external backends and shared state of the pipeline.
// Classifier defaults to the built-in keyword table, Now to time.Now.
type Dependencies struct {
	Knowledge     *models.KnowledgeBase
	Detector      Detector
	Translator    Translator
	Generator     Generator
	Classifier    *classifyintent.Classifier
	Observability *observability.Observability
	Now           func() time.Time
}

type Handler struct {
	config       *Config
	deps         Dependencies
	resolver     *resolvedate.Resolver
	composer     *composeresponse.Composer
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, deps Dependencies, log logger.Logger) *Handler {
	if deps.Classifier == nil {
		deps.Classifier = classifyintent.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       config,
		deps:         deps,
		resolver:     resolvedate.New(config.Location),
		composer:     composeresponse.New(deps.Knowledge, config.Composer),
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

// Handle runs one chat-reply job and completes it with the Output variables.
func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := decodeInput(job.Variables)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeInvalidRequest)).Inc()
		return err
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
		return err
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("build complete command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("complete job %d: %w", job.Key, err)
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	return nil
}

func decodeInput(variables string) (*Input, error) {
	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewInvalidRequestError(fmt.Sprintf("parse job variables: %v", err))
	}
	return &input, nil
}

// Execute answers one message. Detection failure degrades to the fallback
// language; translation and generation failures abort with no partial reply.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := h.deps.Now()

	output, lang, err := h.execute(ctx, input)

	status := "ok"
	if err != nil {
		status = string(errors.AsStandardError(err).Code)
	}
	h.deps.Observability.RecordPipelineRun(ctx, h.deps.Now().Sub(start), status, lang)

	return output, err
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, string, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, "", errors.NewMessageRequiredError()
	}

	lang, detected := h.deps.Detector.Detect(message)
	if !detected {
		h.logger.Warn("language detection failed, using fallback", map[string]interface{}{
			"language": lang,
		})
	}
	metrics.DetectedLanguages.WithLabelValues(lang).Inc()

	working := message
	if lang != h.config.WorkingLanguage {
		translated, err := h.deps.Translator.Translate(ctx, message, lang, h.config.WorkingLanguage)
		if err != nil {
			return nil, lang, err
		}
		working = translated
	}

	tags := h.deps.Classifier.Classify(working)
	for _, name := range tags.Names() {
		metrics.IntentTags.WithLabelValues(name).Inc()
	}
	date, _ := h.resolver.Resolve(working, h.deps.Now())
	party := extractparty.Extract(working)

	h.logger.Debug("message analysed", map[string]interface{}{
		"language": lang,
		"tags":     tags.Names(),
		"date":     date.String(),
		"adults":   party.Adults,
		"children": party.ChildAges,
	})

	answer := h.composer.Compose(composeresponse.Input{
		Question: working,
		Tags:     tags,
		Date:     date,
		Party:    party,
		Language: lang,
	})

	reply, err := h.deps.Generator.Generate(ctx, answer.Prompt)
	if err != nil {
		return nil, lang, err
	}

	reply, err = h.toUserLanguage(ctx, reply, lang)
	if err != nil {
		return nil, lang, err
	}

	output := &Output{
		Response: reply,
		Language: lang,
		Tags:     tags.Names(),
		Facts:    answer.Facts,
	}
	if !date.IsZero() {
		output.Date = &date
	}
	if party.HasData() || party.HasChildren() {
		output.Party = &party
	}

	h.logger.Info("reply generated", map[string]interface{}{
		"language":  lang,
		"tags":      output.Tags,
		"replyLen":  len(reply),
		"sessionId": input.SessionID,
	})
	return output, lang, nil
}

// toUserLanguage translates reply unless it is already in lang.
func (h *Handler) toUserLanguage(ctx context.Context, reply, lang string) (string, error) {
	if lang == h.config.WorkingLanguage {
		return reply, nil
	}
	replyLang, ok := h.deps.Detector.Detect(reply)
	if ok && replyLang == lang {
		return reply, nil
	}
	source := ""
	if ok {
		source = replyLang
	}
	return h.deps.Translator.Translate(ctx, reply, source, lang)
}
