package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "archibald/internal/common/errors"
	"archibald/internal/models"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// Source yields the raw knowledge base document.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (map[string]interface{}, error)
}

// FileSource reads a JSON or YAML document from disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) Fetch(ctx context.Context) (map[string]interface{}, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}
	return Decode(data, filepath.Ext(s.Path))
}

// Decode parses a knowledge document. ".yaml" and ".yml" select YAML,
// anything else JSON.
func Decode(data []byte, ext string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml knowledge: %w", err)
		}
		for k, v := range raw {
			raw[k] = normalizeTimestamps(v)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode json knowledge: %w", err)
		}
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}

// normalizeTimestamps turns the time.Time values YAML produces for unquoted
// dates back into the string form JSON documents carry.
func normalizeTimestamps(v interface{}) interface{} {
	switch val := v.(type) {
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalizeTimestamps(item)
		}
	case []interface{}:
		for i, item := range val {
			val[i] = normalizeTimestamps(item)
		}
	}
	return v
}

// Load fetches the document from src and preprocesses it. Every warning is
// logged; only an unreadable source is an error.
func Load(ctx context.Context, src Source, log Logger) (*models.KnowledgeBase, *Report, error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, nil, apperrors.NewKnowledgeBaseUnavailableError(err).
			WithMetadata("source", src.Name())
	}

	kb, report := Preprocess(raw)
	for _, w := range report.Warnings {
		log.Warn("knowledge base entry skipped", map[string]interface{}{
			"source":  src.Name(),
			"section": w.Section,
			"index":   w.Index,
			"reason":  w.Message,
		})
	}

	log.Info("knowledge base loaded", map[string]interface{}{
		"source":         src.Name(),
		"schedule":       report.ScheduleCount,
		"info":           report.InfoCount,
		"faq":            report.FAQCount,
		"defaultPricing": report.DefaultPricing,
		"warnings":       len(report.Warnings),
	})

	return kb, report, nil
}
