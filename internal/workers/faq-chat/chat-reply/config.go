package chatreply

import (
	"fmt"
	"time"

	"archibald/internal/common/config"
	composeresponse "archibald/internal/workers/faq-chat/compose-response"
)

type Config struct {
	// WorkingLanguage is the language keywords, dates and facts are written in.
	WorkingLanguage string
	Location        *time.Location
	// Timeout bounds one job run when invoked through Zeebe.
	Timeout  time.Duration
	Composer composeresponse.Config
}

func LoadConfig(cfg *config.Config) (*Config, error) {
	loc, err := time.LoadLocation(cfg.Chat.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Chat.Timezone, err)
	}

	timeout := time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Config{
		WorkingLanguage: cfg.Chat.WorkingLanguage,
		Location:        loc,
		Timeout:         timeout,
		Composer: composeresponse.Config{
			SiteURL:       cfg.Chat.SiteURL,
			ScheduleURL:   cfg.Chat.ScheduleURL,
			FAQThreshold:  cfg.Chat.FAQThreshold,
			MaxReplyChars: cfg.Chat.MaxReplyChars,
		},
	}, nil
}
