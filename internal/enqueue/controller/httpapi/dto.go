package httpapi

import (
	"encoding/json"
	"time"
)

type enqueueRequest struct {
	Service         string          `json:"service"`
	Payload         json.RawMessage `json:"payload"`
	IdempotencyKey  *string         `json:"idempotency_key"`
	DelaySeconds    *int            `json:"delay_s"`
	DeadlineSeconds *int            `json:"deadline_s"`
}

type enqueueResponse struct {
	OK             bool       `json:"ok"`
	Task           string     `json:"task"`
	Service        string     `json:"service"`
	Queue          string     `json:"queue"`
	DeadlineS      int        `json:"deadline_s"`
	IdempotencyKey string     `json:"idempotency_key"`
	ScheduleTime   *time.Time `json:"schedule_time,omitempty"`
}

type refreshResponse struct {
	OK       bool     `json:"ok"`
	Services []string `json:"services"`
}

type servicesResponse struct {
	OK       bool       `json:"ok"`
	Services []string   `json:"services"`
	State    string     `json:"state"`
	Source   string     `json:"source,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

type errorResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Detail string `json:"detail"`
}
