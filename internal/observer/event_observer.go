package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SolveEvent represents a solve lifecycle event
type SolveEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	RequestID      string                 `json:"request_id"`
	Model          string                 `json:"model"`
	SourceCount    int                    `json:"source_count"`
	ImageCount     int                    `json:"image_count"`
	Incomplete     bool                   `json:"incomplete"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of solve event
type EventType string

const (
	// SolveStarted when a solve begins
	SolveStarted EventType = "solve_started"
	// SolveCompleted when a solve finishes successfully
	SolveCompleted EventType = "solve_completed"
	// SolveFailed when a solve fails
	SolveFailed EventType = "solve_failed"
	// SolveIncomplete when a solve returns an empty or suspect image set
	SolveIncomplete EventType = "solve_incomplete"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event SolveEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event SolveEvent)
}

// LoggingObserver logs solve events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles solve events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event SolveEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"request_id":      event.RequestID,
		"model":           event.Model,
		"source_count":    event.SourceCount,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	if event.Metadata != nil {
		for k, v := range event.Metadata {
			fields[k] = v
		}
	}

	switch event.EventType {
	case SolveStarted:
		o.logger.WithFields(fields).Info("Lens equation solve started")
	case SolveCompleted:
		fields["image_count"] = event.ImageCount
		o.logger.WithFields(fields).Info("Lens equation solve completed")
	case SolveIncomplete:
		fields["image_count"] = event.ImageCount
		o.logger.WithFields(fields).Warn("Lens equation solve may be incomplete")
	case SolveFailed:
		o.logger.WithFields(fields).Error("Lens equation solve failed")
	default:
		o.logger.WithFields(fields).Info("Solve event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects metrics from solve events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalSolves         int64
	successfulSolves    int64
	failedSolves        int64
	incompleteSolves    int64
	totalImagesFound    int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() Observer {
	return &MetricsObserver{}
}

// OnEvent handles solve events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event SolveEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case SolveStarted:
		o.totalSolves++
	case SolveCompleted:
		o.successfulSolves++
		o.totalImagesFound += int64(event.ImageCount)
		o.totalProcessingTime += event.ProcessingTime
	case SolveIncomplete:
		o.incompleteSolves++
	case SolveFailed:
		o.failedSolves++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulSolves > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulSolves)
	}

	return map[string]interface{}{
		"total_solves":          o.totalSolves,
		"successful_solves":     o.successfulSolves,
		"failed_solves":         o.failedSolves,
		"incomplete_solves":     o.incompleteSolves,
		"total_images_found":    o.totalImagesFound,
		"total_processing_time": o.totalProcessingTime,
		"avg_processing_time":   avgProcessingTime,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event SolveEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Notify observers concurrently
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					// Log panic but don't crash the application
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
