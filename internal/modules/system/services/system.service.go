package services

import (
	"context"
	"sync"
	"time"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/mongodb"
	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/infrastructure/database/redis"
	"habilitations-core/internal/modules/system/dto"
)

// Pinger dépendance interrogeable
type Pinger interface {
	Ping(ctx context.Context) error
}

type component struct {
	name     string
	pinger   Pinger
	required bool
}

// SystemService état des dépendances ; MongoDB n'est jamais bloquant
type SystemService struct {
	components  []component
	environment string
	startedAt   time.Time
	timeout     time.Duration
}

func NewSystemService(pg *postgres.Client, rdb *redis.Client, mongo *mongodb.Client, cfg *config.Config) *SystemService {
	components := []component{
		{name: "postgresql", required: true},
		{name: "redis", required: true},
		{name: "mongodb"},
	}
	// Un client nil reste une interface nil : composant non configuré
	if pg != nil {
		components[0].pinger = pg
	}
	if rdb != nil {
		components[1].pinger = rdb
	}
	if mongo != nil {
		components[2].pinger = mongo
	}

	return newSystemService(components, cfg.Environment)
}

func newSystemService(components []component, environment string) *SystemService {
	return &SystemService{
		components:  components,
		environment: environment,
		startedAt:   time.Now(),
		timeout:     2 * time.Second,
	}
}

// Check interroge toutes les dépendances en parallèle ; ready = dépendances requises joignables
func (s *SystemService) Check(ctx context.Context) (report *dto.HealthReport, ready bool) {
	statuses := make([]dto.ComponentStatus, len(s.components))

	var wg sync.WaitGroup
	for i, c := range s.components {
		wg.Add(1)
		go func() {
			defer wg.Done()
			statuses[i] = s.ping(ctx, c)
		}()
	}
	wg.Wait()

	ready = true
	for _, st := range statuses {
		// Une dépendance requise non configurée compte comme indisponible
		if st.Required && st.Status != dto.StatusUp {
			ready = false
		}
	}

	status := "ready"
	if !ready {
		status = "degraded"
	}
	return &dto.HealthReport{
		Status:      status,
		Environment: s.environment,
		Uptime:      time.Since(s.startedAt).Truncate(time.Second).String(),
		Components:  statuses,
	}, ready
}

func (s *SystemService) ping(ctx context.Context, c component) dto.ComponentStatus {
	st := dto.ComponentStatus{Name: c.name, Required: c.required}
	if c.pinger == nil {
		st.Status = dto.StatusDisabled
		return st
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := c.pinger.Ping(pingCtx)
	st.Latency = time.Since(start).String()
	if err != nil {
		st.Status = dto.StatusDown
		st.Error = err.Error()
		return st
	}
	st.Status = dto.StatusUp
	return st
}
