package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tu-usuario/pasteleria-pos/internal/application/stock"
	"github.com/tu-usuario/pasteleria-pos/pkg/config"
	"github.com/tu-usuario/pasteleria-pos/pkg/logger"
)

// systemUserID atribuye los asientos del barrido nocturno al sistema.
const systemUserID int64 = 0

// WarningScheduler corre el barrido diario de vencimientos sobre todos los
// productos con lotes activos.
type WarningScheduler struct {
	scheduler *gocron.Scheduler
	stockUC   *stock.UseCase
	log       *logger.Logger
}

// NewWarningScheduler arma el scheduler según la configuración de jobs.
func NewWarningScheduler(cfg config.JobsConfig, stockUC *stock.UseCase, log *logger.Logger) (*WarningScheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone de jobs inválida %q: %w", cfg.Timezone, err)
	}
	ws := &WarningScheduler{
		scheduler: gocron.NewScheduler(location),
		stockUC:   stockUC,
		log:       log,
	}
	if _, err := ws.scheduler.Every(1).Day().At(cfg.WarningRefreshAt).Do(ws.sweep); err != nil {
		return nil, fmt.Errorf("programar barrido diario: %w", err)
	}
	return ws, nil
}

// Start arranca el scheduler sin bloquear.
func (ws *WarningScheduler) Start() {
	ws.scheduler.StartAsync()
	ws.log.Info().Msg("barrido diario de vencimientos programado")
}

// Stop detiene el scheduler y espera los jobs en curso.
func (ws *WarningScheduler) Stop() {
	ws.scheduler.Stop()
}

// sweep recorre los productos con lotes activos y recalcula sus avisos.
// Los asientos que genere quedan atribuidos al sistema.
func (ws *WarningScheduler) sweep() {
	ctx := context.Background()
	ids, err := ws.stockUC.ActiveProductIDs()
	if err != nil {
		ws.log.Error().Err(err).Msg("barrido diario: no se pudieron listar productos activos")
		return
	}
	for _, id := range ids {
		ws.stockUC.RefreshProductWarnings(ctx, id, systemUserID)
	}
	ws.log.Info().Int("productos", len(ids)).Msg("barrido diario de vencimientos completado")
}
