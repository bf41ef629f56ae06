package session

import (
	"fmt"

	"github.com/sheikhrachel/sparse-gol/model"
	"github.com/sheikhrachel/sparse-gol/utils"
)

// statusLine formats the header shown above the grid
func statusLine(generation, living int, stats *utils.Stats) string {
	line := fmt.Sprintf("living: %d | gen: %d", living, generation)
	if generation > 0 {
		line += fmt.Sprintf(" | %.1f gen/sec | avg pop: %.1f", stats.GenerationsPerSecond, stats.AveragePopulation)
	}
	return line
}

// viewport returns the window of the grid described by the config
func viewport(cfg utils.Config) model.Box {
	return model.Box{
		MinX: cfg.OriginX,
		MinY: cfg.OriginY,
		MaxX: cfg.OriginX + cfg.ViewWidth - 1,
		MaxY: cfg.OriginY + cfg.ViewHeight - 1,
	}
}
